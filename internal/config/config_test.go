package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func loadFromYAML(t *testing.T, raw string) *Config {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	SetDefaults(v)
	if raw != "" {
		if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
			t.Fatalf("read config failed: %v", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal config failed: %v", err)
	}
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadFromYAML(t, "")
	if cfg.Server.Port != "3000" || cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected server/database defaults: %+v %+v", cfg.Server, cfg.Database)
	}
	if cfg.JWT.ExpireHours != 168 || cfg.Security.BcryptCost != 12 {
		t.Fatalf("unexpected auth defaults: %+v %+v", cfg.JWT, cfg.Security)
	}
	if cfg.Catalog.BaseURL != "https://dummyjson.com" || cfg.Catalog.BatchSize != 30 || cfg.Catalog.RetryCount != 2 || cfg.Catalog.RetryWait() != 500*time.Millisecond {
		t.Fatalf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if !cfg.Sync.Enabled || cfg.Sync.Cron != "0 */12 * * *" || cfg.Sync.Timezone != "America/Mexico_City" {
		t.Fatalf("unexpected sync defaults: %+v", cfg.Sync)
	}
	if cfg.Security.LoginRateLimit.BlockSeconds != 900 {
		t.Fatalf("unexpected block seconds: %d", cfg.Security.LoginRateLimit.BlockSeconds)
	}
	if register := cfg.Security.RegisterRateLimit; register.WindowSeconds != 3600 || register.MaxAttempts != 20 || register.BlockSeconds != 0 {
		t.Fatalf("unexpected register rate limit: %+v", register)
	}
	if cfg.Queue.Queues["default"] != 5 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	cfg := loadFromYAML(t, `
server:
  port: "8080"
catalog:
  base_url: http://catalog.local
  timeout_seconds: 3
sync:
  enabled: false
  timezone: UTC
log:
  dir: /var/log/shopsync
  max_backups: 3
`)
	if cfg.Server.Port != "8080" || cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Catalog.BaseURL != "http://catalog.local" || cfg.Catalog.Timeout() != 3*time.Second {
		t.Fatalf("unexpected catalog config: %+v", cfg.Catalog)
	}
	if cfg.Sync.Enabled || cfg.Sync.Timezone != "UTC" || cfg.Sync.Cron != "0 */12 * * *" {
		t.Fatalf("unexpected sync config: %+v", cfg.Sync)
	}
	opts := cfg.Log.ToLoggerOptions()
	if opts.Dir != "/var/log/shopsync" || opts.MaxBackups != 3 || opts.Filename != "app.log" {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
}

func TestCatalogTimeoutFallback(t *testing.T) {
	if got := (CatalogConfig{}).Timeout(); got != 10*time.Second {
		t.Fatalf("zero timeout should fall back to 10s, got %s", got)
	}
}
