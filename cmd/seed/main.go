package main

import (
	"context"
	"flag"
	"os"

	"github.com/shopsync/internal/config"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/provider"
)

// seed 一次性初始化：迁移表结构、创建默认管理员并从外部目录拉取一次商品
func main() {
	var skipSync bool
	flag.BoolVar(&skipSync, "skip-sync", false, "只迁移数据库与创建管理员，不拉取外部商品")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin(
		os.Getenv("SHOPSYNC_DEFAULT_ADMIN_EMAIL"),
		os.Getenv("SHOPSYNC_DEFAULT_ADMIN_PASSWORD"),
		cfg.Security.BcryptCost,
	); err != nil {
		stdLog.Fatalf("Failed to create default admin: %v", err)
	}

	if skipSync {
		stdLog.Printf("Seed finished without catalog sync")
		return
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	result, err := container.TaskService.ManualSync(context.Background())
	if err != nil {
		stdLog.Fatalf("Catalog sync failed: %v", err)
	}
	if result.InProgress || result.Result == nil {
		stdLog.Printf("Catalog sync skipped: %s", result.Message)
		return
	}
	stdLog.Printf("Catalog sync finished: synchronized=%d errors=%d duration=%s",
		result.Result.Synchronized, result.Result.Errors, result.Result.Duration())
}
