package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopsync/internal/config"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/i18n"
	"github.com/shopsync/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
// 超过 MaxRequests 后，BlockSeconds > 0 时计数 key 的过期时间延长为封禁时长
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

// newRateLimitRule 按配置构建限流规则，key 前缀为 <redis prefix>:rate:<name>
func newRateLimitRule(redisPrefix, name string, limit config.RateLimitConfig, messageKey string) RateLimitRule {
	redisPrefix = strings.TrimSpace(redisPrefix)
	if redisPrefix == "" {
		redisPrefix = "shopsync"
	}
	return RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:%s", redisPrefix, name),
		WindowSeconds: limit.WindowSeconds,
		MaxRequests:   limit.MaxAttempts,
		BlockSeconds:  limit.BlockSeconds,
		MessageKey:    messageKey,
	}
}

// KEYS[1] 计数 key；ARGV[1] 窗口秒数，ARGV[2] 上限，ARGV[3] 封禁秒数
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
local block = tonumber(ARGV[3])
if current > tonumber(ARGV[2]) and block > 0 and ttl < block then
	redis.call("EXPIRE", KEYS[1], block)
	ttl = block
end
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件，client 为空时放行
func RateLimitMiddleware(client redis.Scripter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isNilScripter(client) || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
		if err != nil {
			logger.Warnw("rate_limit_script_failed", "key", key, "error", err)
			respondRateLimitUnavailable(c)
			return
		}
		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			respondRateLimitUnavailable(c)
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			respondRateLimitUnavailable(c)
			return
		}
		ttlSeconds, _ := toInt64(values[1])

		if limited, wait := evaluateRateLimit(count, ttlSeconds, rule); limited {
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait)
			response.Error(c, response.CodeTooManyRequests, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

// evaluateRateLimit 判断是否超限并计算需要等待的秒数
func evaluateRateLimit(count, ttlSeconds int64, rule RateLimitRule) (bool, int) {
	if count <= int64(rule.MaxRequests) {
		return false, 0
	}
	wait := int(ttlSeconds)
	if wait < 1 {
		wait = rule.BlockSeconds
	}
	if wait < 1 {
		wait = rule.WindowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return true, wait
}

func respondRateLimitUnavailable(c *gin.Context) {
	msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
	response.Error(c, response.CodeInternal, msg)
	c.Abort()
}

func isNilScripter(client redis.Scripter) bool {
	if client == nil {
		return true
	}
	if rc, ok := client.(*redis.Client); ok && rc == nil {
		return true
	}
	return false
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
