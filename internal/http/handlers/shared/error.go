package shared

import (
	"errors"

	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/i18n"
	"github.com/shopsync/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := GetContextString(c, ContextKeyRequestID); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	RespondErrorWithMsg(c, code, msg, err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Fail(c, appErr)
}

// MappedError 业务错误到接口错误码与文案 key 的映射
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按映射表返回错误，未命中时使用兜底错误码并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// LocalizedError 携带 i18n key 与格式化参数的错误（如密码策略）
type LocalizedError interface {
	Key() string
	Args() []interface{}
}

// RespondLocalizedError 优先使用错误自带的 i18n key，否则回退到 fallbackKey
func RespondLocalizedError(c *gin.Context, code int, err error, fallbackKey string) {
	var localized LocalizedError
	if errors.As(err, &localized) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), localized.Key(), localized.Args()...)
		RespondErrorWithMsg(c, code, msg, nil)
		return
	}
	RespondError(c, code, fallbackKey, nil)
}
