package response

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// AppError 接口层错误：业务码 + 返回给客户端的文案，Cause 只进日志不下发
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WrapError 构造接口层错误
func WrapError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Fail 写出错误信封；存在 Cause 时记入 gin 错误列表，由访问日志统一输出
func Fail(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		Error(c, CodeInternal, "internal server error")
		return
	}
	if appErr.Cause != nil {
		_ = c.Error(appErr)
	}
	Error(c, appErr.Code, appErr.Message)
}
