package shared

import (
	"github.com/shopsync/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 中间件写入 gin.Context 的键
const (
	ContextKeyRequestID = response.RequestIDKey
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetUserID 读取当前登录用户 ID
func GetUserID(c *gin.Context) (uint, bool) {
	return GetContextUintWithKeys(c, ContextKeyUserID, "error.user_id_invalid", "error.user_id_type_invalid")
}

// GetContextString 读取字符串上下文值，不存在时返回空串
func GetContextString(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(key); ok {
		if text, ok := value.(string); ok {
			return text
		}
	}
	return ""
}
