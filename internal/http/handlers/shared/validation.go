package shared

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNameOnce sync.Once

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// RegisterJSONTagNames 让校验错误使用 json/form 标签中的字段名
func RegisterJSONTagNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
}

// ValidationFields 将 validator 错误转换为字段明细，非校验错误返回 nil
func ValidationFields(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return fields
}

// RespondBindError 参数绑定失败：校验错误带字段明细，其余为通用参数错误
func RespondBindError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if fields := ValidationFields(err); len(fields) > 0 {
		response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.validation_failed"), gin.H{"fields": fields})
		return
	}
	RequestLog(c).Debugw("handler_bind_failed", "error", err)
	response.Error(c, response.CodeBadRequest, i18n.T(locale, "error.bad_request"))
}
