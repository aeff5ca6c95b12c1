package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleEnUS = "en-US"
	LocaleEsMX = "es-MX"
	LocaleZhCN = "zh-CN"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleEnUS
)

var supportedTags = []language.Tag{
	language.MustParse(LocaleEnUS),
	language.MustParse(LocaleEsMX),
	language.MustParse(LocaleZhCN),
}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 从 query 参数 lang 或 Accept-Language 中解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return MatchLocale(lang)
	}
	return MatchLocale(c.GetHeader("Accept-Language"))
}

// MatchLocale 将任意语言描述匹配到支持的语言
func MatchLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[index].String()
}

// T 翻译消息 key，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if bundle, ok := messages[locale]; ok {
		if msg, ok := bundle[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
