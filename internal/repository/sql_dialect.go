package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// likeEscapeChar LIKE 转义字符，用户输入中的通配符按字面匹配
const likeEscapeChar = "!"

var likeEscaper = strings.NewReplacer(
	likeEscapeChar, likeEscapeChar+likeEscapeChar,
	"%", likeEscapeChar+"%",
	"_", likeEscapeChar+"_",
)

// likeClause 生成带 ESCAPE 的单列匹配条件
func likeClause(dialect, expr string) string {
	return fmt.Sprintf("%s %s ? ESCAPE '%s'", expr, likeOperatorByDialect(dialect), likeEscapeChar)
}

// jsonArrayTextExpr 将 JSON 数组列转为可 LIKE 的文本。
func jsonArrayTextExpr(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("CAST(%s AS TEXT)", column)
	default:
		return fmt.Sprintf("COALESCE(%s, '')", column)
	}
}

// buildLikeCondition 构建大小写不敏感的多列 LIKE 条件，并返回参数数量。
// sqlite 的 LIKE 对 ASCII 默认不区分大小写，postgres 使用 ILIKE。
func buildLikeCondition(db *gorm.DB, plainColumns, jsonArrayColumns []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), plainColumns, jsonArrayColumns)
}

func buildLikeConditionByDialect(dialect string, plainColumns, jsonArrayColumns []string) (string, int) {
	parts := make([]string, 0, len(plainColumns)+len(jsonArrayColumns))
	for _, column := range plainColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, likeClause(dialect, trimmed))
	}
	for _, column := range jsonArrayColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, likeClause(dialect, jsonArrayTextExpr(dialect, trimmed)))
	}
	return strings.Join(parts, " OR "), len(parts)
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// likePattern 生成包含匹配模式，关键字中的通配符会被转义。
func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(keyword)) + "%"
}
