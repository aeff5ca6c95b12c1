package repository

import "github.com/shopspring/decimal"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	Search       string
	CategorySlug string
	Brand        string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStock      bool
	SortBy       string
	SortOrder    string
	OnlyActive   bool
	WithCategory bool
}

// SystemLogListFilter 查询系统日志列表的过滤条件
type SystemLogListFilter struct {
	Page     int
	PageSize int
	Level    string
	Context  string
}
