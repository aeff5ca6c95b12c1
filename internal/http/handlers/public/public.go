package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopsync/internal/cache"
	"github.com/shopsync/internal/constants"
	handlershared "github.com/shopsync/internal/http/handlers/shared"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Category  string `form:"category"`
	Brand     string `form:"brand"`
	MinPrice  string `form:"min_price"`
	MaxPrice  string `form:"max_price"`
	InStock   bool   `form:"in_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// Health 存活检查
func (h *Handler) Health(c *gin.Context) {
	data := gin.H{
		"status":  "ok",
		"service": constants.AppName,
		"version": constants.AppVersion,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if cache.Enabled() {
		redisStatus := "ok"
		if err := cache.Ping(c.Request.Context()); err != nil {
			redisStatus = "unavailable"
		}
		data["redis"] = redisStatus
	}
	response.Success(c, data)
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	var query ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	minPrice, ok := parsePriceParam(query.MinPrice)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_query_invalid", nil)
		return
	}
	maxPrice, ok := parsePriceParam(query.MaxPrice)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_query_invalid", nil)
		return
	}

	products, pagination, err := h.ProductService.List(service.ProductQuery{
		Page:      query.Page,
		Limit:     query.Limit,
		Search:    query.Search,
		Category:  query.Category,
		Brand:     query.Brand,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		InStock:   query.InStock,
		SortBy:    strings.TrimSpace(query.SortBy),
		SortOrder: strings.ToLower(strings.TrimSpace(query.SortOrder)),
	})
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	product, err := h.ProductService.GetByID(uint(id))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// GetCategories 获取启用分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 按 slug 获取分类
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, category)
}

// parsePriceParam 空值返回 nil，格式错误时 ok 为 false
func parsePriceParam(raw string) (*decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}
