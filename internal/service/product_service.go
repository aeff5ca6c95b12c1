package service

import (
	"strings"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultProductPage  = 1
	defaultProductLimit = 10
	maxProductLimit     = 100
)

// productSortAliases 兼容驼峰写法的排序字段（按小写匹配）
var productSortAliases = map[string]string{
	"createdat": constants.ProductSortCreatedAt,
}

// ProductService 商品查询服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductQuery 商品列表查询条件
type ProductQuery struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	Brand     string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	InStock   bool
	SortBy    string
	SortOrder string
}

// ProductPagination 商品分页信息
type ProductPagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// List 查询上架商品
func (s *ProductService) List(query ProductQuery) ([]models.Product, ProductPagination, error) {
	filter, err := buildProductListFilter(query)
	if err != nil {
		return nil, ProductPagination{}, err
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, ProductPagination{}, err
	}
	return products, buildProductPagination(filter.Page, filter.PageSize, total), nil
}

// GetByID 获取上架商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func buildProductListFilter(query ProductQuery) (repository.ProductListFilter, error) {
	page := query.Page
	if page < 1 {
		page = defaultProductPage
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}
	if limit > maxProductLimit {
		limit = maxProductLimit
	}

	sortBy := strings.ToLower(strings.TrimSpace(query.SortBy))
	if sortBy == "" {
		sortBy = constants.ProductSortCreatedAt
	}
	if alias, ok := productSortAliases[sortBy]; ok {
		sortBy = alias
	}
	if !repository.IsValidProductSort(sortBy) {
		return repository.ProductListFilter{}, ErrInvalidProductQuery
	}
	sortOrder := strings.ToLower(strings.TrimSpace(query.SortOrder))
	switch sortOrder {
	case "":
		sortOrder = constants.SortDesc
	case constants.SortAsc, constants.SortDesc:
	default:
		return repository.ProductListFilter{}, ErrInvalidProductQuery
	}

	if query.MinPrice != nil && query.MinPrice.IsNegative() {
		return repository.ProductListFilter{}, ErrInvalidProductQuery
	}
	if query.MaxPrice != nil && query.MaxPrice.IsNegative() {
		return repository.ProductListFilter{}, ErrInvalidProductQuery
	}
	if query.MinPrice != nil && query.MaxPrice != nil && query.MinPrice.GreaterThan(*query.MaxPrice) {
		return repository.ProductListFilter{}, ErrInvalidProductQuery
	}

	return repository.ProductListFilter{
		Page:         page,
		PageSize:     limit,
		Search:       strings.TrimSpace(query.Search),
		CategorySlug: normalizeSlug(query.Category),
		Brand:        strings.TrimSpace(query.Brand),
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
		InStock:      query.InStock,
		SortBy:       sortBy,
		SortOrder:    sortOrder,
		OnlyActive:   true,
		WithCategory: true,
	}, nil
}

func buildProductPagination(page, limit int, total int64) ProductPagination {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return ProductPagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
}
