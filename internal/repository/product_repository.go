package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productSortColumns 允许的排序字段到列名的映射
var productSortColumns = map[string]string{
	constants.ProductSortTitle:     "products.title",
	constants.ProductSortPrice:     "products.price",
	constants.ProductSortRating:    "products.rating",
	constants.ProductSortCreatedAt: "products.created_at",
	constants.ProductSortStock:     "products.stock",
}

// productSyncColumns 同步时按外部 ID 覆盖的列，category_id 只在首次创建时写入
var productSyncColumns = []string{
	"title",
	"description",
	"price",
	"discount_percentage",
	"rating",
	"stock",
	"brand",
	"sku",
	"weight",
	"dimensions",
	"metadata",
	"images",
	"thumbnail",
	"tags",
	"is_active",
	"last_sync_at",
	"updated_at",
}

// IsValidProductSort 判断排序字段是否受支持
func IsValidProductSort(sortBy string) bool {
	_, ok := productSortColumns[sortBy]
	return ok
}

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint, onlyActive bool) (*models.Product, error)
	UpsertByExternalID(product *models.Product) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("products.is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"products.title", "products.description"}, []string{"products.tags"})
		query = query.Where(condition, repeatLikeArgs(likePattern(search), argCount)...)
	}
	if slug := strings.ToLower(strings.TrimSpace(filter.CategorySlug)); slug != "" {
		query = query.Where("products.category_id IN (?)", r.db.Model(&models.Category{}).Select("id").Where("slug = ?", slug))
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query = query.Where(likeClause(dbDialectName(r.db), "products.brand"), likePattern(brand))
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.InStock {
		query = query.Where("products.stock > ?", 0)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := productSortColumns[filter.SortBy]
	if !ok {
		column = productSortColumns[constants.ProductSortCreatedAt]
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, constants.SortAsc) {
		direction = "ASC"
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var products []models.Product
	if err := query.Order(fmt.Sprintf("%s %s, products.id %s", column, direction, direction)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Category")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var product models.Product
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// UpsertByExternalID 按外部 ID 插入或覆盖可变字段
func (r *GormProductRepository) UpsertByExternalID(product *models.Product) error {
	if product == nil || product.ExternalID == nil {
		return errors.New("product external id is required")
	}
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(productSyncColumns),
	}).Create(product).Error
}
