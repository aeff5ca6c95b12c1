package repository

import (
	"errors"
	"time"

	"github.com/shopsync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryWithCount 分类及其上架商品数
type CategoryWithCount struct {
	models.Category
	ProductCount int64 `gorm:"column:product_count" json:"product_count"`
}

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	ListActiveWithCounts() ([]CategoryWithCount, error)
	GetBySlug(slug string) (*models.Category, error)
	CountActiveProducts(categoryID uint) (int64, error)
	UpsertBySlug(category *models.Category) (*models.Category, error)
	WithTx(tx *gorm.DB) CategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// ListActiveWithCounts 启用分类列表（按名称升序），附带上架商品数
func (r *GormCategoryRepository) ListActiveWithCounts() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.is_active = ?", true).
		Where("categories.is_active = ?", true).
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBySlug 根据 slug 获取分类
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// CountActiveProducts 统计某分类下上架商品数
func (r *GormCategoryRepository) CountActiveProducts(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertBySlug 按 slug 插入或更新名称、描述与启用状态，返回落库后的记录
func (r *GormCategoryRepository) UpsertBySlug(category *models.Category) (*models.Category, error) {
	if category == nil {
		return nil, errors.New("category is required")
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = time.Now()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "is_active", "updated_at"}),
	}).Create(category).Error
	if err != nil {
		return nil, err
	}
	return r.GetBySlug(category.Slug)
}
