package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopsync/internal/cache"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryService 分类服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryView 分类视图
type CategoryView struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListActive 获取启用分类（按名称升序，带上架商品数）
func (s *CategoryService) ListActive(ctx context.Context) ([]CategoryView, error) {
	var cached []CategoryView
	if hit, err := cache.GetActiveCategories(ctx, &cached); err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	} else if hit {
		return cached, nil
	}

	rows, err := s.repo.ListActiveWithCounts()
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, buildCategoryView(&row.Category, row.ProductCount))
	}

	if err := cache.SetActiveCategories(ctx, views); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return views, nil
}

// GetBySlug 根据 slug 获取启用分类
func (s *CategoryService) GetBySlug(slug string) (*CategoryView, error) {
	normalized := normalizeSlug(slug)
	if normalized == "" {
		return nil, ErrCategoryNotFound
	}
	category, err := s.repo.GetBySlug(normalized)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, ErrCategoryNotFound
	}
	count, err := s.repo.CountActiveProducts(category.ID)
	if err != nil {
		return nil, err
	}
	view := buildCategoryView(category, count)
	return &view, nil
}

// Upsert 按 slug 创建或更新分类，名称为空时由 slug 推导
func (s *CategoryService) Upsert(name, slug, description string) (*models.Category, error) {
	normalized := normalizeSlug(slug)
	if normalized == "" {
		return nil, fmt.Errorf("category slug is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = categoryNameFromSlug(normalized)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = fmt.Sprintf("%s products", name)
	}
	return s.repo.UpsertBySlug(&models.Category{
		Name:        name,
		Slug:        normalized,
		Description: description,
		IsActive:    true,
	})
}

// EnsureBySlug 获取分类，不存在时以 slug 推导的名称创建
func (s *CategoryService) EnsureBySlug(slug string) (*models.Category, error) {
	normalized := normalizeSlug(slug)
	if normalized == "" {
		return nil, nil
	}
	category, err := s.repo.GetBySlug(normalized)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}
	return s.Upsert("", normalized, "")
}

// InvalidateCache 清理分类列表缓存
func (s *CategoryService) InvalidateCache(ctx context.Context) {
	if err := cache.InvalidateActiveCategories(ctx); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}

func buildCategoryView(category *models.Category, productCount int64) CategoryView {
	return CategoryView{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		IsActive:     category.IsActive,
		ProductCount: productCount,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// categoryNameFromSlug mens-shirts -> Mens Shirts
func categoryNameFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(words, " "))
}
