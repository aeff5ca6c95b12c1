package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopsync/internal/catalog"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/metrics"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"
	"github.com/shopsync/internal/scheduler"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// DefaultSyncBatchSize 每次向外部目录请求的商品数
const DefaultSyncBatchSize = 30

var errInvalidCatalogProduct = errors.New("invalid catalog product")

// CatalogSource 外部商品目录
type CatalogSource interface {
	ListProducts(ctx context.Context, limit, skip int) (*catalog.ProductPage, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

// SyncResult 一次同步的汇总
type SyncResult struct {
	RunID        string    `json:"run_id"`
	Synchronized int       `json:"synchronized"`
	Errors       int       `json:"errors"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Duration 同步耗时
func (r SyncResult) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// SyncOption 同步服务可选项
type SyncOption func(*SyncService)

// WithSyncLock 额外使用跨实例锁
func WithSyncLock(lock scheduler.Lock) SyncOption {
	return func(s *SyncService) {
		s.lock = lock
	}
}

// WithSyncMetrics 上报同步指标
func WithSyncMetrics(m *metrics.SyncMetrics) SyncOption {
	return func(s *SyncService) {
		s.metrics = m
	}
}

// WithSyncClock 替换时间来源
func WithSyncClock(now func() time.Time) SyncOption {
	return func(s *SyncService) {
		if now != nil {
			s.now = now
		}
	}
}

// SyncService 外部目录同步编排，同一进程内同一时刻只允许一次同步
type SyncService struct {
	source          CatalogSource
	productRepo     repository.ProductRepository
	categoryService *CategoryService
	batchSize       int

	lock    scheduler.Lock
	metrics *metrics.SyncMetrics
	now     func() time.Time

	running atomic.Bool
}

// NewSyncService 创建同步服务
func NewSyncService(source CatalogSource, productRepo repository.ProductRepository, categoryService *CategoryService, batchSize int, opts ...SyncOption) *SyncService {
	if batchSize <= 0 {
		batchSize = DefaultSyncBatchSize
	}
	s := &SyncService{
		source:          source,
		productRepo:     productRepo,
		categoryService: categoryService,
		batchSize:       batchSize,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Running 是否有同步正在执行
func (s *SyncService) Running() bool {
	return s.running.Load()
}

// SyncAll 同步全部分类与商品
// 已有同步在执行时立即返回 ErrSyncInProgress；单个商品失败只计数，不中断本次同步
func (s *SyncService) SyncAll(ctx context.Context) (SyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.IncSkipped()
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	// 已开始的同步不随调用方取消而中断
	ctx = context.WithoutCancel(ctx)

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		switch {
		case err != nil:
			logger.Warnw("sync_lock_unavailable", "error", err)
		case !acquired:
			s.metrics.IncSkipped()
			logger.Infow("sync_lock_held_elsewhere")
			return SyncResult{}, ErrSyncInProgress
		default:
			defer func() {
				if err := s.lock.Release(ctx); err != nil {
					logger.Warnw("sync_lock_release_failed", "error", err)
				}
			}()
		}
	}

	s.metrics.SetRunning(true)
	defer s.metrics.SetRunning(false)

	result := SyncResult{
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
	}
	logger.Infow("sync_run_started", "run_id", result.RunID, "batch_size", s.batchSize)

	err := s.run(ctx, &result)
	result.FinishedAt = s.now()
	s.categoryService.InvalidateCache(ctx)

	if err != nil {
		s.metrics.ObserveRun(metrics.SyncStatusFailed, result.Synchronized, result.Errors, result.Duration())
		logger.Errorw("sync_run_failed",
			"run_id", result.RunID,
			"synchronized", result.Synchronized,
			"errors", result.Errors,
			"duration_ms", result.Duration().Milliseconds(),
			"error", err,
		)
		return result, err
	}

	s.metrics.ObserveRun(metrics.SyncStatusSuccess, result.Synchronized, result.Errors, result.Duration())
	logger.Infow("sync_run_finished",
		"run_id", result.RunID,
		"synchronized", result.Synchronized,
		"errors", result.Errors,
		"duration_ms", result.Duration().Milliseconds(),
	)
	return result, nil
}

func (s *SyncService) run(ctx context.Context, result *SyncResult) error {
	categoryIDs, err := s.syncCategories(ctx)
	if err != nil {
		return err
	}

	var itemErrs error
	skip := 0
	for {
		page, err := s.source.ListProducts(ctx, s.batchSize, skip)
		if err != nil {
			s.logItemErrors(result.RunID, itemErrs)
			return fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if page == nil || len(page.Products) == 0 {
			break
		}

		for _, item := range page.Products {
			if err := s.syncProduct(item, categoryIDs); err != nil {
				result.Errors++
				itemErrs = multierr.Append(itemErrs, fmt.Errorf("product %d: %w", item.ID, err))
				logger.Warnw("sync_product_failed",
					"run_id", result.RunID,
					"external_id", item.ID,
					"error", err,
				)
				continue
			}
			result.Synchronized++
		}
		logger.Debugw("sync_page_processed",
			"run_id", result.RunID,
			"skip", skip,
			"count", len(page.Products),
			"total", page.Total,
		)

		if len(page.Products) < s.batchSize {
			break
		}
		skip += s.batchSize
	}

	s.logItemErrors(result.RunID, itemErrs)
	return nil
}

// syncCategories 同步分类，返回 slug -> ID 映射
func (s *SyncService) syncCategories(ctx context.Context) (map[string]uint, error) {
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	ids := make(map[string]uint, len(categories))
	for _, item := range categories {
		slug := normalizeSlug(item.Slug)
		if slug == "" {
			continue
		}
		category, err := s.categoryService.Upsert(item.Name, slug, "")
		if err != nil {
			return nil, fmt.Errorf("upsert category %s: %w", slug, err)
		}
		if category != nil {
			ids[slug] = category.ID
		}
	}
	logger.Infow("sync_categories_upserted", "count", len(ids))
	return ids, nil
}

func (s *SyncService) syncProduct(item catalog.Product, categoryIDs map[string]uint) error {
	if err := validateCatalogProduct(item); err != nil {
		return err
	}

	slug := normalizeSlug(item.Category)
	categoryID, ok := categoryIDs[slug]
	if !ok {
		category, err := s.categoryService.EnsureBySlug(slug)
		if err != nil {
			return fmt.Errorf("resolve category %s: %w", slug, err)
		}
		if category == nil {
			return fmt.Errorf("resolve category %s: %w", slug, ErrCategoryNotFound)
		}
		categoryID = category.ID
		categoryIDs[slug] = categoryID
	}

	return s.productRepo.UpsertByExternalID(buildSyncedProduct(item, &categoryID, s.now()))
}

func (s *SyncService) logItemErrors(runID string, errs error) {
	if errs == nil {
		return
	}
	failures := multierr.Errors(errs)
	logger.Warnw("sync_product_failures",
		"run_id", runID,
		"count", len(failures),
		"error", errs,
	)
}

func validateCatalogProduct(item catalog.Product) error {
	switch {
	case item.ID <= 0:
		return fmt.Errorf("%w: missing id", errInvalidCatalogProduct)
	case strings.TrimSpace(item.Title) == "":
		return fmt.Errorf("%w: missing title", errInvalidCatalogProduct)
	case item.Price < 0:
		return fmt.Errorf("%w: negative price", errInvalidCatalogProduct)
	case item.Stock < 0:
		return fmt.Errorf("%w: negative stock", errInvalidCatalogProduct)
	case normalizeSlug(item.Category) == "":
		return fmt.Errorf("%w: missing category", errInvalidCatalogProduct)
	}
	return nil
}

func buildSyncedProduct(item catalog.Product, categoryID *uint, syncedAt time.Time) *models.Product {
	externalID := item.ID
	reviews := make([]models.ProductReview, 0, len(item.Reviews))
	for _, review := range item.Reviews {
		reviews = append(reviews, models.ProductReview{
			Rating:        review.Rating,
			Comment:       review.Comment,
			Date:          review.Date,
			ReviewerName:  review.ReviewerName,
			ReviewerEmail: review.ReviewerEmail,
		})
	}
	return &models.Product{
		ExternalID:         &externalID,
		Title:              strings.TrimSpace(item.Title),
		Description:        item.Description,
		Price:              models.NewMoneyFromFloat(item.Price),
		DiscountPercentage: item.DiscountPercentage,
		Rating:             item.Rating,
		Stock:              item.Stock,
		Brand:              item.Brand,
		SKU:                item.SKU,
		Weight:             item.Weight,
		Dimensions: models.Dimensions{
			Width:  item.Dimensions.Width,
			Height: item.Dimensions.Height,
			Depth:  item.Dimensions.Depth,
		},
		Metadata: models.ProductMetadata{
			WarrantyInformation:  item.WarrantyInformation,
			ShippingInformation:  item.ShippingInformation,
			AvailabilityStatus:   item.AvailabilityStatus,
			ReturnPolicy:         item.ReturnPolicy,
			MinimumOrderQuantity: item.MinimumOrderQuantity,
			Reviews:              reviews,
			Barcode:              item.Meta.Barcode,
			QRCode:               item.Meta.QRCode,
		},
		Images:     models.StringArray(item.Images),
		Thumbnail:  item.Thumbnail,
		Tags:       models.StringArray(item.Tags),
		CategoryID: categoryID,
		IsActive:   true,
		LastSyncAt: &syncedAt,
		UpdatedAt:  syncedAt,
	}
}
