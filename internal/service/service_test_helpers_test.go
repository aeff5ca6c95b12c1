package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopsync/internal/catalog"
	"github.com/shopsync/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createServiceTestProduct(t *testing.T, db *gorm.DB, title string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:    title,
		Price:    models.NewMoneyFromFloat(price),
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

var errFakeUpstream = errors.New("fake upstream down")

// fakeCatalogSource 按 skip/limit 切片返回商品，并记录每次请求的 skip
type fakeCatalogSource struct {
	mu            sync.Mutex
	categories    []catalog.Category
	products      []catalog.Product
	categoriesErr error
	failAtSkip    int
	skips         []int

	// gate 不为 nil 时 ListCategories 会先通知 entered 再阻塞等待
	entered chan struct{}
	gate    chan struct{}
}

func newFakeCatalogSource(products []catalog.Product, categories ...catalog.Category) *fakeCatalogSource {
	return &fakeCatalogSource{
		categories: categories,
		products:   products,
		failAtSkip: -1,
	}
}

func (f *fakeCatalogSource) ListCategories(_ context.Context) ([]catalog.Category, error) {
	if f.gate != nil {
		close(f.entered)
		<-f.gate
	}
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeCatalogSource) ListProducts(_ context.Context, limit, skip int) (*catalog.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skips = append(f.skips, skip)
	if f.failAtSkip >= 0 && skip == f.failAtSkip {
		return nil, fmt.Errorf("%w: %w", catalog.ErrFetch, errFakeUpstream)
	}
	page := &catalog.ProductPage{Total: len(f.products), Skip: skip, Limit: limit}
	if skip >= len(f.products) {
		return page, nil
	}
	end := skip + limit
	if end > len(f.products) {
		end = len(f.products)
	}
	page.Products = append([]catalog.Product(nil), f.products[skip:end]...)
	return page, nil
}

func (f *fakeCatalogSource) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.skips...)
}

func generateCatalogProducts(count int, categorySlug string) []catalog.Product {
	products := make([]catalog.Product, 0, count)
	for i := 1; i <= count; i++ {
		products = append(products, catalog.Product{
			ID:       int64(i),
			Title:    fmt.Sprintf("Product %d", i),
			Category: categorySlug,
			Price:    float64(i) + 0.99,
			Stock:    10,
			Tags:     []string{"synced"},
		})
	}
	return products
}
