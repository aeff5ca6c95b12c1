//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.CartItem{},
		&models.Cart{},
		&models.Product{},
		&models.Category{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Name: "Beauty", Slug: "beauty", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	repo := NewProductRepository(db)
	externalID := int64(1)
	product := &models.Product{
		ExternalID: &externalID,
		Title:      "Essence Mascara Lash Princess",
		Price:      models.NewMoneyFromFloat(9.99),
		Stock:      5,
		Brand:      "Essence",
		Tags:       models.StringArray{"beauty", "mascara"},
		CategoryID: &category.ID,
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	for _, search := range []string{"MASCARA", "lash", "Mascara"} {
		items, total, err := repo.List(ProductListFilter{
			Page:         1,
			PageSize:     10,
			Search:       search,
			CategorySlug: "BEAUTY",
			OnlyActive:   true,
			SortBy:       constants.ProductSortPrice,
			SortOrder:    constants.SortAsc,
		})
		if err != nil {
			t.Fatalf("list products %q failed: %v", search, err)
		}
		if total != 1 || len(items) != 1 || items[0].ID != product.ID {
			t.Fatalf("search %q want product %d got total=%d items=%+v", search, product.ID, total, items)
		}
	}
}

func TestPostgresUpsertByExternalIDKeepsRowID(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	externalID := int64(42)
	first := &models.Product{ExternalID: &externalID, Title: "Old", Price: models.NewMoneyFromFloat(10), Stock: 1, IsActive: true}
	if err := repo.UpsertByExternalID(first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second := &models.Product{ExternalID: &externalID, Title: "New", Price: models.NewMoneyFromFloat(12.5), Stock: 7, IsActive: true}
	if err := repo.UpsertByExternalID(second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if count := countProductRows(t, db); count != 1 {
		t.Fatalf("upsert should not duplicate rows, got %d", count)
	}
	stored := loadProductByExternalID(t, db, externalID)
	if stored.Title != "New" || stored.Price.String() != "12.50" || stored.Stock != 7 {
		t.Fatalf("unexpected stored product: %+v", stored)
	}
}
