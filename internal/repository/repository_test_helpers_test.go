package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopsync/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
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

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string, active bool) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if !active {
		if err := db.Model(category).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate category failed: %v", err)
		}
	}
	return category
}

type testProductSeed struct {
	externalID int64
	title      string
	price      float64
	stock      int
	rating     float64
	brand      string
	tags       []string
	categoryID *uint
	inactive   bool
	createdAt  time.Time
}

func createTestProduct(t *testing.T, db *gorm.DB, seed testProductSeed) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:      seed.title,
		Price:      models.NewMoneyFromFloat(seed.price),
		Stock:      seed.stock,
		Rating:     seed.rating,
		Brand:      seed.brand,
		Tags:       models.StringArray(seed.tags),
		CategoryID: seed.categoryID,
		IsActive:   true,
		CreatedAt:  seed.createdAt,
	}
	if seed.externalID > 0 {
		externalID := seed.externalID
		product.ExternalID = &externalID
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if seed.inactive {
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func loadProductByExternalID(t *testing.T, db *gorm.DB, externalID int64) *models.Product {
	t.Helper()
	var product models.Product
	if err := db.Where("external_id = ?", externalID).First(&product).Error; err != nil {
		t.Fatalf("load product %d failed: %v", externalID, err)
	}
	return &product
}

func countProductRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	return count
}
