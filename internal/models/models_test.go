package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopsync/internal/constants"
)

func setupModelsTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := OpenDB("sqlite", dsn, "silent")
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	DB = db
}

func TestMoneyMulQuantityKeepsTwoDecimals(t *testing.T) {
	price := NewMoneyFromFloat(19.999)
	if price.String() != "20.00" {
		t.Fatalf("unexpected rounding: %s", price.String())
	}
	total := NewMoneyFromFloat(9.99).MulQuantity(3)
	if total.String() != "29.97" {
		t.Fatalf("unexpected line total: %s", total.String())
	}
}

func TestStringArrayScanAcceptsTextColumn(t *testing.T) {
	var tags StringArray
	if err := tags.Scan(`["beauty","mascara"]`); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if len(tags) != 2 || tags[1] != "mascara" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	if err := tags.Scan(nil); err != nil || len(tags) != 0 {
		t.Fatalf("nil scan should reset tags, got %v err=%v", tags, err)
	}
}

func TestProductMetadataPersists(t *testing.T) {
	setupModelsTestDB(t)
	externalID := int64(7)
	product := Product{
		ExternalID: &externalID,
		Title:      "Essence Mascara",
		Price:      NewMoneyFromFloat(9.99),
		Stock:      5,
		Dimensions: Dimensions{Width: 1.5, Height: 2, Depth: 3},
		Metadata: ProductMetadata{
			WarrantyInformation: "1 month",
			Reviews:             []ProductReview{{Rating: 5, Comment: "great", ReviewerName: "Ana"}},
		},
		IsActive: true,
	}
	if err := DB.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	var loaded Product
	if err := DB.First(&loaded, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if loaded.Dimensions.Depth != 3 || loaded.Metadata.WarrantyInformation != "1 month" {
		t.Fatalf("json columns not restored: %+v %+v", loaded.Dimensions, loaded.Metadata)
	}
	if len(loaded.Metadata.Reviews) != 1 || loaded.Metadata.Reviews[0].ReviewerName != "Ana" {
		t.Fatalf("reviews not restored: %+v", loaded.Metadata.Reviews)
	}
	if loaded.Price.String() != "9.99" {
		t.Fatalf("unexpected price: %s", loaded.Price.String())
	}
}

func TestInitDefaultAdminCreatesAdminWithCartOnce(t *testing.T) {
	setupModelsTestDB(t)
	if err := InitDefaultAdmin(" Root@Example.com ", "Secret123", 4); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}
	if err := InitDefaultAdmin("other@example.com", "Secret123", 4); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	var admins []User
	if err := DB.Where("role = ?", constants.UserRoleAdmin).Find(&admins).Error; err != nil {
		t.Fatalf("query admins failed: %v", err)
	}
	if len(admins) != 1 || admins[0].Email != "root@example.com" {
		t.Fatalf("expected exactly one normalized admin, got %+v", admins)
	}
	var carts int64
	DB.Model(&Cart{}).Where("user_id = ?", admins[0].ID).Count(&carts)
	if carts != 1 {
		t.Fatalf("admin cart missing, count=%d", carts)
	}
}
