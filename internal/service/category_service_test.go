package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"
)

func TestCategoryServiceListActiveWithCounts(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	beauty, err := svc.Upsert("Beauty", "beauty", "")
	if err != nil {
		t.Fatalf("upsert beauty failed: %v", err)
	}
	if _, err := svc.Upsert("", "home-decoration", ""); err != nil {
		t.Fatalf("upsert home failed: %v", err)
	}
	hidden, err := svc.Upsert("Hidden", "hidden", "")
	if err != nil {
		t.Fatalf("upsert hidden failed: %v", err)
	}
	if err := db.Model(&models.Category{}).Where("id = ?", hidden.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	product := createServiceTestProduct(t, db, "Lipstick", 9.99, 3)
	if err := db.Model(product).Update("category_id", beauty.ID).Error; err != nil {
		t.Fatalf("assign category failed: %v", err)
	}

	views, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 active categories, got %d", len(views))
	}
	if views[0].Slug != "beauty" || views[0].ProductCount != 1 {
		t.Fatalf("unexpected first category: %+v", views[0])
	}
	if views[1].Name != "Home Decoration" || views[1].Description != "Home Decoration products" || views[1].ProductCount != 0 {
		t.Fatalf("unexpected derived category: %+v", views[1])
	}
}

func TestCategoryServiceGetBySlug(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	if _, err := svc.Upsert("Laptops", "laptops", "Portable computers"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	view, err := svc.GetBySlug("  LAPTOPS ")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if view.Name != "Laptops" || view.Description != "Portable computers" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.GetBySlug(" "); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for blank slug, got %v", err)
	}
}

func TestCategoryUpsertKeepsIdentity(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	first, err := svc.Upsert("Old Name", "tablets", "")
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second, err := svc.Upsert("Tablets", "tablets", "")
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if first.ID != second.ID || second.Name != "Tablets" {
		t.Fatalf("upsert should update in place: first=%+v second=%+v", first, second)
	}
}

func TestCategoryNameFromSlug(t *testing.T) {
	cases := map[string]string{
		"mens-shirts":      "Mens Shirts",
		"skin-care":        "Skin Care",
		"laptops":          "Laptops",
		"mobile_accessory": "Mobile Accessory",
	}
	for slug, want := range cases {
		if got := categoryNameFromSlug(slug); got != want {
			t.Fatalf("slug %s want %s got %s", slug, want, got)
		}
	}
}
