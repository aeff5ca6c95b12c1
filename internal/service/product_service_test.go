package service

import (
	"errors"
	"testing"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"

	"github.com/shopspring/decimal"
)

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestProductServiceListPagination(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))
	for i := 0; i < 25; i++ {
		createServiceTestProduct(t, db, "Item", float64(i+1), i)
	}

	products, page, err := svc.List(ProductQuery{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("expected 10 products, got %d", len(products))
	}
	want := ProductPagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: true}
	if page != want {
		t.Fatalf("unexpected pagination: %+v", page)
	}

	_, page, err = svc.List(ProductQuery{})
	if err != nil {
		t.Fatalf("default list failed: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 || page.HasPrev {
		t.Fatalf("unexpected default pagination: %+v", page)
	}

	products, page, err = svc.List(ProductQuery{InStock: true, SortBy: "price", SortOrder: "ASC", Limit: 100})
	if err != nil {
		t.Fatalf("in stock list failed: %v", err)
	}
	if page.Total != 24 || products[0].Price.String() != "2.00" {
		t.Fatalf("unexpected in-stock result: total=%d first=%s", page.Total, products[0].Price.String())
	}
}

func TestProductServiceRejectsInvalidQuery(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))

	cases := []ProductQuery{
		{SortBy: "popularity"},
		{SortOrder: "sideways"},
		{MinPrice: decimalPtr("50"), MaxPrice: decimalPtr("10")},
		{MinPrice: decimalPtr("-1")},
	}
	for _, query := range cases {
		if _, _, err := svc.List(query); !errors.Is(err, ErrInvalidProductQuery) {
			t.Fatalf("query %+v expected ErrInvalidProductQuery, got %v", query, err)
		}
	}
}

func TestBuildProductListFilterAcceptsCamelCaseCreatedAt(t *testing.T) {
	for _, sortBy := range []string{"createdAt", "created_at", " CREATEDAT "} {
		filter, err := buildProductListFilter(ProductQuery{SortBy: sortBy})
		if err != nil {
			t.Fatalf("sort_by %q should be accepted: %v", sortBy, err)
		}
		if filter.SortBy != constants.ProductSortCreatedAt {
			t.Fatalf("sort_by %q want %s got %s", sortBy, constants.ProductSortCreatedAt, filter.SortBy)
		}
	}
}

func TestProductServiceGetByIDOnlyActive(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))
	active := createServiceTestProduct(t, db, "Active", 10, 1)
	inactive := createServiceTestProduct(t, db, "Inactive", 10, 1)
	if err := db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	product, err := svc.GetByID(active.ID)
	if err != nil || product.Title != "Active" {
		t.Fatalf("get active failed: %+v %v", product, err)
	}
	if _, err := svc.GetByID(inactive.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product should be hidden, got %v", err)
	}
	if _, err := svc.GetByID(0); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("zero id should be not found, got %v", err)
	}
}
