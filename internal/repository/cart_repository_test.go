package repository

import (
	"testing"
	"time"

	"github.com/shopsync/internal/models"
)

func TestCartItemsOrderedByAddedAtDesc(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	first := createTestProduct(t, db, testProductSeed{title: "First", price: 1, stock: 5})
	second := createTestProduct(t, db, testProductSeed{title: "Second", price: 2, stock: 5})

	cart, err := repo.GetOrCreateByUser(7)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	again, err := repo.GetOrCreateByUser(7)
	if err != nil || again.ID != cart.ID {
		t.Fatalf("get or create should reuse cart, got=%v err=%v", again, err)
	}

	base := time.Now().Add(-time.Hour)
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: first.ID, Quantity: 1, UnitPrice: first.Price, CreatedAt: base}); err != nil {
		t.Fatalf("create first item failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: second.ID, Quantity: 2, UnitPrice: second.Price, CreatedAt: base.Add(time.Minute)}); err != nil {
		t.Fatalf("create second item failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != second.ID {
		t.Fatalf("latest item should be first: %+v", items)
	}
	if items[0].Product == nil || items[0].Product.Title != "Second" {
		t.Fatalf("product should be preloaded: %+v", items[0].Product)
	}
}

func TestCartItemOwnershipAndClear(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	product := createTestProduct(t, db, testProductSeed{title: "P", price: 3, stock: 5})

	mine, _ := repo.GetOrCreateByUser(1)
	theirs, _ := repo.GetOrCreateByUser(2)
	item := &models.CartItem{CartID: theirs.ID, ProductID: product.ID, Quantity: 1, UnitPrice: product.Price}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	got, err := repo.GetItemByID(mine.ID, item.ID)
	if err != nil || got != nil {
		t.Fatalf("foreign item must not be visible, got=%v err=%v", got, err)
	}
	affected, err := repo.DeleteItem(mine.ID, item.ID)
	if err != nil || affected != 0 {
		t.Fatalf("foreign item must not be deleted, affected=%d err=%v", affected, err)
	}

	item.Quantity = 4
	item.UnitPrice = models.NewMoneyFromFloat(3.5)
	if err := repo.UpdateItem(item); err != nil {
		t.Fatalf("update item failed: %v", err)
	}
	reloaded, err := repo.GetItemByProduct(theirs.ID, product.ID)
	if err != nil || reloaded == nil || reloaded.Quantity != 4 || reloaded.UnitPrice.String() != "3.50" {
		t.Fatalf("unexpected reloaded item: %+v err=%v", reloaded, err)
	}

	removed, err := repo.ClearItems(theirs.ID)
	if err != nil || removed != 1 {
		t.Fatalf("clear items failed: removed=%d err=%v", removed, err)
	}
	if cart, _ := repo.GetByUser(2); cart == nil {
		t.Fatalf("cart row should persist after clear")
	}
}
