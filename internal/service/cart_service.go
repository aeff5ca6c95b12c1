package service

import (
	"time"

	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartCategoryView 购物车商品分类摘要
type CartCategoryView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CartProductView 购物车商品展示数据
type CartProductView struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	Thumbnail string            `json:"thumbnail"`
	Stock     int               `json:"stock"`
	Price     models.Money      `json:"price"`
	Category  *CartCategoryView `json:"category"`
}

// CartItemView 购物车项
type CartItemView struct {
	ID         uint            `json:"id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  models.Money    `json:"unit_price"`
	TotalPrice models.Money    `json:"total_price"`
	AddedAt    time.Time       `json:"added_at"`
	Product    CartProductView `json:"product"`
}

// CartView 购物车视图
type CartView struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"user_id"`
	Items       []CartItemView `json:"items"`
	TotalItems  int            `json:"total_items"`
	TotalAmount models.Money   `json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ClearCartResult 清空购物车结果
type ClearCartResult struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}

// GetCart 获取用户购物车
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return s.buildView(cart)
}

// AddItem 加入购物车，已存在的商品数量累加
func (s *CartService) AddItem(userID, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID, true)
	if err != nil {
		logger.Errorw("cart_item_add_failed", "user_id", userID, "product_id", productID, "error", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	var resultQuantity int
	var cart *models.Cart
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		current, err := repo.GetOrCreateByUser(userID)
		if err != nil {
			return err
		}
		cart = current

		existing, err := repo.GetItemByProduct(cart.ID, product.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			if quantity > product.Stock {
				return ErrInsufficientStock
			}
			resultQuantity = quantity
			return repo.CreateItem(&models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: product.Price,
			})
		}

		if existing.Quantity+quantity > product.Stock {
			return ErrInsufficientStock
		}
		existing.Quantity += quantity
		existing.UnitPrice = product.Price
		resultQuantity = existing.Quantity
		return repo.UpdateItem(existing)
	})
	if err != nil {
		logger.Warnw("cart_item_add_failed",
			"user_id", userID,
			"product_id", productID,
			"quantity", quantity,
			"stock", product.Stock,
			"error", err,
		)
		return nil, err
	}

	logger.Infow("cart_item_added",
		"user_id", userID,
		"product_id", productID,
		"quantity", resultQuantity,
	)
	return s.buildView(cart)
}

// UpdateItem 修改购物车项数量并刷新单价快照
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, item, err := s.loadOwnedItem(userID, itemID)
	if err != nil {
		logger.Warnw("cart_item_update_failed", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	product, err := s.productRepo.GetByID(item.ProductID, false)
	if err != nil {
		logger.Errorw("cart_item_update_failed", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity > product.Stock {
		logger.Warnw("cart_item_update_failed",
			"user_id", userID,
			"item_id", itemID,
			"quantity", quantity,
			"stock", product.Stock,
			"error", ErrInsufficientStock,
		)
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	item.UnitPrice = product.Price
	if err := s.cartRepo.UpdateItem(item); err != nil {
		logger.Errorw("cart_item_update_failed", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	logger.Infow("cart_item_updated",
		"user_id", userID,
		"item_id", itemID,
		"product_id", item.ProductID,
		"quantity", quantity,
	)
	return s.buildView(cart)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	cart, item, err := s.loadOwnedItem(userID, itemID)
	if err != nil {
		logger.Warnw("cart_item_remove_failed", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	affected, err := s.cartRepo.DeleteItem(cart.ID, item.ID)
	if err != nil {
		logger.Errorw("cart_item_remove_failed", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	logger.Infow("cart_item_removed",
		"user_id", userID,
		"item_id", itemID,
		"product_id", item.ProductID,
	)
	return s.buildView(cart)
}

// ClearCart 清空购物车，购物车本身保留
func (s *CartService) ClearCart(userID uint) (*ClearCartResult, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		logger.Errorw("cart_clear_failed", "user_id", userID, "error", err)
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	removed, err := s.cartRepo.ClearItems(cart.ID)
	if err != nil {
		logger.Errorw("cart_clear_failed", "user_id", userID, "cart_id", cart.ID, "error", err)
		return nil, err
	}
	logger.Infow("cart_cleared", "user_id", userID, "cart_id", cart.ID, "removed", removed)
	return &ClearCartResult{
		Message: "cart cleared",
		Removed: removed,
	}, nil
}

func (s *CartService) loadOwnedItem(userID, itemID uint) (*models.Cart, *models.CartItem, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}

func (s *CartService) buildView(cart *models.Cart) (*CartView, error) {
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	view := &CartView{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       make([]CartItemView, 0, len(items)),
		TotalAmount: models.Money{},
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
	for _, item := range items {
		line := item.UnitPrice.MulQuantity(item.Quantity)
		view.Items = append(view.Items, CartItemView{
			ID:         item.ID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: line,
			AddedAt:    item.CreatedAt,
			Product:    buildCartProductView(item),
		})
		view.TotalItems += item.Quantity
		view.TotalAmount = view.TotalAmount.Add(line)
	}
	return view, nil
}

func buildCartProductView(item models.CartItem) CartProductView {
	product := item.Product
	if product == nil {
		return CartProductView{ID: item.ProductID}
	}
	view := CartProductView{
		ID:        product.ID,
		Title:     product.Title,
		Thumbnail: product.Thumbnail,
		Stock:     product.Stock,
		Price:     product.Price,
	}
	if product.Category != nil {
		view.Category = &CartCategoryView{
			ID:   product.Category.ID,
			Name: product.Category.Name,
			Slug: product.Category.Slug,
		}
	}
	return view
}
