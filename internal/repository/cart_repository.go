package repository

import (
	"errors"
	"time"

	"github.com/shopsync/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	CreateCart(cart *models.Cart) error
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItemByProduct(cartID, productID uint) (*models.CartItem, error)
	GetItemByID(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(cartID, itemID uint) (int64, error)
	ClearItems(cartID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByUser 获取用户购物车
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取用户购物车，不存在时创建
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart 创建购物车
func (r *GormCartRepository) CreateCart(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// ListItems 获取购物车项（按加入时间倒序，附带商品与分类）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Category").
		Where("cart_id = ?", cartID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemByProduct 按商品查找购物车项
func (r *GormCartRepository) GetItemByProduct(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByID 查找属于该购物车的购物车项
func (r *GormCartRepository) GetItemByID(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Omit("Product").Create(item).Error
}

// UpdateItem 更新数量与单价快照
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	item.UpdatedAt = time.Now()
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"unit_price": item.UnitPrice,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(updates).Error
}

// DeleteItem 删除购物车项，返回影响行数
func (r *GormCartRepository) DeleteItem(cartID, itemID uint) (int64, error) {
	result := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearItems 清空购物车项，返回删除数量
func (r *GormCartRepository) ClearItems(cartID uint) (int64, error) {
	result := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
