package service

import "errors"

// 通用错误
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUpstream         = errors.New("upstream catalog unavailable")
	ErrQueueUnavailable = errors.New("task queue unavailable")
)

// 认证相关错误
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
	ErrInvalidToken       = errors.New("invalid token")
)

// 购物车相关错误
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

// 商品与分类相关错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidProductQuery = errors.New("invalid product query")
)

// 同步相关错误
var (
	ErrSyncInProgress = errors.New("sync already in progress")
)
