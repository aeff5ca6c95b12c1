package models

import "time"

// Cart 用户购物车，每个用户至多一个
type Cart struct {
	ID        uint       `gorm:"primarykey" json:"id"`                     // 主键
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user_id"`      // 用户ID
	CreatedAt time.Time  `json:"created_at"`                               // 创建时间
	UpdatedAt time.Time  `json:"updated_at"`                               // 更新时间
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
