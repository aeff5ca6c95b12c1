package models

import "time"

// Category 商品分类，由目录同步按 slug 维护
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`             // 展示名称
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"` // 唯一标识（小写）
	Description string    `gorm:"type:text" json:"description"`                       // 描述
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`                // 是否启用
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
