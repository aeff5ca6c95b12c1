package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Dimensions 商品尺寸
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Value 实现 driver.Valuer 接口
func (d Dimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan 实现 sql.Scanner 接口
func (d *Dimensions) Scan(value interface{}) error {
	return scanJSONStruct(value, d)
}

// ProductReview 外部目录带来的评价
type ProductReview struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
	ReviewerName  string `json:"reviewer_name"`
	ReviewerEmail string `json:"reviewer_email"`
}

// ProductMetadata 外部目录的扩展信息，键名固定
type ProductMetadata struct {
	WarrantyInformation  string          `json:"warranty_information,omitempty"`
	ShippingInformation  string          `json:"shipping_information,omitempty"`
	AvailabilityStatus   string          `json:"availability_status,omitempty"`
	ReturnPolicy         string          `json:"return_policy,omitempty"`
	MinimumOrderQuantity int             `json:"minimum_order_quantity,omitempty"`
	Reviews              []ProductReview `json:"reviews,omitempty"`
	Barcode              string          `json:"barcode,omitempty"`
	QRCode               string          `json:"qr_code,omitempty"`
}

// Value 实现 driver.Valuer 接口
func (m ProductMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner 接口
func (m *ProductMetadata) Scan(value interface{}) error {
	return scanJSONStruct(value, m)
}

// Product 商品表
type Product struct {
	ID                 uint            `gorm:"primarykey" json:"id"`                               // 主键
	ExternalID         *int64          `gorm:"uniqueIndex" json:"external_id"`                     // 外部目录 ID（同步幂等键）
	Title              string          `gorm:"type:varchar(255);not null;index" json:"title"`      // 标题
	Description        string          `gorm:"type:text" json:"description"`                       // 描述
	Price              Money           `gorm:"type:decimal(12,2);not null;default:0" json:"price"` // 价格
	DiscountPercentage float64         `gorm:"not null;default:0" json:"discount_percentage"`      // 折扣百分比
	Rating             float64         `gorm:"not null;default:0" json:"rating"`                   // 评分
	Stock              int             `gorm:"not null;default:0" json:"stock"`                    // 库存
	Brand              string          `gorm:"type:varchar(120);index" json:"brand"`               // 品牌
	SKU                string          `gorm:"column:sku;type:varchar(120)" json:"sku"`            // SKU
	Weight             float64         `gorm:"not null;default:0" json:"weight"`                   // 重量
	Dimensions         Dimensions      `gorm:"type:json" json:"dimensions"`                        // 尺寸
	Metadata           ProductMetadata `gorm:"type:json" json:"metadata"`                          // 扩展信息
	Images             StringArray     `gorm:"type:json" json:"images"`                            // 图片数组
	Thumbnail          string          `gorm:"type:varchar(500)" json:"thumbnail"`                 // 缩略图
	Tags               StringArray     `gorm:"type:json" json:"tags"`                              // 标签数组
	CategoryID         *uint           `gorm:"index" json:"category_id"`                           // 分类ID
	IsActive           bool            `gorm:"default:true;index" json:"is_active"`                // 是否上架
	LastSyncAt         *time.Time      `json:"last_sync_at"`                                       // 最后同步时间
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt          time.Time       `json:"updated_at"`                                         // 更新时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
