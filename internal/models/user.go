package models

import "time"

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                 // 主键
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`                    // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                                    // 密码哈希（不返回给前端）
	FirstName    string     `gorm:"type:varchar(50);not null" json:"first_name"`          // 名
	LastName     string     `gorm:"type:varchar(50);not null" json:"last_name"`           // 姓
	Phone        string     `gorm:"type:varchar(32)" json:"phone"`                        // 电话
	Address      string     `gorm:"type:text" json:"address"`                             // 地址
	Role         string     `gorm:"type:varchar(16);not null;default:'USER'" json:"role"` // 角色（USER/ADMIN）
	IsActive     bool       `gorm:"default:true" json:"is_active"`                        // 是否启用
	LastLoginAt  *time.Time `json:"last_login_at"`                                        // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
