package models

import (
	"strings"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@shopsync.local"
	defaultAdminPassword = "Admin12345"
)

// InitDefaultAdmin 初始化默认管理员账号（角色 ADMIN，附带购物车）
func InitDefaultAdmin(email, password string, cost int) error {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", constants.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = defaultAdminEmail
	}
	if password == "" {
		password = defaultAdminPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}

	admin := User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "ShopSync",
		Role:         constants.UserRoleAdmin,
		IsActive:     true,
	}
	err = DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&Cart{UserID: admin.ID}).Error
	})
	if err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
