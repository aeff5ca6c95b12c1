package repository

import (
	"strings"
	"time"

	"github.com/shopsync/internal/models"

	"gorm.io/gorm"
)

// SystemLogRepository 系统日志数据访问接口
type SystemLogRepository interface {
	Create(entry *models.SystemLog) error
	List(filter SystemLogListFilter) ([]models.SystemLog, int64, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

// GormSystemLogRepository GORM 实现
type GormSystemLogRepository struct {
	db *gorm.DB
}

// NewSystemLogRepository 创建系统日志仓库
func NewSystemLogRepository(db *gorm.DB) *GormSystemLogRepository {
	return &GormSystemLogRepository{db: db}
}

// Create 写入系统日志
func (r *GormSystemLogRepository) Create(entry *models.SystemLog) error {
	return r.db.Create(entry).Error
}

// List 系统日志列表（按时间倒序）
func (r *GormSystemLogRepository) List(filter SystemLogListFilter) ([]models.SystemLog, int64, error) {
	query := r.db.Model(&models.SystemLog{})
	if level := strings.ToUpper(strings.TrimSpace(filter.Level)); level != "" {
		query = query.Where("level = ?", level)
	}
	if logContext := strings.TrimSpace(filter.Context); logContext != "" {
		query = query.Where("context = ?", logContext)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var logs []models.SystemLog
	if err := query.Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// DeleteBefore 删除早于 cutoff 的日志，返回删除数量
func (r *GormSystemLogRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
