package service

import (
	"strings"
	"time"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/repository"
)

// SystemLogService 审计日志服务
type SystemLogService struct {
	repo repository.SystemLogRepository
}

// NewSystemLogService 创建审计日志服务
func NewSystemLogService(repo repository.SystemLogRepository) *SystemLogService {
	return &SystemLogService{repo: repo}
}

// Record 写入审计日志，失败只记录不返回
func (s *SystemLogService) Record(level, message, context string, metadata models.JSON) {
	entry := &models.SystemLog{
		Level:    normalizeLogLevel(level),
		Message:  message,
		Context:  context,
		Metadata: metadata,
	}
	if err := s.repo.Create(entry); err != nil {
		logger.Errorw("system_log_write_failed",
			"level", entry.Level,
			"context", context,
			"message", message,
			"error", err,
		)
	}
}

// List 分页查询审计日志
func (s *SystemLogService) List(filter repository.SystemLogListFilter) ([]models.SystemLog, int64, error) {
	return s.repo.List(filter)
}

// PurgeBefore 删除 cutoff 之前的日志
func (s *SystemLogService) PurgeBefore(cutoff time.Time) (int64, error) {
	return s.repo.DeleteBefore(cutoff)
}

func normalizeLogLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case constants.LogLevelWarn:
		return constants.LogLevelWarn
	case constants.LogLevelError:
		return constants.LogLevelError
	default:
		return constants.LogLevelInfo
	}
}
