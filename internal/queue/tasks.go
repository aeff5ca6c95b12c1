package queue

import (
	"encoding/json"
	"time"

	"github.com/shopsync/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogSync 商品目录同步任务
	TaskCatalogSync = constants.TaskCatalogSync
	// TaskSystemLogCleanup 审计日志清理任务
	TaskSystemLogCleanup = constants.TaskSystemLogCleanup
)

// CatalogSyncPayload 商品同步任务载荷
type CatalogSyncPayload struct {
	Trigger     string    `json:"trigger"`
	RequestedBy uint      `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// SystemLogCleanupPayload 审计日志清理任务载荷
type SystemLogCleanupPayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewCatalogSyncTask 创建商品同步任务
func NewCatalogSyncTask(payload CatalogSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogSync, body), nil
}

// NewSystemLogCleanupTask 创建审计日志清理任务
func NewSystemLogCleanupTask(payload SystemLogCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSystemLogCleanup, body), nil
}
