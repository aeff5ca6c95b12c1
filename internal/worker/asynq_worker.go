package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/provider"
	"github.com/shopsync/internal/queue"

	"github.com/hibiken/asynq"
)

var errTaskServiceMissing = errors.New("task service not initialized")

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCatalogSync, c.handleCatalogSync)
	mux.HandleFunc(queue.TaskSystemLogCleanup, c.handleSystemLogCleanup)
}

func (c *Consumer) handleCatalogSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_catalog_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CatalogSyncPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Warnw("worker_catalog_sync_unmarshal_failed", "error", err)
			return err
		}
	}
	if c.Container == nil || c.TaskService == nil {
		logger.Warnw("worker_catalog_sync_skip_no_service")
		return errTaskServiceMissing
	}
	if err := c.TaskService.RunQueuedSync(ctx, payload); err != nil {
		logger.Warnw("worker_catalog_sync_failed",
			"trigger", payload.Trigger,
			"requested_by", payload.RequestedBy,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleSystemLogCleanup(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_system_log_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SystemLogCleanupPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Warnw("worker_system_log_cleanup_unmarshal_failed", "error", err)
			return err
		}
	}
	if c.Container == nil || c.TaskService == nil {
		logger.Warnw("worker_system_log_cleanup_skip_no_service")
		return errTaskServiceMissing
	}
	removed, err := c.TaskService.CleanupSystemLogsOlderThan(ctx, payload.RetentionDays)
	if err != nil {
		logger.Warnw("worker_system_log_cleanup_failed", "retention_days", payload.RetentionDays, "error", err)
		return err
	}
	logger.Debugw("worker_system_log_cleanup_done", "removed", removed)
	return nil
}
