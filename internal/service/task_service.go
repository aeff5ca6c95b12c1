package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/queue"
	"github.com/shopsync/internal/scheduler"
)

const defaultLogRetentionDays = 30

// TaskEnqueuer 异步任务投递
type TaskEnqueuer interface {
	Enabled() bool
	EnqueueCatalogSync(payload queue.CatalogSyncPayload) (string, error)
	EnqueueSystemLogCleanup(payload queue.SystemLogCleanupPayload) error
}

// TaskService 定时/手动任务入口，负责同步审计记录
type TaskService struct {
	syncService   *SyncService
	logService    *SystemLogService
	enqueuer      TaskEnqueuer
	schedule      *scheduler.Schedule
	clock         scheduler.Clock
	retentionDays int
}

// NewTaskService 创建任务服务，schedule 为 nil 表示未开启定时同步
func NewTaskService(syncService *SyncService, logService *SystemLogService, enqueuer TaskEnqueuer, schedule *scheduler.Schedule, clock scheduler.Clock, retentionDays int) *TaskService {
	if clock == nil {
		clock = scheduler.RealClock{}
	}
	if retentionDays <= 0 {
		retentionDays = defaultLogRetentionDays
	}
	return &TaskService{
		syncService:   syncService,
		logService:    logService,
		enqueuer:      enqueuer,
		schedule:      schedule,
		clock:         clock,
		retentionDays: retentionDays,
	}
}

// ManualSyncResult 手动同步结果
type ManualSyncResult struct {
	InProgress bool        `json:"in_progress"`
	Message    string      `json:"message"`
	Result     *SyncResult `json:"result,omitempty"`
}

// TaskStatus 任务状态，每次按当前时间计算
type TaskStatus struct {
	Running         bool       `json:"running"`
	SyncEnabled     bool       `json:"sync_enabled"`
	Schedule        string     `json:"schedule"`
	Timezone        string     `json:"timezone"`
	NextRunEstimate *time.Time `json:"next_run_estimate"`
}

// RunScheduledSync 定时同步，已有同步在执行时跳过
func (s *TaskService) RunScheduledSync(ctx context.Context) error {
	_, err := s.runSync(ctx, constants.SyncTypeScheduled, constants.SyncTriggerSchedule)
	if errors.Is(err, ErrSyncInProgress) {
		return nil
	}
	return err
}

// RunQueuedSync 队列消费者触发的同步
func (s *TaskService) RunQueuedSync(ctx context.Context, payload queue.CatalogSyncPayload) error {
	trigger := payload.Trigger
	if trigger == "" {
		trigger = constants.SyncTriggerQueue
	}
	_, err := s.runSync(ctx, constants.SyncTypeQueued, trigger)
	if errors.Is(err, ErrSyncInProgress) {
		return nil
	}
	return err
}

// ManualSync 手动同步，同步中时直接返回提示
func (s *TaskService) ManualSync(ctx context.Context) (*ManualSyncResult, error) {
	if s.syncService.Running() {
		return &ManualSyncResult{InProgress: true, Message: "sync already in progress"}, nil
	}
	result, err := s.runSync(ctx, constants.SyncTypeManual, constants.SyncTriggerManual)
	if errors.Is(err, ErrSyncInProgress) {
		return &ManualSyncResult{InProgress: true, Message: "sync already in progress"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ManualSyncResult{Message: "sync completed", Result: &result}, nil
}

// TriggerSync 管理端直接触发同步，同步中返回 ErrSyncInProgress
func (s *TaskService) TriggerSync(ctx context.Context) (SyncResult, error) {
	return s.runSync(ctx, constants.SyncTypeManual, constants.SyncTriggerAdmin)
}

// EnqueueSync 投递异步同步任务
func (s *TaskService) EnqueueSync(requestedBy uint) (string, error) {
	if s.enqueuer == nil || !s.enqueuer.Enabled() {
		return "", ErrQueueUnavailable
	}
	taskID, err := s.enqueuer.EnqueueCatalogSync(queue.CatalogSyncPayload{
		Trigger:     constants.SyncTriggerQueue,
		RequestedBy: requestedBy,
		RequestedAt: s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, queue.ErrDuplicate) {
			return "", ErrSyncInProgress
		}
		if errors.Is(err, queue.ErrDisabled) {
			return "", ErrQueueUnavailable
		}
		return "", fmt.Errorf("%w: %w", ErrQueueUnavailable, err)
	}
	logger.Infow("sync_task_enqueued", "task_id", taskID, "requested_by", requestedBy)
	return taskID, nil
}

// Status 计算同步任务状态
func (s *TaskService) Status(now time.Time) TaskStatus {
	status := TaskStatus{
		Running:     s.syncService.Running(),
		SyncEnabled: s.schedule != nil,
	}
	if s.schedule != nil {
		next := s.schedule.Next(now)
		status.Schedule = s.schedule.Expr()
		status.Timezone = s.schedule.Location().String()
		status.NextRunEstimate = &next
	}
	return status
}

// CleanupSystemLogs 删除保留期之前的审计日志
func (s *TaskService) CleanupSystemLogs(ctx context.Context) (int64, error) {
	return s.CleanupSystemLogsOlderThan(ctx, s.retentionDays)
}

// LogCleanupResult 日志清理请求结果
type LogCleanupResult struct {
	Queued        bool  `json:"queued"`
	RetentionDays int   `json:"retention_days"`
	Removed       int64 `json:"removed"`
}

// RequestLogCleanup 管理端触发日志清理，队列可用时异步执行，否则同步执行
func (s *TaskService) RequestLogCleanup(ctx context.Context, days int) (LogCleanupResult, error) {
	if days <= 0 {
		days = s.retentionDays
	}
	result := LogCleanupResult{RetentionDays: days}
	if s.enqueuer != nil && s.enqueuer.Enabled() {
		err := s.enqueuer.EnqueueSystemLogCleanup(queue.SystemLogCleanupPayload{RetentionDays: days})
		if err == nil {
			result.Queued = true
			logger.Infow("system_log_cleanup_enqueued", "retention_days", days)
			return result, nil
		}
		logger.Warnw("system_log_cleanup_enqueue_failed", "retention_days", days, "error", err)
	}
	removed, err := s.CleanupSystemLogsOlderThan(ctx, days)
	if err != nil {
		return result, err
	}
	result.Removed = removed
	return result, nil
}

// RunScheduledCleanup 定时清理审计日志
func (s *TaskService) RunScheduledCleanup(ctx context.Context) error {
	_, err := s.CleanupSystemLogs(ctx)
	return err
}

// CleanupSystemLogsOlderThan 按指定天数清理审计日志，days <= 0 时使用配置的保留期
func (s *TaskService) CleanupSystemLogsOlderThan(_ context.Context, days int) (int64, error) {
	if days <= 0 {
		days = s.retentionDays
	}
	cutoff := s.clock.Now().AddDate(0, 0, -days)
	removed, err := s.logService.PurgeBefore(cutoff)
	if err != nil {
		logger.Errorw("system_log_cleanup_failed", "cutoff", cutoff, "error", err)
		return 0, err
	}
	logger.Infow("system_log_cleanup_finished", "cutoff", cutoff, "retention_days", days, "removed", removed)
	return removed, nil
}

func (s *TaskService) runSync(ctx context.Context, syncType, trigger string) (SyncResult, error) {
	result, err := s.syncService.SyncAll(ctx)
	if errors.Is(err, ErrSyncInProgress) {
		logger.Infow("sync_skipped",
			"type", syncType,
			"trigger", trigger,
			"status", constants.SyncStatusSkipped,
		)
		return result, err
	}
	s.recordRun(syncType, trigger, result, err)
	return result, err
}

func (s *TaskService) recordRun(syncType, trigger string, result SyncResult, runErr error) {
	if s.logService == nil {
		return
	}
	metadata := models.JSON{
		"type":         syncType,
		"run_id":       result.RunID,
		"trigger":      trigger,
		"started_at":   result.StartedAt,
		"finished_at":  result.FinishedAt,
		"duration_ms":  result.Duration().Milliseconds(),
		"synchronized": result.Synchronized,
		"errors":       result.Errors,
		"status":       constants.SyncStatusSuccess,
	}
	if runErr != nil {
		metadata["status"] = constants.SyncStatusFailed
		metadata["error_message"] = runErr.Error()
		s.logService.Record(constants.LogLevelError, "Product synchronization failed", constants.SystemLogContextTasks, metadata)
		return
	}
	s.logService.Record(constants.LogLevelInfo,
		fmt.Sprintf("Product synchronization completed: %d synchronized, %d errors", result.Synchronized, result.Errors),
		constants.SystemLogContextTasks, metadata)
}
