package constants

// 用户角色常量
const (
	UserRoleUser  = "USER"
	UserRoleAdmin = "ADMIN"
)

// 系统日志级别常量
const (
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// 同步任务常量
const (
	SyncTypeScheduled = "SCHEDULED_SYNC"
	SyncTypeManual    = "MANUAL_SYNC"
	SyncTypeQueued    = "QUEUED_SYNC"
	SyncStatusSuccess = "SUCCESS"
	SyncStatusFailed  = "FAILED"
	SyncStatusSkipped = "SKIPPED"
)

// 同步触发方式
const (
	SyncTriggerSchedule = "schedule"
	SyncTriggerManual   = "manual"
	SyncTriggerQueue    = "queue"
	SyncTriggerAdmin    = "admin"
)

// 系统日志上下文
const (
	SystemLogContextTasks = "TaskService"
	SystemLogContextSync  = "SyncService"
	SystemLogContextAuthz = "Authz"
)

// 定时任务名称
const (
	JobCatalogSync      = "catalog-sync"
	JobSystemLogCleanup = "system-log-cleanup"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 队列任务类型常量
const (
	TaskCatalogSync      = "catalog:sync"
	TaskSystemLogCleanup = "system_log:cleanup"
)

// 缓存 key 常量
const (
	CacheKeyActiveCategories = "catalog:categories:active"
	LockKeyCatalogSync       = "lock:catalog_sync"
)

// 商品排序字段
const (
	ProductSortTitle     = "title"
	ProductSortPrice     = "price"
	ProductSortRating    = "rating"
	ProductSortCreatedAt = "created_at"
	ProductSortStock     = "stock"
)

// 排序方向
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Token 类型
const TokenTypeBearer = "Bearer"

// 应用信息
const (
	AppName    = "shopsync"
	AppVersion = "1.0.0"
)
