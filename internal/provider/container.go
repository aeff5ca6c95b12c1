package provider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopsync/internal/authz"
	"github.com/shopsync/internal/cache"
	"github.com/shopsync/internal/catalog"
	"github.com/shopsync/internal/config"
	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/metrics"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/queue"
	"github.com/shopsync/internal/repository"
	"github.com/shopsync/internal/scheduler"
	"github.com/shopsync/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Clock       scheduler.Clock

	// Metrics
	Registry    *prometheus.Registry
	JobMetrics  *metrics.JobMetrics
	SyncMetrics *metrics.SyncMetrics

	// Catalog & schedules
	CatalogClient   *catalog.Client
	SyncSchedule    *scheduler.Schedule
	CleanupSchedule *scheduler.Schedule

	// Repositories
	UserRepo      repository.UserRepository
	CategoryRepo  repository.CategoryRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	SystemLogRepo repository.SystemLogRepository

	// Services
	AuthzService     *authz.Service
	UserAuthService  *service.UserAuthService
	CategoryService  *service.CategoryService
	ProductService   *service.ProductService
	CartService      *service.CartService
	SyncService      *service.SyncService
	SystemLogService *service.SystemLogService
	TaskService      *service.TaskService
}

// NewContainer 使用全局数据库初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	return NewContainerWithDB(cfg, models.DB, nil)
}

// NewContainerWithDB 使用指定数据库与时钟初始化容器，clock 为空时使用系统时钟
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, clock scheduler.Clock) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if db == nil {
		return nil, errors.New("database is not initialized")
	}
	if clock == nil {
		clock = scheduler.RealClock{}
	}

	// 初始化队列客户端，未启用时返回禁用状态的客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return nil, err
	}

	registry := metrics.NewRegistry()
	c := &Container{
		Config:        cfg,
		DB:            db,
		QueueClient:   queueClient,
		Clock:         clock,
		Registry:      registry,
		JobMetrics:    metrics.NewJobMetrics(registry),
		SyncMetrics:   metrics.NewSyncMetrics(registry),
		CatalogClient: catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout(), catalog.WithRetry(cfg.Catalog.RetryCount, cfg.Catalog.RetryWait())),
	}

	if err := c.initSchedules(); err != nil {
		return nil, err
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close 释放外部连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.QueueClient.Close()
}

func (c *Container) initSchedules() error {
	if c.Config.Sync.Enabled {
		schedule, err := scheduler.ParseSchedule(c.Config.Sync.Cron, c.Config.Sync.Timezone)
		if err != nil {
			return fmt.Errorf("sync schedule: %w", err)
		}
		c.SyncSchedule = schedule
	}
	if strings.TrimSpace(c.Config.Tasks.CleanupCron) != "" {
		schedule, err := scheduler.ParseSchedule(c.Config.Tasks.CleanupCron, c.Config.Sync.Timezone)
		if err != nil {
			return fmt.Errorf("cleanup schedule: %w", err)
		}
		c.CleanupSchedule = schedule
	}
	return nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.SystemLogRepo = repository.NewSystemLogRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CartRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.SystemLogService = service.NewSystemLogService(c.SystemLogRepo)

	syncOpts := []service.SyncOption{
		service.WithSyncMetrics(c.SyncMetrics),
		service.WithSyncClock(c.Clock.Now),
	}
	if lock := c.buildSyncLock(); lock != nil {
		syncOpts = append(syncOpts, service.WithSyncLock(lock))
	}
	c.SyncService = service.NewSyncService(c.CatalogClient, c.ProductRepo, c.CategoryService, c.Config.Catalog.BatchSize, syncOpts...)
	c.TaskService = service.NewTaskService(c.SyncService, c.SystemLogService, c.QueueClient, c.SyncSchedule, c.Clock, c.Config.Tasks.LogRetentionDays)
	return nil
}

// buildSyncLock Redis 可用且开启时才启用跨实例锁
func (c *Container) buildSyncLock() scheduler.Lock {
	if !c.Config.Sync.DistributedLock {
		return nil
	}
	client := cache.Client()
	if client == nil {
		logger.Warnw("provider_sync_lock_skipped", "reason", "redis_disabled")
		return nil
	}
	prefix := strings.TrimSpace(c.Config.Redis.Prefix)
	if prefix == "" {
		prefix = "shopsync"
	}
	ttl := time.Duration(c.Config.Sync.LockTTLSeconds) * time.Second
	lock, err := scheduler.NewRedisLock(client, prefix+":"+constants.LockKeyCatalogSync, ttl)
	if err != nil {
		logger.Warnw("provider_sync_lock_init_failed", "error", err)
		return nil
	}
	return lock
}
