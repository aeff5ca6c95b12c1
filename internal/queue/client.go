package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopsync/internal/config"
	"github.com/shopsync/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	catalogSyncUniqueTTL = time.Hour
)

var (
	// ErrDisabled 队列未启用
	ErrDisabled = errors.New("queue disabled")
	// ErrDuplicate 相同任务已在队列中
	ErrDuplicate = errors.New("task already queued")
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueCatalogSync 推送商品同步任务，同一小时内只保留一个待执行任务，失败不重试
func (c *Client) EnqueueCatalogSync(payload CatalogSyncPayload) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	task, err := NewCatalogSyncTask(payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.Enqueue(task,
		asynq.Queue(constants.QueueCritical),
		asynq.Unique(catalogSyncUniqueTTL),
		asynq.MaxRetry(0),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return info.ID, nil
}

// EnqueueSystemLogCleanup 推送审计日志清理任务
func (c *Client) EnqueueSystemLogCleanup(payload SystemLogCleanupPayload) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	task, err := NewSystemLogCleanupTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, asynq.Queue(c.defaultQueue), asynq.MaxRetry(1))
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{constants.QueueCritical: 6, DefaultQueue: 3}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
