package app

import (
	"errors"
	"fmt"

	"github.com/shopsync/internal/config"
	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/provider"
	"github.com/shopsync/internal/router"
	"github.com/shopsync/internal/scheduler"
	"github.com/shopsync/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	runner, err := BuildRunnerWithContainer(cfg, mode, container)
	if err != nil {
		_ = container.Close()
		return nil, err
	}
	return runner, nil
}

// BuildRunnerWithContainer 基于已初始化的依赖容器组装服务
func BuildRunnerWithContainer(cfg *config.Config, mode string, container *provider.Container) (*Runner, error) {
	if cfg == nil || container == nil {
		return nil, errors.New("config and container are required")
	}
	if mode != ModeAll && mode != ModeAPI && mode != ModeWorker {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		// 定时任务
		sched, err := buildScheduler(container)
		if err != nil {
			return nil, err
		}
		if sched != nil {
			services = append(services, sched)
		}

		// 队列消费者，未启用队列时跳过
		if cfg.Queue.Enabled {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Infow("worker_skipped", "reason", "queue_disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	runner := NewRunner(services...)
	runner.OnShutdown(container.Close)
	return runner, nil
}

// buildScheduler 注册商品同步与日志清理任务，没有任何任务时返回 nil
func buildScheduler(c *provider.Container) (*scheduler.Scheduler, error) {
	if c.TaskService == nil || (c.SyncSchedule == nil && c.CleanupSchedule == nil) {
		return nil, nil
	}
	sched := scheduler.New(c.Clock, c.JobMetrics)
	if c.SyncSchedule != nil {
		job := scheduler.NewJob(constants.JobCatalogSync, c.TaskService.RunScheduledSync)
		if err := sched.Register(job, c.SyncSchedule); err != nil {
			return nil, err
		}
	}
	if c.CleanupSchedule != nil {
		job := scheduler.NewJob(constants.JobSystemLogCleanup, c.TaskService.RunScheduledCleanup)
		if err := sched.Register(job, c.CleanupSchedule); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "services", runner.Services())
	return RunWithOptions(runner, opts)
}
