package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/metrics"
)

type entry struct {
	job      Job
	schedule *Schedule
}

// Scheduler 按 cron 时刻运行已注册任务，每个任务一个 goroutine
type Scheduler struct {
	clock   Clock
	metrics *metrics.JobMetrics

	mu      sync.Mutex
	entries []entry
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New 创建调度器，clock 为空时使用系统时钟
func New(clock Clock, jobMetrics *metrics.JobMetrics) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock, metrics: jobMetrics}
}

// Register 注册任务，需在 Start 之前调用
func (s *Scheduler) Register(job Job, schedule *Schedule) error {
	if job == nil || schedule == nil {
		return errors.New("job and schedule are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{job: job, schedule: schedule})
	logger.Infow("scheduler_job_registered", "job", job.Name(), "cron", schedule.Expr(), "timezone", schedule.Location().String())
	return nil
}

// Name 服务名称
func (s *Scheduler) Name() string {
	return "scheduler"
}

// Start 启动所有任务循环，阻塞直到 ctx 取消或 Stop 被调用
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return errors.New("scheduler already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	entries := append([]entry(nil), s.entries...)
	s.mu.Unlock()

	for _, e := range entries {
		s.wg.Add(1)
		go func(e entry) {
			defer s.wg.Done()
			s.loop(runCtx, e)
		}(e)
	}
	<-runCtx.Done()
	s.wg.Wait()
	return nil
}

// Stop 停止调度，等待进行中的任务结束或 ctx 超时
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loop 错过的时刻不补跑，任务执行完后从当前时间重新计算下一次
func (s *Scheduler) loop(ctx context.Context, e entry) {
	for {
		now := s.clock.Now()
		next := e.schedule.Next(now)
		timer := s.clock.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
			s.runJob(ctx, e.job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	name := job.Name()
	start := s.clock.Now()
	logger.Infow("scheduler_job_start", "job", name)

	err := safeRun(ctx, job)
	duration := s.clock.Now().Sub(start)
	s.metrics.ObserveDuration(name, duration)
	if err != nil {
		s.metrics.IncFailure(name)
		logger.Errorw("scheduler_job_failed", "job", name, "duration_ms", duration.Milliseconds(), "error", err)
		return
	}
	s.metrics.IncSuccess(name)
	logger.Infow("scheduler_job_completed", "job", name, "duration_ms", duration.Milliseconds())
}

func safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panic: %v", r)
		}
	}()
	return job.Run(ctx)
}

