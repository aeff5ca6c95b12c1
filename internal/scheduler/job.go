package scheduler

import "context"

// Job 定时执行的任务
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type funcJob struct {
	name string
	run  func(ctx context.Context) error
}

// NewJob 用函数构造 Job
func NewJob(name string, run func(ctx context.Context) error) Job {
	return &funcJob{name: name, run: run}
}

func (j *funcJob) Name() string {
	return j.name
}

func (j *funcJob) Run(ctx context.Context) error {
	if j.run == nil {
		return nil
	}
	return j.run(ctx)
}
