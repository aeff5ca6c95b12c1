package scheduler

import "time"

// Timer 可停止的定时器
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock 时间来源，测试中可替换为可控时钟
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// RealClock 基于系统时间的 Clock
type RealClock struct{}

// Now 当前时间
func (RealClock) Now() time.Time {
	return time.Now()
}

// NewTimer 创建系统定时器
func (RealClock) NewTimer(d time.Duration) Timer {
	return &realTimer{timer: time.NewTimer(d)}
}

type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) C() <-chan time.Time {
	return t.timer.C
}

func (t *realTimer) Stop() bool {
	return t.timer.Stop()
}
