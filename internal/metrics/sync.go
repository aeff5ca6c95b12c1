package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 同步运行结果标签
const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
	SyncStatusSkipped = "skipped"
)

// 单条商品结果标签
const (
	ItemResultSynchronized = "synchronized"
	ItemResultFailed       = "failed"
)

// SyncMetrics 目录同步指标
type SyncMetrics struct {
	runs     *prometheus.CounterVec
	items    *prometheus.CounterVec
	duration prometheus.Histogram
	running  prometheus.Gauge
}

// NewSyncMetrics 在 reg 上注册同步指标，reg 为空时返回空操作实例
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Catalog sync runs by outcome.",
	}, []string{"status"})
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_items_total",
		Help:      "Catalog products processed by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_duration_seconds",
		Help:      "Duration of catalog sync runs in seconds.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	running := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sync_running",
		Help:      "1 while a catalog sync run holds the single-flight flag.",
	})
	reg.MustRegister(runs, items, duration, running)
	return &SyncMetrics{
		runs:     runs,
		items:    items,
		duration: duration,
		running:  running,
	}
}

// SetRunning 标记同步是否在执行
func (m *SyncMetrics) SetRunning(running bool) {
	if m == nil || m.running == nil {
		return
	}
	if running {
		m.running.Set(1)
		return
	}
	m.running.Set(0)
}

// ObserveRun 记录一次同步运行
func (m *SyncMetrics) ObserveRun(status string, synchronized, failed int, duration time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(normalizeLabel(status)).Inc()
	if synchronized > 0 {
		m.items.WithLabelValues(ItemResultSynchronized).Add(float64(synchronized))
	}
	if failed > 0 {
		m.items.WithLabelValues(ItemResultFailed).Add(float64(failed))
	}
	if duration > 0 {
		m.duration.Observe(duration.Seconds())
	}
}

// IncSkipped 记录一次因已有同步在执行而被拒绝的触发
func (m *SyncMetrics) IncSkipped() {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(SyncStatusSkipped).Inc()
}
