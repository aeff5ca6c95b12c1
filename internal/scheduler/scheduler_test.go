package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopsync/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsJobAtEachSlot(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC))
	schedule, err := ParseSchedule("0 */12 * * *", "UTC")
	require.NoError(t, err)

	ran := make(chan time.Time, 4)
	s := New(clock, nil)
	require.NoError(t, s.Register(NewJob("catalog-sync", func(context.Context) error {
		ran <- clock.Now()
		return nil
	}), schedule))

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool { return clock.pending() == 1 }, time.Second, 5*time.Millisecond)
	clock.Advance(30 * time.Minute)
	require.Never(t, func() bool { return len(ran) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	clock.Advance(30 * time.Minute)
	select {
	case at := <-ran:
		require.True(t, at.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)), "ran at %s", at)
	case <-time.After(time.Second):
		t.Fatalf("job did not run at the first slot")
	}

	require.Eventually(t, func() bool { return clock.pending() == 1 }, time.Second, 5*time.Millisecond)
	clock.Advance(12 * time.Hour)
	select {
	case at := <-ran:
		require.True(t, at.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), "ran at %s", at)
	case <-time.After(time.Second):
		t.Fatalf("job did not run at the second slot")
	}

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, <-done)
}

func TestSchedulerRecordsJobFailureAndKeepsRunning(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC))
	schedule, err := ParseSchedule("0 * * * *", "UTC")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	var runs atomic.Int32
	s := New(clock, metrics.NewJobMetrics(reg))
	require.NoError(t, s.Register(NewJob("flaky", func(context.Context) error {
		if runs.Add(1) == 1 {
			return errors.New("boom")
		}
		panic("still broken")
	}), schedule))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	for i := 0; i < 2; i++ {
		require.Eventually(t, func() bool { return clock.pending() == 1 }, time.Second, 5*time.Millisecond)
		clock.Advance(time.Hour)
		want := int32(i + 1)
		require.Eventually(t, func() bool { return runs.Load() == want }, time.Second, 5*time.Millisecond)
	}
	require.Eventually(t, func() bool { return clock.pending() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var failures float64
	for _, mf := range mfs {
		if mf.GetName() == "shopsync_job_failure_total" {
			failures = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	require.Equal(t, float64(2), failures)
}

func TestSchedulerRejectsDoubleStartAndNilJob(t *testing.T) {
	s := New(newFakeClock(time.Now()), nil)
	require.Error(t, s.Register(nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.cancel != nil
	}, time.Second, 5*time.Millisecond)

	require.Error(t, s.Start(context.Background()))
	cancel()
	require.NoError(t, <-done)
}
