package metrics

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestJobMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewJobMetrics(reg)
	m.ObserveDuration("catalog-sync", 250*time.Millisecond)
	m.IncSuccess("catalog-sync")
	m.IncFailure("")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := fetchValue(mfs, "shopsync_job_success_total", "job", "catalog-sync")
	require.NoError(t, err)
	require.Equal(t, float64(1), got)

	got, err = fetchValue(mfs, "shopsync_job_failure_total", "job", "unknown")
	require.NoError(t, err)
	require.Equal(t, float64(1), got)

	got, err = fetchValue(mfs, "shopsync_job_duration_seconds", "job", "catalog-sync")
	require.NoError(t, err)
	require.Greater(t, got, float64(0))
}

func TestSyncMetricsRecordsRunsAndItems(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)
	m.SetRunning(true)
	m.ObserveRun(SyncStatusSuccess, 7, 2, 3*time.Second)
	m.IncSkipped()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := fetchValue(mfs, "shopsync_sync_items_total", "result", ItemResultSynchronized)
	require.NoError(t, err)
	require.Equal(t, float64(7), got)

	got, err = fetchValue(mfs, "shopsync_sync_items_total", "result", ItemResultFailed)
	require.NoError(t, err)
	require.Equal(t, float64(2), got)

	got, err = fetchValue(mfs, "shopsync_sync_runs_total", "status", SyncStatusSkipped)
	require.NoError(t, err)
	require.Equal(t, float64(1), got)

	running := findMetricFamily(mfs, "shopsync_sync_running")
	require.NotNil(t, running)
	require.Equal(t, float64(1), running.GetMetric()[0].GetGauge().GetValue())
}

func TestNilMetricsAreNoop(t *testing.T) {
	var job *JobMetrics
	job.IncSuccess("x")
	job.ObserveDuration("x", time.Second)

	syncMetrics := NewSyncMetrics(nil)
	syncMetrics.SetRunning(true)
	syncMetrics.ObserveRun(SyncStatusFailed, 1, 1, time.Second)
	syncMetrics.IncSkipped()
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := NewRegistry()
	NewSyncMetrics(reg).ObserveRun(SyncStatusSuccess, 1, 0, time.Second)

	server := httptest.NewServer(Handler(reg))
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `shopsync_sync_runs_total{status="success"} 1`))
}

func fetchValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if !matchesLabel(metric.GetLabel(), label, value) {
			continue
		}
		switch {
		case metric.GetCounter() != nil:
			return metric.GetCounter().GetValue(), nil
		case metric.GetHistogram() != nil:
			return metric.GetHistogram().GetSampleSum(), nil
		case metric.GetGauge() != nil:
			return metric.GetGauge().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
