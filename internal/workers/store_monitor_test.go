package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"flightontime/backend/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	rows  int64
	err   error
	calls atomic.Int32
}

func (f *fakeCounter) Count(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return f.rows, f.err
}

func gaugeValue(t *testing.T, m *metrics.MetricsRegistry, table string) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, m.StoredRows.WithLabelValues(table).Write(&metric))
	return metric.GetGauge().GetValue()
}

func TestStoreMonitor_CheckTables(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	airports := &fakeCounter{rows: 42}
	requests := &fakeCounter{rows: 7}

	monitor := NewStoreMonitor(map[string]RowCounter{
		"airports":            airports,
		"prediction_requests": requests,
	}, m)
	monitor.CheckTables(context.Background())

	assert.Equal(t, float64(42), gaugeValue(t, m, "airports"))
	assert.Equal(t, float64(7), gaugeValue(t, m, "prediction_requests"))
}

func TestStoreMonitor_CountFailureKeepsLastValue(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	airports := &fakeCounter{rows: 3}

	monitor := NewStoreMonitor(map[string]RowCounter{"airports": airports}, m)
	monitor.CheckTables(context.Background())

	airports.rows = 10
	airports.err = errors.New("connection reset")
	monitor.CheckTables(context.Background())

	assert.Equal(t, float64(3), gaugeValue(t, m, "airports"))
}

func TestStoreMonitor_NilMetrics(t *testing.T) {
	airports := &fakeCounter{rows: 1}
	monitor := NewStoreMonitor(map[string]RowCounter{"airports": airports}, nil)

	assert.NotPanics(t, func() { monitor.CheckTables(context.Background()) })
	assert.Equal(t, int32(1), airports.calls.Load())
}

func TestStoreMonitor_StartStopsOnCancel(t *testing.T) {
	airports := &fakeCounter{rows: 1}
	monitor := NewStoreMonitor(map[string]RowCounter{"airports": airports}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Start(ctx, time.Hour)
		close(done)
	}()

	assert.Eventually(t, func() bool { return airports.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
