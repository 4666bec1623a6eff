package workers

import (
	"context"
	"time"

	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/metrics"
)

// RowCounter is a table the monitor can size
type RowCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StoreMonitor periodically publishes how many rows each table holds
type StoreMonitor struct {
	tables  map[string]RowCounter
	metrics *metrics.MetricsRegistry
}

// NewStoreMonitor creates a monitor over tables, keyed by table name
func NewStoreMonitor(tables map[string]RowCounter, metricsReg *metrics.MetricsRegistry) *StoreMonitor {
	return &StoreMonitor{
		tables:  tables,
		metrics: metricsReg,
	}
}

// Start runs until ctx is cancelled
func (m *StoreMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Starting store monitor", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	m.CheckTables(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Store monitor shutting down")
			return
		case <-ticker.C:
			m.CheckTables(ctx)
		}
	}
}

// CheckTables counts every table once and updates the gauges
func (m *StoreMonitor) CheckTables(ctx context.Context) {
	for name, table := range m.tables {
		count, err := table.Count(ctx)
		if err != nil {
			logging.Warn("Failed to count table", "table", name, "error", err.Error())
			continue
		}

		if m.metrics != nil {
			m.metrics.StoredRows.WithLabelValues(name).Set(float64(count))
		}
		logging.Debug("Table size", "table", name, "rows", count)
	}
}
