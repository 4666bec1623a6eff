package workers

import (
	"context"
	"time"

	"flightontime/backend/internal/api"
)

type WorkersContainer struct {
	StoreMonitor *StoreMonitor
}

// InitWorkers starts background workers bound to ctx
func InitWorkers(ctx context.Context, deps *api.Dependencies, monitorInterval time.Duration) *WorkersContainer {
	monitor := NewStoreMonitor(map[string]RowCounter{
		"airports":            deps.Repo.Airports,
		"prediction_requests": deps.Repo.Predictions,
	}, deps.Metrics)

	go monitor.Start(ctx, monitorInterval)

	return &WorkersContainer{
		StoreMonitor: monitor,
	}
}
