package api

import (
	"context"
	"net/http"
	"time"

	"flightontime/backend/internal/common"
	"flightontime/backend/internal/models/dtos"
)

type StatsSummarizer interface {
	Summarize(ctx context.Context) (*dtos.StatsSummary, error)
}

// StatsHandler handles GET /api/v1/stats
func StatsHandler(stats StatsSummarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		summary, err := stats.Summarize(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Prediction statistics", summary)
	}
}
