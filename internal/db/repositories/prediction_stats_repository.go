package repositories

import (
	"context"

	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// PredictionStatsRepository reads stored predictions for aggregation
type PredictionStatsRepository struct {
	db *sqlx.DB
}

func NewPredictionStatsRepository(db *sqlx.DB) *PredictionStatsRepository {
	return &PredictionStatsRepository{db: db}
}

// ListPredictions returns every stored prediction
func (r *PredictionStatsRepository) ListPredictions(ctx context.Context) ([]entities.PredictionRow, error) {
	rows := []entities.PredictionRow{}
	if err := r.db.SelectContext(ctx, &rows, constants.SelectAllPredictions); err != nil {
		return nil, err
	}
	return rows, nil
}
