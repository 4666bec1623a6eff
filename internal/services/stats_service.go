package services

import (
	"context"
	"fmt"

	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/models/dtos"
	"flightontime/backend/internal/models/entities"
)

type StatsService struct {
	reader PredictionReader
}

func NewStatsService(reader PredictionReader) *StatsService {
	return &StatsService{reader: reader}
}

// Summarize aggregates every stored prediction
func (s *StatsService) Summarize(ctx context.Context) (*dtos.StatsSummary, error) {
	rows, err := s.reader.ListPredictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list predictions: %w", ErrStorage, err)
	}
	return Aggregate(rows), nil
}

// Aggregate counts rows by verdict and by confidence and averages the
// probabilities that are present. With no probabilities the mean stays nil.
func Aggregate(rows []entities.PredictionRow) *dtos.StatsSummary {
	summary := &dtos.StatsSummary{
		Total:              len(rows),
		CountsByVerdict:    map[string]int{},
		CountsByConfidence: map[string]int{},
	}

	var (
		sum      float64
		withProb int
		delayed  int
	)
	for _, row := range rows {
		summary.CountsByVerdict[string(row.Verdict)]++
		summary.CountsByConfidence[string(row.Confidence)]++
		if row.Verdict == constants.VerdictDelayed {
			delayed++
		}
		if row.Probability != nil {
			sum += *row.Probability
			withProb++
		}
	}

	if withProb > 0 {
		mean := sum / float64(withProb)
		summary.MeanProbability = &mean
	}
	if summary.Total > 0 {
		ratio := float64(delayed) / float64(summary.Total)
		summary.DelayedRatio = &ratio
	}

	return summary
}
