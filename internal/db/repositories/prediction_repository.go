package repositories

import (
	"context"
	"errors"
	"fmt"

	"flightontime/backend/internal/models/entities"
	"flightontime/backend/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// PredictionRepository stores prediction requests together with their owned prediction
type PredictionRepository struct {
	db *gormlib.DB
}

func NewPredictionRepository(db *gormlib.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// FindByFingerprint returns the stored request matching all five fingerprint
// fields, with its prediction loaded. A miss returns (nil, nil).
func (r *PredictionRepository) FindByFingerprint(ctx context.Context, fp entities.Fingerprint) (*gorm.PredictionRequest, error) {
	var req gorm.PredictionRequest

	err := r.db.WithContext(ctx).
		Preload("Prediction").
		Where("flight_date_utc = ? AND carrier_code = ? AND origin_iata = ? AND dest_iata = ? AND distance_km = ?",
			fp.FlightDateUTC.UTC(), fp.Carrier, fp.Origin, fp.Dest, fp.DistanceKm).
		Order("created_at ASC").
		First(&req).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// a request without its prediction is never written, but don't hand one out
	if req.Prediction == nil {
		return nil, fmt.Errorf("prediction request %s has no prediction", req.ID)
	}

	return &req, nil
}

// SaveWithPrediction writes the request and its prediction in one transaction
func (r *PredictionRepository) SaveWithPrediction(ctx context.Context, req *gorm.PredictionRequest) error {
	if req.Prediction == nil {
		return errors.New("prediction request has no prediction")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Omit("Prediction").Create(req).Error; err != nil {
			return fmt.Errorf("insert prediction request: %w", err)
		}

		req.Prediction.RequestID = req.ID
		if err := tx.Create(req.Prediction).Error; err != nil {
			return fmt.Errorf("insert prediction: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored prediction requests
func (r *PredictionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.PredictionRequest{}).Count(&count).Error
	return count, err
}
