package repositories

import (
	"context"
	"errors"
	"fmt"

	"flightontime/backend/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByIATA finds an airport by its normalized IATA code. A miss returns (nil, nil).
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("iata = ?", iata).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// SaveIfAbsent inserts the airport unless a row with the same IATA code exists,
// then returns the stored row. A concurrent insert of the same code is not an error.
func (r *AirportRepository) SaveIfAbsent(ctx context.Context, airport *gorm.Airport) (*gorm.Airport, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "iata"}},
			DoNothing: true,
		}).
		Create(airport).Error
	if err != nil {
		return nil, fmt.Errorf("insert airport %s: %w", airport.IATA, err)
	}

	stored, err := r.FindByIATA(ctx, airport.IATA)
	if err != nil {
		return nil, fmt.Errorf("re-read airport %s: %w", airport.IATA, err)
	}
	if stored == nil {
		return nil, fmt.Errorf("airport %s missing after insert", airport.IATA)
	}
	return stored, nil
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
