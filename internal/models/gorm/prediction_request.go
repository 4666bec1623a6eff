package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// PredictionRequest is one unique caller query. The five fingerprint columns
// (flight_date_utc, carrier_code, origin_iata, dest_iata, distance_km) identify it.
type PredictionRequest struct {
	ID            string      `gorm:"column:id;type:varchar(36);primaryKey"`
	FlightDateUTC time.Time   `gorm:"column:flight_date_utc;not null;index:idx_prediction_fingerprint,priority:1"`
	CarrierCode   string      `gorm:"column:carrier_code;type:varchar(3);not null;index:idx_prediction_fingerprint,priority:2"`
	OriginIATA    string      `gorm:"column:origin_iata;type:varchar(3);not null;index:idx_prediction_fingerprint,priority:3"`
	DestIATA      string      `gorm:"column:dest_iata;type:varchar(3);not null;index:idx_prediction_fingerprint,priority:4"`
	DistanceKm    float64     `gorm:"column:distance_km;type:double precision;not null"`
	CreatedBy     string      `gorm:"column:created_by;type:varchar(100)"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime"`
	Prediction    *Prediction `gorm:"foreignKey:RequestID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (PredictionRequest) TableName() string {
	return "prediction_requests"
}

func (r *PredictionRequest) BeforeCreate(tx *gormlib.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
