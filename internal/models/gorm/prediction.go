package gorm

import (
	"time"

	"flightontime/backend/internal/constants"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// Prediction is the normalized model verdict owned by exactly one PredictionRequest
type Prediction struct {
	ID          string               `gorm:"column:id;type:varchar(36);primaryKey"`
	RequestID   string               `gorm:"column:request_id;type:varchar(36);not null;uniqueIndex"`
	Verdict     constants.Verdict    `gorm:"column:verdict;type:varchar(16);not null;index"`
	Probability *float64             `gorm:"column:probability;type:double precision"`
	Confidence  constants.Confidence `gorm:"column:confidence;type:varchar(16);not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Prediction) TableName() string {
	return "predictions"
}

func (p *Prediction) BeforeCreate(tx *gormlib.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
