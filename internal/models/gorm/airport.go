package gorm

import (
	"fmt"
	"time"
)

// Airport is a resolved airport reference record keyed by IATA code.
// Rows are created on first resolution and never updated afterwards.
type Airport struct {
	IATA      string    `gorm:"column:iata;type:varchar(3);primaryKey"`
	ICAO      string    `gorm:"column:icao;type:varchar(4)"`
	Name      string    `gorm:"column:name;type:text;not null"`
	City      string    `gorm:"column:city;type:varchar(100)"`
	Country   string    `gorm:"column:country;type:varchar(100)"`
	Elevation *int      `gorm:"column:elevation;type:integer"`
	Latitude  float64   `gorm:"column:latitude;type:double precision;not null"`
	Longitude float64   `gorm:"column:longitude;type:double precision;not null"`
	Timezone  string    `gorm:"column:timezone;type:varchar(64)"`
	MapLink   string    `gorm:"column:map_link;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}

// BuildMapLink returns a maps URL centred on the given coordinates
func BuildMapLink(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", lat, lon)
}
