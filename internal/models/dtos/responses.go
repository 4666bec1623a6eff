package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Code         string `json:"code,omitempty"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type AirportResponse struct {
	IATA      string  `json:"iata"`
	ICAO      string  `json:"icao,omitempty"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation *int    `json:"elevation,omitempty"`
	Timezone  string  `json:"timezone"`
	MapLink   string  `json:"map_link"`
}

type PredictionResult struct {
	RequestID     string    `json:"request_id"`
	FlightDateUTC time.Time `json:"flight_date_utc"`
	Carrier       string    `json:"carrier"`
	Origin        string    `json:"origin"`
	Dest          string    `json:"dest"`
	DistanceKm    float64   `json:"distance_km"`
	Verdict       string    `json:"verdict"`
	Probability   *float64  `json:"probability"`
	Confidence    string    `json:"confidence"`
	Cached        bool      `json:"cached"`
}

type StatsSummary struct {
	Total              int            `json:"total"`
	CountsByVerdict    map[string]int `json:"counts_by_verdict"`
	CountsByConfidence map[string]int `json:"counts_by_confidence"`
	MeanProbability    *float64       `json:"mean_probability"`
	DelayedRatio       *float64       `json:"delayed_ratio"`
}
