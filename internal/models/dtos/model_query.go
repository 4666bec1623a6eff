package dtos

import "encoding/json"

// ModelQuery is the feature record posted to the remote prediction model
type ModelQuery struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	DayOfMonth     int     `json:"day_of_month"`
	DayOfWeek      int     `json:"day_of_week"` // 1 = Monday ... 7 = Sunday
	DepHour        int     `json:"dep_hour"`
	DepMinute      int     `json:"dep_minute"`
	DepMinuteOfDay int     `json:"dep_minute_of_day"`
	Carrier        string  `json:"carrier"`
	Origin         string  `json:"origin"`
	Dest           string  `json:"dest"`
	DistanceKm     float64 `json:"distance_km"`

	OriginWeather WeatherFeatures `json:"origin_weather"`
	DestWeather   WeatherFeatures `json:"dest_weather"`
}

// ModelResponse is the model's raw verdict. The model has answered in both
// Spanish (prevision/probabilidad/confianza) and English keys; both are accepted.
type ModelResponse struct {
	Verdict     string   `json:"verdict"`
	Probability *float64 `json:"probability,omitempty"`
	Confidence  string   `json:"confidence"`
}

func (m *ModelResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Verdict      *string  `json:"verdict"`
		Prevision    *string  `json:"prevision"`
		Probability  *float64 `json:"probability"`
		Probabilidad *float64 `json:"probabilidad"`
		Confidence   *string  `json:"confidence"`
		Confianza    *string  `json:"confianza"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = ModelResponse{
		Verdict:     firstString(raw.Verdict, raw.Prevision),
		Probability: raw.Probability,
		Confidence:  firstString(raw.Confidence, raw.Confianza),
	}
	if m.Probability == nil {
		m.Probability = raw.Probabilidad
	}
	return nil
}

func firstString(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}
