package dtos

// WeatherFeatures are the weather inputs for one airport at the scheduled hour.
// The zero value is what the model receives when weather is unavailable.
type WeatherFeatures struct {
	TemperatureC  float64 `json:"temperature_c"`
	WindSpeedKmh  float64 `json:"wind_speed_kmh"`
	PrecipMm      float64 `json:"precip_mm"`
	VisibilityM   float64 `json:"visibility_m"`
	CloudCoverPct float64 `json:"cloud_cover_pct"`
}
