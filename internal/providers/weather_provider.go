package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/models/dtos"

	"github.com/sony/gobreaker"
)

// OpenMeteoProvider reads hourly forecasts from Open-Meteo (no key required)
type OpenMeteoProvider struct {
	BaseURL string
	Client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

type openMeteoHourly struct {
	Hourly struct {
		Time          []string   `json:"time"`
		Temperature2m []*float64 `json:"temperature_2m"`
		Precipitation []*float64 `json:"precipitation"`
		WindSpeed10m  []*float64 `json:"wind_speed_10m"`
		Visibility    []*float64 `json:"visibility"`
		CloudCover    []*float64 `json:"cloud_cover"`
	} `json:"hourly"`
}

const openMeteoHourLayout = "2006-01-02T15:04"

func NewOpenMeteoProvider(baseURL string, timeout time.Duration) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		circuit: newCircuitBreaker("openmeteo", 2*time.Minute),
	}
}

func (p *OpenMeteoProvider) GetProviderType() string {
	return "openmeteo"
}

// FetchFeatures returns the forecast for the UTC hour containing at
func (p *OpenMeteoProvider) FetchFeatures(ctx context.Context, lat, lon float64, at time.Time) (dtos.WeatherFeatures, error) {
	at = at.UTC()
	day := at.Format("2006-01-02")

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", "temperature_2m,precipitation,wind_speed_10m,visibility,cloud_cover")
	values.Set("start_date", day)
	values.Set("end_date", day)
	values.Set("timezone", "UTC")

	endpoint := "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return dtos.WeatherFeatures{}, &ProviderError{
			Provider: p.GetProviderType(),
			Code:     constants.ErrCodeNetworkError,
			Message:  "Failed to create request",
			Err:      err,
		}
	}

	var payload openMeteoHourly
	if _, err := doJSON(p.Client, p.circuit, p.GetProviderType(), endpoint, req, &payload); err != nil {
		return dtos.WeatherFeatures{}, err
	}

	want := at.Truncate(time.Hour).Format(openMeteoHourLayout)
	for i, ts := range payload.Hourly.Time {
		if ts != want {
			continue
		}
		return dtos.WeatherFeatures{
			TemperatureC:  valueAt(payload.Hourly.Temperature2m, i),
			WindSpeedKmh:  valueAt(payload.Hourly.WindSpeed10m, i),
			PrecipMm:      valueAt(payload.Hourly.Precipitation, i),
			VisibilityM:   valueAt(payload.Hourly.Visibility, i),
			CloudCoverPct: valueAt(payload.Hourly.CloudCover, i),
		}, nil
	}

	return dtos.WeatherFeatures{}, &ProviderError{
		Provider: p.GetProviderType(),
		Code:     constants.ErrCodeResourceNotFound,
		Message:  fmt.Sprintf("no forecast for %s", want),
	}
}

// valueAt treats missing or null samples as zero
func valueAt(series []*float64, i int) float64 {
	if i >= len(series) || series[i] == nil {
		return 0
	}
	return *series[i]
}
