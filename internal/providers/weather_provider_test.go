package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"flightontime/backend/internal/constants"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOpenMeteoURL = "https://api.open-meteo.test/v1/forecast"

func setupWeatherMock(t *testing.T) *OpenMeteoProvider {
	t.Helper()

	provider := NewOpenMeteoProvider(testOpenMeteoURL, 5*time.Second)
	httpmock.ActivateNonDefault(provider.Client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return provider
}

func openMeteoBody() string {
	return `{
		"latitude": 40.64,
		"longitude": -73.78,
		"hourly": {
			"time": ["2025-03-10T13:00", "2025-03-10T14:00", "2025-03-10T15:00"],
			"temperature_2m": [5.1, 6.4, 7.0],
			"precipitation": [0.0, 1.2, 0.0],
			"wind_speed_10m": [10.0, 22.5, 18.0],
			"visibility": [24140.0, null, 20000.0],
			"cloud_cover": [10, 85, 40]
		}
	}`
}

func TestOpenMeteoProvider_FetchFeatures_Success(t *testing.T) {
	provider := setupWeatherMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^`+testOpenMeteoURL,
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "2025-03-10", q.Get("start_date"))
			assert.Equal(t, "2025-03-10", q.Get("end_date"))
			assert.Equal(t, "UTC", q.Get("timezone"))
			assert.Contains(t, q.Get("hourly"), "wind_speed_10m")
			return httpmock.NewStringResponse(http.StatusOK, openMeteoBody()), nil
		})

	at := time.Date(2025, time.March, 10, 14, 35, 0, 0, time.UTC)
	features, err := provider.FetchFeatures(context.Background(), 40.6413, -73.7781, at)

	require.NoError(t, err)
	assert.InDelta(t, 6.4, features.TemperatureC, 0.001)
	assert.InDelta(t, 1.2, features.PrecipMm, 0.001)
	assert.InDelta(t, 22.5, features.WindSpeedKmh, 0.001)
	assert.Equal(t, 0.0, features.VisibilityM, "null samples read as zero")
	assert.InDelta(t, 85, features.CloudCoverPct, 0.001)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestOpenMeteoProvider_FetchFeatures_NonUTCInput(t *testing.T) {
	provider := setupWeatherMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^`+testOpenMeteoURL,
		httpmock.NewStringResponder(http.StatusOK, openMeteoBody()))

	// 09:10 EST is 14:10 UTC
	at := time.Date(2025, time.March, 10, 9, 10, 0, 0, time.FixedZone("EST", -5*3600))
	features, err := provider.FetchFeatures(context.Background(), 40.6413, -73.7781, at)

	require.NoError(t, err)
	assert.InDelta(t, 6.4, features.TemperatureC, 0.001)
}

func TestOpenMeteoProvider_FetchFeatures_HourMissing(t *testing.T) {
	provider := setupWeatherMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^`+testOpenMeteoURL,
		httpmock.NewStringResponder(http.StatusOK, openMeteoBody()))

	at := time.Date(2025, time.March, 10, 22, 0, 0, 0, time.UTC)
	_, err := provider.FetchFeatures(context.Background(), 40.6413, -73.7781, at)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, constants.ErrCodeResourceNotFound, perr.Code)
}

func TestOpenMeteoProvider_FetchFeatures_HTTPError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantCode   string
	}{
		{"bad_request", http.StatusBadRequest, constants.ErrCodeInvalidDataFormat},
		{"rate_limited", http.StatusTooManyRequests, constants.ErrCodeRateLimited},
		{"service_unavailable", http.StatusServiceUnavailable, constants.ErrCodeUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := setupWeatherMock(t)
			httpmock.RegisterResponder(http.MethodGet, `=~^`+testOpenMeteoURL,
				httpmock.NewStringResponder(tt.statusCode, `{"error":true,"reason":"test"}`))

			_, err := provider.FetchFeatures(context.Background(), 0, 0, time.Now())

			var perr *ProviderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantCode, perr.Code)
		})
	}
}
