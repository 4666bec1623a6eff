package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/models/gorm"

	"github.com/sony/gobreaker"
)

// AirportProvider fetches airport reference data from a keyed HTTP API
// (api-ninjas compatible: GET /airports?iata=XXX, header X-Api-Key).
type AirportProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

type airportRecord struct {
	ICAO        string    `json:"icao"`
	IATA        string    `json:"iata"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Region      string    `json:"region"`
	Country     string    `json:"country"`
	ElevationFt flexFloat `json:"elevation_ft"`
	Latitude    flexFloat `json:"latitude"`
	Longitude   flexFloat `json:"longitude"`
	Timezone    string    `json:"timezone"`
}

func NewAirportProvider(baseURL, apiKey string, timeout time.Duration) *AirportProvider {
	return &AirportProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
		circuit: newCircuitBreaker("airport_provider", 30*time.Second),
	}
}

func (p *AirportProvider) GetProviderType() string {
	return "airport_reference_api"
}

// FetchByIATA returns the airport for an already-normalized IATA code, or
// (nil, nil) when the provider has no such airport.
func (p *AirportProvider) FetchByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	if p.APIKey == "" {
		return nil, &ProviderError{
			Provider: p.GetProviderType(),
			Code:     constants.ErrCodeInvalidAPIKey,
			Message:  "AIRPORT_API_KEY environment variable is not set",
		}
	}

	endpoint := "/airports?iata=" + url.QueryEscape(iata)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return nil, &ProviderError{
			Provider: p.GetProviderType(),
			Code:     constants.ErrCodeNetworkError,
			Message:  "Failed to create request",
			Err:      err,
		}
	}
	req.Header.Set("X-Api-Key", p.APIKey)
	req.Header.Set("Accept", "application/json")

	var records []airportRecord
	status, err := doJSON(p.Client, p.circuit, p.GetProviderType(), endpoint, req, &records)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	for _, rec := range records {
		if strings.EqualFold(strings.TrimSpace(rec.IATA), iata) {
			return rec.toAirport(iata)
		}
	}
	return nil, nil
}

func (r airportRecord) toAirport(iata string) (*gorm.Airport, error) {
	if !r.Latitude.Valid || !r.Longitude.Valid {
		return nil, &ProviderError{
			Provider: "airport_reference_api",
			Code:     constants.ErrCodeInvalidDataFormat,
			Message:  fmt.Sprintf("airport %s has no coordinates", iata),
		}
	}

	var elevation *int
	if r.ElevationFt.Valid {
		e := int(math.Round(r.ElevationFt.Value))
		elevation = &e
	}

	return &gorm.Airport{
		IATA:      iata,
		ICAO:      strings.ToUpper(strings.TrimSpace(r.ICAO)),
		Name:      strings.TrimSpace(r.Name),
		City:      strings.TrimSpace(r.City),
		Country:   strings.TrimSpace(r.Country),
		Elevation: elevation,
		Latitude:  r.Latitude.Value,
		Longitude: r.Longitude.Value,
		Timezone:  strings.TrimSpace(r.Timezone),
		MapLink:   gorm.BuildMapLink(r.Latitude.Value, r.Longitude.Value),
	}, nil
}

// flexFloat decodes a number sent either as a JSON number or a quoted string
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*f = flexFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", raw, err)
	}
	*f = flexFloat{Value: v, Valid: true}
	return nil
}
