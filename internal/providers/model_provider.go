package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/models/dtos"

	"github.com/sony/gobreaker"
)

// ModelProvider calls the trained delay model over HTTP
type ModelProvider struct {
	BaseURL string
	Client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewModelProvider(baseURL string, timeout time.Duration) *ModelProvider {
	return &ModelProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		circuit: newCircuitBreaker("model_service", time.Minute),
	}
}

func (p *ModelProvider) GetProviderType() string {
	return "prediction_model"
}

// Predict posts the query to /predict and returns the model's raw answer
func (p *ModelProvider) Predict(ctx context.Context, query dtos.ModelQuery) (*dtos.ModelResponse, error) {
	payload, err := json.Marshal(query)
	if err != nil {
		return nil, &ProviderError{
			Provider: p.GetProviderType(),
			Code:     constants.ErrCodeInvalidDataFormat,
			Message:  "Failed to marshal request body",
			Err:      err,
		}
	}

	const endpoint = "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{
			Provider: p.GetProviderType(),
			Code:     constants.ErrCodeNetworkError,
			Message:  "Failed to create request",
			Err:      err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var result dtos.ModelResponse
	if _, err := doJSON(p.Client, p.circuit, p.GetProviderType(), endpoint, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
