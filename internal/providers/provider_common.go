package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"flightontime/backend/internal/constants"

	"github.com/sony/gobreaker"
)

// ProviderError is returned by every remote collaborator
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	Details    string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// newCircuitBreaker trips after consecutive failures and half-opens after timeout.
// It never retries; a call made while open fails immediately.
func newCircuitBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// doJSON executes req through the circuit breaker and decodes a 2xx JSON body
// into result. Only transport failures and 5xx responses count against the breaker.
func doJSON(client *http.Client, cb *gobreaker.CircuitBreaker, provider, endpoint string, req *http.Request, result interface{}) (int, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			return nil, buildHTTPError(provider, resp.StatusCode, endpoint, string(body))
		}
		return resp, nil
	})
	if err != nil {
		var provErr *ProviderError
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return 0, &ProviderError{
				Provider: provider,
				Code:     constants.ErrCodeCircuitOpen,
				Message:  constants.GetErrorMessage(constants.ErrCodeCircuitOpen),
				Err:      err,
			}
		case errors.As(err, &provErr):
			return provErr.StatusCode, provErr
		default:
			return 0, &ProviderError{
				Provider: provider,
				Code:     constants.ErrCodeNetworkError,
				Message:  constants.GetErrorMessage(constants.ErrCodeNetworkError),
				Err:      err,
			}
		}
	}

	resp, ok := out.(*http.Response)
	if !ok {
		return 0, &ProviderError{
			Provider: provider,
			Code:     constants.ErrCodeNetworkError,
			Message:  "unexpected result type from circuit breaker",
		}
	}
	defer resp.Body.Close()

	// Read body for potential error messages
	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, &ProviderError{
			Provider:   provider,
			Code:       constants.ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, buildHTTPError(provider, resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return resp.StatusCode, &ProviderError{
			Provider:   provider,
			Code:       constants.ErrCodeInvalidDataFormat,
			Message:    "Failed to decode response",
			Details:    string(bodyBytes),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return resp.StatusCode, nil
}

// buildHTTPError creates appropriate error based on status code
func buildHTTPError(provider string, statusCode int, endpoint string, body string) *ProviderError {
	e := &ProviderError{Provider: provider, Details: body, StatusCode: statusCode}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Code = constants.ErrCodeInvalidAPIKey
		e.Message = fmt.Sprintf("Authentication failed for endpoint %s", endpoint)
	case http.StatusNotFound:
		e.Code = constants.ErrCodeResourceNotFound
		e.Message = fmt.Sprintf("Resource not found: %s", endpoint)
	case http.StatusTooManyRequests:
		e.Code = constants.ErrCodeRateLimited
		e.Message = constants.GetErrorMessage(constants.ErrCodeRateLimited)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e.Code = constants.ErrCodeInvalidDataFormat
		e.Message = fmt.Sprintf("Bad request to %s", endpoint)
	default:
		e.Code = constants.ErrCodeUpstreamError
		e.Message = fmt.Sprintf("HTTP %d from %s", statusCode, endpoint)
	}
	return e
}
