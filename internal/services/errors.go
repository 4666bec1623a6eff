package services

import (
	"errors"

	"flightontime/backend/internal/constants"
)

var (
	// ErrInvalidIata: the code is not exactly three letters. Never reaches the network.
	ErrInvalidIata = errors.New("invalid IATA code")
	// ErrInvalidRoute: origin and destination are the same airport
	ErrInvalidRoute = errors.New("invalid route")
	// ErrAirportNotFound: neither the local store nor the provider knows the code
	ErrAirportNotFound = errors.New("airport not found")
	// ErrExternalAPI: transport, timeout or non-2xx failure from a remote collaborator
	ErrExternalAPI = errors.New("external api error")
	// ErrStorage: persistence read or write failure
	ErrStorage = errors.New("storage error")
)

// ErrorCode maps an error returned by this package to its public error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidIata):
		return constants.ErrCodeInvalidIata
	case errors.Is(err, ErrInvalidRoute):
		return constants.ErrCodeInvalidRoute
	case errors.Is(err, ErrAirportNotFound):
		return constants.ErrCodeAirportNotFound
	case errors.Is(err, ErrExternalAPI):
		return constants.ErrCodeUpstreamError
	case errors.Is(err, ErrStorage):
		return constants.ErrCodeStorage
	default:
		return ""
	}
}
