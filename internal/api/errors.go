package api

import (
	"errors"
	"net/http"
	"time"

	"flightontime/backend/internal/common"
	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/providers"
	"flightontime/backend/internal/services"
)

// StatusFor maps a service error to its HTTP status and public error code
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidIata):
		return http.StatusBadRequest, constants.ErrCodeInvalidIata
	case errors.Is(err, services.ErrInvalidRoute):
		return http.StatusConflict, constants.ErrCodeInvalidRoute
	case errors.Is(err, services.ErrAirportNotFound):
		return http.StatusNotFound, constants.ErrCodeAirportNotFound
	case errors.Is(err, services.ErrExternalAPI):
		var perr *providers.ProviderError
		if errors.As(err, &perr) {
			if perr.Code == constants.ErrCodeCircuitOpen {
				return http.StatusServiceUnavailable, perr.Code
			}
			return http.StatusBadGateway, perr.Code
		}
		return http.StatusBadGateway, constants.ErrCodeUpstreamError
	case errors.Is(err, services.ErrStorage):
		return http.StatusInternalServerError, constants.ErrCodeStorage
	default:
		return http.StatusInternalServerError, constants.ErrCodeInternal
	}
}

func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error("Request failed",
			"path", r.URL.Path,
			"code", code,
			"error", err.Error(),
		)
	}
	common.RespondError(w, initTime, code, "", status)
}
