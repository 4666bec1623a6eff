package constants

// Error codes surfaced by the prediction core and its remote collaborators

// Input errors
const (
	ErrCodeInvalidIata    = "INVALID_IATA"
	ErrCodeInvalidRoute   = "INVALID_ROUTE"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
)

// Lookup errors
const (
	ErrCodeAirportNotFound  = "AIRPORT_NOT_FOUND"
	ErrCodeResourceNotFound = "RESOURCE_NOT_FOUND"
)

// Remote collaborator errors
const (
	ErrCodeInvalidAPIKey     = "INVALID_API_KEY"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeUpstreamError     = "UPSTREAM_ERROR"
	ErrCodeCircuitOpen       = "CIRCUIT_OPEN"
)

// Persistence errors
const (
	ErrCodeStorage  = "STORAGE_ERROR"
	ErrCodeInternal = "INTERNAL_ERROR"
)

// Auth errors
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

var ErrorMessages = map[string]string{
	ErrCodeInvalidIata:    "IATA code must be exactly 3 letters",
	ErrCodeInvalidRoute:   "Origin and destination airports must be different",
	ErrCodeInvalidRequest: "The request body is invalid",

	ErrCodeAirportNotFound:  "Airport not found in local store or airport provider",
	ErrCodeResourceNotFound: "The requested resource was not found upstream",

	ErrCodeInvalidAPIKey:     "The upstream API key is missing or was rejected",
	ErrCodeRateLimited:       "Upstream rate limit exceeded. Please try again later",
	ErrCodeNetworkError:      "Unable to reach the upstream service",
	ErrCodeInvalidDataFormat: "The upstream service returned data in an unexpected format",
	ErrCodeUpstreamError:     "The upstream service returned an error",
	ErrCodeCircuitOpen:       "The upstream service is temporarily unavailable",

	ErrCodeStorage:  "Failed to read or write prediction data",
	ErrCodeInternal: "An internal error occurred",

	ErrCodeUnauthorized: "Missing or invalid caller token",
	ErrCodeForbidden:    "Caller role does not allow this action",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
