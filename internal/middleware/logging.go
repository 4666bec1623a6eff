package middleware

import (
	"net/http"
	"time"

	"flightontime/backend/internal/auth"
	reqctx "flightontime/backend/internal/context"
	"flightontime/backend/internal/logging"
)

// Logging writes one structured access log line per request, including
// how the request's airport lookups were served.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lw, r)

		trace := reqctx.GetLookupTrace(r.Context())
		counts := trace.Counts()

		callerID := ""
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			callerID = claims.UserID()
		}

		logging.Info("HTTP request completed",
			"request_id", trace.RequestIDOrEmpty(),
			"method", r.Method,
			"endpoint", routePatternOf(r),
			"status_code", lw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"caller_id", callerID,
			"airport_local_hits", counts.LocalHits,
			"airport_cache_hits", counts.CacheHits,
			"airport_remote_fetches", counts.RemoteFetches,
		)
	})
}
