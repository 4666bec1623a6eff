package services

import (
	"context"
	"fmt"
	"time"

	"flightontime/backend/internal/common"
	"flightontime/backend/internal/constants"
	reqctx "flightontime/backend/internal/context"
	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/metrics"
	"flightontime/backend/internal/models/gorm"
)

// AirportResolver resolves IATA codes local-first, remote-fallback, persisting
// what the remote provider returns.
type AirportResolver struct {
	store    AirportStore
	remote   AirportFetcher
	cache    common.CacheInterface
	cacheTTL time.Duration
	metrics  *metrics.MetricsRegistry
}

type AirportResolverOption func(*AirportResolver)

// WithAirportCache puts an in-process read-through cache in front of the store
func WithAirportCache(cache common.CacheInterface, ttl time.Duration) AirportResolverOption {
	return func(r *AirportResolver) {
		r.cache = cache
		r.cacheTTL = ttl
	}
}

func WithResolverMetrics(m *metrics.MetricsRegistry) AirportResolverOption {
	return func(r *AirportResolver) {
		r.metrics = m
	}
}

func NewAirportResolver(store AirportStore, remote AirportFetcher, opts ...AirportResolverOption) *AirportResolver {
	r := &AirportResolver{store: store, remote: remote}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NormalizeIATA trims and uppercases code and checks it is three ASCII letters
func NormalizeIATA(code string) (string, error) {
	normalized := common.NormalizeCode(code)
	if len(normalized) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidIata, code)
	}
	for _, c := range normalized {
		if c < 'A' || c > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidIata, code)
		}
	}
	return normalized, nil
}

// Resolve returns the airport for iata, fetching and storing it on first use
func (r *AirportResolver) Resolve(ctx context.Context, iata string) (*gorm.Airport, error) {
	code, err := NormalizeIATA(iata)
	if err != nil {
		return nil, err
	}

	trace := reqctx.GetLookupTrace(ctx)
	cacheKey := string(constants.CachePrefixAirport) + code

	if r.cache != nil {
		if cached, found := r.cache.Get(cacheKey); found {
			if airport, ok := cached.(*gorm.Airport); ok {
				trace.RecordCacheHit()
				r.record("cache")
				return airport, nil
			}
		}
	}

	airport, source, err := ResolveThrough(ctx, code, r.store.FindByIATA, r.fetch, r.store.SaveIfAbsent)
	if err != nil {
		r.record("error")
		logging.Warn("Airport resolution failed",
			"request_id", trace.RequestIDOrEmpty(),
			"iata", code,
			"error", err.Error(),
		)
		return nil, err
	}
	if airport == nil {
		r.record(string(SourceNone))
		return nil, fmt.Errorf("%w: %s", ErrAirportNotFound, code)
	}

	switch source {
	case SourceLocal:
		trace.RecordLocalHit()
	case SourceRemote:
		logging.Info("Airport fetched from provider and stored",
			"request_id", trace.RequestIDOrEmpty(),
			"iata", code,
			"name", airport.Name,
		)
	}
	r.record(string(source))

	if r.cache != nil {
		r.cache.Set(cacheKey, airport, r.cacheTTL)
	}
	return airport, nil
}

func (r *AirportResolver) fetch(ctx context.Context, code string) (*gorm.Airport, error) {
	reqctx.GetLookupTrace(ctx).RecordRemoteFetch()

	start := time.Now()
	airport, err := r.remote.FetchByIATA(ctx, code)
	if r.metrics != nil {
		r.metrics.ExternalCallDuration.WithLabelValues("airport_provider").Observe(time.Since(start).Seconds())
		if err != nil {
			r.metrics.ExternalCallErrors.WithLabelValues("airport_provider").Inc()
		}
	}
	return airport, err
}

func (r *AirportResolver) record(source string) {
	if r.metrics != nil {
		r.metrics.AirportResolutionsTotal.WithLabelValues(source).Inc()
	}
}
