package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flightontime/backend/internal/common"
	"flightontime/backend/internal/constants"
	reqctx "flightontime/backend/internal/context"
	"flightontime/backend/internal/db/repositories"
	gormModels "flightontime/backend/internal/models/gorm"
	"flightontime/backend/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirportResolver_LocalHitSkipsRemote(t *testing.T) {
	db := setupTestDB(t)
	seedAirports(t, db, jfk())

	remote := &mockAirportFetcher{fetchFunc: func(ctx context.Context, iata string) (*gormModels.Airport, error) {
		t.Fatalf("remote provider called for %s", iata)
		return nil, nil
	}}
	resolver := NewAirportResolver(repositories.NewAirportRepository(db), remote)

	ctx := reqctx.WithLookupTrace(context.Background(), "req-1")
	airport, err := resolver.Resolve(ctx, "JFK")

	require.NoError(t, err)
	assert.Equal(t, "JFK", airport.IATA)
	assert.Equal(t, int32(0), remote.calls.Load())
	assert.Equal(t, 1, reqctx.GetLookupTrace(ctx).Counts().LocalHits)
}

func TestAirportResolver_RemoteMissIsPersistedOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewAirportRepository(db)

	remote := &mockAirportFetcher{fetchFunc: func(ctx context.Context, iata string) (*gormModels.Airport, error) {
		return lax(), nil
	}}
	resolver := NewAirportResolver(repo, remote)

	ctx := reqctx.WithLookupTrace(context.Background(), "req-1")
	first, err := resolver.Resolve(ctx, " lax ")
	require.NoError(t, err)

	second, err := resolver.Resolve(ctx, "LAX")
	require.NoError(t, err)

	assert.Equal(t, first.IATA, second.IATA)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Latitude, second.Latitude)
	assert.Equal(t, int32(1), remote.calls.Load(), "second resolution must be served locally")

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	counts := reqctx.GetLookupTrace(ctx).Counts()
	assert.Equal(t, 1, counts.RemoteFetches)
	assert.Equal(t, 1, counts.LocalHits)
}

func TestAirportResolver_InvalidIataNeverReachesNetwork(t *testing.T) {
	db := setupTestDB(t)
	remote := &mockAirportFetcher{}
	resolver := NewAirportResolver(repositories.NewAirportRepository(db), remote)

	for _, code := range []string{"", "JF", "JFKX", "J1K", "JF-", "ÅBC"} {
		t.Run(code, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), code)
			assert.ErrorIs(t, err, ErrInvalidIata)
			assert.Equal(t, constants.ErrCodeInvalidIata, ErrorCode(err))
		})
	}
	assert.Equal(t, int32(0), remote.calls.Load())
}

func TestAirportResolver_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewAirportRepository(db)
	remote := &mockAirportFetcher{}
	resolver := NewAirportResolver(repo, remote)

	_, err := resolver.Resolve(context.Background(), "ZZZ")

	assert.ErrorIs(t, err, ErrAirportNotFound)
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAirportResolver_RemoteFailureIsExternalAPI(t *testing.T) {
	db := setupTestDB(t)
	remote := &mockAirportFetcher{fetchFunc: func(ctx context.Context, iata string) (*gormModels.Airport, error) {
		return nil, &providers.ProviderError{
			Provider: "airport_reference_api",
			Code:     constants.ErrCodeUpstreamError,
			Message:  "HTTP 503",
		}
	}}
	resolver := NewAirportResolver(repositories.NewAirportRepository(db), remote)

	_, err := resolver.Resolve(context.Background(), "CDG")

	assert.ErrorIs(t, err, ErrExternalAPI)
	var perr *providers.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, constants.ErrCodeUpstreamError, perr.Code)
}

func TestAirportResolver_CacheServesRepeatLookups(t *testing.T) {
	db := setupTestDB(t)
	seedAirports(t, db, jfk())

	cache := common.NewCacheService(time.Minute, time.Minute)
	defer cache.Close()
	resolver := NewAirportResolver(repositories.NewAirportRepository(db), &mockAirportFetcher{},
		WithAirportCache(cache, time.Minute))

	ctx := reqctx.WithLookupTrace(context.Background(), "req-1")
	_, err := resolver.Resolve(ctx, "JFK")
	require.NoError(t, err)
	_, err = resolver.Resolve(ctx, "jfk")
	require.NoError(t, err)

	counts := reqctx.GetLookupTrace(ctx).Counts()
	assert.Equal(t, 1, counts.LocalHits)
	assert.Equal(t, 1, counts.CacheHits)
}

func TestAirportResolver_ConcurrentFirstResolution(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewAirportRepository(db)

	remote := &mockAirportFetcher{fetchFunc: func(ctx context.Context, iata string) (*gormModels.Airport, error) {
		time.Sleep(20 * time.Millisecond)
		return jfk(), nil
	}}
	resolver := NewAirportResolver(repo, remote)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			airport, err := resolver.Resolve(context.Background(), "JFK")
			if err == nil && airport.IATA != "JFK" {
				err = errors.New("wrong airport " + airport.IATA)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNormalizeIATA(t *testing.T) {
	code, err := NormalizeIATA("  jfk\t")
	require.NoError(t, err)
	assert.Equal(t, "JFK", code)

	_, err = NormalizeIATA("12A")
	assert.ErrorIs(t, err, ErrInvalidIata)
}
