package context

import (
	"context"
	"sync/atomic"
)

type contextKey string

var lookupTraceKey contextKey = "lookup_trace"

// LookupTrace counts how airport lookups were served during one request.
// A nil *LookupTrace is valid and records nothing.
type LookupTrace struct {
	RequestID string

	localHits     atomic.Int32
	cacheHits     atomic.Int32
	remoteFetches atomic.Int32
}

// LookupCounts is a point-in-time copy of a LookupTrace
type LookupCounts struct {
	LocalHits     int `json:"local_hits"`
	CacheHits     int `json:"cache_hits"`
	RemoteFetches int `json:"remote_fetches"`
}

func WithLookupTrace(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, lookupTraceKey, &LookupTrace{RequestID: requestID})
}

func GetLookupTrace(ctx context.Context) *LookupTrace {
	if trace, ok := ctx.Value(lookupTraceKey).(*LookupTrace); ok {
		return trace
	}
	return nil
}

// RequestID returns the request id carried by the trace, or ""
func RequestID(ctx context.Context) string {
	return GetLookupTrace(ctx).RequestIDOrEmpty()
}

func (t *LookupTrace) RequestIDOrEmpty() string {
	if t == nil {
		return ""
	}
	return t.RequestID
}

func (t *LookupTrace) RecordLocalHit() {
	if t != nil {
		t.localHits.Add(1)
	}
}

func (t *LookupTrace) RecordCacheHit() {
	if t != nil {
		t.cacheHits.Add(1)
	}
}

func (t *LookupTrace) RecordRemoteFetch() {
	if t != nil {
		t.remoteFetches.Add(1)
	}
}

func (t *LookupTrace) Counts() LookupCounts {
	if t == nil {
		return LookupCounts{}
	}
	return LookupCounts{
		LocalHits:     int(t.localHits.Load()),
		CacheHits:     int(t.cacheHits.Load()),
		RemoteFetches: int(t.remoteFetches.Load()),
	}
}
