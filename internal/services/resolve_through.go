package services

import (
	"context"
	"fmt"
)

// ResolveSource says where ResolveThrough found a value
type ResolveSource string

const (
	SourceLocal  ResolveSource = "local"
	SourceRemote ResolveSource = "remote"
	SourceNone   ResolveSource = "not_found"
)

// ResolveThrough looks key up locally, falls back to fetch on a miss and writes
// the fetched value through with saveIfAbsent. lookup and fetch report a miss as
// (nil, nil). A double miss returns (nil, SourceNone, nil).
func ResolveThrough[K any, V any](
	ctx context.Context,
	key K,
	lookup func(context.Context, K) (*V, error),
	fetch func(context.Context, K) (*V, error),
	saveIfAbsent func(context.Context, *V) (*V, error),
) (*V, ResolveSource, error) {
	local, err := lookup(ctx, key)
	if err != nil {
		return nil, SourceNone, fmt.Errorf("%w: local lookup: %w", ErrStorage, err)
	}
	if local != nil {
		return local, SourceLocal, nil
	}

	fetched, err := fetch(ctx, key)
	if err != nil {
		return nil, SourceNone, fmt.Errorf("%w: %w", ErrExternalAPI, err)
	}
	if fetched == nil {
		return nil, SourceNone, nil
	}

	stored, err := saveIfAbsent(ctx, fetched)
	if err != nil {
		return nil, SourceNone, fmt.Errorf("%w: write-through: %w", ErrStorage, err)
	}
	return stored, SourceRemote, nil
}
