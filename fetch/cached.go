package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Report is raw report text together with where and when it came from
type Report struct {
	Station   string
	Kind      Kind
	Raw       string
	FetchedAt time.Time
	Cached    bool
}

// CachedFetcher serves fresh reports from a Cache and falls through to an
// inner Fetcher otherwise
type CachedFetcher struct {
	inner  Fetcher
	cache  *Cache
	logger *zap.Logger
}

// NewCachedFetcher creates a cache decorator around a fetcher
func NewCachedFetcher(inner Fetcher, cache *Cache, logger *zap.Logger) *CachedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

// Fetch returns the report for a station, fetching it only when the cached
// copy is missing or stale
func (f *CachedFetcher) Fetch(ctx context.Context, station string, kind Kind) (Report, error) {
	station, err := NormalizeStation(station)
	if err != nil {
		return Report{}, err
	}

	if entry, ok := f.cache.Get(station, kind); ok {
		f.logger.Debug("Cache hit",
			zap.String("station", station),
			zap.String("kind", string(kind)))
		return Report{
			Station:   station,
			Kind:      kind,
			Raw:       entry.Data,
			FetchedAt: entry.FetchedAt,
			Cached:    true,
		}, nil
	}

	f.logger.Debug("Cache miss",
		zap.String("station", station),
		zap.String("kind", string(kind)))

	raw, err := f.inner.Fetch(ctx, station, kind)
	if err != nil {
		return Report{}, err
	}

	entry := f.cache.Put(station, kind, raw)
	return Report{
		Station:   station,
		Kind:      kind,
		Raw:       raw,
		FetchedAt: entry.FetchedAt,
	}, nil
}
