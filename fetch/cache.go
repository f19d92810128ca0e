package fetch

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Default freshness windows. Forecasts change far less often than
// observations.
const (
	DefaultTAFTTL   = 10 * time.Minute
	DefaultMETARTTL = time.Minute
)

// Entry is one cached report
type Entry struct {
	Data      string
	FetchedAt time.Time
}

type cacheKey struct {
	station string
	kind    Kind
}

// Cache holds the most recent report per station and kind, each kind with
// its own time to live. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]Entry
	ttl     map[Kind]time.Duration
	clock   clockwork.Clock
	logger  *zap.Logger
}

// NewCache creates a cache with the given TTLs. A nil clock uses real time
// and a nil logger disables logging.
func NewCache(tafTTL, metarTTL time.Duration, clock clockwork.Clock, logger *zap.Logger) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cache{
		entries: make(map[cacheKey]Entry),
		ttl: map[Kind]time.Duration{
			TAF:   tafTTL,
			METAR: metarTTL,
		},
		clock:  clock,
		logger: logger,
	}
}

// TTL returns the freshness window for a kind
func (c *Cache) TTL(kind Kind) time.Duration {
	return c.ttl[kind]
}

// Get returns the cached report when it is still fresh
func (c *Cache) Get(station string, kind Kind) (Entry, bool) {
	c.mu.RLock()
	entry, exists := c.entries[cacheKey{station, kind}]
	c.mu.RUnlock()

	if !exists {
		return Entry{}, false
	}

	if c.expired(entry, kind, c.clock.Now()) {
		return Entry{}, false
	}

	return entry, true
}

// Put stores a report stamped with the current time and returns the entry
func (c *Cache) Put(station string, kind Kind, data string) Entry {
	entry := Entry{Data: data, FetchedAt: c.clock.Now()}

	c.mu.Lock()
	c.entries[cacheKey{station, kind}] = entry
	c.mu.Unlock()

	c.logger.Debug("Report cached",
		zap.String("station", station),
		zap.String("kind", string(kind)),
		zap.Time("expires_at", entry.FetchedAt.Add(c.ttl[kind])))

	return entry
}

// Purge drops expired entries and returns how many were removed
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	expiredCount := 0
	for key, entry := range c.entries {
		if c.expired(entry, key.kind, now) {
			delete(c.entries, key)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired cache items", zap.Int("count", expiredCount))
	}
	return expiredCount
}

// Len returns the number of entries, fresh or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) expired(entry Entry, kind Kind, now time.Time) bool {
	return now.Sub(entry.FetchedAt) >= c.ttl[kind]
}
