package fetch

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetPut(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	cache := NewCache(10*time.Minute, time.Minute, clock, nil)

	_, ok := cache.Get("KJFK", TAF)
	assert.False(t, ok)

	put := cache.Put("KJFK", TAF, "TAF KJFK 011130Z 0112/0218 P6SM SKC")
	assert.Equal(t, clock.Now(), put.FetchedAt)

	got, ok := cache.Get("KJFK", TAF)
	require.True(t, ok)
	assert.Equal(t, put, got)

	_, ok = cache.Get("KJFK", METAR)
	assert.False(t, ok, "kinds are cached separately")
	_, ok = cache.Get("KLGA", TAF)
	assert.False(t, ok, "stations are cached separately")
}

func TestCache_TTLPerKind(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	cache := NewCache(10*time.Minute, time.Minute, clock, nil)
	assert.Equal(t, 10*time.Minute, cache.TTL(TAF))
	assert.Equal(t, time.Minute, cache.TTL(METAR))

	cache.Put("KJFK", TAF, "taf")
	cache.Put("KJFK", METAR, "metar")

	clock.Advance(59 * time.Second)
	_, ok := cache.Get("KJFK", METAR)
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = cache.Get("KJFK", METAR)
	assert.False(t, ok, "METAR expires after its TTL")
	_, ok = cache.Get("KJFK", TAF)
	assert.True(t, ok)

	clock.Advance(9 * time.Minute)
	_, ok = cache.Get("KJFK", TAF)
	assert.False(t, ok, "TAF expires after its TTL")
}

func TestCache_Purge(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	cache := NewCache(10*time.Minute, time.Minute, clock, nil)

	cache.Put("KJFK", TAF, "taf")
	cache.Put("KJFK", METAR, "metar")
	cache.Put("KBOS", METAR, "metar")
	assert.Zero(t, cache.Purge())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 2, cache.Purge())
	assert.Equal(t, 1, cache.Len())

	_, ok := cache.Get("KJFK", TAF)
	assert.True(t, ok)
}

func TestCache_concurrent(t *testing.T) {
	t.Parallel()

	cache := NewCache(time.Minute, time.Minute, nil, nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			station := fmt.Sprintf("K%03d", i%5)
			cache.Put(station, METAR, "metar")
			cache.Get(station, METAR)
			cache.Purge()
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, cache.Len())
}
