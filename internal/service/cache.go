package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
)

// DefaultStatisticsTTL is how long a cached statistics payload stays
// valid without an intervening write.
const DefaultStatisticsTTL = 30 * time.Minute

type statisticsCacheEntry struct {
	payload   *models.StatisticsResponse
	expiresAt time.Time
}

// StatisticsCache is an in-process cache for statistics payloads, keyed
// by (owner, period, streak cursor). The cursor in the key makes stale
// entries unreachable after a write; InvalidateOwner additionally
// deletes them to close the race where an old-cursor key is
// repopulated by a concurrent read.
//
// The cache is advisory and not single-flighted: concurrent misses for
// one key may both compute, and the last write wins. Computation is
// deterministic over the same entry snapshot, so this is harmless.
type StatisticsCache struct {
	mu      sync.RWMutex
	entries map[string]statisticsCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewStatisticsCache creates a cache with the given TTL.
func NewStatisticsCache(ttl time.Duration) *StatisticsCache {
	if ttl <= 0 {
		ttl = DefaultStatisticsTTL
	}
	return &StatisticsCache{
		entries: make(map[string]statisticsCacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// statisticsCacheKey builds a cache key. Callers outside this package
// must not construct or parse keys.
func statisticsCacheKey(ownerID uuid.UUID, period models.Period, cursor *time.Time) string {
	cursorPart := "none"
	if cursor != nil {
		cursorPart = cursor.Format("2006-01-02")
	}
	return fmt.Sprintf("stats:%s:%s:%s", ownerID, period, cursorPart)
}

// GetOrCompute returns the cached payload for key when present and
// unexpired; otherwise it runs compute, stores the result with the
// cache TTL and returns it. The second return value reports a hit.
func (c *StatisticsCache) GetOrCompute(key string, compute func() (*models.StatisticsResponse, error)) (*models.StatisticsResponse, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		return entry.payload, true, nil
	}

	payload, err := compute()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[key] = statisticsCacheEntry{
		payload:   payload,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()

	return payload, false, nil
}

// InvalidateOwner deletes the owner's cached payloads for every
// supported period under each of the given cursor values. Callers pass
// both the pre-write and post-write cursor so neither generation of
// keys survives the write.
func (c *StatisticsCache) InvalidateOwner(ownerID uuid.UUID, cursors ...*time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, cursor := range cursors {
		for _, period := range models.Periods {
			delete(c.entries, statisticsCacheKey(ownerID, period, cursor))
		}
	}
}

// Len reports the number of cached entries, expired or not.
func (c *StatisticsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
