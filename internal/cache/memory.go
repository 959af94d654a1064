package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
)

type memoryEntry struct {
	series    models.PriceSeries
	expiresAt time.Time
}

// MemoryStore is an in-process TTL cache
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, symbol string) (models.PriceSeries, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[symbol]
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return clone(e.series), true, nil
}

func (m *MemoryStore) Set(_ context.Context, symbol string, series models.PriceSeries, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[symbol] = memoryEntry{
		series:    clone(series),
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Cleanup removes expired entries and returns how many were dropped
func (m *MemoryStore) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done
func (m *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

// callers own the returned slice, so the cache never shares its backing array
func clone(series models.PriceSeries) models.PriceSeries {
	out := make(models.PriceSeries, len(series))
	copy(out, series)
	return out
}
