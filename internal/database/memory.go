package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
)

// MemoryStore keeps the watchlist in process memory, for runs without Postgres
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64]map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64]map[string]time.Time)}
}

func (m *MemoryStore) AddWatch(_ context.Context, chatID int64, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbols, ok := m.entries[chatID]
	if !ok {
		symbols = make(map[string]time.Time)
		m.entries[chatID] = symbols
	}
	if _, exists := symbols[symbol]; !exists {
		symbols[symbol] = time.Now().UTC()
	}
	return nil
}

func (m *MemoryStore) RemoveWatch(_ context.Context, chatID int64, symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbols, ok := m.entries[chatID]
	if !ok {
		return false, nil
	}
	if _, exists := symbols[symbol]; !exists {
		return false, nil
	}
	delete(symbols, symbol)
	if len(symbols) == 0 {
		delete(m.entries, chatID)
	}
	return true, nil
}

func (m *MemoryStore) ListWatches(_ context.Context, chatID int64) ([]models.WatchEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.list(chatID), nil
}

func (m *MemoryStore) AllWatches(_ context.Context) ([]models.WatchEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chats := make([]int64, 0, len(m.entries))
	for chatID := range m.entries {
		chats = append(chats, chatID)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })

	var all []models.WatchEntry
	for _, chatID := range chats {
		all = append(all, m.list(chatID)...)
	}
	return all, nil
}

// list must be called with the lock held
func (m *MemoryStore) list(chatID int64) []models.WatchEntry {
	symbols := m.entries[chatID]
	out := make([]models.WatchEntry, 0, len(symbols))
	for symbol, created := range symbols {
		out = append(out, models.WatchEntry{ChatID: chatID, Symbol: symbol, CreatedAt: created})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
