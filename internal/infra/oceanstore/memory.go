package oceanstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
)

const (
	conditionsKey = "current_conditions"
	alertsKey     = "active_alerts"
)

type entry struct {
	payload    any
	expiresAt  time.Time
	lastAccess time.Time
}

// Memory is an in-process cache for derived views. Entries expire after
// their TTL; when the cache is full the least recently used entry is
// evicted. Values are stored whole and published under one lock so readers
// never observe a partially built snapshot.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

var (
	_ ocean.Store  = (*Memory)(nil)
	_ alerts.Cache = (*Memory)(nil)
)

// NewMemory constructs the cache with a hard entry cap.
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	now := m.now()
	if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	e.lastAccess = now
	m.entries[key] = e
	return e.payload, true
}

func (m *Memory) set(key string, payload any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictOldest()
	}
	m.entries[key] = entry{payload: payload, expiresAt: exp, lastAccess: now}
}

// evictOldest drops the least recently used entry. Called with the lock held.
func (m *Memory) evictOldest() {
	var (
		oldestKey  string
		oldestSeen time.Time
	)
	for key, e := range m.entries {
		if oldestKey == "" || e.lastAccess.Before(oldestSeen) {
			oldestKey = key
			oldestSeen = e.lastAccess
		}
	}
	if oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}

func (m *Memory) GetConditions(ctx context.Context) ([]ocean.SiteView, bool, error) {
	payload, ok := m.get(conditionsKey)
	if !ok {
		return nil, false, nil
	}
	views, ok := payload.([]ocean.SiteView)
	return views, ok, nil
}

func (m *Memory) SaveConditions(ctx context.Context, views []ocean.SiteView, ttl time.Duration) error {
	m.set(conditionsKey, views, ttl)
	return nil
}

func (m *Memory) GetHistory(ctx context.Context, siteID string, days int) ([]ocean.HistoricalPoint, bool, error) {
	payload, ok := m.get(historyKey(siteID, days))
	if !ok {
		return nil, false, nil
	}
	points, ok := payload.([]ocean.HistoricalPoint)
	return points, ok, nil
}

func (m *Memory) SaveHistory(ctx context.Context, siteID string, days int, points []ocean.HistoricalPoint, ttl time.Duration) error {
	m.set(historyKey(siteID, days), points, ttl)
	return nil
}

func (m *Memory) GetStatistics(ctx context.Context, siteID string, days int) (ocean.SiteStatistics, bool, error) {
	payload, ok := m.get(statsKey(siteID, days))
	if !ok {
		return ocean.SiteStatistics{}, false, nil
	}
	stats, ok := payload.(ocean.SiteStatistics)
	return stats, ok, nil
}

func (m *Memory) SaveStatistics(ctx context.Context, siteID string, days int, stats ocean.SiteStatistics, ttl time.Duration) error {
	m.set(statsKey(siteID, days), stats, ttl)
	return nil
}

func (m *Memory) GetAlerts(ctx context.Context) ([]alerts.Alert, bool, error) {
	payload, ok := m.get(alertsKey)
	if !ok {
		return nil, false, nil
	}
	list, ok := payload.([]alerts.Alert)
	return list, ok, nil
}

func (m *Memory) SaveAlerts(ctx context.Context, list []alerts.Alert, ttl time.Duration) error {
	m.set(alertsKey, list, ttl)
	return nil
}

// Clear wipes every cached view, alerts included.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
	return nil
}

// Len reports the live entry count.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func historyKey(siteID string, days int) string {
	return fmt.Sprintf("history:%s:%d", siteID, days)
}

func statsKey(siteID string, days int) string {
	return fmt.Sprintf("stats:%s:%d", siteID, days)
}
