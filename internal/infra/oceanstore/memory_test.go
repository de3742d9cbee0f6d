package oceanstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/domain/risk"
)

func TestMemoryConditionsRoundTrip(t *testing.T) {
	m := NewMemory(10)
	ctx := context.Background()

	_, ok, err := m.GetConditions(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	views := []ocean.SiteView{{Risk: risk.FromLevel(risk.LevelLow)}}
	require.NoError(t, m.SaveConditions(ctx, views, time.Minute))

	got, ok, err := m.GetConditions(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, views, got)
}

func TestMemoryEntriesExpire(t *testing.T) {
	m := NewMemory(10)
	current := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, m.SaveConditions(ctx, []ocean.SiteView{}, 5*time.Minute))

	current = current.Add(4 * time.Minute)
	_, ok, err := m.GetConditions(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok, err = m.GetConditions(ctx)
	require.NoError(t, err)
	require.False(t, ok, "entry must expire after its TTL")
	require.Equal(t, 0, m.Len())
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	m := NewMemory(3)
	current := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		current = current.Add(time.Second)
		require.NoError(t, m.SaveHistory(ctx, fmt.Sprintf("site-%d", i), 30, []ocean.HistoricalPoint{}, time.Hour))
	}

	// Touch site-0 so site-1 becomes the eviction candidate.
	current = current.Add(time.Second)
	_, ok, err := m.GetHistory(ctx, "site-0", 30)
	require.NoError(t, err)
	require.True(t, ok)

	current = current.Add(time.Second)
	require.NoError(t, m.SaveHistory(ctx, "site-3", 30, []ocean.HistoricalPoint{}, time.Hour))
	require.Equal(t, 3, m.Len())

	_, ok, _ = m.GetHistory(ctx, "site-1", 30)
	require.False(t, ok, "least recently used entry must be evicted")
	_, ok, _ = m.GetHistory(ctx, "site-0", 30)
	require.True(t, ok)
}

func TestMemoryClearWipesEverything(t *testing.T) {
	m := NewMemory(10)
	ctx := context.Background()

	require.NoError(t, m.SaveConditions(ctx, []ocean.SiteView{}, time.Minute))
	require.NoError(t, m.SaveHistory(ctx, "hanauma-bay", 30, []ocean.HistoricalPoint{}, time.Minute))
	require.NoError(t, m.SaveStatistics(ctx, "hanauma-bay", 30, ocean.SiteStatistics{}, time.Minute))
	require.NoError(t, m.SaveAlerts(ctx, []alerts.Alert{{ID: "a"}}, time.Minute))
	require.Equal(t, 4, m.Len())

	require.NoError(t, m.Clear(ctx))
	require.Equal(t, 0, m.Len())

	_, ok, _ := m.GetAlerts(ctx)
	require.False(t, ok)
}

func TestMemoryHistoryKeyedByWindow(t *testing.T) {
	m := NewMemory(10)
	ctx := context.Background()

	require.NoError(t, m.SaveHistory(ctx, "hanauma-bay", 30, []ocean.HistoricalPoint{{}}, time.Minute))

	_, ok, _ := m.GetHistory(ctx, "hanauma-bay", 60)
	require.False(t, ok, "different windows are distinct cache entries")
	_, ok, _ = m.GetHistory(ctx, "hanauma-bay", 30)
	require.True(t, ok)
}
