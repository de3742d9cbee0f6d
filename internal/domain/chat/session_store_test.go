package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreCapsHistory(t *testing.T) {
	store := NewSessionStore(20)
	for i := 0; i < 30; i++ {
		store.Append("s1", "user", fmt.Sprintf("message %d", i))
	}

	history := store.History("s1")
	require.Len(t, history, 20)
	require.Equal(t, "message 10", history[0].Content)
	require.Equal(t, "message 29", history[19].Content)
}

func TestSessionStoreHistoryIsCopy(t *testing.T) {
	store := NewSessionStore(20)
	store.Append("s1", "user", "hello")

	history := store.History("s1")
	history[0].Content = "mutated"
	require.Equal(t, "hello", store.History("s1")[0].Content)
}

func TestSessionStorePidginSticky(t *testing.T) {
	store := NewSessionStore(20)
	require.False(t, store.IsPidgin("s1"))
	store.MarkPidgin("s1")
	require.True(t, store.IsPidgin("s1"))
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore(20)
	store.Append("s1", "user", "hello")

	require.True(t, store.Delete("s1"))
	require.False(t, store.Delete("s1"))
	require.Empty(t, store.History("s1"))
}

func TestSessionStoreSweep(t *testing.T) {
	store := NewSessionStore(20)
	current := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Append("old", "user", "hello")
	current = current.Add(25 * time.Hour)
	store.Append("fresh", "user", "hello")

	removed := store.Sweep(24 * time.Hour)
	require.Equal(t, 1, removed)
	require.Equal(t, 1, store.Len())
	require.NotEmpty(t, store.History("fresh"))
	require.Empty(t, store.History("old"))
}
