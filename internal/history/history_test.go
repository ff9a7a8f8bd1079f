package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	assert.NoError(t, store.Record("place", "milk_20250310_120000", "milk", 2, 1))
	assert.NoError(t, store.Record("retrieve", "milk_20250310_120000", "milk", 2, 1))

	events, err := store.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "retrieve", events[0].Action)
	assert.Equal(t, "place", events[1].Action)
	assert.Equal(t, "milk", events[0].ItemName)
	assert.Equal(t, 2, events[0].Level)
	assert.Equal(t, 1, events[0].Section)
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		assert.NoError(t, store.Record("place", "item", "item", 0, i))
	}

	events, err := store.Recent(3)
	assert.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestStore_RecentEmpty(t *testing.T) {
	store := openTestStore(t)

	events, err := store.Recent(10)
	assert.NoError(t, err)
	assert.Empty(t, events)
}
