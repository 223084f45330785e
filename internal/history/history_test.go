package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/banshee-data/gridfit/internal/timeutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) (*DB, *timeutil.MockClock) {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := timeutil.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	db.Clock = clock
	return db, clock
}

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := Open(path)
	require.NoError(t, err)

	version, dirty, err := db.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, db.Close())

	// Reopening an up-to-date database is a no-op.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	version, _, err = db.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestRecord_AssignsIDAndTime(t *testing.T) {
	db, clock := openTest(t)
	ctx := context.Background()

	e, err := db.Record(ctx, Entry{Project: "kitchen", Component: "bin-2x2x3", Kind: "bin", Path: "projects/kitchen/bin-2x2x3.stl", SizeBytes: 1234})
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, clock.Now(), e.CreatedAt)

	got, err := db.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e, got[0])
}

func TestRecord_Validation(t *testing.T) {
	db, _ := openTest(t)
	_, err := db.Record(context.Background(), Entry{Kind: "bin"})
	assert.Error(t, err)
}

func TestList_OrderFilterLimit(t *testing.T) {
	db, clock := openTest(t)
	ctx := context.Background()

	record := func(project, component string) {
		_, err := db.Record(ctx, Entry{Project: project, Component: component, Kind: "baseplate", Path: component + ".stl"})
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	record("kitchen", "a")
	record("", "b")
	record("kitchen", "c")
	record("garage", "d")

	names := func(entries []Entry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.Component)
		}
		return out
	}

	all, err := db.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b", "a"}, names(all))

	kitchen, err := db.List(ctx, "kitchen", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, names(kitchen))

	limited, err := db.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, names(limited))

	none, err := db.List(ctx, "attic", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestList_SameTimestampKeepsInsertOrder(t *testing.T) {
	db, _ := openTest(t)
	ctx := context.Background()

	for _, name := range []string{"plate-1", "plate-2", "plate-3"} {
		_, err := db.Record(ctx, Entry{Component: "kit", Kind: "drawer-fit", Path: name + ".stl"})
		require.NoError(t, err)
	}

	got, err := db.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "plate-3.stl", got[0].Path)
	assert.Equal(t, "plate-1.stl", got[2].Path)
}
