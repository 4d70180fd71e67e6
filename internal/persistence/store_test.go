package persistence

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/isle-city/internal/game"
	"github.com/talgya/isle-city/internal/world"
)

func testBlob() *game.SaveBlob {
	island := world.Generate(world.SmallTestConfig())
	return &game.SaveBlob{
		Version: game.SaveVersion,
		Progress: game.Progress{
			PlayerName: "Robin",
			Coins:      12345,
			TotalXP:    600,
			Level:      2,
			LastSave:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		Island: island,
		Buildings: []game.Building{
			{ID: "b1", DefID: "res_capsule", X: 3, Y: 4, Level: 2},
		},
		TimeOfDay: 16.5,
	}
}

func assertBlobEqual(t *testing.T, want, got *game.SaveBlob) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.Progress.Coins, got.Progress.Coins)
	assert.Equal(t, want.Progress.PlayerName, got.Progress.PlayerName)
	assert.True(t, want.Progress.LastSave.Equal(got.Progress.LastSave))
	assert.Equal(t, want.Buildings, got.Buildings)
	assert.Equal(t, want.Island.Grid.Tiles, got.Island.Grid.Tiles)
	assert.InDelta(t, want.TimeOfDay, got.TimeOfDay, 0.001)
}

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	_, found, err := db.Load()
	require.NoError(t, err)
	assert.False(t, found, "fresh database has no save")

	blob := testBlob()
	require.NoError(t, db.Save(blob))

	got, found, err := db.Load()
	require.NoError(t, err)
	require.True(t, found)
	assertBlobEqual(t, blob, got)

	// Saving again replaces the slot rather than stacking rows.
	blob.Progress.Coins = 999
	require.NoError(t, db.Save(blob))
	got, found, err = db.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(999), got.Progress.Coins)
}

func TestSQLiteMeta(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	_, found, err := db.GetMeta("player_id")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.SetMeta("player_id", "u-1"))
	require.NoError(t, db.SetMeta("player_id", "u-2"))

	v, found, err := db.GetMeta("player_id")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "u-2", v)
}

func TestFileRoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nested", "dir", "city.save.zst"))

	_, found, err := f.Load()
	require.NoError(t, err)
	assert.False(t, found, "missing file is not an error")

	blob := testBlob()
	require.NoError(t, f.Save(blob))

	got, found, err := f.Load()
	require.NoError(t, err)
	require.True(t, found)
	assertBlobEqual(t, blob, got)
}

// brokenStore fails every operation, for exercising the fallback chain.
type brokenStore struct{}

func (brokenStore) Save(*game.SaveBlob) error { return errors.New("disk on fire") }
func (brokenStore) Load() (*game.SaveBlob, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (brokenStore) Close() error { return nil }

func TestFallbackUsesLocalWhenPrimaryFails(t *testing.T) {
	local := NewFile(filepath.Join(t.TempDir(), "local.save.zst"))
	fb := &Fallback{Primary: brokenStore{}, Local: local}

	blob := testBlob()
	require.NoError(t, fb.Save(blob), "fallback save absorbs the primary failure")

	got, found, err := fb.Load()
	require.NoError(t, err)
	require.True(t, found)
	assertBlobEqual(t, blob, got)
}

func TestFallbackPrefersPrimary(t *testing.T) {
	dir := t.TempDir()
	primary, err := OpenSQLite(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	local := NewFile(filepath.Join(dir, "local.save.zst"))
	fb := &Fallback{Primary: primary, Local: local}
	defer fb.Close()

	blob := testBlob()
	require.NoError(t, fb.Save(blob))

	// The primary carried the write; the local file was never touched.
	_, found, err := local.Load()
	require.NoError(t, err)
	assert.False(t, found)

	got, found, err := fb.Load()
	require.NoError(t, err)
	require.True(t, found)
	assertBlobEqual(t, blob, got)
}

func TestFallbackEmptyPrimaryFallsThrough(t *testing.T) {
	dir := t.TempDir()
	primary, err := OpenSQLite(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	local := NewFile(filepath.Join(dir, "local.save.zst"))
	fb := &Fallback{Primary: primary, Local: local}
	defer fb.Close()

	blob := testBlob()
	require.NoError(t, local.Save(blob))

	got, found, err := fb.Load()
	require.NoError(t, err)
	require.True(t, found)
	assertBlobEqual(t, blob, got)
}
