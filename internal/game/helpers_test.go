package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talgya/isle-city/internal/catalog"
	"github.com/talgya/isle-city/internal/world"
)

// flatIsland builds an all-grass grid so placement tests control terrain
// explicitly instead of depending on generator output.
func flatIsland(size int) *world.Island {
	grid := world.NewGrid(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			grid.Tiles[y][x] = world.Grass
		}
	}
	return &world.Island{Grid: grid}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(catalog.Default(), flatIsland(20))
}

// place runs the full placement flow and returns the new instance id.
func place(t *testing.T, s *Session, defID string, x, y int) string {
	t.Helper()
	require.True(t, s.SelectBuildingDef(defID).OK)
	require.True(t, s.SetGhostPosition(x, y).OK)
	res := s.ConfirmBuilding()
	require.True(t, res.OK, "place %s at (%d,%d): refused with %q", defID, x, y, res.Reason)
	bs := s.Buildings()
	return bs[len(bs)-1].ID
}

// fixedClock pins the session clock to a settable instant.
type fixedClock struct {
	at time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{at: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) now() time.Time { return c.at }

func (c *fixedClock) advance(d time.Duration) { c.at = c.at.Add(d) }
