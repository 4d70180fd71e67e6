package game

import "github.com/talgya/isle-city/internal/catalog"

// CanPlace validates a footprint at (x, y): bounds, then terrain (grass or
// sand on every covered cell), then axis-aligned collision against existing
// instances. ignoreID excludes one instance from the collision check — used
// while relocating a building over its own prior footprint. Pure: no side
// effects, safe to call on every pointer move.
func (s *Session) CanPlace(def *catalog.Definition, x, y int, ignoreID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canPlaceLocked(def, x, y, ignoreID)
}

func (s *Session) canPlaceLocked(def *catalog.Definition, x, y int, ignoreID string) bool {
	grid := s.island.Grid
	if x < 0 || y < 0 || x+def.Width > grid.Width || y+def.Height > grid.Height {
		return false
	}
	for j := 0; j < def.Height; j++ {
		for i := 0; i < def.Width; i++ {
			if !grid.Buildable(x+i, y+j) {
				return false
			}
		}
	}
	for _, b := range s.buildings {
		if b.ID == ignoreID {
			continue
		}
		other := s.catalog.Get(b.DefID)
		if other == nil {
			continue
		}
		if x < b.X+other.Width && x+def.Width > b.X &&
			y < b.Y+other.Height && y+def.Height > b.Y {
			return false
		}
	}
	return true
}

// SetGhostPosition moves the placement preview to a candidate tile and
// revalidates it with the same checks a real placement uses. Only
// meaningful while placing.
func (s *Session) SetGhostPosition(x, y int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModePlacing {
		return fail(ReasonWrongMode)
	}
	def := s.catalog.Get(s.selectedDefID)
	if def == nil {
		return fail(ReasonMissingDefinition)
	}
	s.ghost = &Ghost{
		X:     x,
		Y:     y,
		Valid: s.canPlaceLocked(def, x, y, s.movingID),
	}
	return ok()
}

// GhostPosition returns the current preview, or nil when none is set.
func (s *Session) GhostPosition() *Ghost {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ghost == nil {
		return nil
	}
	g := *s.ghost
	return &g
}
