package game

import (
	"github.com/talgya/isle-city/internal/catalog"
	"github.com/talgya/isle-city/internal/world"
)

// PlacedView is a building instance with its definition resolved, as the
// renderer consumes it.
type PlacedView struct {
	Building
	Def *catalog.Definition `json:"def"`
}

// RenderState is the read-only snapshot the renderer and HUD consume. It
// is built fresh on every call; mutating it has no effect on the session.
type RenderState struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Tiles       [][]world.TileKind `json:"tiles"`
	Decorations []world.Decoration `json:"decorations"`
	Buildings   []PlacedView       `json:"buildings"`
	Effects     []Effect           `json:"effects"`

	Mode             Mode             `json:"mode"`
	SelectedCategory catalog.Category `json:"selected_category,omitempty"`
	SelectedDefID    string           `json:"selected_def_id,omitempty"`
	SelectedID       string           `json:"selected_id,omitempty"`
	MovingID         string           `json:"moving_id,omitempty"`
	Ghost            *Ghost           `json:"ghost,omitempty"`

	Hour    float64 `json:"hour"`
	IsNight bool    `json:"is_night"`
	Ambient Ambient `json:"ambient"`

	Economy  Economy  `json:"economy"`
	Progress Progress `json:"progress"`

	Notification *Notification `json:"notification,omitempty"`
}

// RenderState captures the full presentable state under one lock hold.
func (s *Session) RenderState() *RenderState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneEffectsLocked(s.now())

	grid := s.island.Grid
	tiles := make([][]world.TileKind, grid.Height)
	for y := range tiles {
		tiles[y] = make([]world.TileKind, grid.Width)
		copy(tiles[y], grid.Tiles[y])
	}

	decorations := make([]world.Decoration, len(s.island.Decorations))
	copy(decorations, s.island.Decorations)

	buildings := make([]PlacedView, 0, len(s.buildings))
	for _, b := range s.buildings {
		buildings = append(buildings, PlacedView{Building: *b, Def: s.catalog.Get(b.DefID)})
	}

	effects := make([]Effect, len(s.effects))
	copy(effects, s.effects)

	rs := &RenderState{
		Width:            grid.Width,
		Height:           grid.Height,
		Tiles:            tiles,
		Decorations:      decorations,
		Buildings:        buildings,
		Effects:          effects,
		Mode:             s.mode,
		SelectedCategory: s.selectedCategory,
		SelectedDefID:    s.selectedDefID,
		SelectedID:       s.selectedID,
		MovingID:         s.movingID,
		Hour:             s.hour,
		IsNight:          isNight(s.hour),
		Ambient:          AmbientAt(s.hour),
		Economy:          s.economy,
		Progress:         s.progress,
	}
	if s.ghost != nil {
		g := *s.ghost
		rs.Ghost = &g
	}
	if len(s.notes) > 0 {
		n := s.notes[0]
		rs.Notification = &n
	}
	return rs
}

// Buildings returns a copy of the instance list.
func (s *Session) Buildings() []Building {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		out = append(out, *b)
	}
	return out
}
