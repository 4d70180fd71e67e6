// Package game is the authoritative city state: buildings, economy,
// progression, time of day, placement rules, and save/restore. One Session
// owns everything; all mutation goes through its lock.
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/isle-city/internal/catalog"
	"github.com/talgya/isle-city/internal/world"
)

// Mode is the interaction state machine gating which intents are legal.
type Mode string

const (
	ModeViewing           Mode = "viewing"
	ModeSelectingCategory Mode = "selecting_category"
	ModePlacing           Mode = "placing"
	ModeInspecting        Mode = "inspecting"
)

// Building is one placed instance on the grid. Instances are owned
// exclusively by the session's building list; everything else refers to
// them by id only.
type Building struct {
	ID      string    `json:"id"`
	DefID   string    `json:"def_id"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
	BuiltAt time.Time `json:"built_at"`
	Level   int       `json:"level"`
}

// Ghost is the placement preview at a candidate tile.
type Ghost struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Valid bool `json:"valid"`
}

const (
	startingCoins      = 50000
	defaultPlayerName  = "Mayor"
	xpPerLevel         = 500
	levelRewardCoins   = 1000 // Multiplied by the level reached
	referralReward     = 2500
	xpToCoinRate       = 10
	destroyRefundNum   = 1 // Refund = price * 1/2
	destroyRefundDenom = 2
)

// Session is the single shared game state. Every exported method takes the
// session lock, so the three periodic ticks and user intents serialize
// against each other (one logical game session lock).
type Session struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	island  *world.Island

	buildings []*Building
	index     map[string]*Building

	progress Progress
	economy  Economy

	mode             Mode
	selectedCategory catalog.Category
	selectedDefID    string
	selectedID       string // Inspected instance id
	movingID         string // Instance being relocated, "" when none

	ghost   *Ghost
	effects []Effect
	hour    float64

	notes []Notification

	now func() time.Time
}

// NewSession creates a fresh session over a generated island.
func NewSession(cat *catalog.Catalog, island *world.Island) *Session {
	s := &Session{
		catalog: cat,
		island:  island,
		index:   make(map[string]*Building),
		mode:    ModeViewing,
		hour:    12,
		progress: Progress{
			PlayerName: defaultPlayerName,
			Coins:      startingCoins,
			Level:      1,
		},
		now: time.Now,
	}
	s.recomputeEconomy()
	return s
}

// SetClock overrides the wall clock, for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Catalog returns the immutable building catalog.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SelectCategory opens or closes the construction menu. A nil category
// returns to viewing.
func (s *Session) SelectCategory(cat catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategory = cat
	if cat == "" {
		if s.mode == ModeSelectingCategory {
			s.setModeLocked(ModeViewing)
		}
		return
	}
	s.setModeLocked(ModeSelectingCategory)
}

// SelectBuildingDef picks a definition to place. An empty id cancels back
// to viewing. Selecting a definition always starts a fresh placement, never
// a move.
func (s *Session) SelectBuildingDef(defID string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if defID == "" {
		s.selectedDefID = ""
		s.setModeLocked(ModeViewing)
		return ok()
	}
	if s.catalog.Get(defID) == nil {
		return fail(ReasonMissingDefinition)
	}
	s.selectedDefID = defID
	s.selectedID = ""
	s.movingID = ""
	s.ghost = nil
	s.setModeLocked(ModePlacing)
	return ok()
}

// SelectInstance inspects a placed building. Ignored while placing, so a
// tap on the map during placement cannot hijack the mode. An empty id
// clears the selection.
func (s *Session) SelectInstance(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModePlacing {
		return fail(ReasonWrongMode)
	}
	if id == "" {
		s.selectedID = ""
		s.setModeLocked(ModeViewing)
		return ok()
	}
	if _, found := s.index[id]; !found {
		return fail(ReasonMissingInstance)
	}
	s.selectedID = id
	s.setModeLocked(ModeInspecting)
	return ok()
}

// CancelBuilding leaves placement mode, dropping the ghost and any
// move-in-progress.
func (s *Session) CancelBuilding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDefID = ""
	s.setModeLocked(ModeViewing)
}

// setModeLocked transitions the mode FSM and synchronously clears the
// transient state the new mode must not inherit. Caller holds the lock.
func (s *Session) setModeLocked(m Mode) {
	if m != ModePlacing {
		s.ghost = nil
		s.movingID = ""
	}
	if m != ModeInspecting {
		s.selectedID = ""
	}
	s.mode = m
}

// lookup resolves an instance id. Caller holds the lock.
func (s *Session) lookup(id string) *Building {
	return s.index[id]
}

func (s *Session) addBuilding(b *Building) {
	s.buildings = append(s.buildings, b)
	s.index[b.ID] = b
}

func (s *Session) removeBuilding(id string) {
	delete(s.index, id)
	for i, b := range s.buildings {
		if b.ID == id {
			s.buildings = append(s.buildings[:i], s.buildings[i+1:]...)
			return
		}
	}
}

func (s *Session) pushNote(n Notification) {
	s.notes = append(s.notes, n)
}

// CloseNotification dismisses the oldest pending modal notification.
func (s *Session) CloseNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) > 0 {
		s.notes = s.notes[1:]
	}
}

func newInstanceID() string {
	return uuid.NewString()
}
