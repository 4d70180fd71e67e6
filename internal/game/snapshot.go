package game

import (
	"fmt"
	"time"

	"github.com/talgya/isle-city/internal/world"
)

// SaveVersion is bumped when the blob schema changes incompatibly.
const SaveVersion = 1

// Offline reconciliation bounds: nothing is credited below the floor, and
// elapsed time is capped so a long absence cannot mint unbounded coins.
const (
	offlineMinElapsed = 5 * time.Minute
	offlineMaxElapsed = 24 * time.Hour
	offlineXPPercent  = 5
)

// SaveBlob is the complete serialized session. Its schema is the data
// model itself; Restore is the only load path (no partial merges).
type SaveBlob struct {
	Version   int           `json:"version"`
	Progress  Progress      `json:"progress"`
	Island    *world.Island `json:"island"`
	Buildings []Building    `json:"buildings"`
	TimeOfDay float64       `json:"time_of_day"`
}

// Snapshot serializes the session, stamping the save time.
func (s *Session) Snapshot() *SaveBlob {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.LastSave = s.now()

	buildings := make([]Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		buildings = append(buildings, *b)
	}
	return &SaveBlob{
		Version:   SaveVersion,
		Progress:  s.progress,
		Island:    s.island,
		Buildings: buildings,
		TimeOfDay: s.hour,
	}
}

// Restore replaces the whole session state from a blob and reconciles
// offline earnings: income for the capped elapsed time since the last
// save, plus 5% of those coins as XP, credited atomically with a single
// offline notification. Transient state (mode, ghost, selection, effects)
// resets to a clean viewing session.
func (s *Session) Restore(blob *SaveBlob) error {
	if blob == nil {
		return fmt.Errorf("restore: nil blob")
	}
	if blob.Version != SaveVersion {
		return fmt.Errorf("restore: unsupported save version %d", blob.Version)
	}
	if blob.Island == nil || blob.Island.Grid == nil {
		return fmt.Errorf("restore: blob has no island")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.island = blob.Island
	s.progress = blob.Progress
	s.buildings = s.buildings[:0]
	s.index = make(map[string]*Building, len(blob.Buildings))
	for i := range blob.Buildings {
		b := blob.Buildings[i]
		if b.Level < 1 {
			b.Level = 1
		}
		s.addBuilding(&b)
	}
	s.hour = blob.TimeOfDay
	for s.hour >= 24 {
		s.hour -= 24
	}
	if s.hour < 0 {
		s.hour = 0
	}

	// Level is derived from lifetime XP but never allowed to regress below
	// what the save recorded.
	if derived := levelForXP(s.progress.TotalXP); derived > s.progress.Level {
		s.progress.Level = derived
	}
	if s.progress.Level < 1 {
		s.progress.Level = 1
	}

	s.effects = nil
	s.notes = nil
	s.ghost = nil
	s.selectedDefID = ""
	s.selectedCategory = ""
	s.mode = ModeViewing
	s.movingID = ""
	s.selectedID = ""

	s.recomputeEconomy()
	s.reconcileOfflineLocked()
	return nil
}

// reconcileOfflineLocked credits the income earned while the session was
// not running. Caller holds the lock; the economy snapshot must already be
// recomputed.
func (s *Session) reconcileOfflineLocked() {
	if s.progress.LastSave.IsZero() {
		return
	}
	elapsed := s.now().Sub(s.progress.LastSave)
	if elapsed < offlineMinElapsed {
		return
	}
	if elapsed > offlineMaxElapsed {
		elapsed = offlineMaxElapsed
	}

	minutes := int64(elapsed / time.Minute)
	coins := s.economy.IncomePerTick * minutes
	if coins <= 0 {
		return
	}
	xp := coins * offlineXPPercent / 100

	s.progress.Coins += coins
	if xp > 0 {
		s.addXPLocked(xp)
	}
	s.pushNote(Notification{
		Kind:           NoteOffline,
		Coins:          coins,
		XP:             xp,
		ElapsedSeconds: int64(elapsed / time.Second),
	})
}

// MarkSaved records a successful persistence write time without building
// a blob. Used after fire-and-forget saves driven by the engine.
func (s *Session) MarkSaved(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.LastSave = at
}
