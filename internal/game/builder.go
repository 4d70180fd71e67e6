package game

// Construction intents: commit, upgrade, destroy, and the two-phase move.
// Each either fully applies or leaves state untouched, reporting the reason.

// ConfirmBuilding commits the current ghost: a fresh placement (charging
// the price, awarding build XP) or the second phase of a move (free, no
// XP). Requires placing mode with a valid ghost. On success the session
// returns to viewing and all transient placement state is cleared.
func (s *Session) ConfirmBuilding() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModePlacing {
		return fail(ReasonWrongMode)
	}
	if s.ghost == nil || !s.ghost.Valid {
		return fail(ReasonInvalidPlacement)
	}
	def := s.catalog.Get(s.selectedDefID)
	if def == nil {
		return fail(ReasonMissingDefinition)
	}
	x, y := s.ghost.X, s.ghost.Y

	// Validity can be stale if a competing tick mutated the list between
	// the last ghost update and this confirm; recheck under the same lock.
	if !s.canPlaceLocked(def, x, y, s.movingID) {
		return fail(ReasonInvalidPlacement)
	}

	if s.movingID != "" {
		b := s.lookup(s.movingID)
		if b == nil {
			s.selectedDefID = ""
			s.setModeLocked(ModeViewing)
			return fail(ReasonMissingInstance)
		}
		b.X, b.Y = x, y
		s.selectedDefID = ""
		s.setModeLocked(ModeViewing)
		return ok()
	}

	if !s.hasMoney(def.Price) {
		return fail(ReasonInsufficientFunds)
	}
	if def.RequiresWorkers() && !s.hasWorkers(workersAt(def.Population, 1)) {
		return fail(ReasonInsufficientWorkers)
	}

	s.progress.Coins -= def.Price
	s.addBuilding(&Building{
		ID:      newInstanceID(),
		DefID:   def.ID,
		X:       x,
		Y:       y,
		BuiltAt: s.now(),
		Level:   1,
	})
	s.addXPLocked(def.XP)
	s.recomputeEconomy()
	s.selectedDefID = ""
	s.setModeLocked(ModeViewing)
	return ok()
}

// UpgradeInstance raises a building one level. Cost is
// floor(price * (level+1) * 0.5); XP awarded is xp * level-before. A
// worker-consuming building must find its additional per-level requirement
// in the current free pool.
func (s *Session) UpgradeInstance(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(id)
	if b == nil {
		return fail(ReasonMissingInstance)
	}
	def := s.catalog.Get(b.DefID)
	if def == nil {
		return fail(ReasonMissingDefinition)
	}
	if b.Level >= def.EffectiveMaxLevel() {
		return fail(ReasonMaxLevel)
	}
	cost := def.Price * int64(b.Level+1) / 2
	if !s.hasMoney(cost) {
		return fail(ReasonInsufficientFunds)
	}
	if def.RequiresWorkers() && !s.hasWorkers(-def.Population) {
		return fail(ReasonInsufficientWorkers)
	}

	s.progress.Coins -= cost
	s.addXPLocked(def.XP * int64(b.Level))
	b.Level++
	s.recomputeEconomy()
	return ok()
}

// DestroyInstance removes a building, refunds half its price, and spawns a
// short-lived destruction effect for the renderer. Selection collapses
// back to viewing.
func (s *Session) DestroyInstance(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(id)
	if b == nil {
		return fail(ReasonMissingInstance)
	}
	def := s.catalog.Get(b.DefID)
	if def == nil {
		return fail(ReasonMissingDefinition)
	}

	s.progress.Coins += def.Price * destroyRefundNum / destroyRefundDenom
	s.removeBuilding(id)
	s.spawnEffectLocked(EffectDestroy, b.X, b.Y)
	s.recomputeEconomy()
	s.selectedDefID = ""
	s.setModeLocked(ModeViewing)
	return ok()
}

// StartMoveInstance begins relocating a building: placement mode with the
// instance excluded from its own collision checks and an initial ghost at
// its current position. ConfirmBuilding finishes the move.
func (s *Session) StartMoveInstance(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(id)
	if b == nil {
		return fail(ReasonMissingInstance)
	}
	def := s.catalog.Get(b.DefID)
	if def == nil {
		return fail(ReasonMissingDefinition)
	}

	s.selectedDefID = def.ID
	s.setModeLocked(ModePlacing)
	s.movingID = id
	s.ghost = &Ghost{X: b.X, Y: b.Y, Valid: s.canPlaceLocked(def, b.X, b.Y, id)}
	return ok()
}
