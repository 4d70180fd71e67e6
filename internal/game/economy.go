package game

import "math"

// Economy is the derived population/income snapshot. It is rebuilt from the
// full building list after every mutation that can affect it — never
// patched incrementally — so any inconsistency self-heals on the next
// recompute.
type Economy struct {
	TotalHousing    int   `json:"total_housing"`
	WorkersRequired int   `json:"workers_required"`
	FreeWorkers     int   `json:"free_workers"`
	IncomePerTick   int64 `json:"income_per_tick"`
}

// housingAt returns the housing capacity a definition supplies at a level.
func housingAt(population, level int) int {
	if population <= 0 {
		return 0
	}
	return population * level
}

// workersAt returns the worker requirement a definition imposes at a level.
func workersAt(population, level int) int {
	if population >= 0 {
		return 0
	}
	return -population * level
}

// incomeAt returns a definition's income contribution at a level:
// floor(base * (1 + (level-1)*0.5)).
func incomeAt(base int64, level int) int64 {
	v := int64(math.Floor(float64(base) * (1 + float64(level-1)*0.5)))
	if v < 0 {
		return 0
	}
	return v
}

// recomputeEconomy rebuilds the snapshot from scratch. Caller holds the
// session lock.
func (s *Session) recomputeEconomy() {
	var e Economy
	for _, b := range s.buildings {
		def := s.catalog.Get(b.DefID)
		if def == nil {
			continue // Stale definition id in a loaded save; skip, don't crash.
		}
		e.TotalHousing += housingAt(def.Population, b.Level)
		e.WorkersRequired += workersAt(def.Population, b.Level)
		e.IncomePerTick += incomeAt(def.Income, b.Level)
	}
	e.FreeWorkers = e.TotalHousing - e.WorkersRequired
	if e.FreeWorkers < 0 {
		e.FreeWorkers = 0
	}
	s.economy = e
}

// Economy returns the current derived snapshot.
func (s *Session) Economy() Economy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy
}

// hasMoney reports whether the player can afford a cost. Caller holds the
// lock.
func (s *Session) hasMoney(cost int64) bool {
	return s.progress.Coins >= cost
}

// hasWorkers reports whether the current free-worker pool can absorb an
// additional requirement of n workers. Caller holds the lock.
func (s *Session) hasWorkers(n int) bool {
	return s.economy.FreeWorkers >= n
}

// ApplyIncome credits one income tick's worth of coins. Called by the
// engine loop; a no-op when the city earns nothing.
func (s *Session) ApplyIncome() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	earned := s.economy.IncomePerTick
	if earned > 0 {
		s.progress.Coins += earned
	}
	s.pruneEffectsLocked(s.now())
	return earned
}
