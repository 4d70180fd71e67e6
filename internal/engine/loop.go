// Package engine drives the periodic simulation work: the time-of-day
// clock, income application, and autosave, scheduled as layers of a single
// fixed-interval loop.
package engine

import (
	"log/slog"
	"time"
)

// Default cadence. The base step drives the clock; the slower layers fire
// on multiples of it.
const (
	DefaultInterval      = 100 * time.Millisecond
	DefaultIncomeEvery   = 10 * time.Second
	DefaultAutosaveEvery = 30 * time.Second
)

// Loop runs the periodic layers against the shared session. Each layer is
// idempotent per firing and serializes on the session lock internally, so
// skipping a beat under load is safe.
type Loop struct {
	Interval      time.Duration
	IncomeEvery   time.Duration
	AutosaveEvery time.Duration

	// Callbacks wired during setup. OnStep advances the clock; OnIncome
	// applies one income tick; OnAutosave persists a snapshot
	// (fire-and-forget — it must not block the loop on slow I/O).
	OnStep     func()
	OnIncome   func()
	OnAutosave func()

	stop chan struct{}
}

// NewLoop creates a loop with the default cadence.
func NewLoop() *Loop {
	return &Loop{
		Interval:      DefaultInterval,
		IncomeEvery:   DefaultIncomeEvery,
		AutosaveEvery: DefaultAutosaveEvery,
		stop:          make(chan struct{}),
	}
}

// Run blocks until Stop is called, firing each layer at its cadence.
func (l *Loop) Run() {
	incomeStride := stride(l.IncomeEvery, l.Interval)
	autosaveStride := stride(l.AutosaveEvery, l.Interval)

	slog.Info("engine loop started",
		"interval", l.Interval,
		"income_every", l.IncomeEvery,
		"autosave_every", l.AutosaveEvery,
	)

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case <-l.stop:
			slog.Info("engine loop stopped", "ticks", tick)
			return
		case <-ticker.C:
			tick++
			if l.OnStep != nil {
				l.OnStep()
			}
			if tick%incomeStride == 0 && l.OnIncome != nil {
				l.OnIncome()
			}
			if tick%autosaveStride == 0 && l.OnAutosave != nil {
				l.OnAutosave()
			}
		}
	}
}

// Stop halts the loop. Safe to call once from any goroutine.
func (l *Loop) Stop() {
	close(l.stop)
}

// stride converts a layer period to a step multiple, minimum 1.
func stride(period, interval time.Duration) uint64 {
	if period <= interval {
		return 1
	}
	return uint64(period / interval)
}
