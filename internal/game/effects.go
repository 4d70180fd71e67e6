package game

import "time"

// EffectKind identifies a transient visual effect.
type EffectKind string

// EffectDestroy marks a demolition puff at a former building site.
const EffectDestroy EffectKind = "destroy"

// effectLifetime bounds how long an effect record survives, so the list
// can never grow without bound.
const effectLifetime = 800 * time.Millisecond

// Effect is a time-boxed, purely cosmetic record the renderer animates.
type Effect struct {
	ID    string     `json:"id"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Kind  EffectKind `json:"kind"`
	Start time.Time  `json:"start"`
}

// spawnEffectLocked registers a new effect, pruning any that have already
// expired. Caller holds the lock.
func (s *Session) spawnEffectLocked(kind EffectKind, x, y int) {
	now := s.now()
	s.pruneEffectsLocked(now)
	s.effects = append(s.effects, Effect{
		ID:    newInstanceID(),
		X:     x,
		Y:     y,
		Kind:  kind,
		Start: now,
	})
}

func (s *Session) pruneEffectsLocked(now time.Time) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if now.Sub(e.Start) < effectLifetime {
			kept = append(kept, e)
		}
	}
	s.effects = kept
}

// Effects returns the live effect records, pruning expired ones first.
func (s *Session) Effects() []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneEffectsLocked(s.now())
	out := make([]Effect, len(s.effects))
	copy(out, s.effects)
	return out
}
