package game

// Time-of-day cycle. The hour is a float in [0, 24) advanced by the engine
// loop; everything light-related derives deterministically from it so a
// restored save replays identically.

// Day/night phase boundaries. The ambient curve and the IsNight boolean
// use the same thresholds everywhere.
const (
	hourSunriseStart = 6.0
	hourDayStart     = 8.0
	hourSunsetStart  = 17.0
	hourNightStart   = 19.0

	// ClockStep is the default hour increment per engine step (100 ms),
	// giving a full day in roughly 12 minutes of real time.
	ClockStep = 0.00333
)

// LightPhase names a segment of the ambient light curve.
type LightPhase string

const (
	PhaseSunrise LightPhase = "sunrise"
	PhaseDay     LightPhase = "day"
	PhaseSunset  LightPhase = "sunset"
	PhaseNight   LightPhase = "night"
)

// Ambient describes the lighting state the renderer should show. Blend is
// the progress through a transition phase in [0, 1] (sunrise blends night
// toward day, sunset blends day toward night); it is 1 inside the day and
// night plateaus.
type Ambient struct {
	Phase LightPhase `json:"phase"`
	Blend float64    `json:"blend"`
}

// AdvanceClock moves the hour forward, wrapping at 24.
func (s *Session) AdvanceClock(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hour += delta
	for s.hour >= 24 {
		s.hour -= 24
	}
}

// CycleTime skips six hours ahead — a debug shortcut to preview lighting.
func (s *Session) CycleTime() {
	s.AdvanceClock(6)
}

// Hour returns the current time of day in [0, 24).
func (s *Session) Hour() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hour
}

// IsNight reports whether the city is in its night segment.
func (s *Session) IsNight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return isNight(s.hour)
}

func isNight(hour float64) bool {
	return hour >= hourNightStart || hour < hourSunriseStart
}

// AmbientAt derives the light phase and blend factor for an hour.
func AmbientAt(hour float64) Ambient {
	switch {
	case hour >= hourSunriseStart && hour < hourDayStart:
		return Ambient{
			Phase: PhaseSunrise,
			Blend: (hour - hourSunriseStart) / (hourDayStart - hourSunriseStart),
		}
	case hour >= hourDayStart && hour < hourSunsetStart:
		return Ambient{Phase: PhaseDay, Blend: 1}
	case hour >= hourSunsetStart && hour < hourNightStart:
		return Ambient{
			Phase: PhaseSunset,
			Blend: (hour - hourSunsetStart) / (hourNightStart - hourSunsetStart),
		}
	default:
		return Ambient{Phase: PhaseNight, Blend: 1}
	}
}
