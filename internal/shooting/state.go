package shooting

import "bullethell/internal/pattern"

// Phase is the scheduler's current segment of the firing cycle.
type Phase int

const (
	Active Phase = iota
	Paused
)

func (p Phase) String() string {
	if p == Paused {
		return "paused"
	}
	return "active"
}

// FiringState is the per-ship mutable state of the scheduler.
type FiringState struct {
	Phase        Phase
	PhaseTimer   float64 // Seconds spent in the current phase
	Pattern      pattern.ID
	Clock        float64 // Seconds since the scheduler started
	NextFireTime float64
	GlobalOffset float64 // Degrees
	BulletCount  int
	Invocations  int
}

// NewFiringState returns the state a fresh scheduler starts from.
func NewFiringState() FiringState {
	return FiringState{
		Phase:   Active,
		Pattern: pattern.RotatingRing,
	}
}
