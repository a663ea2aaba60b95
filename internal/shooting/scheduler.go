// Package shooting drives the bullet patterns: it alternates between an active
// phase that fires one pattern on a fixed cadence and a pause, moving on to the
// next pattern after every pause.
package shooting

import (
	"fmt"
	"log"

	"bullethell/internal/config"
	"bullethell/internal/pattern"

	"github.com/deeean/go-vector/vector3"
)

// Tolerance for phase timers built from many small float deltas
const phaseEpsilon = 1e-9

// Handle identifies a spawned projectile. Zero means nothing was spawned.
type Handle uint64

// Spawner creates projectiles and destroys them after their lifetime.
type Spawner interface {
	Spawn(req pattern.SpawnRequest) Handle
}

// DisplaySink shows the running bullet counter.
type DisplaySink interface {
	SetText(text string)
}

// SpawnPoint is where bullets originate, usually a point on a ship.
type SpawnPoint interface {
	SpawnPosition() vector3.Vector3
}

// TransitionListener is notified on phase changes.
type TransitionListener interface {
	OnPhaseChange(from, to Phase, next pattern.ID)
}

// Scheduler owns a FiringState and advances it once per Tick.
type Scheduler struct {
	name     string
	settings config.ShootingConfig
	state    FiringState

	spawner  Spawner
	point    SpawnPoint
	display  DisplaySink
	listener TransitionListener

	degraded bool
}

// Option configures optional collaborators.
type Option func(*Scheduler)

// WithDisplay attaches the bullet counter sink.
func WithDisplay(d DisplaySink) Option {
	return func(s *Scheduler) { s.display = d }
}

// WithListener attaches a phase transition listener.
func WithListener(l TransitionListener) Option {
	return func(s *Scheduler) { s.listener = l }
}

// WithName labels log lines from this scheduler.
func WithName(name string) Option {
	return func(s *Scheduler) { s.name = name }
}

// NewScheduler creates a scheduler. A nil spawner or spawn point is logged and
// leaves the scheduler in degraded mode where phases advance but nothing fires.
func NewScheduler(settings config.ShootingConfig, spawner Spawner, point SpawnPoint, opts ...Option) *Scheduler {
	s := &Scheduler{
		name:     "ship",
		settings: settings,
		state:    NewFiringState(),
		spawner:  spawner,
		point:    point,
	}
	for _, opt := range opts {
		opt(s)
	}

	if spawner == nil || point == nil {
		log.Printf("Error: %s: critical references are missing (spawner=%t, spawn point=%t), firing disabled",
			s.name, spawner != nil, point != nil)
		s.degraded = true
	}
	if err := settings.Validate(); err != nil {
		log.Printf("Warning: %s: %v", s.name, err)
	}

	return s
}

// Tick advances the scheduler by dt seconds.
func (s *Scheduler) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	st := &s.state
	st.Clock += dt
	st.PhaseTimer += dt

	if st.Phase == Paused {
		if st.PhaseTimer+phaseEpsilon >= s.settings.PauseDuration {
			st.Phase = Active
			st.PhaseTimer = 0
			st.Pattern = st.Pattern.Next()
			s.notify(Paused, Active)
		}
		return
	}

	if st.PhaseTimer+phaseEpsilon >= s.settings.PatternDuration {
		st.Phase = Paused
		st.PhaseTimer = 0
		s.notify(Active, Paused)
		return
	}

	if st.Clock >= st.NextFireTime {
		s.fire()
		st.NextFireTime = st.Clock + s.settings.FireRate
	}
}

// fire runs the active pattern once and hands its bullets to the spawner.
func (s *Scheduler) fire() {
	if s.degraded {
		return
	}
	gen, ok := pattern.Lookup(s.state.Pattern)
	if !ok {
		log.Printf("Warning: %s: unknown pattern %d, resetting", s.name, s.state.Pattern)
		s.state.Pattern = pattern.RotatingRing
		return
	}

	res := gen(s.state.GlobalOffset, s.params())
	for _, req := range res.Requests {
		s.spawner.Spawn(req)
		s.state.BulletCount++
	}
	s.state.GlobalOffset = res.NextOffset
	s.state.Invocations++

	if s.display != nil {
		s.display.SetText(CounterText(s.state.BulletCount))
	}
}

func (s *Scheduler) params() pattern.Params {
	return pattern.Params{
		Origin:           s.point.SpawnPosition(),
		SpawnOffset:      s.settings.SpawnOffset,
		Speed:            s.settings.BulletSpeed,
		Lifetime:         s.settings.BulletLifetime,
		BulletsPerCircle: s.settings.BulletsPerCircle,
		StarPoints:       s.settings.StarPoints,
		StarLength:       s.settings.StarLength,
	}
}

func (s *Scheduler) notify(from, to Phase) {
	if s.listener != nil {
		s.listener.OnPhaseChange(from, to, s.state.Pattern)
	}
}

// CounterText formats the bullet counter the way the HUD shows it.
func CounterText(count int) string {
	return fmt.Sprintf("Bullets Fired: %d", count)
}

// State returns a copy of the current firing state.
func (s *Scheduler) State() FiringState {
	return s.state
}

// Degraded reports whether firing is disabled because of missing references.
func (s *Scheduler) Degraded() bool {
	return s.degraded
}

// Name returns the scheduler's log label.
func (s *Scheduler) Name() string {
	return s.name
}

// Settings returns the tunables the scheduler was built with.
func (s *Scheduler) Settings() config.ShootingConfig {
	return s.settings
}
