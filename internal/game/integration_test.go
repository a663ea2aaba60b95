package game

import (
	"testing"

	"bullethell/internal/config"
	"bullethell/internal/pattern"
	"bullethell/internal/shooting"
)

// shippedConfig returns a copy of the config loaded by TestMain
func shippedConfig(t *testing.T) *config.Config {
	t.Helper()
	if config.GlobalConfig == nil {
		t.Fatal("Expected TestMain to load config.yaml")
	}
	cfg := *config.GlobalConfig
	cfg.Ships = append([]config.ShipConfig(nil), config.GlobalConfig.Ships...)
	return &cfg
}

func TestShippedConfigRunsAFullCycle(t *testing.T) {
	cfg := shippedConfig(t)
	g := newTestGame(t, cfg)

	dt := 1.0 / float64(cfg.GetTPS())
	steps := int(3*(cfg.Shooting.PatternDuration+cfg.Shooting.PauseDuration)/dt) + 1
	for i := 0; i < steps; i++ {
		g.Step(dt)
	}

	for i, s := range g.Ships() {
		st := s.Scheduler.State()
		if st.BulletCount == 0 || st.Invocations == 0 {
			t.Errorf("%s: expected the ship to have fired, got %d bullets", s.Name, st.BulletCount)
		}
		if s.Scheduler.Degraded() {
			t.Errorf("%s: expected a fully wired scheduler", s.Name)
		}
		if cfg.Ships[i].Shooting != nil {
			continue
		}
		// three full cycles on the global timings end back on the first pattern
		if st.Pattern != pattern.RotatingRing || st.Phase != shooting.Active {
			t.Errorf("%s: expected to be back on an active rotating ring, got %v %v", s.Name, st.Pattern, st.Phase)
		}
		if s.PatternChanges() != 3 {
			t.Errorf("%s: expected 3 pattern changes, got %d", s.Name, s.PatternChanges())
		}
	}

	if g.Bullets().Active() > cfg.Projectiles.MaxActive {
		t.Errorf("Expected at most %d live bullets, got %d", cfg.Projectiles.MaxActive, g.Bullets().Active())
	}
}

func TestShippedConfigCamerasCycle(t *testing.T) {
	cfg := shippedConfig(t)
	g := newTestGame(t, cfg)

	seen := map[string]bool{}
	dt := 1.0 / float64(cfg.GetTPS())
	steps := int(cfg.Camera.SwitchInterval*float64(len(cfg.Ships))/dt) + 1
	for i := 0; i < steps; i++ {
		if s := g.ActiveShip(); s != nil {
			seen[s.Name] = true
		}
		g.Step(dt)
	}
	if len(seen) != len(cfg.Ships) {
		t.Errorf("Expected every ship camera to be shown, saw %v", seen)
	}
}
