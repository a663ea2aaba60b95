package game

import (
	"errors"
	"testing"
	"time"

	"bullethell/internal/config"
	"bullethell/internal/input"
	"bullethell/internal/pattern"
	"bullethell/internal/projectile"
	"bullethell/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Shooting.FireRate = 1.0
	cfg.Ships = []config.ShipConfig{
		{Name: "A", Position: [3]float64{0, 2, 0}, CameraOrder: 1, Color: [3]int{255, 0, 0}},
		{Name: "B", Position: [3]float64{30, 2, 0}, CameraOrder: 0, Color: [3]int{0, 255, 0}},
	}
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config) *BulletHellGame {
	t.Helper()
	g, err := NewBulletHellGame(cfg)
	if err != nil {
		t.Fatalf("Expected game to build, got %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestNoShipsIsAnError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ships = nil
	if _, err := NewBulletHellGame(cfg); err == nil {
		t.Error("Expected an error without ships")
	}
}

func TestCameraOrderPicksFirstShip(t *testing.T) {
	g := newTestGame(t, testConfig())
	if ship := g.ActiveShip(); ship == nil || ship.Name != "B" {
		t.Fatalf("Expected ship B (camera order 0) to start active, got %+v", ship)
	}
	if err := g.HandleAction(input.NextCamera); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ship := g.ActiveShip(); ship.Name != "A" {
		t.Errorf("Expected ship A after switching, got %s", ship.Name)
	}
}

func TestCameraSwitchesOnInterval(t *testing.T) {
	cfg := testConfig()
	cfg.Camera.SwitchInterval = 1
	g := newTestGame(t, cfg)
	for i := 0; i < 4; i++ {
		g.Step(0.25)
	}
	if ship := g.ActiveShip(); ship.Name != "A" {
		t.Errorf("Expected the timer to switch to ship A, got %s", ship.Name)
	}
}

func TestFirstStepFiresEveryShip(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(1.0 / 60)

	want := 2 * g.config.Shooting.BulletsPerCircle
	if g.Bullets().Active() != want {
		t.Errorf("Expected %d bullets after the first step, got %d", want, g.Bullets().Active())
	}
	for _, s := range g.Ships() {
		if s.Counter.Text() != "Bullets Fired: 6" {
			t.Errorf("%s: expected counter 'Bullets Fired: 6', got %q", s.Name, s.Counter.Text())
		}
	}

	m := g.threading.PerformanceMonitor.GetCurrentMetrics()
	if m.BulletsFired != uint64(want) || m.PatternInvocations != 2 {
		t.Errorf("Expected metrics of %d fired over 2 invocations, got %d over %d", want, m.BulletsFired, m.PatternInvocations)
	}
}

func TestBulletsAreTaggedWithOwner(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(1.0 / 60)

	counts := map[int]int{}
	g.Bullets().Each(func(v projectile.View) { counts[v.Owner]++ })
	if counts[0] != 6 || counts[1] != 6 {
		t.Errorf("Expected 6 bullets per ship, got %v", counts)
	}
}

func TestShipShootingOverride(t *testing.T) {
	cfg := testConfig()
	override := cfg.Shooting
	override.BulletsPerCircle = 10
	cfg.Ships[1].Shooting = &override

	g := newTestGame(t, cfg)
	g.Step(1.0 / 60)
	if got := g.Ships()[1].Scheduler.State().BulletCount; got != 10 {
		t.Errorf("Expected the override to fire 10 bullets, got %d", got)
	}
	if got := g.Ships()[0].Scheduler.State().BulletCount; got != 6 {
		t.Errorf("Expected the global block to fire 6 bullets, got %d", got)
	}
}

func TestBulletsExpire(t *testing.T) {
	cfg := testConfig()
	cfg.Ships = cfg.Ships[:1]
	cfg.Ships[0].CameraOrder = 0
	cfg.Shooting.BulletLifetime = 0.5
	cfg.Shooting.FireRate = 10
	g := newTestGame(t, cfg)

	g.Step(0.1)
	if g.Bullets().Active() != 6 {
		t.Fatalf("Expected 6 bullets, got %d", g.Bullets().Active())
	}
	for i := 0; i < 6; i++ {
		g.Step(0.1)
	}
	if g.Bullets().Active() != 0 {
		t.Errorf("Expected bullets to expire after their lifetime, got %d", g.Bullets().Active())
	}
}

func TestShipsHover(t *testing.T) {
	g := newTestGame(t, testConfig())
	dt := 1.0 / 60
	for i := 0; i < 600; i++ {
		g.Step(dt)
	}
	for _, s := range g.Ships() {
		y := s.Position().Y
		if y < 0 || y > 2.2 {
			t.Errorf("%s: expected to hover above the ground, got y=%v", s.Name, y)
		}
	}
}

func TestFullCapRaisesBacklogAlert(t *testing.T) {
	cfg := testConfig()
	cfg.Projectiles.MaxActive = 10
	g := newTestGame(t, cfg)
	g.Step(1.0 / 60)

	if g.Bullets().Active() != 10 {
		t.Fatalf("Expected the cap to hold 10 bullets, got %d", g.Bullets().Active())
	}
	var backlog *monitoring.PerformanceAlert
	alerts := g.threading.PerformanceMonitor.CheckPerformanceAlerts()
	for i := range alerts {
		if alerts[i].Type == "bullet_backlog" {
			backlog = &alerts[i]
		}
	}
	if backlog == nil {
		t.Fatal("Expected a bullet backlog alert with the cap full")
	}
	if backlog.Value != 10 || backlog.Threshold != 9 {
		t.Errorf("Expected 10 live bullets against a threshold of 9, got %v and %v", backlog.Value, backlog.Threshold)
	}
}

func TestShipHoversOverPad(t *testing.T) {
	cfg := testConfig()
	cfg.Float.Pads = []config.PadConfig{{X: 0, Z: 0, Width: 6, Depth: 6, Height: 1}}
	g := newTestGame(t, cfg)
	dt := 1.0 / 60
	for i := 0; i < 600; i++ {
		g.Step(dt)
	}

	onPad, offPad := g.Ships()[0], g.Ships()[1]
	if y := onPad.Position().Y; y < 1 || y > 3.2 {
		t.Errorf("Expected %s to hover above the pad, got y=%v", onPad.Name, y)
	}
	if y := offPad.Position().Y; y < 0 || y > 2.2 {
		t.Errorf("Expected %s to hover above the floor, got y=%v", offPad.Name, y)
	}
	if onPad.Position().Y <= offPad.Position().Y {
		t.Errorf("Expected the ship over the pad to sit higher, got %v and %v", onPad.Position().Y, offPad.Position().Y)
	}
}

func TestPatternChangesAreTracked(t *testing.T) {
	cfg := testConfig()
	cfg.Shooting.PatternDuration = 1
	cfg.Shooting.PauseDuration = 1
	g := newTestGame(t, cfg)
	for i := 0; i < 4; i++ {
		g.Step(0.5)
	}
	s := g.Ships()[0]
	if s.PatternChanges() != 1 || s.Scheduler.State().Pattern != pattern.CounterRing {
		t.Errorf("Expected one change to the counter ring, got %d changes and %v", s.PatternChanges(), s.Scheduler.State().Pattern)
	}
}

func TestHandleActions(t *testing.T) {
	g := newTestGame(t, testConfig())

	g.HandleAction(input.TogglePause)
	if !g.Paused() {
		t.Error("Expected pause to toggle on")
	}
	g.HandleAction(input.TogglePause)
	if g.Paused() {
		t.Error("Expected pause to toggle off")
	}

	before := g.showPerf
	g.HandleAction(input.TogglePerf)
	if g.showPerf == before {
		t.Error("Expected perf overlay to toggle")
	}

	if err := g.HandleAction(input.Quit); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Expected termination on quit, got %v", err)
	}
}

func TestPausedUpdateDoesNotStep(t *testing.T) {
	g := newTestGame(t, testConfig())
	down := map[ebiten.Key]bool{}
	g.input = input.NewHandlerWithSource(input.DefaultBindings(), func(k ebiten.Key) bool { return down[k] })

	down[ebiten.KeyP] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !g.Paused() || g.Bullets().Active() != 0 {
		t.Errorf("Expected a paused game with no bullets, got paused=%v bullets=%d", g.Paused(), g.Bullets().Active())
	}

	down[ebiten.KeyP] = false
	g.Update()
	down[ebiten.KeyP] = true
	g.Update()
	if g.Paused() || g.Bullets().Active() == 0 {
		t.Errorf("Expected unpaused game to fire, got paused=%v bullets=%d", g.Paused(), g.Bullets().Active())
	}
}

func TestPerfDropWindow(t *testing.T) {
	g := newTestGame(t, testConfig())
	gl := g.gameLoop
	start := time.Now()

	if gl.perfDropped(30, 54, start) {
		t.Error("Expected the first low reading only to start the window")
	}
	if gl.perfDropped(30, 54, start.Add(time.Second)) {
		t.Error("Expected no snapshot before the window elapses")
	}
	if !gl.perfDropped(30, 54, start.Add(perfLowFpsDuration)) {
		t.Error("Expected a snapshot once fps stayed low")
	}
	if gl.perfDropped(30, 54, start.Add(perfLowFpsDuration+time.Second)) {
		t.Error("Expected snapshots to be rate limited")
	}
	if gl.perfDropped(60, 54, start.Add(10*time.Second)) {
		t.Error("Expected recovery to reset the window")
	}
	if !g.perfLowFpsSince.IsZero() {
		t.Error("Expected the low fps window to be cleared")
	}
}

func TestPerfHelpers(t *testing.T) {
	stats := map[string]interface{}{
		"f": 1.5,
		"i": int64(7),
		"u": uint32(3),
	}
	if getPerfFloat(stats, "f") != 1.5 || getPerfInt(stats, "i") != 7 || getPerfUint(stats, "u") != 3 {
		t.Error("Expected stats to be read back with their numeric types")
	}
	if getPerfFloat(stats, "missing") != 0 || getPerfUint(stats, "f") != 0 {
		t.Error("Expected zero for missing or mismatched keys")
	}
}
