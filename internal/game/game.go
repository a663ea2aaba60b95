package game

import (
	"fmt"
	"time"

	"bullethell/internal/camera"
	"bullethell/internal/config"
	"bullethell/internal/graphics"
	"bullethell/internal/input"
	"bullethell/internal/physics"
	"bullethell/internal/projectile"
	"bullethell/internal/threading"

	"github.com/hajimehoshi/ebiten/v2"
)

// BulletHellGame is the arena: ships, their bullets and the camera switcher.
type BulletHellGame struct {
	config    *config.Config
	ships     []*Ship
	bullets   *projectile.World
	terrain   *physics.Terrain
	switcher  *camera.Switcher
	sprites   *graphics.SpriteManager
	input     *input.Handler
	threading *threading.ThreadingComponents

	dt      float64 // Fixed step, 1/TPS
	simTime float64

	// UI state
	paused   bool
	showPerf bool

	// Perf logging
	perfLowFpsSince time.Time
	perfLastPerfLog time.Time

	gameLoop *GameLoop
}

// NewBulletHellGame builds the arena described by cfg
func NewBulletHellGame(cfg *config.Config) (*BulletHellGame, error) {
	if len(cfg.Ships) == 0 {
		return nil, fmt.Errorf("no ships configured")
	}

	threadingComponents := threading.NewThreadingComponents()
	if backlog := cfg.GetBacklogAlert(); backlog > 0 {
		threadingComponents.PerformanceMonitor.SetBulletBacklog(int64(backlog))
	}

	bullets := projectile.NewWorld(projectile.Options{
		Pool:              threadingComponents.WorkerPool,
		ParallelThreshold: cfg.Projectiles.ParallelThreshold,
		MaxActive:         cfg.Projectiles.MaxActive,
	})

	g := &BulletHellGame{
		config:    cfg,
		bullets:   bullets,
		terrain:   newTerrain(cfg.Float),
		sprites:   graphics.NewSpriteManager("assets/sprites", cfg.Graphics),
		input:     input.NewHandler(input.DefaultBindings()),
		threading: threadingComponents,
		dt:        1.0 / float64(cfg.GetTPS()),
		showPerf:  cfg.Debug.PerfLog,
	}

	orders := make([]camera.Order, len(cfg.Ships))
	for i := range cfg.Ships {
		ship := NewShip(cfg, i, bullets)
		g.ships = append(g.ships, ship)
		orders[i] = camera.Order{Target: ship.Camera, Order: cfg.Ships[i].CameraOrder}
	}

	switcher, err := camera.NewSwitcher(orders, cfg.Camera.SwitchInterval)
	if err != nil {
		threadingComponents.Shutdown()
		return nil, fmt.Errorf("failed to set up cameras: %w", err)
	}
	g.switcher = switcher

	g.gameLoop = NewGameLoop(g)
	return g, nil
}

// Step advances the whole simulation by dt seconds
func (g *BulletHellGame) Step(dt float64) {
	g.simTime += dt
	pm := g.threading.PerformanceMonitor

	for _, s := range g.ships {
		s.Float.Step(s.Body, g.terrain, g.simTime, dt)
		s.Body.Integrate(dt, g.config.Float.Gravity)
		g.terrain.Contact(s.Body)
	}

	pm.ProfiledFunction("projectiles", func() {
		g.bullets.Update(dt)
	})

	// Fired after the bullet update so new bullets start exactly at the spawn offset
	pm.ProfiledFunction("scheduler", func() {
		for _, s := range g.ships {
			s.Scheduler.Tick(dt)
		}
	})

	g.switcher.Update(dt)
	g.updatePerformanceMetrics()
}

// HandleAction applies one player action. It returns ebiten.Termination on quit.
func (g *BulletHellGame) HandleAction(a input.Action) error {
	switch a {
	case input.TogglePause:
		g.paused = !g.paused
	case input.NextCamera:
		g.switcher.Next()
	case input.TogglePerf:
		g.showPerf = !g.showPerf
	case input.Quit:
		return ebiten.Termination
	}
	return nil
}

func (g *BulletHellGame) updatePerformanceMetrics() {
	var fired, invocations uint64
	for _, s := range g.ships {
		st := s.Scheduler.State()
		fired += uint64(st.BulletCount)
		invocations += uint64(st.Invocations)
	}
	g.threading.PerformanceMonitor.UpdateGameMetrics(int64(g.bullets.Active()), fired, invocations)
}

func newTerrain(fc config.FloatConfig) *physics.Terrain {
	terrain := physics.NewFlatTerrain(fc.GroundHeight)
	for _, p := range fc.Pads {
		terrain.AddPad(physics.Pad{X: p.X, Z: p.Z, Width: p.Width, Depth: p.Depth, Height: p.Height})
	}
	return terrain
}

// ActiveShip returns the ship whose camera is live, nil for an empty slot
func (g *BulletHellGame) ActiveShip() *Ship {
	active, ok := g.switcher.Active().(*camera.Follow)
	if !ok {
		return nil
	}
	for _, s := range g.ships {
		if s.Camera == active {
			return s
		}
	}
	return nil
}

func (g *BulletHellGame) Ships() []*Ship {
	return g.ships
}

func (g *BulletHellGame) Bullets() *projectile.World {
	return g.bullets
}

func (g *BulletHellGame) Paused() bool {
	return g.paused
}

// Close stops the worker pool
func (g *BulletHellGame) Close() {
	g.threading.Shutdown()
}

func (g *BulletHellGame) Update() error {
	return g.gameLoop.Update()
}

func (g *BulletHellGame) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

func (g *BulletHellGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}
