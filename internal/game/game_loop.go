package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the main game update and render cycle
type GameLoop struct {
	game     *BulletHellGame
	renderer *Renderer

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *BulletHellGame) *GameLoop {
	return &GameLoop{
		game:     game,
		renderer: NewRenderer(game),
	}
}

// Update handles input and one fixed simulation step
func (gl *GameLoop) Update() error {
	start := time.Now()
	frameTimer := gl.game.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	for _, action := range gl.game.input.Poll() {
		if err := gl.game.HandleAction(action); err != nil {
			return err
		}
	}

	if !gl.game.paused {
		gl.game.Step(gl.game.dt)
	}

	gl.maybeLogPerfDrop()
	gl.lastUpdateDuration = time.Since(start)
	return nil
}

// Draw handles all rendering for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	gl.lastDrawDuration = gl.game.threading.PerformanceMonitor.ProfiledFunction("draw", func() {
		gl.renderer.Draw(screen)
	})
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
