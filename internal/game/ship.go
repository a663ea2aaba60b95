package game

import (
	"image/color"

	"bullethell/internal/camera"
	"bullethell/internal/config"
	"bullethell/internal/graphics"
	"bullethell/internal/hud"
	"bullethell/internal/pattern"
	"bullethell/internal/physics"
	"bullethell/internal/projectile"
	"bullethell/internal/shooting"

	"github.com/deeean/go-vector/vector3"
)

// Ship is one floating turret: a body kept aloft by its float controller, a
// scheduler firing patterns from the body's position and a camera following it.
type Ship struct {
	Name      string
	Index     int
	Color     color.RGBA
	Body      *physics.Body
	Float     *physics.FloatController
	Scheduler *shooting.Scheduler
	Camera    *camera.Follow
	Counter   *hud.Label

	patternChanges int
}

// NewShip builds ship index from its config entry, firing into bullets
func NewShip(cfg *config.Config, index int, bullets *projectile.World) *Ship {
	sc := cfg.Ships[index]
	pos := vector3.Vector3{X: sc.Position[0], Y: sc.Position[1], Z: sc.Position[2]}

	s := &Ship{
		Name:    sc.Name,
		Index:   index,
		Color:   graphics.RGB(sc.Color),
		Body:    physics.NewBody(pos),
		Float:   physics.NewFloatController(cfg.Float, sc.Name),
		Counter: hud.NewLabel(10, 20),
	}
	s.Camera = camera.NewFollow(sc.Name, s.Body, cfg.GetCameraZoom())

	var spawner shooting.Spawner
	if bullets != nil {
		spawner = bullets.SpawnerFor(index)
	}
	s.Scheduler = shooting.NewScheduler(cfg.GetShipShooting(index), spawner, s.Body,
		shooting.WithDisplay(s.Counter),
		shooting.WithListener(s),
		shooting.WithName(sc.Name),
	)
	return s
}

// OnPhaseChange keeps track of pattern switches for the HUD
func (s *Ship) OnPhaseChange(from, to shooting.Phase, next pattern.ID) {
	if to == shooting.Active {
		s.patternChanges++
	}
}

// PatternChanges returns how many times the ship moved on to a new pattern
func (s *Ship) PatternChanges() int {
	return s.patternChanges
}

// Position returns the body position
func (s *Ship) Position() vector3.Vector3 {
	return s.Body.Position
}
