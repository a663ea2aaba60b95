package physics

import (
	"log"
	"math"

	"bullethell/internal/config"
	"bullethell/internal/mathutil"

	"github.com/deeean/go-vector/vector3"
)

// Simulated seconds between repeats of the same warning
const warnInterval = 2.0

// FloatController hovers a body above the ground with a gentle bob.
type FloatController struct {
	Params config.FloatConfig
	name   string

	lastWarn map[string]float64
	warnings int
}

// NewFloatController creates a controller for the named ship
func NewFloatController(params config.FloatConfig, name string) *FloatController {
	return &FloatController{
		Params:   params,
		name:     name,
		lastWarn: make(map[string]float64),
	}
}

// Bob returns the height offset of the bobbing motion at time t
func (fc *FloatController) Bob(t float64) float64 {
	return math.Sin(t*fc.Params.BobbingSpeed) * fc.Params.BobbingAmount
}

// Step applies one fixed step of lift and vertical damping. It returns false
// when nothing was applied.
func (fc *FloatController) Step(body *Body, ground Ground, t, dt float64) bool {
	p := fc.Params
	if p.FloatHeight <= 0 {
		fc.warn("height", t, "float height must be greater than 0")
		return false
	}
	if ground == nil {
		fc.warn("miss", t, "no ground to float over")
		return false
	}

	maxDist := p.FloatHeight + p.BobbingAmount
	dist, hit := ground.RaycastDown(body.Position, maxDist)
	if !hit {
		fc.warn("miss", t, "ground probe hit nothing, make sure there is terrain below the ship")
		return false
	}
	if dist > maxDist {
		fc.warn("range", t, "ground probe distance %.2f exceeds the valid range %.2f", dist, maxDist)
		return false
	}

	ratio := mathutil.Clamp(((p.FloatHeight+fc.Bob(t))-dist)/p.FloatHeight, 0, 1)
	body.AddAcceleration(vector3.Vector3{Y: ratio * p.FloatForce})

	// Damping factor is clamped so a long step cannot flip the velocity
	body.Velocity.Y *= mathutil.Clamp(1-p.Damping*dt, 0, 1)
	return true
}

func (fc *FloatController) warn(key string, t float64, format string, args ...any) {
	if last, ok := fc.lastWarn[key]; ok && t-last < warnInterval {
		return
	}
	fc.lastWarn[key] = t
	fc.warnings++
	log.Printf("Warning: %s: "+format, append([]any{fc.name}, args...)...)
}

// Warnings returns how many warnings were actually logged
func (fc *FloatController) Warnings() int {
	return fc.warnings
}
