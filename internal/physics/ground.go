package physics

import (
	"math"

	"github.com/deeean/go-vector/vector3"
)

// Ground answers straight-down probes.
type Ground interface {
	// RaycastDown returns the distance from origin to the first surface below
	// it, or hit=false when nothing lies within maxDist.
	RaycastDown(origin vector3.Vector3, maxDist float64) (dist float64, hit bool)
}

// Pad is a horizontal rectangle at a fixed height, centred on X/Z
type Pad struct {
	X, Z         float64 // Centre
	Width, Depth float64 // Total extent along X and Z
	Height       float64 // Top surface
}

// Bounds returns the min/max coordinates of the pad on the X/Z plane
func (p Pad) Bounds() (minX, minZ, maxX, maxZ float64) {
	halfWidth := p.Width / 2
	halfDepth := p.Depth / 2
	return p.X - halfWidth, p.Z - halfDepth, p.X + halfWidth, p.Z + halfDepth
}

// Contains reports whether the X/Z point lies over the pad
func (p Pad) Contains(x, z float64) bool {
	minX, minZ, maxX, maxZ := p.Bounds()
	return x >= minX && x <= maxX && z >= minZ && z <= maxZ
}

// Terrain is an optional infinite floor plus any number of raised pads.
type Terrain struct {
	Floor    float64
	HasFloor bool
	Pads     []Pad
}

// NewFlatTerrain creates terrain that is a single floor at height
func NewFlatTerrain(height float64) *Terrain {
	return &Terrain{Floor: height, HasFloor: true}
}

// AddPad adds a raised surface
func (t *Terrain) AddPad(p Pad) {
	t.Pads = append(t.Pads, p)
}

// RaycastDown finds the highest surface at or below origin
func (t *Terrain) RaycastDown(origin vector3.Vector3, maxDist float64) (float64, bool) {
	best := math.Inf(1)
	if t.HasFloor && t.Floor <= origin.Y {
		best = origin.Y - t.Floor
	}
	for _, p := range t.Pads {
		if p.Height > origin.Y || !p.Contains(origin.X, origin.Z) {
			continue
		}
		if d := origin.Y - p.Height; d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) || best > maxDist {
		return 0, false
	}
	return best, true
}

// Pads only catch bodies that sank less than this below their top
const padSnap = 0.5

// Contact keeps body from sinking through the surface under it. It returns
// true when the body was resting on something.
func (t *Terrain) Contact(body *Body) bool {
	surface := math.Inf(-1)
	if t.HasFloor {
		surface = t.Floor
	}
	for _, p := range t.Pads {
		if p.Contains(body.Position.X, body.Position.Z) &&
			body.Position.Y > p.Height-padSnap && p.Height > surface {
			surface = p.Height
		}
	}
	if body.Position.Y >= surface {
		return false
	}
	body.Position.Y = surface
	if body.Velocity.Y < 0 {
		body.Velocity.Y = 0
	}
	return true
}
