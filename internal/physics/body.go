// Package physics moves ship bodies: gravity, accumulated accelerations and the
// hover controller that keeps a ship floating above the ground.
package physics

import "github.com/deeean/go-vector/vector3"

// Body is a point mass with no rotation.
type Body struct {
	Position vector3.Vector3
	Velocity vector3.Vector3
	accel    vector3.Vector3
}

// NewBody creates a body at rest
func NewBody(pos vector3.Vector3) *Body {
	return &Body{Position: pos}
}

// AddAcceleration accumulates an acceleration for the next Integrate
func (b *Body) AddAcceleration(a vector3.Vector3) {
	b.accel = *b.accel.Add(&a)
}

// Integrate applies gravity and the accumulated acceleration with
// semi-implicit Euler, then clears the accumulator.
func (b *Body) Integrate(dt, gravity float64) {
	if dt <= 0 {
		return
	}
	a := b.accel
	a.Y += gravity
	b.Velocity = *b.Velocity.Add(a.MulScalar(dt))
	b.Position = *b.Position.Add(b.Velocity.MulScalar(dt))
	b.accel = vector3.Vector3{}
}

// SpawnPosition lets a body act as a scheduler spawn point
func (b *Body) SpawnPosition() vector3.Vector3 {
	return b.Position
}
