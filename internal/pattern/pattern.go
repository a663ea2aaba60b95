// Package pattern holds the bullet pattern generators.
//
// Generators are pure: given the current rotation offset and the firing
// parameters they return the bullets to spawn for one invocation and the
// offset to use next time. Spawning and counting happen elsewhere.
package pattern

import (
	"fmt"
	"math"

	"bullethell/internal/mathutil"

	"github.com/deeean/go-vector/vector3"
)

// ID identifies one of the three firing patterns.
type ID int

const (
	RotatingRing ID = iota + 1
	CounterRing
	RadialStar
)

// Count is the number of patterns in the rotation.
const Count = 3

// Next returns the pattern that follows id, wrapping 3 back to 1.
func (id ID) Next() ID {
	if id >= RadialStar || id < RotatingRing {
		return RotatingRing
	}
	return id + 1
}

func (id ID) String() string {
	switch id {
	case RotatingRing:
		return "rotating ring"
	case CounterRing:
		return "counter ring"
	case RadialStar:
		return "radial star"
	default:
		return fmt.Sprintf("pattern(%d)", int(id))
	}
}

// Offset steps and bounds per pattern, in degrees.
const (
	ringOffsetStep  = 4.0
	ringOffsetLimit = 16.0
	counterStep     = 6.0
	starStep        = 5.0

	// Absorbs float error when turning star_length into a step count
	starLengthEpsilon = 1e-9
)

// SpawnRequest is one bullet handed to the spawner.
type SpawnRequest struct {
	Position  vector3.Vector3
	Direction vector3.Vector3 // Unit length, in the horizontal X/Z plane
	Speed     float64
	Lifetime  float64 // Seconds
	Angle     float64 // Heading in degrees, [0, 360)
}

// Velocity returns Direction scaled by Speed.
func (r SpawnRequest) Velocity() vector3.Vector3 {
	return *r.Direction.MulScalar(r.Speed)
}

// Params carries everything a generator needs besides the offset.
type Params struct {
	Origin           vector3.Vector3
	SpawnOffset      float64
	Speed            float64
	Lifetime         float64
	BulletsPerCircle int
	StarPoints       int
	StarLength       float64
}

// Result is the output of one generator invocation.
type Result struct {
	Requests   []SpawnRequest
	NextOffset float64
}

// Generator computes one invocation of a pattern.
type Generator func(offset float64, p Params) Result

// Lookup returns the generator for id.
func Lookup(id ID) (Generator, bool) {
	switch id {
	case RotatingRing:
		return Ring, true
	case CounterRing:
		return Counter, true
	case RadialStar:
		return Star, true
	}
	return nil, false
}

// Heading returns the unit direction for an angle in degrees on the X/Z plane.
func Heading(angle float64) vector3.Vector3 {
	rad := mathutil.DegToRad(angle)
	dir := vector3.Vector3{X: math.Cos(rad), Y: 0, Z: math.Sin(rad)}
	if m := dir.Magnitude(); m > 0 && m != 1 {
		dir = *dir.MulScalar(1 / m)
	}
	return dir
}

// request builds a bullet leaving the origin at angle, dist units out.
func request(p Params, angle, dist float64) SpawnRequest {
	dir := Heading(angle)
	return SpawnRequest{
		Position:  *p.Origin.Add(dir.MulScalar(dist)),
		Direction: dir,
		Speed:     p.Speed,
		Lifetime:  p.Lifetime,
		Angle:     mathutil.WrapDegrees(angle),
	}
}

// Ring fires bulletsPerCircle bullets evenly around the origin starting at offset.
func Ring(offset float64, p Params) Result {
	n := p.BulletsPerCircle
	if n <= 0 {
		return Result{NextOffset: nextRingOffset(offset)}
	}
	step := 360.0 / float64(n)
	reqs := make([]SpawnRequest, 0, n)

	angle := offset
	for i := 0; i < n; i++ {
		reqs = append(reqs, request(p, angle, p.SpawnOffset))
		angle = math.Mod(angle+step, 360)
	}

	return Result{Requests: reqs, NextOffset: nextRingOffset(offset)}
}

func nextRingOffset(offset float64) float64 {
	offset += ringOffsetStep
	if offset > ringOffsetLimit {
		offset = 0
	}
	return offset
}

// Counter fires two interleaved rings: one turning clockwise from offset and
// one turning the other way from -offset, shifted by half a step.
func Counter(offset float64, p Params) Result {
	next := math.Mod(offset+counterStep, 360)
	n := p.BulletsPerCircle
	if n <= 0 {
		return Result{NextOffset: next}
	}
	step := 360.0 / float64(n)
	reqs := make([]SpawnRequest, 0, 2*n)

	cw := offset
	ccw := -offset
	for i := 0; i < n; i++ {
		reqs = append(reqs, request(p, cw, p.SpawnOffset))
		cw = math.Mod(cw+step, 360)

		reqs = append(reqs, request(p, ccw+step/2, p.SpawnOffset))
		ccw -= step
		if ccw < 0 {
			ccw += 360
		}
	}

	return Result{Requests: reqs, NextOffset: next}
}

// StarSteps is the number of bullets along each spoke: every whole unit from
// spawnOffset to spawnOffset+length, both ends included.
func StarSteps(length float64) int {
	if length < 0 {
		return 0
	}
	return int(math.Floor(length+starLengthEpsilon)) + 1
}

// Star fires starPoints spokes, each a line of bullets one unit apart.
func Star(offset float64, p Params) Result {
	next := math.Mod(offset+starStep, 360)
	points := p.StarPoints
	steps := StarSteps(p.StarLength)
	if points <= 0 || steps == 0 {
		return Result{NextOffset: next}
	}
	step := 360.0 / float64(points)
	reqs := make([]SpawnRequest, 0, points*steps)

	for i := 0; i < points; i++ {
		angle := offset + float64(i)*step
		for k := 0; k < steps; k++ {
			reqs = append(reqs, request(p, angle, p.SpawnOffset+float64(k)))
		}
	}

	return Result{Requests: reqs, NextOffset: next}
}
