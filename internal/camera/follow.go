package camera

import "github.com/deeean/go-vector/vector3"

// Target is what a follow camera tracks
type Target interface {
	SpawnPosition() vector3.Vector3
}

// Follow is a top-down camera locked onto a ship. The X/Z world plane maps to
// screen X/Y with +Z pointing up the screen.
type Follow struct {
	Name   string
	Target Target
	Zoom   float64 // Pixels per world unit
	active bool
}

// NewFollow creates an inactive camera following target
func NewFollow(name string, target Target, zoom float64) *Follow {
	return &Follow{Name: name, Target: target, Zoom: zoom}
}

func (f *Follow) SetActive(active bool) {
	f.active = active
}

func (f *Follow) Active() bool {
	return f.active
}

// Centre returns the world point at the middle of the screen
func (f *Follow) Centre() vector3.Vector3 {
	if f.Target == nil {
		return vector3.Vector3{}
	}
	return f.Target.SpawnPosition()
}

// WorldToScreen projects a world position onto a screen of the given size
func (f *Follow) WorldToScreen(p vector3.Vector3, screenW, screenH int) (float64, float64) {
	c := f.Centre()
	x := float64(screenW)/2 + (p.X-c.X)*f.Zoom
	y := float64(screenH)/2 - (p.Z-c.Z)*f.Zoom
	return x, y
}

// OnScreen reports whether a projected point with the given radius is visible
func OnScreen(x, y, radius float64, screenW, screenH int) bool {
	return x+radius >= 0 && y+radius >= 0 && x-radius <= float64(screenW) && y-radius <= float64(screenH)
}
