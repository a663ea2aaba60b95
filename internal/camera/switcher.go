// Package camera holds the per-ship follow cameras and the switcher that cycles
// between them on a timer.
package camera

import (
	"fmt"
	"log"
)

// View is anything that can be switched on and off.
type View interface {
	SetActive(active bool)
}

// Order places a view at a slot in the switching sequence.
type Order struct {
	Target View
	Order  int
}

// Switcher activates one view at a time and moves to the next every interval.
type Switcher struct {
	views    []View
	interval float64
	current  int
	timer    float64
}

// NewSwitcher builds the sequence from orders. Orders must be a permutation of
// 0..len(orders)-1. A nil view leaves its slot empty.
func NewSwitcher(orders []Order, interval float64) (*Switcher, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("no cameras to switch between")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("switch interval must be positive, got %v", interval)
	}

	views := make([]View, len(orders))
	filled := make([]bool, len(orders))
	for i, o := range orders {
		if o.Order < 0 || o.Order >= len(orders) {
			return nil, fmt.Errorf("camera %d: order %d out of range [0, %d)", i, o.Order, len(orders))
		}
		if filled[o.Order] {
			return nil, fmt.Errorf("camera %d: order %d already taken", i, o.Order)
		}
		filled[o.Order] = true
		if o.Target == nil {
			log.Printf("Warning: no camera found for slot %d", o.Order)
			continue
		}
		views[o.Order] = o.Target
	}

	s := &Switcher{views: views, interval: interval}
	for i, v := range s.views {
		if v != nil {
			v.SetActive(i == 0)
		}
	}
	return s, nil
}

// Update advances the timer and switches once it reaches the interval
func (s *Switcher) Update(dt float64) {
	s.timer += dt
	if s.timer >= s.interval {
		s.Next()
	}
}

// Next switches to the following view right away and restarts the timer
func (s *Switcher) Next() {
	if v := s.views[s.current]; v != nil {
		v.SetActive(false)
	}
	s.current = (s.current + 1) % len(s.views)
	if v := s.views[s.current]; v != nil {
		v.SetActive(true)
	}
	s.timer = 0
}

// ActiveIndex returns the slot of the active view
func (s *Switcher) ActiveIndex() int {
	return s.current
}

// Active returns the active view, nil for an empty slot
func (s *Switcher) Active() View {
	return s.views[s.current]
}

// Len returns the number of slots
func (s *Switcher) Len() int {
	return len(s.views)
}
