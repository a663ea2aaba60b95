// Package projectile keeps the live bullets: it spawns them from scheduler
// requests, moves them every tick and destroys them when their lifetime runs out.
package projectile

import (
	"log"
	"time"

	"bullethell/internal/pattern"
	"bullethell/internal/shooting"
	"bullethell/internal/threading/core"

	"github.com/deeean/go-vector/vector3"
	"github.com/yohamta/donburi"
)

type TransformData struct {
	Position vector3.Vector3
}

type VelocityData struct {
	Value vector3.Vector3
}

type LifetimeData struct {
	Total     float64 // Seconds
	Remaining float64 // Seconds
}

type BulletData struct {
	Handle shooting.Handle
	Owner  int // Index of the ship that fired it
}

var (
	Transform = donburi.NewComponentType[TransformData]()
	Velocity  = donburi.NewComponentType[VelocityData]()
	Lifetime  = donburi.NewComponentType[LifetimeData]()
	Bullet    = donburi.NewComponentType[BulletData]()
)

const capWarningInterval = 2 * time.Second

// World owns every live bullet.
type World struct {
	ecs       donburi.World
	pool      *core.WorkerPool
	threshold int
	maxActive int

	nextHandle uint64
	spawned    *core.SafeCounter
	destroyed  *core.SafeCounter
	active     *core.SafeCounter

	entries     []*donburi.Entry
	lastCapWarn time.Time
}

// Options tunes a World. Zero values pick the defaults.
type Options struct {
	Pool              *core.WorkerPool // Optional; nil integrates with short-lived goroutines
	ParallelThreshold int              // Bullet count at which integration goes parallel
	MaxActive         int              // Spawns beyond this are dropped; 0 means unlimited
}

// NewWorld creates an empty bullet world
func NewWorld(opts Options) *World {
	threshold := opts.ParallelThreshold
	if threshold <= 0 {
		threshold = 256
	}
	return &World{
		ecs:       donburi.NewWorld(),
		pool:      opts.Pool,
		threshold: threshold,
		maxActive: opts.MaxActive,
		spawned:   core.NewSafeCounter(),
		destroyed: core.NewSafeCounter(),
		active:    core.NewSafeCounter(),
	}
}

// Spawn implements shooting.Spawner for an anonymous owner
func (w *World) Spawn(req pattern.SpawnRequest) shooting.Handle {
	return w.SpawnOwned(req, -1)
}

// SpawnOwned creates a bullet tagged with the firing ship's index
func (w *World) SpawnOwned(req pattern.SpawnRequest, owner int) shooting.Handle {
	if w.maxActive > 0 && int(w.active.Get()) >= w.maxActive {
		if now := time.Now(); now.Sub(w.lastCapWarn) > capWarningInterval {
			log.Printf("Warning: bullet cap of %d reached, dropping spawns", w.maxActive)
			w.lastCapWarn = now
		}
		return 0
	}

	w.nextHandle++
	handle := shooting.Handle(w.nextHandle)

	entity := w.ecs.Create(Transform, Velocity, Lifetime, Bullet)
	entry := w.ecs.Entry(entity)
	Transform.SetValue(entry, TransformData{Position: req.Position})
	Velocity.SetValue(entry, VelocityData{Value: req.Velocity()})
	Lifetime.SetValue(entry, LifetimeData{Total: req.Lifetime, Remaining: req.Lifetime})
	Bullet.SetValue(entry, BulletData{Handle: handle, Owner: owner})

	w.spawned.Increment()
	w.active.Increment()
	return handle
}

// SpawnerFor returns a shooting.Spawner that tags bullets with owner
func (w *World) SpawnerFor(owner int) shooting.Spawner {
	return ownedSpawner{world: w, owner: owner}
}

type ownedSpawner struct {
	world *World
	owner int
}

func (s ownedSpawner) Spawn(req pattern.SpawnRequest) shooting.Handle {
	return s.world.SpawnOwned(req, s.owner)
}

// Update moves every bullet by dt and destroys the ones whose lifetime is over
func (w *World) Update(dt float64) {
	w.entries = w.entries[:0]
	Lifetime.Each(w.ecs, func(e *donburi.Entry) {
		w.entries = append(w.entries, e)
	})
	if len(w.entries) == 0 {
		return
	}

	switch {
	case len(w.entries) < w.threshold:
		for _, e := range w.entries {
			advance(e, dt)
		}
	case w.pool != nil:
		w.pool.ParallelFor(0, len(w.entries), func(i int) {
			advance(w.entries[i], dt)
		})
	default:
		refs := make([]entryRef, len(w.entries))
		for i, e := range w.entries {
			refs[i] = entryRef{e}
		}
		core.AdvanceAll(refs, dt, 0)
	}

	// Structural changes stay on the calling goroutine
	for _, e := range w.entries {
		if Lifetime.Get(e).Remaining <= 0 {
			w.ecs.Remove(e.Entity())
			w.destroyed.Increment()
			w.active.Add(-1)
		}
	}
}

type entryRef struct {
	entry *donburi.Entry
}

func (r entryRef) Advance(dt float64) {
	advance(r.entry, dt)
}

func advance(e *donburi.Entry, dt float64) {
	t := Transform.Get(e)
	v := Velocity.Get(e)
	l := Lifetime.Get(e)
	t.Position = *t.Position.Add(v.Value.MulScalar(dt))
	l.Remaining -= dt
}

// View is a read-only copy of one bullet for drawing
type View struct {
	Handle   shooting.Handle
	Owner    int
	Position vector3.Vector3
	Life     float64 // Remaining lifetime as a fraction of the total, (0, 1]
}

// Each calls fn for every live bullet
func (w *World) Each(fn func(View)) {
	Bullet.Each(w.ecs, func(e *donburi.Entry) {
		b := Bullet.Get(e)
		l := Lifetime.Get(e)
		life := 1.0
		if l.Total > 0 {
			life = l.Remaining / l.Total
		}
		fn(View{
			Handle:   b.Handle,
			Owner:    b.Owner,
			Position: Transform.Get(e).Position,
			Life:     life,
		})
	})
}

// Active returns the number of live bullets
func (w *World) Active() int {
	return int(w.active.Get())
}

// Spawned returns how many bullets were ever created
func (w *World) Spawned() int64 {
	return w.spawned.Get()
}

// Destroyed returns how many bullets expired
func (w *World) Destroyed() int64 {
	return w.destroyed.Get()
}

// Clear destroys every live bullet
func (w *World) Clear() {
	w.entries = w.entries[:0]
	Bullet.Each(w.ecs, func(e *donburi.Entry) {
		w.entries = append(w.entries, e)
	})
	for _, e := range w.entries {
		w.ecs.Remove(e.Entity())
		w.destroyed.Increment()
	}
	w.active.Set(0)
}
