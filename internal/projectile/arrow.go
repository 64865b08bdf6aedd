package projectile

import "github.com/Versifine/quiver/internal/physics"

// Visual is an opaque render-side handle owned by one arrow.
type Visual any

// VisualFactory creates and releases arrow visuals. Dispose is called
// exactly once per created visual.
type VisualFactory interface {
	CreateProjectileVisual() Visual
	Dispose(v Visual)
}

type arrow struct {
	id          uint64
	mode        Mode
	position    physics.Vec3
	velocity    physics.Vec3
	heading     physics.Vec3
	spawnOrigin physics.Vec3
	damage      int
	active      bool
	released    bool
	visual      Visual
}

// Snapshot is a read-only view of an arrow for renderers.
type Snapshot struct {
	ID          uint64
	Mode        Mode
	Position    physics.Vec3
	Velocity    physics.Vec3
	Heading     physics.Vec3
	Yaw         float64
	Pitch       float64
	SpawnOrigin physics.Vec3
	Damage      int
	Visual      Visual
}

func (a *arrow) snapshot() Snapshot {
	yaw, pitch := physics.HeadingAngles(a.heading)
	return Snapshot{
		ID:          a.id,
		Mode:        a.mode,
		Position:    a.position,
		Velocity:    a.velocity,
		Heading:     a.heading,
		Yaw:         yaw,
		Pitch:       pitch,
		SpawnOrigin: a.spawnOrigin,
		Damage:      a.damage,
		Visual:      a.visual,
	}
}
