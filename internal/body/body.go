package body

import (
	"fmt"

	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/physics"
)

type Gait int

const (
	GaitIdle Gait = iota
	GaitWalk
	GaitRun
)

func (g Gait) String() string {
	switch g {
	case GaitIdle:
		return "idle"
	case GaitWalk:
		return "walk"
	case GaitRun:
		return "run"
	default:
		return "unknown"
	}
}

// Pose is what the camera needs each frame.
type Pose struct {
	Position physics.Vec3
	Yaw      float64
	Pitch    float64
}

type Snapshot struct {
	Pose
	Velocity physics.Vec3
	OnGround bool
	Gait     Gait
}

// Body is the locomotion controller for the player. It owns the physics
// state; orientation is copied from the input state on every tick.
type Body struct {
	physics   physics.PhysicsState
	tuning    physics.Tuning
	yaw       float64
	pitch     float64
	sprinting bool
}

func New(spawn physics.Vec3, tuning physics.Tuning) *Body {
	b := &Body{tuning: tuning}
	b.Teleport(spawn)
	return b
}

// RequestJump latches a jump for the next tick. Requests while airborne are
// ignored so they cannot fire on landing.
func (b *Body) RequestJump() bool {
	if b == nil || !b.physics.OnGround {
		return false
	}
	b.physics.JumpRequested = true
	return true
}

// Tick advances the body by delta seconds. delta must already be clamped.
func (b *Body) Tick(in *input.State, delta float64) error {
	if b == nil {
		return fmt.Errorf("body is nil")
	}
	if in == nil {
		return fmt.Errorf("input state is nil")
	}

	move := moveInput(in)
	physics.LocomotionTick(&b.physics, move, b.tuning, delta)
	b.yaw = in.Yaw()
	b.pitch = in.Pitch()
	b.sprinting = move.Sprint
	return nil
}

func (b *Body) PhysicsState() physics.PhysicsState {
	if b == nil {
		return physics.PhysicsState{}
	}
	return b.physics
}

func (b *Body) Pose() Pose {
	if b == nil {
		return Pose{}
	}
	return Pose{Position: b.physics.Position, Yaw: b.yaw, Pitch: b.pitch}
}

// LookDirection is the unit vector the camera faces.
func (b *Body) LookDirection() physics.Vec3 {
	if b == nil {
		return physics.LookDirection(0, 0)
	}
	return physics.LookDirection(b.yaw, b.pitch)
}

func (b *Body) Gait() Gait {
	if b == nil || b.physics.Velocity.Length() <= physics.MovingSpeedThreshold {
		return GaitIdle
	}
	if b.sprinting {
		return GaitRun
	}
	return GaitWalk
}

func (b *Body) Snapshot() Snapshot {
	if b == nil {
		return Snapshot{}
	}
	return Snapshot{
		Pose:     b.Pose(),
		Velocity: b.physics.Velocity,
		OnGround: b.physics.OnGround,
		Gait:     b.Gait(),
	}
}

// Teleport places the body at pos, at rest. Positions below the ground are
// lifted onto it.
func (b *Body) Teleport(pos physics.Vec3) {
	if b == nil {
		return
	}
	if pos.Y < b.tuning.GroundHeight {
		pos.Y = b.tuning.GroundHeight
	}
	b.physics = physics.PhysicsState{
		Position: pos,
		OnGround: pos.Y == b.tuning.GroundHeight,
	}
}
