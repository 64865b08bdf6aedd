package physics

import (
	"math"
	"math/rand"
	"testing"
)

const frame = 1.0 / 60.0

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func groundedState() *PhysicsState {
	return &PhysicsState{
		Position: Vec3{X: 0, Y: GroundHeight, Z: 0},
		OnGround: true,
	}
}

func TestLocomotionTick_IdleStaysOnGround(t *testing.T) {
	state := groundedState()

	LocomotionTick(state, MoveInput{}, DefaultTuning(), frame)

	approxEqual(t, state.Position.Y, GroundHeight, 0, "position.y")
	if state.Velocity != (Vec3{}) {
		t.Fatalf("velocity = %+v, want zero", state.Velocity)
	}
	if !state.OnGround {
		t.Fatalf("onGround = false, want true")
	}
}

func TestLocomotionTick_GroundClampHoldsForRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	state := groundedState()
	tuning := DefaultTuning()

	for i := 0; i < 5000; i++ {
		input := MoveInput{
			Forward:  rng.Intn(2) == 0,
			Backward: rng.Intn(4) == 0,
			Left:     rng.Intn(3) == 0,
			Right:    rng.Intn(3) == 0,
			Sprint:   rng.Intn(2) == 0,
			Yaw:      rng.Float64()*8 - 4,
		}
		if rng.Intn(10) == 0 {
			state.JumpRequested = state.OnGround
		}
		delta := ClampDelta(rng.Float64()*0.3, MaxFrameDelta)

		LocomotionTick(state, input, tuning, delta)

		if state.Position.Y < GroundHeight {
			t.Fatalf("tick %d: position.y = %.8f, below ground", i, state.Position.Y)
		}
		if state.OnGround && state.Position.Y != GroundHeight {
			t.Fatalf("tick %d: onGround with position.y = %.8f", i, state.Position.Y)
		}
	}
}

func TestLocomotionTick_JumpAppliesImpulseOnce(t *testing.T) {
	state := groundedState()
	state.JumpRequested = true
	tuning := DefaultTuning()
	step := frame * tuning.ReferenceRate

	LocomotionTick(state, MoveInput{}, tuning, frame)

	approxEqual(t, state.Position.Y, GroundHeight+JumpInitialVelocity*step, 1e-12, "position.y")
	approxEqual(t, state.Velocity.Y, JumpInitialVelocity*VelocityDamping, 1e-12, "velocity.y")
	if state.OnGround {
		t.Fatalf("onGround = true after jump")
	}
	if state.JumpRequested {
		t.Fatalf("jumpRequested not cleared")
	}

	// Airborne request is ignored by the tick.
	state.JumpRequested = true
	before := state.Velocity.Y
	LocomotionTick(state, MoveInput{}, tuning, frame)
	if state.Velocity.Y >= before {
		t.Fatalf("velocity.y = %.6f, want decreasing while airborne (was %.6f)", state.Velocity.Y, before)
	}
	if state.Velocity.Y == JumpInitialVelocity*VelocityDamping {
		t.Fatalf("second impulse applied while airborne")
	}
}

func TestLocomotionTick_JumpLandsWithinBoundedTicks(t *testing.T) {
	state := groundedState()
	state.JumpRequested = true
	tuning := DefaultTuning()

	maxY := state.Position.Y
	landed := -1
	for i := 0; i < 120; i++ {
		LocomotionTick(state, MoveInput{}, tuning, frame)
		if state.Position.Y > maxY {
			maxY = state.Position.Y
		}
		if i > 0 && state.OnGround {
			landed = i
			break
		}
	}

	if landed < 0 {
		t.Fatalf("did not land within 120 ticks")
	}
	if maxY <= GroundHeight+0.5 {
		t.Fatalf("jump apex = %.4f, want well above ground", maxY)
	}
}

func TestLocomotionTick_DampingConvergesToZero(t *testing.T) {
	state := groundedState()
	state.Velocity = Vec3{X: 0.5, Z: -0.3}
	tuning := DefaultTuning()

	for i := 0; i < 100; i++ {
		LocomotionTick(state, MoveInput{}, tuning, frame)
		if state.Velocity == (Vec3{}) {
			return
		}
	}
	t.Fatalf("velocity = %+v after 100 ticks, want exactly zero", state.Velocity)
}

func TestLocomotionTick_SingleTapGlides(t *testing.T) {
	state := groundedState()
	tuning := DefaultTuning()

	LocomotionTick(state, MoveInput{Forward: true}, tuning, frame)
	z1 := state.Position.Z
	LocomotionTick(state, MoveInput{}, tuning, frame)
	z2 := state.Position.Z

	if !(z2 < z1 && z1 < 0) {
		t.Fatalf("z after tap = %.6f then %.6f, want continued glide toward -Z", z1, z2)
	}
}

func TestLocomotionTick_SprintDoublesHorizontalContribution(t *testing.T) {
	tuning := DefaultTuning()

	walk := groundedState()
	LocomotionTick(walk, MoveInput{Forward: true}, tuning, frame)

	sprint := groundedState()
	LocomotionTick(sprint, MoveInput{Forward: true, Sprint: true}, tuning, frame)

	walkSpeed := math.Hypot(walk.Velocity.X, walk.Velocity.Z)
	sprintSpeed := math.Hypot(sprint.Velocity.X, sprint.Velocity.Z)
	if walkSpeed == 0 {
		t.Fatalf("walk speed = 0")
	}
	approxEqual(t, sprintSpeed/walkSpeed, 2, 1e-9, "sprint/walk ratio")
	approxEqual(t, walkSpeed, WalkBaseSpeed*VelocityDamping, 1e-12, "walk speed")
}

func TestLocomotionTick_MovesAlongYaw(t *testing.T) {
	state := groundedState()

	LocomotionTick(state, MoveInput{Forward: true, Yaw: math.Pi / 2}, DefaultTuning(), frame)

	if state.Position.X >= 0 {
		t.Fatalf("position.x = %.6f, want negative when facing +90 degrees", state.Position.X)
	}
	approxEqual(t, state.Position.Z, 0, 1e-12, "position.z")
}

func TestLocomotionTick_FrameRateIndependentStep(t *testing.T) {
	tuning := DefaultTuning()

	a := groundedState()
	LocomotionTick(a, MoveInput{Right: true}, tuning, 2*frame)

	b := groundedState()
	LocomotionTick(b, MoveInput{Right: true}, tuning, frame)

	approxEqual(t, a.Velocity.X, 2*b.Velocity.X, 1e-12, "velocity.x ratio")
}

func TestLocomotionTick_NilStateIsNoop(t *testing.T) {
	LocomotionTick(nil, MoveInput{Forward: true}, DefaultTuning(), frame)
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"normal", 0.016, 0.016},
		{"stalled", 2.5, MaxFrameDelta},
		{"negative", -1, 0},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.delta, MaxFrameDelta); got != tt.want {
				t.Fatalf("ClampDelta(%v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestLookDirectionRoundTrip(t *testing.T) {
	yaw, pitch := 0.7, -0.3
	dir := LookDirection(yaw, pitch)

	approxEqual(t, dir.Length(), 1, 1e-12, "length")
	gotYaw, gotPitch := HeadingAngles(dir)
	approxEqual(t, gotYaw, yaw, 1e-12, "yaw")
	approxEqual(t, gotPitch, pitch, 1e-12, "pitch")

	forward, _ := HorizontalBasis(0)
	if forward != (Vec3{X: -0, Z: -1}) {
		t.Fatalf("forward at yaw 0 = %+v, want (0,0,-1)", forward)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v, ok := Vec3{}.Normalize()
	if ok {
		t.Fatalf("Normalize(zero) ok = true")
	}
	if v != (Vec3{}) {
		t.Fatalf("Normalize(zero) = %+v, want zero", v)
	}
}
