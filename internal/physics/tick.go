package physics

type PhysicsState struct {
	Position      Vec3
	Velocity      Vec3
	OnGround      bool
	JumpRequested bool
}

// MoveInput is the subset of held input the locomotion tick reads.
type MoveInput struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
	Yaw      float64
}

type Tuning struct {
	MoveSpeed        float64
	SprintMultiplier float64
	Gravity          float64
	JumpVelocity     float64
	GroundHeight     float64
	Damping          float64
	RestThreshold    float64
	ReferenceRate    float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:        WalkBaseSpeed,
		SprintMultiplier: SprintSpeedMultiplier,
		Gravity:          GravityAcceleration,
		JumpVelocity:     JumpInitialVelocity,
		GroundHeight:     GroundHeight,
		Damping:          VelocityDamping,
		RestThreshold:    MinimumResidualSpeed,
		ReferenceRate:    ReferenceFrameRate,
	}
}

// LocomotionTick advances the body by delta seconds. The order is fixed:
// input acceleration, gravity, jump, integrate, ground clamp, damping, snap.
// Gravity applies even when grounded; the clamp re-zeroes vertical velocity.
func LocomotionTick(state *PhysicsState, input MoveInput, tuning Tuning, delta float64) {
	if state == nil {
		return
	}
	step := delta * tuning.ReferenceRate

	forward, right := HorizontalBasis(input.Yaw)
	accel := moveSpeed(input, tuning) * step
	if input.Forward {
		state.Velocity = state.Velocity.Add(forward.Scale(accel))
	}
	if input.Backward {
		state.Velocity = state.Velocity.Add(forward.Scale(-accel))
	}
	if input.Left {
		state.Velocity = state.Velocity.Add(right.Scale(-accel))
	}
	if input.Right {
		state.Velocity = state.Velocity.Add(right.Scale(accel))
	}

	state.Velocity.Y -= tuning.Gravity * step

	if state.JumpRequested && state.OnGround {
		state.Velocity.Y = tuning.JumpVelocity
		state.OnGround = false
		state.JumpRequested = false
	}

	state.Position = state.Position.Add(state.Velocity.Scale(step))

	if state.Position.Y < tuning.GroundHeight {
		state.Position.Y = tuning.GroundHeight
		state.Velocity.Y = 0
		state.OnGround = true
	}

	state.Velocity = state.Velocity.Scale(tuning.Damping)
	zeroResidualVelocity(&state.Velocity, tuning.RestThreshold)
}

func moveSpeed(input MoveInput, tuning Tuning) float64 {
	speed := tuning.MoveSpeed
	if input.Sprint {
		speed *= tuning.SprintMultiplier
	}
	if speed < 0 {
		return 0
	}
	return speed
}

func zeroResidualVelocity(v *Vec3, threshold float64) {
	if v == nil {
		return
	}
	if v.Length() < threshold {
		*v = Vec3{}
	}
}
