package physics

const (
	// Per-tick constants are expressed at this frame rate and scaled by delta*ReferenceFrameRate.
	ReferenceFrameRate = 60.0
	MaxFrameDelta      = 0.1

	WalkBaseSpeed         = 0.01
	SprintSpeedMultiplier = 2.0
	GravityAcceleration   = 0.02
	JumpInitialVelocity   = 0.35
	GroundHeight          = 1.0
	VelocityDamping       = 0.9
	MinimumResidualSpeed  = 0.001
	MovingSpeedThreshold  = 0.01

	NearZeroTolerance = 1e-9
)
