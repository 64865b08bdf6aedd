package physics

import "math"

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector along v. ok is false for a (near) zero
// vector, in which case the zero vector is returned instead of NaNs.
func (v Vec3) Normalize() (Vec3, bool) {
	length := v.Length()
	if nearlyZero(length) || math.IsNaN(length) {
		return Vec3{}, false
	}
	return v.Scale(1 / length), true
}

// HorizontalBasis returns the forward and right unit vectors for a yaw in
// radians. Yaw 0 faces -Z; positive yaw turns left.
func HorizontalBasis(yaw float64) (forward, right Vec3) {
	sin, cos := math.Sincos(yaw)
	forward = Vec3{X: -sin, Z: -cos}
	right = Vec3{X: cos, Z: -sin}
	return forward, right
}

// LookDirection is the unit view vector for yaw/pitch in radians (YXZ order).
func LookDirection(yaw, pitch float64) Vec3 {
	sinYaw, cosYaw := math.Sincos(yaw)
	sinPitch, cosPitch := math.Sincos(pitch)
	return Vec3{
		X: -sinYaw * cosPitch,
		Y: sinPitch,
		Z: -cosYaw * cosPitch,
	}
}

// HeadingAngles is the inverse of LookDirection. A zero vector yields (0, 0).
func HeadingAngles(dir Vec3) (yaw, pitch float64) {
	unit, ok := dir.Normalize()
	if !ok {
		return 0, 0
	}
	yaw = math.Atan2(-unit.X, -unit.Z)
	pitch = math.Asin(clamp(unit.Y, -1, 1))
	return yaw, pitch
}

// ClampDelta bounds a frame delta to [0, max]. NaN and negative values become 0.
func ClampDelta(delta, max float64) float64 {
	if math.IsNaN(delta) || delta <= 0 {
		return 0
	}
	if delta > max {
		return max
	}
	return delta
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func nearlyZero(v float64) bool {
	return math.Abs(v) <= NearZeroTolerance
}
