package input

import "math"

const (
	DefaultSensitivity = 0.002
	MaxPitch           = math.Pi / 2
)

// State holds the held keys and the accumulated look orientation.
// It is owned by one session and mutated only while the queue is drained.
type State struct {
	held  [keyCount]bool
	yaw   float64
	pitch float64
}

func (s *State) SetKey(key Key, pressed bool) {
	if !key.valid() {
		return
	}
	s.held[key] = pressed
}

func (s *State) Held(key Key) bool {
	if !key.valid() {
		return false
	}
	return s.held[key]
}

// AccumulateLook applies a pointer delta. Pitch is clamped to [-π/2, π/2];
// yaw is left unbounded. A delta that would make either angle non-finite is
// ignored.
func (s *State) AccumulateLook(dx, dy, sensitivity float64) {
	yaw := s.yaw - dx*sensitivity
	pitch := s.pitch - dy*sensitivity
	if !finite(yaw) || !finite(pitch) {
		return
	}
	s.yaw = yaw
	s.pitch = pitch
	s.pitch = math.Max(-MaxPitch, math.Min(MaxPitch, s.pitch))
}

func (s *State) SetOrientation(yaw, pitch float64) {
	if !finite(yaw) || !finite(pitch) {
		return
	}
	s.yaw = yaw
	s.pitch = math.Max(-MaxPitch, math.Min(MaxPitch, pitch))
}

func (s *State) Yaw() float64 {
	return s.yaw
}

func (s *State) Pitch() float64 {
	return s.pitch
}

func (s *State) ReleaseAll() {
	s.held = [keyCount]bool{}
}
