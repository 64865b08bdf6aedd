package event

import "github.com/Versifine/quiver/internal/physics"

const (
	EventArrowFired   = "arrow.fired"
	EventArrowRetired = "arrow.retired"
	EventScore        = "score"
	EventTargetMoved  = "target.moved"
	EventModeChanged  = "mode.changed"
	EventReset        = "session.reset"
)

type ArrowFiredEvent struct {
	ArrowID   uint64
	Mode      string
	Origin    physics.Vec3
	Direction physics.Vec3
	Speed     float64
}

type ArrowRetiredEvent struct {
	ArrowID  uint64
	Reason   string
	Position physics.Vec3
}

type ScoreEvent struct {
	ArrowID uint64
	Zone    string
	Value   int
	Radial  float64
	Total   int
}

type TargetMovedEvent struct {
	X float64
}

type ModeChangedEvent struct {
	Mode string
}
