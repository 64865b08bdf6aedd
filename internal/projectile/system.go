package projectile

import (
	"fmt"

	"github.com/Versifine/quiver/internal/physics"
	"github.com/Versifine/quiver/internal/target"
)

const (
	DefaultSpeedScale       = 20.0
	DefaultGravity          = 0.02
	DefaultMaxDistance      = 100.0
	DefaultFloorHeight      = 0.0
	DefaultMinOrientSpeedSq = 0.01
	DefaultDamage           = 10
)

type Config struct {
	// SpeedScale converts velocity to units per second for integration.
	SpeedScale float64
	Gravity    float64
	// ReferenceRate is the frame rate Gravity is expressed at.
	ReferenceRate    float64
	MaxDistance      float64
	FloorHeight      float64
	MinOrientSpeedSq float64
	Damage           int
}

func DefaultConfig() Config {
	return Config{
		SpeedScale:       DefaultSpeedScale,
		Gravity:          DefaultGravity,
		ReferenceRate:    physics.ReferenceFrameRate,
		MaxDistance:      DefaultMaxDistance,
		FloorHeight:      DefaultFloorHeight,
		MinOrientSpeedSq: DefaultMinOrientSpeedSq,
		Damage:           DefaultDamage,
	}
}

// Scorer resolves a path segment against a target.
type Scorer interface {
	Intersect(prev, cur physics.Vec3) (target.Hit, bool)
}

type Reason int

const (
	ReasonHit Reason = iota
	ReasonDistance
	ReasonFloor
	ReasonCleared
)

func (r Reason) String() string {
	switch r {
	case ReasonHit:
		return "hit"
	case ReasonDistance:
		return "distance"
	case ReasonFloor:
		return "floor"
	case ReasonCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

type ScoreEvent struct {
	ArrowID uint64
	Zone    string
	Value   int
	Radial  float64
	Point   physics.Vec3
}

type Retirement struct {
	ArrowID  uint64
	Reason   Reason
	Position physics.Vec3
}

// Report lists what happened to arrows during one Update.
type Report struct {
	Scores  []ScoreEvent
	Retired []Retirement
}

// System owns the live arrow collection. It is not safe for concurrent use.
type System struct {
	cfg     Config
	visuals VisualFactory
	scorer  Scorer
	arrows  []*arrow
	nextID  uint64
}

// NewSystem creates a projectile system. visuals and scorer may be nil.
func NewSystem(cfg Config, visuals VisualFactory, scorer Scorer) *System {
	return &System{
		cfg:     cfg,
		visuals: visuals,
		scorer:  scorer,
	}
}

// Spawn fires an arrow from origin along aim. A zero-length aim spawns nothing.
func (s *System) Spawn(origin, aim physics.Vec3, speed float64, mode Mode) (Snapshot, error) {
	dir, ok := aim.Normalize()
	if !ok {
		return Snapshot{}, fmt.Errorf("aim direction is zero")
	}
	if speed < 0 {
		return Snapshot{}, fmt.Errorf("arrow speed %.3f is negative", speed)
	}
	if mode != ModeLinear && mode != ModeBallistic {
		return Snapshot{}, fmt.Errorf("unknown projectile mode %d", int(mode))
	}

	s.nextID++
	a := &arrow{
		id:          s.nextID,
		mode:        mode,
		position:    origin,
		velocity:    dir.Scale(speed),
		heading:     dir,
		spawnOrigin: origin,
		damage:      s.cfg.Damage,
		active:      true,
	}
	if s.visuals != nil {
		a.visual = s.visuals.CreateProjectileVisual()
	}
	s.arrows = append(s.arrows, a)
	return a.snapshot(), nil
}

// Update advances every active arrow by delta seconds, resolves target
// crossings and retires arrows that left the range. reference is the point
// distance-based retirement is measured from.
func (s *System) Update(delta float64, reference physics.Vec3) Report {
	var report Report
	live := s.arrows[:0]
	for _, a := range s.arrows {
		if a.active {
			s.step(a, delta, reference, &report)
		}
		if a.active {
			live = append(live, a)
			continue
		}
		s.release(a)
	}
	clear(s.arrows[len(live):])
	s.arrows = live
	return report
}

func (s *System) step(a *arrow, delta float64, reference physics.Vec3, report *Report) {
	prev := a.position

	if a.mode == ModeBallistic {
		a.velocity.Y -= s.cfg.Gravity * delta * s.cfg.ReferenceRate
	}
	a.position = a.position.Add(a.velocity.Scale(delta * s.cfg.SpeedScale))

	if a.mode == ModeBallistic && a.velocity.LengthSq() > s.cfg.MinOrientSpeedSq {
		if heading, ok := a.velocity.Normalize(); ok {
			a.heading = heading
		}
	}

	if s.scorer != nil {
		if hit, ok := s.scorer.Intersect(prev, a.position); ok {
			report.Scores = append(report.Scores, ScoreEvent{
				ArrowID: a.id,
				Zone:    hit.Zone.Name,
				Value:   hit.Zone.Score,
				Radial:  hit.Radial,
				Point:   hit.Point,
			})
			a.position = hit.Point
			s.retire(a, ReasonHit, report)
			return
		}
	}

	switch {
	case a.position.DistanceTo(reference) > s.cfg.MaxDistance:
		s.retire(a, ReasonDistance, report)
	case a.mode == ModeBallistic && a.position.Y < s.cfg.FloorHeight:
		s.retire(a, ReasonFloor, report)
	}
}

func (s *System) retire(a *arrow, reason Reason, report *Report) {
	a.active = false
	report.Retired = append(report.Retired, Retirement{
		ArrowID:  a.id,
		Reason:   reason,
		Position: a.position,
	})
}

// release disposes the arrow's visual. Safe to call more than once.
func (s *System) release(a *arrow) {
	if a.released {
		return
	}
	a.released = true
	a.active = false
	if s.visuals != nil && a.visual != nil {
		s.visuals.Dispose(a.visual)
	}
	a.visual = nil
}

// Clear retires every live arrow.
func (s *System) Clear() []Retirement {
	var report Report
	for _, a := range s.arrows {
		if a.active {
			s.retire(a, ReasonCleared, &report)
		}
		s.release(a)
	}
	clear(s.arrows)
	s.arrows = s.arrows[:0]
	return report.Retired
}

func (s *System) Arrows() []Snapshot {
	out := make([]Snapshot, 0, len(s.arrows))
	for _, a := range s.arrows {
		out = append(out, a.snapshot())
	}
	return out
}

func (s *System) Active() int {
	return len(s.arrows)
}
