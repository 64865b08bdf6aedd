package target

import (
	"fmt"
	"math"

	"github.com/Versifine/quiver/internal/physics"
)

const (
	DefaultSlideStep = 0.2
	DefaultMinX      = -2.0
	DefaultMaxX      = 2.0
)

type Config struct {
	Zones     Zones
	Center    physics.Vec3
	Normal    physics.Vec3
	SlideStep float64
	MinX      float64
	MaxX      float64
}

func DefaultConfig() Config {
	return Config{
		Zones:     DefaultZones(),
		Center:    physics.Vec3{X: 0, Y: 2, Z: -20},
		Normal:    physics.Vec3{Z: 1},
		SlideStep: DefaultSlideStep,
		MinX:      DefaultMinX,
		MaxX:      DefaultMaxX,
	}
}

// Target is a flat ring target that can slide along the X axis.
type Target struct {
	zones     Zones
	center    physics.Vec3
	normal    physics.Vec3
	slideStep float64
	minX      float64
	maxX      float64
}

// Hit is a plane crossing that landed inside a scoring zone.
type Hit struct {
	Zone   Zone
	Point  physics.Vec3
	Radial float64
}

func New(cfg Config) (*Target, error) {
	if err := cfg.Zones.Validate(); err != nil {
		return nil, err
	}
	normal, ok := cfg.Normal.Normalize()
	if !ok {
		return nil, fmt.Errorf("target normal is zero")
	}
	if cfg.MinX > cfg.MaxX {
		return nil, fmt.Errorf("target slide range [%.3f, %.3f] is empty", cfg.MinX, cfg.MaxX)
	}
	if cfg.SlideStep < 0 {
		return nil, fmt.Errorf("target slide step %.3f is negative", cfg.SlideStep)
	}
	t := &Target{
		zones:     append(Zones(nil), cfg.Zones...),
		center:    cfg.Center,
		normal:    normal,
		slideStep: cfg.SlideStep,
		minX:      cfg.MinX,
		maxX:      cfg.MaxX,
	}
	t.center.X = t.clampX(t.center.X)
	return t, nil
}

func (t *Target) MoveLeft() {
	t.center.X = t.clampX(t.center.X - t.slideStep)
}

func (t *Target) MoveRight() {
	t.center.X = t.clampX(t.center.X + t.slideStep)
}

func (t *Target) X() float64 {
	return t.center.X
}

func (t *Target) Center() physics.Vec3 {
	return t.center
}

func (t *Target) Normal() physics.Vec3 {
	return t.normal
}

func (t *Target) Zones() Zones {
	return append(Zones(nil), t.zones...)
}

// SignedDistance is positive on the side the normal points to.
func (t *Target) SignedDistance(p physics.Vec3) float64 {
	return p.Sub(t.center).Dot(t.normal)
}

// Intersect tests the segment prev→cur against the target plane. It reports
// a hit only when the segment crosses the plane inside a scoring zone; a
// crossing outside the outer ring is a miss.
func (t *Target) Intersect(prev, cur physics.Vec3) (Hit, bool) {
	d0 := t.SignedDistance(prev)
	d1 := t.SignedDistance(cur)
	if !crosses(d0, d1) {
		return Hit{}, false
	}

	frac := d0 / (d0 - d1)
	point := prev.Add(cur.Sub(prev).Scale(frac))
	inPlane := point.Sub(t.center)
	inPlane = inPlane.Sub(t.normal.Scale(inPlane.Dot(t.normal)))
	radial := inPlane.Length()

	zone, ok := t.zones.Lookup(radial)
	if !ok {
		return Hit{}, false
	}
	return Hit{Zone: zone, Point: point, Radial: radial}, true
}

func crosses(d0, d1 float64) bool {
	if d0 == d1 {
		return false
	}
	return (d0 > 0 && d1 <= 0) || (d0 < 0 && d1 >= 0)
}

func (t *Target) clampX(x float64) float64 {
	return math.Max(t.minX, math.Min(t.maxX, x))
}
