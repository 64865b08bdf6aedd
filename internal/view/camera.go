package view

import (
	"math"

	"github.com/Versifine/quiver/internal/physics"
)

const nearPlane = 0.05

// Camera is a pinhole camera at the player's eye. Yaw 0 looks down -Z;
// positive pitch looks up.
type Camera struct {
	Eye    physics.Vec3
	Yaw    float64
	Pitch  float64
	FOV    float64 // vertical, radians
	Width  float64
	Height float64
}

// toView returns p in camera coordinates: x right, y up, depth forward.
func (c Camera) toView(p physics.Vec3) (x, y, depth float64) {
	d := p.Sub(c.Eye)
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)

	x = d.X*cy - d.Z*sy
	z := d.X*sy + d.Z*cy
	y = d.Y*cp + z*sp
	depth = d.Y*sp - z*cp
	return x, y, depth
}

func (c Camera) focal() float64 {
	return (c.Height / 2) / math.Tan(c.FOV/2)
}

func (c Camera) toScreen(x, y, depth float64) (float64, float64) {
	f := c.focal()
	return c.Width/2 + f*x/depth, c.Height/2 - f*y/depth
}

// Project maps a world point to screen pixels. ok is false for points
// behind the near plane.
func (c Camera) Project(p physics.Vec3) (sx, sy float64, ok bool) {
	x, y, depth := c.toView(p)
	if depth < nearPlane {
		return 0, 0, false
	}
	sx, sy = c.toScreen(x, y, depth)
	return sx, sy, true
}

// ProjectSegment projects a line segment, clipping it against the near
// plane. ok is false when the whole segment is behind the camera.
func (c Camera) ProjectSegment(a, b physics.Vec3) (ax, ay, bx, by float64, ok bool) {
	x0, y0, d0 := c.toView(a)
	x1, y1, d1 := c.toView(b)
	if d0 < nearPlane && d1 < nearPlane {
		return 0, 0, 0, 0, false
	}
	if d0 < nearPlane {
		t := (nearPlane - d0) / (d1 - d0)
		x0, y0, d0 = x0+(x1-x0)*t, y0+(y1-y0)*t, nearPlane
	}
	if d1 < nearPlane {
		t := (nearPlane - d1) / (d0 - d1)
		x1, y1, d1 = x1+(x0-x1)*t, y1+(y0-y1)*t, nearPlane
	}
	ax, ay = c.toScreen(x0, y0, d0)
	bx, by = c.toScreen(x1, y1, d1)
	return ax, ay, bx, by, true
}

// ringPoints returns n points of a circle of radius r centred on center in
// the plane with the given unit normal.
func ringPoints(center, normal physics.Vec3, r float64, n int) []physics.Vec3 {
	u, v := planeBasis(normal)
	pts := make([]physics.Vec3, n)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = center.Add(u.Scale(r * c)).Add(v.Scale(r * s))
	}
	return pts
}

// planeBasis returns two unit vectors spanning the plane orthogonal to n.
func planeBasis(n physics.Vec3) (physics.Vec3, physics.Vec3) {
	up := physics.Vec3{Y: 1}
	if math.Abs(n.Dot(up)) > 0.99 {
		up = physics.Vec3{X: 1}
	}
	u, _ := cross(up, n).Normalize()
	v, _ := cross(n, u).Normalize()
	return u, v
}

func cross(a, b physics.Vec3) physics.Vec3 {
	return physics.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
