package view

import (
	"math"
	"strings"
	"testing"

	"github.com/Versifine/quiver/internal/body"
	"github.com/Versifine/quiver/internal/physics"
	"github.com/Versifine/quiver/internal/projectile"
	"github.com/Versifine/quiver/internal/session"
	"github.com/hajimehoshi/ebiten/v2"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func testCamera() Camera {
	return Camera{
		Eye:    physics.Vec3{Y: 1},
		FOV:    math.Pi / 2,
		Width:  800,
		Height: 600,
	}
}

func TestProjectCentre(t *testing.T) {
	cam := testCamera()

	x, y, ok := cam.Project(physics.Vec3{Y: 1, Z: -10})
	if !ok || !approxEqual(x, 400, 1e-9) || !approxEqual(y, 300, 1e-9) {
		t.Fatalf("Project(ahead) = (%v, %v, %v), want (400, 300, true)", x, y, ok)
	}

	// 90 degree FOV: a point at 45 degrees up lands on the top edge.
	_, y, ok = cam.Project(physics.Vec3{Y: 11, Z: -10})
	if !ok || !approxEqual(y, 0, 1e-9) {
		t.Fatalf("Project(45 up) y = %v ok=%v, want 0", y, ok)
	}

	x, _, _ = cam.Project(physics.Vec3{X: 1, Y: 1, Z: -10})
	if x <= 400 {
		t.Fatalf("point to the right projected to x=%v", x)
	}

	if _, _, ok := cam.Project(physics.Vec3{Y: 1, Z: 5}); ok {
		t.Fatalf("point behind the camera projected")
	}
}

func TestProjectFollowsYawAndPitch(t *testing.T) {
	cam := testCamera()
	cam.Yaw = -math.Pi / 2 // facing +X

	x, y, ok := cam.Project(physics.Vec3{X: 10, Y: 1})
	if !ok || !approxEqual(x, 400, 1e-9) || !approxEqual(y, 300, 1e-9) {
		t.Fatalf("Project(+X) = (%v, %v, %v), want centre", x, y, ok)
	}

	cam = testCamera()
	cam.Pitch = math.Pi / 6
	look := physics.LookDirection(cam.Yaw, cam.Pitch)
	x, y, ok = cam.Project(cam.Eye.Add(look.Scale(7)))
	if !ok || !approxEqual(x, 400, 1e-9) || !approxEqual(y, 300, 1e-9) {
		t.Fatalf("Project(look dir) = (%v, %v, %v), want centre", x, y, ok)
	}
}

func TestProjectSegmentClipsNearPlane(t *testing.T) {
	cam := testCamera()

	ax, ay, bx, by, ok := cam.ProjectSegment(physics.Vec3{Y: 0, Z: 5}, physics.Vec3{Y: 0, Z: -5})
	if !ok {
		t.Fatalf("segment crossing the camera plane rejected")
	}
	if math.IsInf(ay, 0) || math.IsNaN(ay) || ay <= by {
		t.Fatalf("clipped segment = (%v,%v)-(%v,%v), want near end below far end", ax, ay, bx, by)
	}
	if !approxEqual(bx, 400, 1e-9) {
		t.Fatalf("far end x = %v, want 400", bx)
	}

	if _, _, _, _, ok := cam.ProjectSegment(physics.Vec3{Z: 1}, physics.Vec3{Z: 3}); ok {
		t.Fatalf("segment fully behind the camera projected")
	}
}

func TestRingPointsLieOnCircle(t *testing.T) {
	center := physics.Vec3{Y: 2, Z: -20}
	normal := physics.Vec3{Z: 1}
	pts := ringPoints(center, normal, 1.3, 16)

	if len(pts) != 16 {
		t.Fatalf("len = %d, want 16", len(pts))
	}
	for i, p := range pts {
		d := p.Sub(center)
		if !approxEqual(d.Length(), 1.3, 1e-9) || !approxEqual(d.Dot(normal), 0, 1e-9) {
			t.Fatalf("point %d = %+v off the ring", i, p)
		}
	}

	u, v := planeBasis(physics.Vec3{Y: 1})
	if !approxEqual(u.Dot(v), 0, 1e-12) || !approxEqual(u.Y, 0, 1e-12) {
		t.Fatalf("basis for vertical normal = %+v, %+v", u, v)
	}
}

func TestArrowVisuals(t *testing.T) {
	v := NewArrowVisuals()
	a := v.CreateProjectileVisual()
	b := v.CreateProjectileVisual()
	if v.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", v.Live())
	}
	if arrowTint(a) == arrowTint(b) {
		t.Fatalf("consecutive arrows share a tint")
	}

	v.Dispose(a)
	v.Dispose("not ours")
	if v.Live() != 1 {
		t.Fatalf("Live() = %d after one dispose, want 1", v.Live())
	}
	if arrowTint(nil) != arrowPalette[0] {
		t.Fatalf("nil visual tint = %v", arrowTint(nil))
	}
}

func TestHUDText(t *testing.T) {
	snap := session.Snapshot{
		Player: body.Snapshot{
			Pose: body.Pose{Position: physics.Vec3{X: 1, Y: 1, Z: -2}, Yaw: math.Pi / 2},
			Gait: body.GaitWalk,
		},
		Mode:  projectile.ModeBallistic,
		Score: session.Scoreboard{Shots: 3, Hits: 1, Total: 8, LastZone: "inner", LastValue: 8},
	}

	out := hudText(snap, 2)
	for _, want := range []string{"pos 1.00 1.00 -2.00  walk", "yaw 90.0", "mode ballistic  arrows 2", "score 8  hits 1/3", "last inner +8", "[Enter]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("hudText() = %q, missing %q", out, want)
		}
	}

	snap.Captured = true
	if strings.Contains(hudText(snap, 0), "[Enter]") {
		t.Fatalf("capture hint shown while captured")
	}
}

// scriptedInput replays one frame of key and mouse edges per handleInput call.
type scriptedInput struct {
	pressed    map[ebiten.Key]bool
	released   map[ebiten.Key]bool
	click      bool
	x, y       int
	cursorMode ebiten.CursorModeType
}

func (s *scriptedInput) KeyJustPressed(k ebiten.Key) bool  { return s.pressed[k] }
func (s *scriptedInput) KeyJustReleased(k ebiten.Key) bool { return s.released[k] }
func (s *scriptedInput) CursorPosition() (int, int)        { return s.x, s.y }
func (s *scriptedInput) SetCursorMode(m ebiten.CursorModeType) {
	s.cursorMode = m
}

func (s *scriptedInput) MouseJustPressed(b ebiten.MouseButton) bool {
	return s.click && b == ebiten.MouseButtonLeft
}

func (s *scriptedInput) frame(keys ...ebiten.Key) {
	s.pressed = make(map[ebiten.Key]bool)
	s.released = make(map[ebiten.Key]bool)
	s.click = false
	for _, k := range keys {
		s.pressed[k] = true
	}
}

func newInputGame(t *testing.T) (*Game, *session.Session, *scriptedInput) {
	t.Helper()
	sim, err := session.New(session.DefaultSettings(), nil, nil)
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	in := &scriptedInput{}
	return &Game{sim: sim, in: in, opts: Options{TPS: 60}}, sim, in
}

func TestClickFiresOnlyWhileCaptured(t *testing.T) {
	g, sim, in := newInputGame(t)

	in.frame()
	in.click = true
	g.handleInput()
	if n := sim.Queue().Len(); n != 0 {
		t.Fatalf("uncaptured click queued %d events, want 0", n)
	}

	in.frame(ebiten.KeyEnter)
	g.handleInput()
	if !sim.Queue().Captured() || in.cursorMode != ebiten.CursorModeCaptured {
		t.Fatalf("Enter did not capture the pointer")
	}

	in.frame()
	in.click = true
	g.handleInput()
	snap := sim.Tick(1.0 / 60)
	if snap.Score.Shots != 1 {
		t.Fatalf("captured click shots = %d, want 1", snap.Score.Shots)
	}

	in.frame(ebiten.KeyEscape)
	g.handleInput()
	if sim.Queue().Captured() || in.cursorMode != ebiten.CursorModeVisible {
		t.Fatalf("Escape did not release the pointer")
	}
	in.frame()
	in.click = true
	g.handleInput()
	if snap := sim.Tick(1.0 / 60); snap.Score.Shots != 1 {
		t.Fatalf("shots after release = %d, want 1", snap.Score.Shots)
	}
}

func TestCursorDeltaLooksAfterPriming(t *testing.T) {
	g, sim, in := newInputGame(t)

	in.frame(ebiten.KeyEnter)
	in.x, in.y = 100, 100
	g.handleInput()
	sim.Queue().Drain()

	in.frame()
	in.x, in.y = 110, 95
	g.handleInput()
	evts := sim.Queue().Drain()
	if len(evts) != 1 || evts[0].DX != 10 || evts[0].DY != -5 {
		t.Fatalf("events = %+v, want one look (10, -5)", evts)
	}
}
