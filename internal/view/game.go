package view

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/physics"
	"github.com/Versifine/quiver/internal/projectile"
	"github.com/Versifine/quiver/internal/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	ringSegments = 48
	arrowLength  = 0.8
	gridExtent   = 40
	gridStep     = 2
)

var (
	skyColor   = color.RGBA{R: 24, G: 30, B: 44, A: 255}
	gridColor  = color.RGBA{R: 60, G: 90, B: 60, A: 255}
	hudColor   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	crossColor = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	ringColors = []color.RGBA{
		{R: 250, G: 200, B: 40, A: 255},
		{R: 230, G: 60, B: 50, A: 255},
		{R: 70, G: 130, B: 230, A: 255},
		{R: 200, G: 200, B: 200, A: 255},
	}
)

// Simulation is the session surface the window drives.
type Simulation interface {
	Queue() *input.Queue
	Tick(delta float64) session.Snapshot
}

type Options struct {
	Title  string
	Width  int
	Height int
	TPS    int
	FOV    float64 // vertical, degrees
}

// inputSource is the slice of ebiten's polled input the window reads.
type inputSource interface {
	KeyJustPressed(ebiten.Key) bool
	KeyJustReleased(ebiten.Key) bool
	MouseJustPressed(ebiten.MouseButton) bool
	CursorPosition() (int, int)
	SetCursorMode(ebiten.CursorModeType)
}

type ebitenInput struct{}

func (ebitenInput) KeyJustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenInput) KeyJustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }
func (ebitenInput) CursorPosition() (int, int)        { return ebiten.CursorPosition() }
func (ebitenInput) SetCursorMode(m ebiten.CursorModeType) {
	ebiten.SetCursorMode(m)
}

func (ebitenInput) MouseJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

// Game adapts a session to ebiten's Update/Draw loop.
type Game struct {
	ctx     context.Context
	sim     Simulation
	visuals *ArrowVisuals
	opts    Options
	face    text.Face
	snap    session.Snapshot
	in      inputSource

	cursorX, cursorY int
	cursorPrimed     bool
}

var keyBindings = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.KeyForward,
	ebiten.KeyS:          input.KeyBack,
	ebiten.KeyA:          input.KeyLeft,
	ebiten.KeyD:          input.KeyRight,
	ebiten.KeyShiftLeft:  input.KeySprint,
	ebiten.KeyShiftRight: input.KeySprint,
	ebiten.KeySpace:      input.KeyJump,
	ebiten.KeyEnter:      input.KeyLockToggle,
}

func NewGame(ctx context.Context, sim Simulation, visuals *ArrowVisuals, opts Options) *Game {
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.FOV <= 0 {
		opts.FOV = 75
	}
	return &Game{
		ctx:     ctx,
		sim:     sim,
		visuals: visuals,
		opts:    opts,
		face:    text.NewGoXFace(basicfont.Face7x13),
		in:      ebitenInput{},
	}
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, sim Simulation, visuals *ArrowVisuals, opts Options) error {
	g := NewGame(ctx, sim, visuals, opts)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetTPS(g.opts.TPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.handleInput()
	g.snap = g.sim.Tick(1 / float64(g.opts.TPS))
	return nil
}

func (g *Game) handleInput() {
	q := g.sim.Queue()

	for ek, key := range keyBindings {
		if g.in.KeyJustPressed(ek) {
			q.PushKey(key, true)
		}
		if g.in.KeyJustReleased(ek) {
			q.PushKey(key, false)
		}
	}

	if g.in.KeyJustPressed(ebiten.KeyEnter) {
		g.setCapture(!q.Captured())
	}
	if g.in.KeyJustPressed(ebiten.KeyEscape) && q.Captured() {
		g.setCapture(false)
	}

	if q.Captured() {
		x, y := g.in.CursorPosition()
		if g.cursorPrimed {
			q.PushLook(float64(x-g.cursorX), float64(y-g.cursorY))
		}
		g.cursorX, g.cursorY, g.cursorPrimed = x, y, true

		if g.in.MouseJustPressed(ebiten.MouseButtonLeft) {
			q.PushFire()
		}
	}

	if g.in.KeyJustPressed(ebiten.KeyArrowLeft) {
		q.PushTargetMove(-1)
	}
	if g.in.KeyJustPressed(ebiten.KeyArrowRight) {
		q.PushTargetMove(1)
	}
	if g.in.KeyJustPressed(ebiten.KeyM) {
		q.PushMode(g.snap.Mode.Toggle().String())
	}
	if g.in.KeyJustPressed(ebiten.KeyR) {
		q.PushReset()
	}
}

func (g *Game) setCapture(active bool) {
	g.sim.Queue().SetCapture(active)
	g.cursorPrimed = false
	if active {
		g.in.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		g.in.SetCursorMode(ebiten.CursorModeVisible)
	}
	slog.Debug("Pointer capture changed", "captured", active)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	cam := g.camera()

	g.drawGrid(screen, cam)
	g.drawTarget(screen, cam)
	g.drawArrows(screen, cam)
	g.drawCrosshair(screen)
	g.drawHUD(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

func (g *Game) camera() Camera {
	p := g.snap.Player
	return Camera{
		Eye:    p.Position,
		Yaw:    p.Yaw,
		Pitch:  p.Pitch,
		FOV:    g.opts.FOV * math.Pi / 180,
		Width:  float64(g.opts.Width),
		Height: float64(g.opts.Height),
	}
}

func (g *Game) line(screen *ebiten.Image, cam Camera, a, b physics.Vec3, width float32, clr color.Color) {
	ax, ay, bx, by, ok := cam.ProjectSegment(a, b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
}

func (g *Game) drawGrid(screen *ebiten.Image, cam Camera) {
	for i := -gridExtent; i <= gridExtent; i += gridStep {
		f := float64(i)
		g.line(screen, cam, physics.Vec3{X: f, Z: -gridExtent}, physics.Vec3{X: f, Z: gridExtent}, 1, gridColor)
		g.line(screen, cam, physics.Vec3{X: -gridExtent, Z: f}, physics.Vec3{X: gridExtent, Z: f}, 1, gridColor)
	}
}

func (g *Game) drawTarget(screen *ebiten.Image, cam Camera) {
	tv := g.snap.Target
	for i := len(tv.Zones) - 1; i >= 0; i-- {
		pts := ringPoints(tv.Center, tv.Normal, tv.Zones[i].Radius, ringSegments)
		clr := ringColors[i%len(ringColors)]
		for j := range pts {
			g.line(screen, cam, pts[j], pts[(j+1)%len(pts)], 2, clr)
		}
	}
}

func (g *Game) drawArrows(screen *ebiten.Image, cam Camera) {
	for _, a := range g.snap.Arrows {
		tail := a.Position.Sub(a.Heading.Scale(arrowLength))
		g.line(screen, cam, tail, a.Position, 2, arrowTint(a.Visual))
	}
}

func (g *Game) drawCrosshair(screen *ebiten.Image) {
	cx, cy := float32(g.opts.Width)/2, float32(g.opts.Height)/2
	vector.StrokeLine(screen, cx-8, cy, cx+8, cy, 1, crossColor, false)
	vector.StrokeLine(screen, cx, cy-8, cx, cy+8, 1, crossColor, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.ColorScale.ScaleWithColor(hudColor)
	op.LineSpacing = 16
	text.Draw(screen, hudText(g.snap, g.liveVisuals()), g.face, op)
}

func (g *Game) liveVisuals() int {
	if g.visuals == nil {
		return len(g.snap.Arrows)
	}
	return g.visuals.Live()
}

func hudText(snap session.Snapshot, live int) string {
	p := snap.Player
	var sb strings.Builder
	fmt.Fprintf(&sb, "pos %.2f %.2f %.2f  %s\n", p.Position.X, p.Position.Y, p.Position.Z, p.Gait)
	fmt.Fprintf(&sb, "yaw %.1f  pitch %.1f\n", p.Yaw*180/math.Pi, p.Pitch*180/math.Pi)
	fmt.Fprintf(&sb, "mode %s  arrows %d\n", snap.Mode, live)
	fmt.Fprintf(&sb, "score %d  hits %d/%d", snap.Score.Total, snap.Score.Hits, snap.Score.Shots)
	if snap.Score.LastZone != "" {
		fmt.Fprintf(&sb, "  last %s +%d", snap.Score.LastZone, snap.Score.LastValue)
	}
	if !snap.Captured {
		sb.WriteString("\n[Enter] capture pointer")
	}
	return sb.String()
}

var _ projectile.VisualFactory = (*ArrowVisuals)(nil)
