package debug

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/physics"
	"github.com/Versifine/quiver/internal/projectile"
	"github.com/Versifine/quiver/internal/session"
)

const frame = 1.0 / 60.0

func newTestConsole(t *testing.T) (*Console, *session.Session, *bytes.Buffer) {
	t.Helper()
	settings := session.DefaultSettings()
	settings.Spawn = physics.Vec3{Y: 1}
	settings.Target.Center = physics.Vec3{Y: 1, Z: -20}
	sim, err := session.New(settings, nil, nil)
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	sim.Queue().SetCapture(true)

	var out bytes.Buffer
	c := NewConsole(sim, Options{})
	c.out = &out
	return c, sim, &out
}

// typeKeys feeds raw terminal bytes through the key handler.
func typeKeys(c *Console, keys string) {
	reader := bufio.NewReader(strings.NewReader(keys))
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		c.handleKey(reader, b)
	}
}

func TestPulseHoldsKeyUntilExpiry(t *testing.T) {
	c, sim, _ := newTestConsole(t)
	start := time.Now()

	c.pulse(input.KeyForward, input.KeyBack, start)
	c.pulse(input.KeyForward, input.KeyBack, start.Add(50*time.Millisecond))
	sim.Tick(frame)
	if z := sim.Snapshot().Player.Position.Z; z >= 0 {
		t.Fatalf("z = %v after forward pulse, want < 0", z)
	}

	c.expirePulses(start.Add(100 * time.Millisecond))
	if n := sim.Queue().Len(); n != 0 {
		t.Fatalf("queue has %d events before expiry, want 0", n)
	}

	c.expirePulses(start.Add(time.Second))
	evts := sim.Queue().Drain()
	if len(evts) != 1 || evts[0].Key != input.KeyForward || evts[0].Pressed {
		t.Fatalf("events after expiry = %+v, want one forward release", evts)
	}
}

func TestOppositePulseReleasesKey(t *testing.T) {
	c, sim, _ := newTestConsole(t)
	now := time.Now()

	c.pulse(input.KeyLeft, input.KeyRight, now)
	c.pulse(input.KeyRight, input.KeyLeft, now)

	evts := sim.Queue().Drain()
	want := []input.Event{
		{Kind: input.KindKey, Key: input.KeyLeft, Pressed: true},
		{Kind: input.KindKey, Key: input.KeyLeft, Pressed: false},
		{Kind: input.KindKey, Key: input.KeyRight, Pressed: true},
	}
	if len(evts) != len(want) {
		t.Fatalf("events = %+v, want %+v", evts, want)
	}
	for i := range want {
		if evts[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, evts[i], want[i])
		}
	}
}

func TestArrowKeysLook(t *testing.T) {
	c, sim, _ := newTestConsole(t)

	typeKeys(c, "\x1b[C\x1b[A")
	snap := sim.Tick(frame)

	wantStep := lookStepDegrees * math.Pi / 180
	if math.Abs(snap.Player.Yaw+wantStep) > 1e-9 {
		t.Fatalf("yaw = %v, want %v", snap.Player.Yaw, -wantStep)
	}
	if math.Abs(snap.Player.Pitch-wantStep) > 1e-9 {
		t.Fatalf("pitch = %v, want %v", snap.Player.Pitch, wantStep)
	}
}

func TestFireAndTargetKeys(t *testing.T) {
	c, sim, _ := newTestConsole(t)

	typeKeys(c, "f..,.")
	snap := sim.Tick(frame)

	if len(snap.Arrows) != 1 {
		t.Fatalf("arrows = %d, want 1", len(snap.Arrows))
	}
	if math.Abs(snap.Target.Center.X-0.4) > 1e-9 {
		t.Fatalf("target x = %v, want 0.4", snap.Target.Center.X)
	}
}

func TestSprintToggleAndClear(t *testing.T) {
	c, sim, _ := newTestConsole(t)

	typeKeys(c, "]w")
	if !c.sprint {
		t.Fatalf("sprint not toggled on")
	}
	typeKeys(c, "x")
	if c.sprint || len(c.pulses) != 0 {
		t.Fatalf("clear left sprint=%v pulses=%v", c.sprint, c.pulses)
	}

	sim.Tick(frame)
	for i := 0; i < 200; i++ {
		sim.Tick(frame)
	}
	if g := sim.Snapshot().Player.Gait.String(); g != "idle" {
		t.Fatalf("gait after clear = %s, want idle", g)
	}
}

func TestCommands(t *testing.T) {
	c, sim, out := newTestConsole(t)

	typeKeys(c, ":mode ballistic\r")
	sim.Tick(frame)
	if sim.Snapshot().Mode != projectile.ModeBallistic {
		t.Fatalf("mode = %v, want ballistic", sim.Snapshot().Mode)
	}

	typeKeys(c, ":mode toggle\r")
	sim.Tick(frame)
	if sim.Snapshot().Mode != projectile.ModeLinear {
		t.Fatalf("mode after toggle = %v, want linear", sim.Snapshot().Mode)
	}

	out.Reset()
	typeKeys(c, ":mode homing\r")
	if !strings.Contains(out.String(), "homing") {
		t.Fatalf("invalid mode output = %q", out.String())
	}
	if n := sim.Queue().Len(); n != 0 {
		t.Fatalf("invalid mode queued %d events", n)
	}

	out.Reset()
	typeKeys(c, ":bogus\r")
	if !strings.Contains(out.String(), "unknown command: bogus") {
		t.Fatalf("unknown command output = %q", out.String())
	}

	out.Reset()
	typeKeys(c, ":stat\x7fte\r")
	if !strings.Contains(out.String(), "pos=(0.000,1.000,0.000)") {
		t.Fatalf("state output = %q", out.String())
	}
}

func TestCommandEscapeCancels(t *testing.T) {
	c, sim, out := newTestConsole(t)

	typeKeys(c, ":reset\x1b")
	if c.isCommandMode() {
		t.Fatalf("still in command mode after ESC")
	}
	if sim.Queue().Len() != 0 {
		t.Fatalf("cancelled command queued events")
	}
	if !strings.Contains(out.String(), "command cancelled") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestCopyCommand(t *testing.T) {
	c, sim, out := newTestConsole(t)
	var copied string
	c.copyText = func(s string) error {
		copied = s
		return nil
	}

	typeKeys(c, "f")
	for i := 0; i < 60; i++ {
		sim.Tick(frame)
	}
	typeKeys(c, ":copy\r")

	if !strings.Contains(copied, "score 10") {
		t.Fatalf("copied = %q, want scoreboard with score 10", copied)
	}

	c.copyText = func(string) error { return errors.New("no clipboard") }
	out.Reset()
	typeKeys(c, ":copy\r")
	if !strings.Contains(out.String(), "copy failed: no clipboard") {
		t.Fatalf("output = %q", out.String())
	}
}
