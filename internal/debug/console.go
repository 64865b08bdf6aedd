package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/projectile"
	"github.com/Versifine/quiver/internal/session"
	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	lookStepDegrees     = 5.0
)

// Simulation is the part of a session the console drives.
type Simulation interface {
	Queue() *input.Queue
	Tick(delta float64) session.Snapshot
	Snapshot() session.Snapshot
}

type Options struct {
	TickInterval time.Duration
	MovePulse    time.Duration
	// Sensitivity converts the arrow-key look step into pointer units.
	Sensitivity float64
}

type Console struct {
	sim          Simulation
	out          io.Writer
	tickInterval time.Duration
	movePulse    time.Duration
	lookStep     float64
	copyText     func(string) error

	mu          sync.Mutex
	pulses      map[input.Key]time.Time
	sprint      bool
	commandMode bool
	commandBuf  []rune
	statusWidth int
}

func NewConsole(sim Simulation, opts Options) *Console {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.MovePulse <= 0 {
		opts.MovePulse = defaultMovePulse
	}
	if opts.Sensitivity <= 0 {
		opts.Sensitivity = input.DefaultSensitivity
	}
	return &Console{
		sim:          sim,
		out:          os.Stdout,
		tickInterval: opts.TickInterval,
		movePulse:    opts.MovePulse,
		lookStep:     lookStepDegrees * math.Pi / 180 / opts.Sensitivity,
		copyText:     clipboard.WriteAll,
		pulses:       make(map[input.Key]time.Time),
	}
}

// Start puts the terminal into raw mode and runs until ctx is cancelled or
// stdin closes.
func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.sim == nil {
		return fmt.Errorf("console simulation is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	// Arrow keys stand in for the pointer, so look input is always live.
	c.sim.Queue().SetCapture(true)

	fmt.Fprint(c.out, "[range] console started (W/A/S/D pulse, Space, arrows, F fire, ], X, :help)\r\n")
	c.renderStatusLine()

	go c.tickLoop(ctx)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.expirePulses(now)
			c.sim.Tick(now.Sub(last).Seconds())
			last = now
			c.renderStatusLine()
		}
	}
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	q := c.sim.Queue()
	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(input.KeyForward, input.KeyBack, time.Now())
	case 's', 'S':
		c.pulse(input.KeyBack, input.KeyForward, time.Now())
	case 'a', 'A':
		c.pulse(input.KeyLeft, input.KeyRight, time.Now())
	case 'd', 'D':
		c.pulse(input.KeyRight, input.KeyLeft, time.Now())
	case ' ':
		q.PushKey(input.KeyJump, true)
		q.PushKey(input.KeyJump, false)
	case 'f', 'F':
		q.PushFire()
	case ',', '<':
		q.PushTargetMove(-1)
	case '.', '>':
		q.PushTargetMove(1)
	case ']':
		c.toggleSprint()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			q.PushLook(-c.lookStep, 0)
		case 'C': // right
			q.PushLook(c.lookStep, 0)
		case 'A': // up
			q.PushLook(0, -c.lookStep)
		case 'B': // down
			q.PushLook(0, c.lookStep)
		}
	}
	c.renderStatusLine()
}

// pulse holds key for one move pulse and releases its opposite.
func (c *Console) pulse(key, opposite input.Key, now time.Time) {
	q := c.sim.Queue()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, held := c.pulses[opposite]; held {
		delete(c.pulses, opposite)
		q.PushKey(opposite, false)
	}
	if _, held := c.pulses[key]; !held {
		q.PushKey(key, true)
	}
	c.pulses[key] = now.Add(c.movePulse)
}

func (c *Console) expirePulses(now time.Time) {
	q := c.sim.Queue()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, until := range c.pulses {
		if !now.Before(until) {
			delete(c.pulses, key)
			q.PushKey(key, false)
		}
	}
}

func (c *Console) toggleSprint() {
	c.mu.Lock()
	c.sprint = !c.sprint
	enabled := c.sprint
	c.mu.Unlock()
	c.sim.Queue().PushKey(input.KeySprint, enabled)
	slog.Debug("Console sprint toggled", "enabled", enabled)
}

func (c *Console) clearInput() {
	q := c.sim.Queue()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.pulses {
		q.PushKey(key, false)
	}
	clear(c.pulses)
	if c.sprint {
		c.sprint = false
		q.PushKey(input.KeySprint, false)
	}
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancels
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[range] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s \r:%s", buf, buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		p := c.sim.Snapshot().Player
		fmt.Fprintf(c.out, "[range] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) ground=%t gait=%s yaw=%.1f pitch=%.1f\r\n",
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Velocity.X, p.Velocity.Y, p.Velocity.Z,
			p.OnGround, p.Gait, degrees(p.Yaw), degrees(p.Pitch),
		)
	case "score":
		c.printLines(c.sim.Snapshot().Score.String())
	case "arrows":
		snap := c.sim.Snapshot()
		if len(snap.Arrows) == 0 {
			fmt.Fprint(c.out, "[range] no arrows in flight\r\n")
			return
		}
		for _, a := range snap.Arrows {
			fmt.Fprintf(c.out, "[range] arrow %d %s pos=(%.2f,%.2f,%.2f) heading=(%.2f,%.2f,%.2f)\r\n",
				a.ID, a.Mode, a.Position.X, a.Position.Y, a.Position.Z,
				a.Heading.X, a.Heading.Y, a.Heading.Z)
		}
	case "mode":
		if len(parts) != 2 {
			mode := c.sim.Snapshot().Mode
			fmt.Fprintf(c.out, "[range] mode is %s (usage: :mode <linear|ballistic|toggle>)\r\n", mode)
			return
		}
		name := parts[1]
		if name == "toggle" {
			name = c.sim.Snapshot().Mode.Toggle().String()
		}
		if _, err := projectile.ParseMode(name); err != nil {
			fmt.Fprintf(c.out, "[range] %v\r\n", err)
			return
		}
		c.sim.Queue().PushMode(name)
		fmt.Fprintf(c.out, "[range] mode -> %s\r\n", name)
	case "reset":
		c.clearInput()
		c.sim.Queue().PushReset()
		fmt.Fprint(c.out, "[range] reset queued\r\n")
	case "copy":
		report := c.sim.Snapshot().Score.String()
		if err := c.copyText(report); err != nil {
			fmt.Fprintf(c.out, "[range] copy failed: %v\r\n", err)
			return
		}
		fmt.Fprint(c.out, "[range] scoreboard copied to clipboard\r\n")
	default:
		fmt.Fprintf(c.out, "[range] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printLines(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(c.out, "[range] %s\r\n", line)
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[range] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  Space: jump\r\n")
	fmt.Fprint(c.out, "  ]: toggle sprint\r\n")
	fmt.Fprint(c.out, "  Arrow keys: look 5 degrees\r\n")
	fmt.Fprint(c.out, "  F: fire\r\n")
	fmt.Fprint(c.out, "  , / .: slide target left/right\r\n")
	fmt.Fprint(c.out, "  X: clear all input\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[range] commands:\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :score\r\n")
	fmt.Fprint(c.out, "  :arrows\r\n")
	fmt.Fprint(c.out, "  :mode <linear|ballistic|toggle>\r\n")
	fmt.Fprint(c.out, "  :reset\r\n")
	fmt.Fprint(c.out, "  :copy\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	_, fwd := c.pulses[input.KeyForward]
	sprint := c.sprint
	width := c.statusWidth
	c.mu.Unlock()

	snap := c.sim.Snapshot()
	p := snap.Player
	line := fmt.Sprintf(
		"[FWD:%s SPR:%s | YAW:%.1f PIT:%.1f | X:%.2f Y:%.2f Z:%.2f %s | %s arrows:%d target:%.1f | score:%d]",
		boolLabel(fwd),
		boolLabel(sprint),
		degrees(p.Yaw),
		degrees(p.Pitch),
		p.Position.X,
		p.Position.Y,
		p.Position.Z,
		p.Gait,
		snap.Mode,
		len(snap.Arrows),
		snap.Target.Center.X,
		snap.Score.Total,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Fprintf(c.out, "\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
