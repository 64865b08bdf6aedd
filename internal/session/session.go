package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Versifine/quiver/internal/body"
	"github.com/Versifine/quiver/internal/event"
	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/physics"
	"github.com/Versifine/quiver/internal/projectile"
	"github.com/Versifine/quiver/internal/target"
)

type TargetView struct {
	Center physics.Vec3
	Normal physics.Vec3
	Zones  target.Zones
}

// Snapshot is everything a renderer reads after a tick.
type Snapshot struct {
	Tick     uint64
	Player   body.Snapshot
	Arrows   []projectile.Snapshot
	Target   TargetView
	Mode     projectile.Mode
	Score    Scoreboard
	Scores   []projectile.ScoreEvent
	Captured bool
	LockHeld bool
}

// Session is one shooting-range simulation. Tick must be called from a
// single goroutine; input arrives through Queue from anywhere.
type Session struct {
	settings Settings
	queue    *input.Queue
	input    input.State
	body     *body.Body
	arrows   *projectile.System
	target   *target.Target
	bus      *event.Bus
	log      *slog.Logger
	mode     projectile.Mode
	tick     uint64
	board    Scoreboard

	mu   sync.RWMutex
	last Snapshot
}

// New builds a session. visuals and bus may be nil.
func New(settings Settings, visuals projectile.VisualFactory, bus *event.Bus) (*Session, error) {
	tg, err := target.New(settings.Target)
	if err != nil {
		return nil, fmt.Errorf("create target: %w", err)
	}
	if settings.MaxDelta <= 0 || settings.MaxDelta > physics.MaxFrameDelta {
		settings.MaxDelta = physics.MaxFrameDelta
	}
	if settings.Sensitivity <= 0 {
		settings.Sensitivity = input.DefaultSensitivity
	}

	s := &Session{
		settings: settings,
		queue:    input.NewQueue(),
		body:     body.New(settings.Spawn, settings.Tuning),
		target:   tg,
		bus:      bus,
		log:      slog.With("component", "session"),
		mode:     settings.Mode,
	}
	s.arrows = projectile.NewSystem(settings.Projectile, visuals, tg)
	s.last = s.snapshot(nil)
	return s, nil
}

func (s *Session) Queue() *input.Queue {
	return s.queue
}

// Tick drains pending input, then advances the player and the arrows by
// delta seconds (clamped to MaxDelta).
func (s *Session) Tick(delta float64) Snapshot {
	delta = physics.ClampDelta(delta, s.settings.MaxDelta)
	s.tick++

	for _, evt := range s.queue.Drain() {
		s.apply(evt)
	}

	if err := s.body.Tick(&s.input, delta); err != nil {
		s.log.Warn("Body tick failed", "error", err)
	}

	report := s.arrows.Update(delta, s.body.Pose().Position)
	s.record(report)

	snap := s.snapshot(report.Scores)
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
	return snap
}

// Snapshot returns the state after the most recent tick. Safe to call from
// any goroutine.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.last
	snap.Score = snap.Score.clone()
	snap.Arrows = append([]projectile.Snapshot(nil), snap.Arrows...)
	return snap
}

// Close releases every live arrow visual.
func (s *Session) Close() {
	s.arrows.Clear()
}

func (s *Session) apply(evt input.Event) {
	switch evt.Kind {
	case input.KindKey:
		s.input.SetKey(evt.Key, evt.Pressed)
		if evt.Key == input.KeyJump && evt.Pressed {
			s.body.RequestJump()
		}
	case input.KindLook:
		s.input.AccumulateLook(evt.DX, evt.DY, s.settings.Sensitivity)
	case input.KindFire:
		s.fire()
	case input.KindTargetMove:
		s.moveTarget(evt.Step)
	case input.KindMode:
		s.setMode(evt.Mode)
	case input.KindReset:
		s.reset()
	}
}

// fire spawns an arrow from the eye along the current look direction. Look
// events drained earlier in the same tick are already applied.
func (s *Session) fire() {
	origin := s.body.Pose().Position
	dir := physics.LookDirection(s.input.Yaw(), s.input.Pitch())
	arrow, err := s.arrows.Spawn(origin, dir, s.settings.ArrowSpeed, s.mode)
	if err != nil {
		s.log.Warn("Fire rejected", "error", err)
		return
	}
	s.board.Shots++
	s.log.Debug("Arrow fired", "arrow", arrow.ID, "mode", s.mode.String())
	s.bus.Publish(event.EventArrowFired, &event.ArrowFiredEvent{
		ArrowID:   arrow.ID,
		Mode:      s.mode.String(),
		Origin:    origin,
		Direction: arrow.Heading,
		Speed:     s.settings.ArrowSpeed,
	})
}

func (s *Session) moveTarget(step int) {
	for ; step < 0; step++ {
		s.target.MoveLeft()
	}
	for ; step > 0; step-- {
		s.target.MoveRight()
	}
	s.bus.Publish(event.EventTargetMoved, &event.TargetMovedEvent{X: s.target.X()})
}

func (s *Session) setMode(name string) {
	mode, err := projectile.ParseMode(name)
	if err != nil {
		s.log.Warn("Ignoring mode change", "error", err)
		return
	}
	if mode == s.mode {
		return
	}
	s.mode = mode
	s.log.Info("Projectile mode changed", "mode", mode.String())
	s.bus.Publish(event.EventModeChanged, &event.ModeChangedEvent{Mode: mode.String()})
}

func (s *Session) reset() {
	s.arrows.Clear()
	s.board = Scoreboard{}
	s.input.ReleaseAll()
	s.input.SetOrientation(0, 0)
	s.body.Teleport(s.settings.Spawn)
	s.log.Info("Session reset")
	s.bus.Publish(event.EventReset, nil)
}

func (s *Session) record(report projectile.Report) {
	for _, sc := range report.Scores {
		s.board.recordHit(sc.Zone, sc.Value)
		s.log.Debug("Arrow scored", "arrow", sc.ArrowID, "zone", sc.Zone, "value", sc.Value, "radial", sc.Radial)
		s.bus.Publish(event.EventScore, &event.ScoreEvent{
			ArrowID: sc.ArrowID,
			Zone:    sc.Zone,
			Value:   sc.Value,
			Radial:  sc.Radial,
			Total:   s.board.Total,
		})
	}
	for _, r := range report.Retired {
		if r.Reason != projectile.ReasonHit {
			s.board.Misses++
		}
		s.log.Debug("Arrow retired", "arrow", r.ArrowID, "reason", r.Reason.String())
		s.bus.Publish(event.EventArrowRetired, &event.ArrowRetiredEvent{
			ArrowID:  r.ArrowID,
			Reason:   r.Reason.String(),
			Position: r.Position,
		})
	}
}

func (s *Session) snapshot(scores []projectile.ScoreEvent) Snapshot {
	return Snapshot{
		Tick:   s.tick,
		Player: s.body.Snapshot(),
		Arrows: s.arrows.Arrows(),
		Target: TargetView{
			Center: s.target.Center(),
			Normal: s.target.Normal(),
			Zones:  s.target.Zones(),
		},
		Mode:     s.mode,
		Score:    s.board.clone(),
		Scores:   scores,
		Captured: s.queue.Captured(),
		LockHeld: s.input.Held(input.KeyLockToggle),
	}
}
