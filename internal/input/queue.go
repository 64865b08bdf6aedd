package input

import (
	"math"
	"sync"
)

type Kind int

const (
	KindKey Kind = iota
	KindLook
	KindFire
	KindTargetMove
	KindMode
	KindReset
)

// Event is one raw input delivered to the simulation. Only the fields for
// its Kind are set.
type Event struct {
	Kind    Kind
	Key     Key
	Pressed bool
	DX      float64
	DY      float64
	Step    int
	Mode    string
}

// Queue decouples asynchronous input delivery from the simulation tick.
// Any goroutine may push; the session drains it once per tick.
type Queue struct {
	mu      sync.Mutex
	events  []Event
	capture bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// PushKeyName resolves a raw key name; unknown names are dropped.
func (q *Queue) PushKeyName(name string, pressed bool) bool {
	key, ok := ParseKey(name)
	if !ok {
		return false
	}
	q.PushKey(key, pressed)
	return true
}

func (q *Queue) PushKey(key Key, pressed bool) {
	if !key.valid() {
		return
	}
	q.push(Event{Kind: KindKey, Key: key, Pressed: pressed})
}

// PushLook records a pointer delta. Deltas arriving while capture is not
// active, and non-finite deltas, are discarded.
func (q *Queue) PushLook(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	if !finite(dx) || !finite(dy) {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.capture {
		return
	}
	q.events = append(q.events, Event{Kind: KindLook, DX: dx, DY: dy})
}

func (q *Queue) PushFire() {
	q.push(Event{Kind: KindFire})
}

// PushTargetMove queues a lateral target step: negative moves left, positive right.
func (q *Queue) PushTargetMove(step int) {
	if step == 0 {
		return
	}
	q.push(Event{Kind: KindTargetMove, Step: step})
}

func (q *Queue) PushMode(mode string) {
	q.push(Event{Kind: KindMode, Mode: mode})
}

func (q *Queue) PushReset() {
	q.push(Event{Kind: KindReset})
}

// SetCapture switches exclusive pointer capture. Releasing it drops look
// deltas that have not been drained yet.
func (q *Queue) SetCapture(active bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.capture = active
	if active {
		return
	}
	kept := q.events[:0]
	for _, evt := range q.events {
		if evt.Kind != KindLook {
			kept = append(kept, evt)
		}
	}
	clear(q.events[len(kept):])
	q.events = kept
}

func (q *Queue) Captured() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capture
}

// Drain returns pending events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *Queue) push(evt Event) {
	q.mu.Lock()
	q.events = append(q.events, evt)
	q.mu.Unlock()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
