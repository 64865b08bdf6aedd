package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Versifine/quiver/internal/event"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager turns range events into short synthesized cues.
type SoundManager struct {
	mu          sync.Mutex
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	// play hands a finished cue to the output; replaced in tests.
	play func(beep.Streamer)
}

func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		volume: volume,
		mixer:  &beep.Mixer{},
	}
	sm.play = sm.playOnSpeaker
	return sm
}

// Initialize opens the audio device. Until it succeeds every cue is dropped.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close silences pending cues and releases the device.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Attach subscribes the manager to the bus.
func (sm *SoundManager) Attach(bus *event.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(event.EventArrowFired, func(any) {
		sm.PlayFire()
	})
	bus.Subscribe(event.EventScore, func(raw any) {
		if sc, ok := raw.(*event.ScoreEvent); ok {
			sm.PlayHit(sc.Value)
		}
	})
	bus.Subscribe(event.EventArrowRetired, func(raw any) {
		if r, ok := raw.(*event.ArrowRetiredEvent); ok && r.Reason != "hit" && r.Reason != "cleared" {
			sm.PlayMiss()
		}
	})
}

func (sm *SoundManager) PlayFire() {
	sm.emit(fireSound(sampleRate))
}

func (sm *SoundManager) PlayHit(value int) {
	sm.emit(hitSound(sampleRate, value))
}

func (sm *SoundManager) PlayMiss() {
	sm.emit(missSound(sampleRate))
}

func (sm *SoundManager) emit(s beep.Streamer) {
	sm.mu.Lock()
	play, volume := sm.play, sm.volume
	sm.mu.Unlock()
	if play == nil {
		return
	}
	play(withVolume(s, volume))
}

func (sm *SoundManager) playOnSpeaker(s beep.Streamer) {
	sm.mu.Lock()
	ready := sm.initialized
	sm.mu.Unlock()
	if !ready {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Start opens the device and attaches to the bus. A missing device is logged
// and leaves the range silent.
func Start(bus *event.Bus, volume float64) *SoundManager {
	sm := NewSoundManager(volume)
	if err := sm.Initialize(); err != nil {
		slog.Warn("Audio disabled", "error", err)
		return sm
	}
	sm.Attach(bus)
	return sm
}
