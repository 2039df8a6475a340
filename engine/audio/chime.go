// Package audio plays short cues for collection, arrival and completion.
package audio

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Note pitches in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

// Chime plays the island's sound cues through the default audio device.
type Chime interface {
	// Init opens the audio device. Cues are silent until Init succeeds.
	Init() error

	// Attach plays cues for bus events: a blip per marker, two notes on arrival and an arpeggio on
	// completion.
	//
	// Parameters:
	//   - bus: the event bus to listen on
	//
	// Returns:
	//   - func(): detaches the listeners
	Attach(bus event.Bus) func()

	PlayCollect()
	PlayArrive()
	PlayComplete()

	// Close silences all cues and releases the device.
	Close()
}

type chimeImpl struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

var _ Chime = &chimeImpl{}

// NewChime creates a Chime. Call Init before expecting sound.
func NewChime() Chime {
	return &chimeImpl{mixer: &beep.Mixer{}}
}

func (c *chimeImpl) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

func (c *chimeImpl) Attach(bus event.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(event.EventCollected, func(event.Event) { c.PlayCollect() }),
		bus.Subscribe(event.EventArrived, func(event.Event) { c.PlayArrive() }),
		bus.Subscribe(event.EventCollectionComplete, func(event.Event) { c.PlayComplete() }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (c *chimeImpl) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

func (c *chimeImpl) PlayCollect() {
	c.play(NewTone(sampleRate, noteC6, 120*time.Millisecond, 0.25))
}

func (c *chimeImpl) PlayArrive() {
	c.play(Arpeggio(sampleRate, 140*time.Millisecond, 0.3, noteE5, noteG5))
}

func (c *chimeImpl) PlayComplete() {
	c.play(Arpeggio(sampleRate, 180*time.Millisecond, 0.35, noteC5, noteE5, noteG5, noteC6))
}

func (c *chimeImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}
