package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/skyfolio/engine/profiler"
	"github.com/Carmen-Shannon/skyfolio/engine/window"
)

// maxTickDelta caps the delta handed to the tick callback after a stall.
const maxTickDelta = 0.25

// engine implements the Engine interface.
// Coordinates the simulation tick loop, the frame publishing loop and the optional window thread.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	frameCallback  func(deltaTime float32)

	frameInterval time.Duration // time between frame callbacks
	logger        *log.Logger
}

// Engine is the main loop of the island runtime.
// It drives the fixed-rate simulation tick, a slower frame loop that publishes state to the
// front-ends, and the desktop window message pump when a window is attached.
type Engine interface {
	// Window returns the attached window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the simulation tick rate in ticks per second.
	//
	// Parameters:
	//   - hz: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(hz float64)

	// SetTickCallback registers the function called each simulation tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the function called each published frame.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous frame in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetFrameRate sets how many frames per second are published.
	//
	// Parameters:
	//   - hz: frames per second (defaults to 30 if <= 0)
	SetFrameRate(hz float64)

	// Run starts the loops and blocks until Quit is called or the window closes.
	// With a window attached, Run must be called from the goroutine that created it.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been signalled.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
		frameInterval:   time.Second / 30,
		logger:          log.Default(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
		if err := e.window.Close(); err != nil {
			e.logger.Printf("[Engine] window close: %v", err)
		}
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the tick, frame and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleFrames()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate simulation loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverAndQuit("tick")

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			if dt > maxTickDelta {
				dt = maxTickDelta
			}

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleFrames runs the frame publishing loop in its own goroutine.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer e.recoverAndQuit("frame")

	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	lastFrame := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastFrame).Seconds())
			lastFrame = now

			if e.frameCallback != nil {
				e.frameCallback(dt)
			}
		}
	}
}

// recoverAndQuit turns a panic inside a loop goroutine into an engine shutdown.
func (e *engine) recoverAndQuit(loop string) {
	if r := recover(); r != nil {
		e.logger.Printf("[Engine] %s goroutine recovered from panic: %v", loop, r)
		e.signalQuit()
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the simulation tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(hz float64) {
	newRate := rateToInterval(hz, 60)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each simulation tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetFrameCallback registers the function called each published frame.
func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

// SetFrameRate sets the frame publishing rate. Only takes effect before Run.
func (e *engine) SetFrameRate(hz float64) {
	e.frameInterval = rateToInterval(hz, 30)
}

// rateToInterval converts a rate in hertz to a ticker interval, substituting def for non-positive rates.
func rateToInterval(hz, def float64) time.Duration {
	if hz <= 0 {
		hz = def
	}
	return time.Duration(float64(time.Second) / hz)
}
