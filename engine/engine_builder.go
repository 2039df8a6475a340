package engine

import (
	"log"

	"github.com/Carmen-Shannon/skyfolio/engine/profiler"
	"github.com/Carmen-Shannon/skyfolio/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each simulation tick
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the simulation tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - hz: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(hz float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = rateToInterval(hz, 60)
	}
}

// WithFrameRate sets how many frames per second are published to the front-ends.
// Values <= 0 will be treated as the default (30Hz).
//
// Parameters:
//   - hz: frames per second (default 30)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRate(hz float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameInterval = rateToInterval(hz, 30)
	}
}

// WithTickCallback registers the simulation tick callback during construction.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithFrameCallback registers the frame callback during construction.
//
// Parameters:
//   - callback: function receiving the time since the previous frame in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithWindow attaches a desktop window whose message loop Run will pump.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithLogger sets the logger used for engine diagnostics.
//
// Parameters:
//   - l: destination logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}
