package bridge

import (
	"log"
	"net/http"
	"time"
)

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*serverImpl)

// WithLogger sets the logger for session messages.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogger(l *log.Logger) ServerBuilderOption {
	return func(s *serverImpl) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers sets how many pool workers encode and fan out messages.
//
// Parameters:
//   - n: worker count, at least 1
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithWorkers(n int) ServerBuilderOption {
	return func(s *serverImpl) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithQueueSize sets how many outbound messages a client may have pending before new ones are dropped.
//
// Parameters:
//   - n: per-client queue length
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithQueueSize(n int) ServerBuilderOption {
	return func(s *serverImpl) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithFrameInterval sets the minimum time between broadcast frames. 0 sends every frame.
//
// Parameters:
//   - d: the minimum interval
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithFrameInterval(d time.Duration) ServerBuilderOption {
	return func(s *serverImpl) {
		if d >= 0 {
			s.frameInterval = d
		}
	}
}

// WithCheckOrigin restricts which origins may connect. All origins are accepted by default.
//
// Parameters:
//   - fn: the origin check
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithCheckOrigin(fn func(r *http.Request) bool) ServerBuilderOption {
	return func(s *serverImpl) {
		if fn != nil {
			s.upgrader.CheckOrigin = fn
		}
	}
}
