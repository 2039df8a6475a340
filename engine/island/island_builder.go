package island

import (
	"log"

	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/tuning"
)

// IslandBuilderOption is a functional option for configuring an Island.
type IslandBuilderOption func(*islandImpl)

// WithCatalog replaces the embedded island layout.
//
// Parameters:
//   - c: the catalog to use
//
// Returns:
//   - IslandBuilderOption: option function to apply
func WithCatalog(c *catalog.Catalog) IslandBuilderOption {
	return func(is *islandImpl) {
		is.catalog = c
	}
}

// WithTuning replaces the default flight and camera tuning.
//
// Parameters:
//   - t: the tuning to use
//
// Returns:
//   - IslandBuilderOption: option function to apply
func WithTuning(t tuning.Tuning) IslandBuilderOption {
	return func(is *islandImpl) {
		is.tuning = t
	}
}

// WithLogger sets the logger for zone and arrival messages.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - IslandBuilderOption: option function to apply
func WithLogger(l *log.Logger) IslandBuilderOption {
	return func(is *islandImpl) {
		if l != nil {
			is.logger = l
		}
	}
}

// WithBus shares an existing event bus instead of creating one.
//
// Parameters:
//   - b: the bus to publish on
//
// Returns:
//   - IslandBuilderOption: option function to apply
func WithBus(b event.Bus) IslandBuilderOption {
	return func(is *islandImpl) {
		is.bus = b
	}
}

// WithCollectibleTotal sets the number of markers that count as 100%. Defaults to the number of
// markers in the catalog.
//
// Parameters:
//   - n: the total marker count
//
// Returns:
//   - IslandBuilderOption: option function to apply
func WithCollectibleTotal(n int) IslandBuilderOption {
	return func(is *islandImpl) {
		is.total = n
	}
}
