package avatar

import "github.com/Carmen-Shannon/skyfolio/common"

// Params are the movement constants. Smoothing factors are per-tick lerp factors unless the
// controller is built with WithFrameRateIndependence.
type Params struct {
	// FlightSpeed is the horizontal speed in units per second.
	FlightSpeed float32
	// VerticalSpeed is the climb and descent speed in units per second.
	VerticalSpeed float32
	// RotationSpeed is the steering step in radians, scaled by RotationSmoothing each tick.
	RotationSpeed float32
	// TiltAngle is the banking angle in radians while moving horizontally.
	TiltAngle float32
	// TiltSpeed is the lerp factor toward the tilt target.
	TiltSpeed float32
	// MovementSmoothing eases velocity and both camera points.
	MovementSmoothing float32
	// RotationSmoothing eases both yaw angles.
	RotationSmoothing float32
	// ArrivalRadius is the distance at which a path waypoint counts as reached.
	ArrivalRadius float32
	// SnapRadius is how close the avatar must be to a path's first point to start from where it is.
	SnapRadius float32
	// CollectEpsilon is the tolerance for matching a waypoint to a collectible position.
	CollectEpsilon float32
	// HorizontalDamping decays horizontal target velocity each tick while only climbing or descending.
	HorizontalDamping float32
}

// DefaultParams returns the island's flight tuning.
func DefaultParams() Params {
	return Params{
		FlightSpeed:       30,
		VerticalSpeed:     20,
		RotationSpeed:     common.DegToRad(50.107),
		TiltAngle:         common.DegToRad(15),
		TiltSpeed:         0.1,
		MovementSmoothing: 0.05,
		RotationSmoothing: 0.08,
		ArrivalRadius:     2,
		SnapRadius:        2,
		CollectEpsilon:    0.1,
		HorizontalDamping: 0.95,
	}
}
