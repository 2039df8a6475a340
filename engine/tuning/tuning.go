// Package tuning loads the runtime knobs: flight constants, camera framing and loop rates.
package tuning

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/avatar"
	"github.com/Carmen-Shannon/skyfolio/engine/camera"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning is the decoded tuning file. Zero fields take their defaults.
type Tuning struct {
	TickRateHz  int `yaml:"tick_rate_hz"`
	FrameRateHz int `yaml:"frame_rate_hz"`
	// ReferenceHz enables frame-rate independent smoothing tuned at this rate. 0 keeps per-tick factors.
	ReferenceHz     float32 `yaml:"reference_hz"`
	FadeMs          int     `yaml:"fade_ms"`
	ManualInterrupt bool    `yaml:"manual_interrupt"`

	Flight Flight         `yaml:"flight"`
	Camera camera.Framing `yaml:"camera"`
	Lens   Lens           `yaml:"lens"`
}

// Lens is the perspective of the follow camera shells render with. Marker visibility is computed
// against it.
type Lens struct {
	FovDeg float32 `yaml:"fov_deg"`
	Aspect float32 `yaml:"aspect"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

// Flight mirrors avatar.Params with angles in degrees.
type Flight struct {
	FlightSpeed       float32 `yaml:"flight_speed"`
	VerticalSpeed     float32 `yaml:"vertical_speed"`
	RotationSpeedDeg  float32 `yaml:"rotation_speed_deg"`
	TiltAngleDeg      float32 `yaml:"tilt_angle_deg"`
	TiltSpeed         float32 `yaml:"tilt_speed"`
	MovementSmoothing float32 `yaml:"movement_smoothing"`
	RotationSmoothing float32 `yaml:"rotation_smoothing"`
	ArrivalRadius     float32 `yaml:"arrival_radius"`
	SnapRadius        float32 `yaml:"snap_radius"`
	CollectEpsilon    float32 `yaml:"collect_epsilon"`
	HorizontalDamping float32 `yaml:"horizontal_damping"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	return Tuning{
		TickRateHz:  60,
		FrameRateHz: 30,
		FadeMs:      300,
		Flight: Flight{
			FlightSpeed:       30,
			VerticalSpeed:     20,
			RotationSpeedDeg:  50.107,
			TiltAngleDeg:      15,
			TiltSpeed:         0.1,
			MovementSmoothing: 0.05,
			RotationSmoothing: 0.08,
			ArrivalRadius:     2,
			SnapRadius:        2,
			CollectEpsilon:    0.1,
			HorizontalDamping: 0.95,
		},
		Camera: camera.DefaultFraming(),
		Lens: Lens{
			FovDeg: 45,
			Aspect: 16.0 / 9.0,
			Near:   0.1,
			Far:    2000,
		},
	}
}

// Load reads a tuning file and overlays it on the defaults.
//
// Parameters:
//   - path: path to a YAML tuning file
//
// Returns:
//   - Tuning: the merged tuning
//   - error: read, decode or validation failure
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("tuning: %w", err)
	}
	t, err := Parse(raw)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML document, overlays it on the defaults and validates the result.
//
// Parameters:
//   - raw: YAML document
//
// Returns:
//   - Tuning: the merged tuning
//   - error: decode or validation failure; validation failures wrap ErrInvalidTuning
func Parse(raw []byte) (Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning yaml: %w", err)
	}
	t = t.withDefaults()
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t Tuning) withDefaults() Tuning {
	d := Default()
	t.TickRateHz = common.Coalesce(t.TickRateHz, d.TickRateHz)
	t.FrameRateHz = common.Coalesce(t.FrameRateHz, d.FrameRateHz)
	t.FadeMs = common.Coalesce(t.FadeMs, d.FadeMs)

	f, df := &t.Flight, d.Flight
	f.FlightSpeed = common.Coalesce(f.FlightSpeed, df.FlightSpeed)
	f.VerticalSpeed = common.Coalesce(f.VerticalSpeed, df.VerticalSpeed)
	f.RotationSpeedDeg = common.Coalesce(f.RotationSpeedDeg, df.RotationSpeedDeg)
	f.TiltAngleDeg = common.Coalesce(f.TiltAngleDeg, df.TiltAngleDeg)
	f.TiltSpeed = common.Coalesce(f.TiltSpeed, df.TiltSpeed)
	f.MovementSmoothing = common.Coalesce(f.MovementSmoothing, df.MovementSmoothing)
	f.RotationSmoothing = common.Coalesce(f.RotationSmoothing, df.RotationSmoothing)
	f.ArrivalRadius = common.Coalesce(f.ArrivalRadius, df.ArrivalRadius)
	f.SnapRadius = common.Coalesce(f.SnapRadius, df.SnapRadius)
	f.CollectEpsilon = common.Coalesce(f.CollectEpsilon, df.CollectEpsilon)
	f.HorizontalDamping = common.Coalesce(f.HorizontalDamping, df.HorizontalDamping)

	t.Camera.ChaseOffset = common.Coalesce(t.Camera.ChaseOffset, d.Camera.ChaseOffset)
	t.Camera.PathOffset = common.Coalesce(t.Camera.PathOffset, d.Camera.PathOffset)
	t.Camera.LookAtOffset = common.Coalesce(t.Camera.LookAtOffset, d.Camera.LookAtOffset)

	t.Lens.FovDeg = common.Coalesce(t.Lens.FovDeg, d.Lens.FovDeg)
	t.Lens.Aspect = common.Coalesce(t.Lens.Aspect, d.Lens.Aspect)
	t.Lens.Near = common.Coalesce(t.Lens.Near, d.Lens.Near)
	t.Lens.Far = common.Coalesce(t.Lens.Far, d.Lens.Far)
	return t
}

// Validate checks rates are positive and smoothing factors lie in (0, 1].
//
// Returns:
//   - error: the first violation found, wrapping ErrInvalidTuning
func (t Tuning) Validate() error {
	if t.TickRateHz <= 0 {
		return fmt.Errorf("%w: tick_rate_hz must be positive, got %d", ErrInvalidTuning, t.TickRateHz)
	}
	if t.FrameRateHz <= 0 {
		return fmt.Errorf("%w: frame_rate_hz must be positive, got %d", ErrInvalidTuning, t.FrameRateHz)
	}
	if t.ReferenceHz < 0 {
		return fmt.Errorf("%w: reference_hz must not be negative", ErrInvalidTuning)
	}
	if t.FadeMs < 0 {
		return fmt.Errorf("%w: fade_ms must not be negative", ErrInvalidTuning)
	}

	if t.Lens.FovDeg <= 0 || t.Lens.FovDeg >= 180 {
		return fmt.Errorf("%w: lens fov_deg must be in (0, 180), got %v", ErrInvalidTuning, t.Lens.FovDeg)
	}
	if t.Lens.Aspect <= 0 || t.Lens.Near <= 0 || t.Lens.Far <= t.Lens.Near {
		return fmt.Errorf("%w: lens needs a positive aspect and 0 < near < far", ErrInvalidTuning)
	}

	f := t.Flight
	positive := []struct {
		name string
		v    float32
	}{
		{"flight_speed", f.FlightSpeed},
		{"vertical_speed", f.VerticalSpeed},
		{"arrival_radius", f.ArrivalRadius},
		{"snap_radius", f.SnapRadius},
		{"collect_epsilon", f.CollectEpsilon},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}

	factors := []struct {
		name string
		v    float32
	}{
		{"tilt_speed", f.TiltSpeed},
		{"movement_smoothing", f.MovementSmoothing},
		{"rotation_smoothing", f.RotationSmoothing},
		{"horizontal_damping", f.HorizontalDamping},
	}
	for _, fc := range factors {
		if fc.v <= 0 || fc.v > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalidTuning, fc.name, fc.v)
		}
	}
	return nil
}

// Params converts the flight section to controller constants.
func (t Tuning) Params() avatar.Params {
	f := t.Flight
	return avatar.Params{
		FlightSpeed:       f.FlightSpeed,
		VerticalSpeed:     f.VerticalSpeed,
		RotationSpeed:     common.DegToRad(f.RotationSpeedDeg),
		TiltAngle:         common.DegToRad(f.TiltAngleDeg),
		TiltSpeed:         f.TiltSpeed,
		MovementSmoothing: f.MovementSmoothing,
		RotationSmoothing: f.RotationSmoothing,
		ArrivalRadius:     f.ArrivalRadius,
		SnapRadius:        f.SnapRadius,
		CollectEpsilon:    f.CollectEpsilon,
		HorizontalDamping: f.HorizontalDamping,
	}
}

// CameraLens converts the lens section to the follow camera's perspective.
func (t Tuning) CameraLens() camera.Lens {
	return camera.Lens{
		Fov:    common.DegToRad(t.Lens.FovDeg),
		Aspect: t.Lens.Aspect,
		Near:   t.Lens.Near,
		Far:    t.Lens.Far,
	}
}

// FadeDuration returns the length of each half of a fade.
func (t Tuning) FadeDuration() time.Duration {
	return time.Duration(t.FadeMs) * time.Millisecond
}

// TickInterval returns the simulation tick period.
func (t Tuning) TickInterval() time.Duration {
	return time.Second / time.Duration(t.TickRateHz)
}

// FrameInterval returns how often frames are pushed to shells.
func (t Tuning) FrameInterval() time.Duration {
	return time.Second / time.Duration(t.FrameRateHz)
}
