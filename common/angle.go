package common

import "math"

const twoPi = 2 * math.Pi

// pi32 is π rounded to float32, which lies slightly above π. Bounds are checked against it so that a
// float32 π stays π instead of wrapping to -π.
var pi32 = float64(float32(math.Pi))

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// NormalizeAngle wraps an angle into the half-open interval (-π, π].
//
// Parameters:
//   - angle: angle in radians, any magnitude
//
// Returns:
//   - float32: the equivalent angle in (-π, π]
func NormalizeAngle(angle float32) float32 {
	a := math.Mod(float64(angle), twoPi)
	if a > pi32 {
		a -= twoPi
	} else if a <= -pi32 {
		a += twoPi
	}
	return float32(a)
}

// LerpAngle interpolates from start to end along the shortest arc.
// Both inputs are normalized into (-π, π] first; when they are more than π apart the smaller one
// is lifted by 2π so the interpolation never travels the long way around. The result is
// normalized again.
//
// An exact half turn is a tie. A float32 π lies above math.Pi, so the tie counts as more than π
// apart and turns through negative angles: LerpAngle(0, π, 0.5) is -π/2, not π/2.
//
// Parameters:
//   - start: current angle in radians
//   - end: target angle in radians
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - float32: the interpolated angle in (-π, π]
func LerpAngle(start, end, t float32) float32 {
	s := float64(NormalizeAngle(start))
	e := float64(NormalizeAngle(end))
	if math.Abs(e-s) > math.Pi {
		if e > s {
			s += twoPi
		} else {
			e += twoPi
		}
	}
	return NormalizeAngle(float32(s + (e-s)*float64(t)))
}

// AngleDelta returns the signed shortest angular distance from a to b, in [-π, π].
func AngleDelta(a, b float32) float32 {
	d := float64(NormalizeAngle(b)) - float64(NormalizeAngle(a))
	if d > math.Pi {
		d -= twoPi
	} else if d < -math.Pi {
		d += twoPi
	}
	return float32(d)
}

// SmoothingFactor converts a per-tick lerp factor tuned at refHz into the factor that produces
// the same decay over a frame of length dt seconds: 1-(1-f)^(dt*refHz), which equals
// 1-exp(-k*dt) with k = -ln(1-f)*refHz.
// A non-positive refHz or dt returns f unchanged.
//
// Parameters:
//   - f: per-tick factor in [0, 1)
//   - dt: frame duration in seconds
//   - refHz: tick rate the factor was tuned for
//
// Returns:
//   - float32: the frame-rate independent factor
func SmoothingFactor(f, dt, refHz float32) float32 {
	if refHz <= 0 || dt <= 0 {
		return f
	}
	if f >= 1 {
		return 1
	}
	return float32(1 - math.Pow(float64(1-f), float64(dt*refHz)))
}
