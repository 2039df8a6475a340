package common

import "math"

// Vec3 is a 3-component float32 vector used for positions, velocities and offsets.
// Y is up; yaw 0 faces +Z.
type Vec3 [3]float32

// V3 builds a Vec3 from its components.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance returns |v - o|.
func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Len()
}

// Near reports whether v lies within eps of o.
func (v Vec3) Near(o Vec3, eps float32) bool {
	return v.Distance(o) <= eps
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Lerp linearly interpolates from v toward o by t.
//
// Parameters:
//   - o: destination vector
//   - t: interpolation factor, 0 returns v and 1 returns o
//
// Returns:
//   - Vec3: the interpolated vector
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
		v[2] + (o[2]-v[2])*t,
	}
}

// RotateY rotates v around the Y axis by yaw radians, mapping a vector expressed in a
// yaw-rotated local frame into world space. Local +Z maps to (sin yaw, 0, cos yaw).
//
// Parameters:
//   - yaw: rotation angle in radians
//
// Returns:
//   - Vec3: the rotated vector
func (v Vec3) RotateY(yaw float32) Vec3 {
	s := float32(math.Sin(float64(yaw)))
	c := float32(math.Cos(float64(yaw)))
	return Vec3{
		v[0]*c + v[2]*s,
		v[1],
		-v[0]*s + v[2]*c,
	}
}

// HorizontalLen returns the length of the XZ projection of v.
func (v Vec3) HorizontalLen() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[2]*v[2])))
}
