package common

// AABB is an axis-aligned box described by its center and full size, the way trigger volumes and
// colliders are authored in the scene.
type AABB struct {
	Center Vec3
	Size   Vec3
}

// NewAABB creates a box centered on center with the given full extents.
func NewAABB(center, size Vec3) AABB {
	return AABB{Center: center, Size: size}
}

// Min returns the minimum corner of the box.
func (b AABB) Min() Vec3 {
	return b.Center.Sub(b.Size.Scale(0.5))
}

// Max returns the maximum corner of the box.
func (b AABB) Max() Vec3 {
	return b.Center.Add(b.Size.Scale(0.5))
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b AABB) Contains(p Vec3) bool {
	lo, hi := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether two boxes intersect. Touching faces count as overlap.
//
// Parameters:
//   - o: the other box
//
// Returns:
//   - bool: true if the boxes share any volume or boundary
func (b AABB) Overlaps(o AABB) bool {
	aLo, aHi := b.Min(), b.Max()
	bLo, bHi := o.Min(), o.Max()
	for i := 0; i < 3; i++ {
		if aHi[i] < bLo[i] || bHi[i] < aLo[i] {
			return false
		}
	}
	return true
}

// Translate returns the box moved by offset.
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{Center: b.Center.Add(offset), Size: b.Size}
}
