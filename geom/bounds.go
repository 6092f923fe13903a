package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	valid bool
}

// IsEmpty reports whether no point was ever added.
func (b Bounds) IsEmpty() bool {
	return !b.valid
}

// Extend grows the box to contain the point
func (b *Bounds) Extend(p Point) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// Union grows the box to contain other.
func (b *Bounds) Union(other Bounds) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// BoundsOf returns the box of a set of points.
func BoundsOf(points []Point) Bounds {
	var b Bounds
	for _, p := range points {
		b.Extend(p)
	}
	return b
}
