// Package geom holds the boundary model of planar 3D polygons: points, closed
// rings, polygons with holes and output faces, plus the validity checks that
// gate them before projection and triangulation.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Point is a 3D position. Two points are the same vertex only when all three
// coordinates compare equal.
type Point = mgl64.Vec3

// Ring is a closed sequence of points: the first and the last point are
// identical.
type Ring []Point

// Polygon is one exterior ring and zero or more interior rings (holes).
// A Polygon is built once from a source surface and never mutated.
type Polygon struct {
	Exterior  Ring
	Interiors []Ring
}

// Face is an output face in winding order: 3 points for a triangle, N for a
// preserved polygon.
type Face []Point

// NewPolygon builds a polygon, copying the rings so the caller keeps
// ownership of its slices.
func NewPolygon(exterior Ring, interiors ...Ring) Polygon {
	p := Polygon{Exterior: exterior.Clone()}
	if len(interiors) > 0 {
		p.Interiors = make([]Ring, len(interiors))
		for i, r := range interiors {
			p.Interiors[i] = r.Clone()
		}
	}
	return p
}

// Clone returns a copy of the ring.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	c := make(Ring, len(r))
	copy(c, r)
	return c
}

// IsClosed reports whether the first and last points are equal.
func (r Ring) IsClosed() bool {
	return len(r) > 0 && r[0] == r[len(r)-1]
}

// Open returns the ring without its closing point. A ring that is not closed
// is returned as is.
func (r Ring) Open() []Point {
	if r.IsClosed() && len(r) > 1 {
		return r[:len(r)-1]
	}
	return r
}

// HasHoles reports whether the polygon has interior rings.
func (p Polygon) HasHoles() bool {
	return len(p.Interiors) > 0
}

// Rings returns the exterior followed by the interiors.
func (p Polygon) Rings() []Ring {
	rings := make([]Ring, 0, 1+len(p.Interiors))
	rings = append(rings, p.Exterior)
	return append(rings, p.Interiors...)
}

// Reversed returns the face with its vertex order reversed.
func (f Face) Reversed() Face {
	r := make(Face, len(f))
	for i, p := range f {
		r[len(f)-1-i] = p
	}
	return r
}
