package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalVector returns the (non normalised) normal of the plane through a, b
// and c, each component being the determinant of the point matrix with the
// matching column replaced by ones. The points are taken relative to a, so
// the determinants stay exact on world coordinates.
func NormalVector(a, b, c Point) mgl64.Vec3 {
	b, c = b.Sub(a), c.Sub(a)
	x := mgl64.Mat3FromRows(
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{1, b.Y(), b.Z()},
		mgl64.Vec3{1, c.Y(), c.Z()},
	).Det()
	y := mgl64.Mat3FromRows(
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{b.X(), 1, b.Z()},
		mgl64.Vec3{c.X(), 1, c.Z()},
	).Det()
	z := mgl64.Mat3FromRows(
		mgl64.Vec3{0, 0, 1},
		mgl64.Vec3{b.X(), b.Y(), 1},
		mgl64.Vec3{c.X(), c.Y(), 1},
	).Det()
	return mgl64.Vec3{x, y, z}
}

// UnitNormal returns the unit normal of the plane through a, b and c.
// ok is false when the three points are collinear or coincident.
func UnitNormal(a, b, c Point) (normal mgl64.Vec3, ok bool) {
	n := NormalVector(a, b, c)
	magnitude := n.Len()
	if magnitude == 0 || math.IsNaN(magnitude) {
		return mgl64.Vec3{}, false
	}
	return n.Mul(1 / magnitude), true
}

// RingNormal returns the unit normal of the first three points of the ring.
func RingNormal(r Ring) (mgl64.Vec3, bool) {
	if len(r) < 3 {
		return mgl64.Vec3{}, false
	}
	return UnitNormal(r[0], r[1], r[2])
}

// Area returns the area of a planar loop of points. The loop may be given
// open or closed.
func Area(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	normal, ok := UnitNormal(points[0], points[1], points[2])
	if !ok {
		return 0
	}

	// Relative to the first point, which keeps large coordinates precise.
	origin := points[0]
	var total mgl64.Vec3
	for i := range points {
		a := points[i].Sub(origin)
		b := points[(i+1)%len(points)].Sub(origin)
		total = total.Add(a.Cross(b))
	}
	return math.Abs(total.Dot(normal) * 0.5)
}

// PolygonArea returns the exterior area minus the area of every hole.
func PolygonArea(p Polygon) float64 {
	area := Area(p.Exterior.Open())
	for _, hole := range p.Interiors {
		area -= Area(hole.Open())
	}
	return area
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []Point) Point {
	var sum Point
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
