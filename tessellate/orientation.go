package tessellate

import (
	"math"

	"github.com/akmonengine/citymesh/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// NormalTolerance is the largest per-axis difference between two unit
// normals considered equal.
const NormalTolerance = 1e-4

// NormalsEqual compares two unit normals axis by axis.
func NormalsEqual(a, b mgl64.Vec3) bool {
	return math.Abs(a.X()-b.X()) <= NormalTolerance &&
		math.Abs(a.Y()-b.Y()) <= NormalTolerance &&
		math.Abs(a.Z()-b.Z()) <= NormalTolerance
}

// Normalize returns the face wound like the source surface. The face normal
// comes from its first three points; when it does not match the source
// normal the vertex order is reversed. Faces whose normal matches neither
// direction (slightly non-planar input) are decided by the sign of the dot
// product. Degenerate faces are returned unchanged.
func Normalize(face geom.Face, source mgl64.Vec3) geom.Face {
	if len(face) < 3 {
		return face
	}
	normal, ok := geom.UnitNormal(face[0], face[1], face[2])
	if !ok {
		return face
	}

	switch {
	case NormalsEqual(normal, source):
		return face
	case NormalsEqual(normal.Mul(-1), source):
		return face.Reversed()
	case normal.Dot(source) < 0:
		return face.Reversed()
	}
	return face
}
