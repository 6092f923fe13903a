// Package projection maps planar 3D polygons to a 2D parametrization and
// back. The plane is fitted to three exterior points; the dropped coordinate
// is chosen from the orientation of the plane and recovered from the plane
// equation.
package projection

import (
	"math"

	"github.com/akmonengine/citymesh/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ErrUnprojectable is returned when the plane equation is solved for a
// coordinate the plane is (nearly) parallel to. Classification rules this
// out, so it always points at a defect rather than at bad input.
var ErrUnprojectable = errors.New("unprojectable geometry")

// minSolveRatio bounds |coefficient| / |normal| for the coordinate being
// solved. It sits below VerticalTolerance so that a correctly classified
// plane never trips it.
const minSolveRatio = 1e-6

// Plane is the implicit plane A*x + B*y + C*z + D = 0.
type Plane struct {
	A, B, C, D float64
}

// FitPlane returns the plane through a, b and c. The coefficients are the
// cross product (b-a) x (c-a), not normalised.
func FitPlane(a, b, c geom.Point) Plane {
	n := b.Sub(a).Cross(c.Sub(a))
	return Plane{
		A: n.X(),
		B: n.Y(),
		C: n.Z(),
		D: -n.Dot(a),
	}
}

// Normal returns (A, B, C).
func (p Plane) Normal() mgl64.Vec3 {
	return mgl64.Vec3{p.A, p.B, p.C}
}

// Eval returns A*x + B*y + C*z + D, zero for points on the plane.
func (p Plane) Eval(pt geom.Point) float64 {
	return p.A*pt.X() + p.B*pt.Y() + p.C*pt.Z() + p.D
}

// IsDegenerate reports whether the three fitting points were collinear.
func (p Plane) IsDegenerate() bool {
	return p.Normal().Len() == 0
}

// SolveX returns the x of the plane point at (y, z).
func (p Plane) SolveX(y, z float64) (float64, error) {
	if err := p.checkSolvable(p.A, "x"); err != nil {
		return 0, err
	}
	return (-p.B*y - p.C*z - p.D) / p.A, nil
}

// SolveY returns the y of the plane point at (x, z).
func (p Plane) SolveY(x, z float64) (float64, error) {
	if err := p.checkSolvable(p.B, "y"); err != nil {
		return 0, err
	}
	return (-p.A*x - p.C*z - p.D) / p.B, nil
}

// SolveZ returns the height of the plane point at (x, y).
func (p Plane) SolveZ(x, y float64) (float64, error) {
	if err := p.checkSolvable(p.C, "z"); err != nil {
		return 0, err
	}
	return (-p.A*x - p.B*y - p.D) / p.C, nil
}

func (p Plane) checkSolvable(coefficient float64, axis string) error {
	length := p.Normal().Len()
	if length == 0 || math.IsNaN(length) {
		return errors.Wrapf(ErrUnprojectable, "solving for %s on a degenerate plane", axis)
	}
	if math.Abs(coefficient)/length < minSolveRatio {
		return errors.Wrapf(ErrUnprojectable, "solving for %s on a plane parallel to it (%v)", axis, p)
	}
	return nil
}
