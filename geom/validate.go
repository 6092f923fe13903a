package geom

import (
	"math"

	"github.com/pkg/errors"
)

// PlanarityTolerance is the largest accepted distance (absolute dot product
// with the unit normal) of a ring point from the plane of the first three.
const PlanarityTolerance = 0.01

// MinRingPoints counts three distinct vertices plus the closing repeat.
const MinRingPoints = 4

var (
	// ErrDegenerateRing marks a ring that is not closed, has too few points
	// or whose first three points do not span a plane.
	ErrDegenerateRing = errors.New("degenerate ring")
	// ErrNonPlanarRing marks a ring whose points leave the plane of its first
	// three points by more than PlanarityTolerance.
	ErrNonPlanarRing = errors.New("non-planar ring")
)

// ValidateRing checks closure, point count and planarity, in that order.
// The returned error wraps ErrDegenerateRing or ErrNonPlanarRing.
func ValidateRing(r Ring) error {
	if len(r) == 0 {
		return errors.Wrap(ErrDegenerateRing, "empty ring")
	}
	if !r.IsClosed() {
		return errors.Wrap(ErrDegenerateRing, "first and last points do not match")
	}
	if len(r) < MinRingPoints {
		return errors.Wrapf(ErrDegenerateRing, "%d points, need at least %d", len(r), MinRingPoints)
	}

	normal, ok := RingNormal(r)
	if !ok {
		return errors.Wrap(ErrDegenerateRing, "the normal of the first three points has no magnitude")
	}
	for i := 3; i < len(r); i++ {
		d := r[i].Sub(r[0]).Dot(normal)
		if math.Abs(d) > PlanarityTolerance {
			return errors.Wrapf(ErrNonPlanarRing, "point %d is %.6f off the plane", i, d)
		}
	}
	return nil
}

// IsRingValid is ValidateRing without the diagnostic.
func IsRingValid(r Ring) bool {
	return ValidateRing(r) == nil
}

// ValidatePolygon validates the exterior and then every interior ring, each
// on its own and then against the plane of the exterior. The first failure
// is returned, annotated with the ring it was found in.
func ValidatePolygon(p Polygon) error {
	if err := ValidateRing(p.Exterior); err != nil {
		return errors.WithMessage(err, "exterior")
	}
	normal, _ := RingNormal(p.Exterior)
	origin := p.Exterior[0]

	for i, hole := range p.Interiors {
		if err := ValidateRing(hole); err != nil {
			return errors.WithMessagef(err, "interior %d", i)
		}
		for j, pt := range hole {
			if d := pt.Sub(origin).Dot(normal); math.Abs(d) > PlanarityTolerance {
				return errors.Wrapf(ErrNonPlanarRing, "interior %d: point %d is %.6f off the exterior plane", i, j, d)
			}
		}
	}
	return nil
}
