package projection

import (
	"math"

	"github.com/akmonengine/citymesh/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// VerticalTolerance is the largest |z| of a unit normal still treated as a
// vertical plane.
const VerticalTolerance = 1e-5

// Classification selects the coordinate dropped by the projection.
type Classification uint8

const (
	// General planes drop z and keep (x, y).
	General Classification = iota
	// VerticalYZ planes are parallel to the YZ plane: they drop x and keep
	// (y, z).
	VerticalYZ
	// VerticalOther planes are any other vertical plane: they drop y and keep
	// (x, z).
	VerticalOther
)

func (c Classification) String() string {
	switch c {
	case General:
		return "general"
	case VerticalYZ:
		return "vertical-yz"
	case VerticalOther:
		return "vertical"
	}
	return "unknown"
}

// Classify picks the projection for a plane with the given unit normal.
// points are the polygon points, used to detect the constant-x case.
func Classify(normal mgl64.Vec3, points []geom.Point) Classification {
	if math.Abs(normal.Z()) >= VerticalTolerance {
		return General
	}
	// A vertical plane whose normal has no y left cannot be projected onto XZ.
	if sameX(points) || math.Abs(normal.Y()) < VerticalTolerance {
		return VerticalYZ
	}
	return VerticalOther
}

func sameX(points []geom.Point) bool {
	if len(points) == 0 {
		return false
	}
	for _, p := range points[1:] {
		if p.X() != points[0].X() {
			return false
		}
	}
	return true
}

// To2D drops the coordinate selected by the classification.
func To2D(points []geom.Point, class Classification) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(points))
	for i, p := range points {
		out[i] = project(p, class)
	}
	return out
}

func project(p geom.Point, class Classification) mgl64.Vec2 {
	switch class {
	case VerticalYZ:
		return mgl64.Vec2{p.Y(), p.Z()}
	case VerticalOther:
		return mgl64.Vec2{p.X(), p.Z()}
	default:
		return mgl64.Vec2{p.X(), p.Y()}
	}
}

// From2D rebuilds the 3D point, solving the plane for the dropped coordinate.
func From2D(q mgl64.Vec2, plane Plane, class Classification) (geom.Point, error) {
	switch class {
	case VerticalYZ:
		x, err := plane.SolveX(q[0], q[1])
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Point{x, q[0], q[1]}, nil
	case VerticalOther:
		y, err := plane.SolveY(q[0], q[1])
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Point{q[0], y, q[1]}, nil
	case General:
		z, err := plane.SolveZ(q[0], q[1])
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Point{q[0], q[1], z}, nil
	}
	return geom.Point{}, errors.Wrapf(ErrUnprojectable, "unknown classification %d", class)
}

// Projector bundles the plane, normal and classification of one polygon.
type Projector struct {
	Plane  Plane
	Normal mgl64.Vec3
	Class  Classification
}

// NewProjector fits the plane to the first three exterior points and
// classifies it against every point of the polygon. It fails with
// geom.ErrDegenerateRing when those points do not span a plane.
func NewProjector(p geom.Polygon) (*Projector, error) {
	if len(p.Exterior) < 3 {
		return nil, errors.Wrapf(geom.ErrDegenerateRing, "%d exterior points", len(p.Exterior))
	}
	normal, ok := geom.RingNormal(p.Exterior)
	if !ok {
		return nil, errors.Wrap(geom.ErrDegenerateRing, "the normal of the polygon has no magnitude")
	}

	var points []geom.Point
	for _, r := range p.Rings() {
		points = append(points, r.Open()...)
	}

	return &Projector{
		Plane:  FitPlane(p.Exterior[0], p.Exterior[1], p.Exterior[2]),
		Normal: normal,
		Class:  Classify(normal, points),
	}, nil
}

// To2D projects points with the polygon's classification.
func (p *Projector) To2D(points []geom.Point) []mgl64.Vec2 {
	return To2D(points, p.Class)
}

// From2D rebuilds a point on the polygon's plane.
func (p *Projector) From2D(q mgl64.Vec2) (geom.Point, error) {
	return From2D(q, p.Plane, p.Class)
}

// HoleCentroid returns the projected mean of the distinct points of a hole.
func (p *Projector) HoleCentroid(hole geom.Ring) mgl64.Vec2 {
	return project(geom.Centroid(hole.Open()), p.Class)
}
