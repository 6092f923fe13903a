// Package tessellate turns a planar 3D polygon into output faces: triangles
// from a constrained triangulation of its projection, or the exterior ring
// kept as a single face. Every face is wound like the source surface.
package tessellate

import (
	"github.com/akmonengine/citymesh/cdt"
	"github.com/akmonengine/citymesh/geom"
	"github.com/akmonengine/citymesh/projection"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

var (
	// ErrTriangulation marks a polygon the triangulation could not handle.
	ErrTriangulation = errors.New("triangulation failed")
	// ErrHolesUnsupported is returned when a polygon with holes is to be
	// preserved as a single face.
	ErrHolesUnsupported = errors.New("polygons with holes cannot be preserved")
)

// Mode selects between triangles and preserved polygons.
type Mode uint8

const (
	Triangulate Mode = iota
	Preserve
)

func (m Mode) String() string {
	if m == Preserve {
		return "preserve"
	}
	return "triangulate"
}

// Status is the outcome of one polygon.
type Status uint8

const (
	// StatusOK carries the faces of the polygon.
	StatusOK Status = iota
	// StatusInvalid is a polygon skipped by validation.
	StatusInvalid
	// StatusFailed is a polygon that produced no faces.
	StatusFailed
	// StatusRejected is a polygon the mode cannot represent.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalid:
		return "invalid"
	case StatusFailed:
		return "failed"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Result is the outcome of Tessellate. Err holds the reason for any status
// other than StatusOK.
type Result struct {
	Status Status
	Faces  []geom.Face
	Err    error
}

// Options configures Tessellate.
type Options struct {
	Mode     Mode
	Validate bool
}

// Tessellate runs validation (when enabled), projection, triangulation and
// orientation on one polygon. Bad input ends up in the Result; the returned
// error is reserved for projection.ErrUnprojectable.
func Tessellate(p geom.Polygon, opts Options) (Result, error) {
	if opts.Validate {
		if err := geom.ValidatePolygon(p); err != nil {
			return Result{Status: StatusInvalid, Err: err}, nil
		}
	}

	if opts.Mode == Preserve {
		faces, err := PreservePolygon(p)
		switch {
		case errors.Is(err, ErrHolesUnsupported):
			return Result{Status: StatusRejected, Err: err}, nil
		case err != nil:
			return Result{Status: StatusFailed, Err: err}, nil
		}
		return Result{Status: StatusOK, Faces: faces}, nil
	}

	proj, err := projection.NewProjector(p)
	if err != nil {
		return Result{Status: StatusFailed, Err: errors.Wrapf(ErrTriangulation, "%v", err)}, nil
	}
	faces, err := TriangulatePolygon(p, proj)
	switch {
	case errors.Is(err, projection.ErrUnprojectable):
		return Result{}, err
	case err != nil:
		return Result{Status: StatusFailed, Err: err}, nil
	}
	return Result{Status: StatusOK, Faces: faces}, nil
}

// TriangulatePolygon triangulates the projection of p and maps the triangles
// back to 3D. Vertices of the polygon come back as the exact source points;
// only the points created where boundaries cross are rebuilt from the plane.
// Triangulation problems wrap ErrTriangulation.
func TriangulatePolygon(p geom.Polygon, proj *projection.Projector) ([]geom.Face, error) {
	var (
		points   []geom.Point
		segments []cdt.Segment
		holes    []mgl64.Vec2
	)
	for i, ring := range p.Rings() {
		open := ring.Open()
		first := len(points)
		points = append(points, open...)
		for k := range open {
			segments = append(segments, cdt.Segment{first + k, first + (k+1)%len(open)})
		}
		if i > 0 && len(open) > 0 {
			holes = append(holes, holeMarker(proj.To2D(open), proj.HoleCentroid(ring)))
		}
	}

	res, err := cdt.Triangulate(cdt.Input{
		Points:   proj.To2D(points),
		Segments: segments,
		Holes:    holes,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrTriangulation, "%v", err)
	}

	lifted := make([]geom.Point, len(res.Points))
	copy(lifted, points)
	for i := len(points); i < len(res.Points); i++ {
		if lifted[i], err = proj.From2D(res.Points[i]); err != nil {
			return nil, err
		}
	}

	faces := make([]geom.Face, 0, len(res.Triangles))
	for _, tri := range res.Triangles {
		face := geom.Face{lifted[tri[0]], lifted[tri[1]], lifted[tri[2]]}
		faces = append(faces, Normalize(face, proj.Normal))
	}
	return faces, nil
}

// PreservePolygon returns the exterior ring, without its closing point, as
// a single face. Polygons with holes are refused with ErrHolesUnsupported.
func PreservePolygon(p geom.Polygon) ([]geom.Face, error) {
	if p.HasHoles() {
		return nil, errors.Wrapf(ErrHolesUnsupported, "%d holes", len(p.Interiors))
	}
	open := p.Exterior.Open()
	if len(open) < 3 {
		return nil, errors.Wrapf(geom.ErrDegenerateRing, "%d distinct points", len(open))
	}
	face := make(geom.Face, len(open))
	copy(face, open)

	normal, ok := geom.RingNormal(p.Exterior)
	if !ok {
		return []geom.Face{face}, nil
	}
	return []geom.Face{Normalize(face, normal)}, nil
}
