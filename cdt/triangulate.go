// Package cdt computes constrained Delaunay triangulations of planar
// straight line graphs in 2D. Segments are kept as triangle edges, and the
// regions reached from the outside or from a hole marker without crossing a
// segment are carved out of the result.
package cdt

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

var (
	ErrTooFewPoints    = errors.New("cdt: fewer than three distinct points")
	ErrInvalidSegment  = errors.New("cdt: segment refers to a missing point")
	ErrSegmentSplit    = errors.New("cdt: segments keep intersecting")
	ErrSegmentRecovery = errors.New("cdt: segment could not be recovered")
	ErrLocate          = errors.New("cdt: point outside of the mesh")
	ErrEmpty           = errors.New("cdt: no triangle inside the boundary")
)

// Segment joins two point indices.
type Segment [2]int

// Triangle holds three point indices, counter-clockwise.
type Triangle [3]int

// Input is a planar straight line graph. Holes are points inside each region
// to carve out.
type Input struct {
	Points   []mgl64.Vec2
	Segments []Segment
	Holes    []mgl64.Vec2
}

// Result is a triangulation of the input domain. Points starts with the
// input points in order; any point created where two segments cross is
// appended after them.
type Result struct {
	Points    []mgl64.Vec2
	Triangles []Triangle
}

// superScale is the size of the enclosing triangle relative to the extent of
// the input.
const superScale = 20

// Triangulate builds the constrained Delaunay triangulation of the input
// and drops the triangles outside the segments and inside the holes.
func Triangulate(in Input) (*Result, error) {
	for i, seg := range in.Segments {
		if seg[0] < 0 || seg[0] >= len(in.Points) || seg[1] < 0 || seg[1] >= len(in.Points) {
			return nil, errors.Wrapf(ErrInvalidSegment, "segment %d: %v", i, seg)
		}
	}

	canon := dedupe(in.Points)
	distinct := 0
	for i, c := range canon {
		if c == i {
			distinct++
		}
	}
	if distinct < 3 {
		return nil, errors.Wrapf(ErrTooFewPoints, "%d distinct points", distinct)
	}

	// Work around the centre of the bounding box to keep the predicates
	// precise on projected world coordinates.
	lo, hi := extent(in.Points)
	origin := lo.Add(hi).Mul(0.5)
	size := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if size == 0 {
		return nil, errors.Wrap(ErrTooFewPoints, "all points coincide")
	}
	local := make([]mgl64.Vec2, len(in.Points))
	for i, p := range in.Points {
		local[i] = p.Sub(origin)
	}

	split := newSplitter(local, canon, in.Segments)
	if err := split.run(64 + 16*len(split.segs)); err != nil {
		return nil, err
	}
	n := len(split.pts)

	super := []mgl64.Vec2{
		{-superScale * size, -superScale * size},
		{superScale * size, -superScale * size},
		{0, superScale * size},
	}
	m := newMesh(append(split.pts[:n:n], super...))
	m.add(n, n+1, n+2)
	for i := 0; i < n; i++ {
		if !split.usable[i] {
			continue
		}
		if err := m.insert(i); err != nil {
			return nil, err
		}
	}

	constrained := make(map[edge]bool, len(split.segs))
	for _, seg := range split.segs {
		if err := m.enforce(seg[0], seg[1], 8*n*n+64); err != nil {
			return nil, err
		}
		constrained[seg.key()] = true
	}
	m.restore(constrained, 1e-12*math.Pow(size, 4), 16*n*n+64)

	holes := make([]mgl64.Vec2, len(in.Holes))
	for i, h := range in.Holes {
		holes[i] = h.Sub(origin)
	}
	inside := m.classify(n, constrained, holes)

	res := &Result{Points: make([]mgl64.Vec2, n)}
	copy(res.Points, in.Points)
	for i := len(in.Points); i < n; i++ {
		res.Points[i] = split.pts[i].Add(origin)
	}
	for t, tri := range m.tris {
		if inside[t] {
			res.Triangles = append(res.Triangles, tri)
		}
	}
	if len(res.Triangles) == 0 {
		return nil, ErrEmpty
	}
	return res, nil
}

func extent(pts []mgl64.Vec2) (lo, hi mgl64.Vec2) {
	lo = pts[0]
	hi = pts[0]
	for _, p := range pts[1:] {
		lo = mgl64.Vec2{math.Min(lo[0], p[0]), math.Min(lo[1], p[1])}
		hi = mgl64.Vec2{math.Max(hi[0], p[0]), math.Max(hi[1], p[1])}
	}
	return lo, hi
}

// classify marks the live triangles of the domain. Triangles touching the
// enclosing triangle flood the outside; each hole marker floods its hole.
// Floods stop at constrained edges.
func (m *mesh) classify(firstSuper int, constrained map[edge]bool, holes []mgl64.Vec2) []bool {
	removed := make([]bool, len(m.tris))
	var queue []int
	for t, tri := range m.tris {
		if !m.alive[t] {
			continue
		}
		if tri[0] >= firstSuper || tri[1] >= firstSuper || tri[2] >= firstSuper {
			removed[t] = true
			queue = append(queue, t)
		}
	}
	m.flood(queue, removed, constrained)

	for _, h := range holes {
		t := m.locate(h)
		if t < 0 || removed[t] {
			continue
		}
		removed[t] = true
		m.flood([]int{t}, removed, constrained)
	}

	inside := make([]bool, len(m.tris))
	for t := range m.tris {
		inside[t] = m.alive[t] && !removed[t]
	}
	return inside
}

func (m *mesh) flood(queue []int, removed []bool, constrained map[edge]bool) {
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		tri := m.tris[t]
		for i := 0; i < 3; i++ {
			u, v := tri[i], tri[(i+1)%3]
			if constrained[edge{u, v}.key()] {
				continue
			}
			n := m.neighbour(u, v)
			if n < 0 || removed[n] {
				continue
			}
			removed[n] = true
			queue = append(queue, n)
		}
	}
}
