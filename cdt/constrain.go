package cdt

import (
	"github.com/pkg/errors"
)

// crossing lists the edges of the mesh that properly cross the segment ab,
// each edge once.
func (m *mesh) crossing(a, b int) []edge {
	pa, pb := m.pts[a], m.pts[b]
	var out []edge
	for t, tri := range m.tris {
		if !m.alive[t] {
			continue
		}
		for i := 0; i < 3; i++ {
			u, v := tri[i], tri[(i+1)%3]
			if u > v && m.neighbour(u, v) >= 0 {
				continue
			}
			if properCross(m.pts[u], m.pts[v], pa, pb) {
				out = append(out, edge{u, v})
			}
		}
	}
	return out
}

// enforce flips edges until ab is an edge of the mesh. Edges whose quad is
// not convex go back to the end of the queue.
func (m *mesh) enforce(a, b int, limit int) error {
	if m.hasEdge(a, b) {
		return nil
	}
	queue := m.crossing(a, b)
	pa, pb := m.pts[a], m.pts[b]

	for steps := 0; len(queue) > 0; steps++ {
		if steps > limit {
			return errors.Wrapf(ErrSegmentRecovery, "segment %d-%d: %d edges still crossing", a, b, len(queue))
		}
		e := queue[0]
		queue = queue[1:]

		u, v := e[0], e[1]
		t1, ok1 := m.half[edge{u, v}]
		t2, ok2 := m.half[edge{v, u}]
		if !ok1 || !ok2 {
			// A hull edge cannot cross a segment between two mesh vertices.
			return errors.Wrapf(ErrSegmentRecovery, "segment %d-%d crosses the hull", a, b)
		}
		p := m.opposite(t1, u, v)
		q := m.opposite(t2, v, u)
		if !m.convexQuad(u, v, p, q) {
			queue = append(queue, e)
			continue
		}
		m.flip(t1, t2, u, v)
		if properCross(m.pts[p], m.pts[q], pa, pb) {
			queue = append(queue, edge{p, q})
		}
	}

	if !m.hasEdge(a, b) {
		return errors.Wrapf(ErrSegmentRecovery, "segment %d-%d", a, b)
	}
	return nil
}

// restore runs Lawson flips from a queue of edges: every non-constrained
// edge that fails the empty circle test is flipped and the four edges of its
// quad are checked again. It gives up silently after limit flips; the mesh
// stays a valid triangulation either way.
func (m *mesh) restore(constrained map[edge]bool, tolerance float64, limit int) {
	var queue []edge
	for t, tri := range m.tris {
		if !m.alive[t] {
			continue
		}
		for i := 0; i < 3; i++ {
			if u, v := tri[i], tri[(i+1)%3]; u < v {
				queue = append(queue, edge{u, v})
			}
		}
	}

	flips := 0
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if constrained[e.key()] {
			continue
		}
		u, v := e[0], e[1]
		t, ok1 := m.half[edge{u, v}]
		n, ok2 := m.half[edge{v, u}]
		if !ok1 || !ok2 {
			continue
		}
		p := m.opposite(t, u, v)
		q := m.opposite(n, v, u)
		if m.incircle(t, m.pts[q]) <= tolerance || !m.convexQuad(u, v, p, q) {
			continue
		}
		if flips >= limit {
			return
		}
		m.flip(t, n, u, v)
		flips++
		queue = append(queue, edge{u, q}, edge{q, v}, edge{v, p}, edge{p, u})
	}
}
