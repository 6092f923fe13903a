package cdt

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type edge [2]int

func (e edge) key() edge {
	if e[0] > e[1] {
		return edge{e[1], e[0]}
	}
	return e
}

// mesh is a triangle soup with counter-clockwise triangles. Every directed
// edge belongs to at most one live triangle, so half maps it to its owner and
// the neighbour across (a, b) is the owner of (b, a).
type mesh struct {
	pts   []mgl64.Vec2
	tris  []Triangle
	alive []bool
	half  map[edge]int
}

func newMesh(pts []mgl64.Vec2) *mesh {
	return &mesh{
		pts:  pts,
		half: make(map[edge]int, 6*len(pts)),
	}
}

func (m *mesh) add(a, b, c int) int {
	t := len(m.tris)
	m.tris = append(m.tris, Triangle{a, b, c})
	m.alive = append(m.alive, true)
	m.half[edge{a, b}] = t
	m.half[edge{b, c}] = t
	m.half[edge{c, a}] = t
	return t
}

func (m *mesh) remove(t int) {
	tri := m.tris[t]
	for i := 0; i < 3; i++ {
		e := edge{tri[i], tri[(i+1)%3]}
		if owner, ok := m.half[e]; ok && owner == t {
			delete(m.half, e)
		}
	}
	m.alive[t] = false
}

// neighbour returns the live triangle across the directed edge (a, b), or -1.
func (m *mesh) neighbour(a, b int) int {
	if t, ok := m.half[edge{b, a}]; ok {
		return t
	}
	return -1
}

func (m *mesh) hasEdge(a, b int) bool {
	_, ab := m.half[edge{a, b}]
	_, ba := m.half[edge{b, a}]
	return ab || ba
}

// opposite returns the vertex of t that is neither a nor b.
func (m *mesh) opposite(t, a, b int) int {
	for _, v := range m.tris[t] {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

func (m *mesh) incircle(t int, p mgl64.Vec2) float64 {
	tri := m.tris[t]
	return incircle(m.pts[tri[0]], m.pts[tri[1]], m.pts[tri[2]], p)
}

// locate returns the first live triangle containing p, or -1.
func (m *mesh) locate(p mgl64.Vec2) int {
	for t, tri := range m.tris {
		if m.alive[t] && inTriangle(m.pts[tri[0]], m.pts[tri[1]], m.pts[tri[2]], p) {
			return t
		}
	}
	return -1
}

// insert adds point index pi with a Bowyer-Watson cavity rebuild.
func (m *mesh) insert(pi int) error {
	p := m.pts[pi]
	start := m.locate(p)
	if start < 0 {
		return errors.Wrapf(ErrLocate, "point %d at %v", pi, p)
	}

	cavity := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		tri := m.tris[t]
		for i := 0; i < 3; i++ {
			n := m.neighbour(tri[i], tri[(i+1)%3])
			if n < 0 || cavity[n] {
				continue
			}
			if m.incircle(n, p) > 0 {
				cavity[n] = true
				stack = append(stack, n)
			}
		}
	}

	// Rounding can leave a cavity that is not star-shaped from p. Shrink it
	// back, or grow it across the starting triangle when p sits on one of its
	// edges, until every boundary edge sees p on its left.
	for round := 0; round < 4*len(cavity)+8; round++ {
		if !m.repairCavity(cavity, start, p) {
			break
		}
	}

	members := make([]int, 0, len(cavity))
	for t := range cavity {
		members = append(members, t)
	}
	sort.Ints(members)

	var boundary []edge
	for _, t := range members {
		tri := m.tris[t]
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if n := m.neighbour(a, b); n >= 0 && cavity[n] {
				continue
			}
			boundary = append(boundary, edge{a, b})
		}
	}
	for _, t := range members {
		m.remove(t)
	}
	for _, e := range boundary {
		m.add(e[0], e[1], pi)
	}
	return nil
}

func (m *mesh) repairCavity(cavity map[int]bool, start int, p mgl64.Vec2) bool {
	members := make([]int, 0, len(cavity))
	for t := range cavity {
		members = append(members, t)
	}
	sort.Ints(members)

	for _, t := range members {
		tri := m.tris[t]
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			n := m.neighbour(a, b)
			if n >= 0 && cavity[n] {
				continue
			}
			if orient(m.pts[a], m.pts[b], p) > 0 {
				continue
			}
			if t != start {
				delete(cavity, t)
				return true
			}
			if n >= 0 {
				cavity[n] = true
				return true
			}
		}
	}
	return false
}

// flip replaces the triangles on both sides of the edge (u, v) with the two
// triangles on the other diagonal. t1 owns (u, v), t2 owns (v, u).
func (m *mesh) flip(t1, t2, u, v int) (int, int) {
	p := m.opposite(t1, u, v)
	q := m.opposite(t2, v, u)
	m.remove(t1)
	m.remove(t2)
	a := m.add(u, q, p)
	b := m.add(q, v, p)
	return a, b
}

// convexQuad reports whether the quad around edge (u, v) with apexes p and q
// is strictly convex, which is when the diagonal pq separates u from v.
func (m *mesh) convexQuad(u, v, p, q int) bool {
	return sign(orient(m.pts[p], m.pts[q], m.pts[u]))*sign(orient(m.pts[p], m.pts[q], m.pts[v])) < 0
}
