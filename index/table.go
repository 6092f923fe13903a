// Package index deduplicates output vertices into 1-based index tables.
//
// A Table accumulates the vertices of one output class for a whole document.
// While a feature is processed, vertices missing from the global table go to
// a local Table owned by a Scope, their indices offset by the size of the
// global table. Commit appends the local vertices to the global table when
// the feature is done. Lookups are exact: two points share an index only
// when every coordinate compares equal.
package index

import "github.com/akmonengine/citymesh/geom"

// Table is an insertion-ordered set of points.
type Table struct {
	points []geom.Point
	lookup map[geom.Point]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{lookup: make(map[geom.Point]int)}
}

// Len returns the number of points.
func (t *Table) Len() int {
	return len(t.points)
}

// Points returns the points in index order. The slice must not be modified.
func (t *Table) Points() []geom.Point {
	return t.points
}

// Lookup returns the 1-based index of p.
func (t *Table) Lookup(p geom.Point) (int, bool) {
	i, ok := t.lookup[p]
	return i, ok
}

// Add returns the 1-based index of p, appending it when it is new.
func (t *Table) Add(p geom.Point) int {
	if i, ok := t.lookup[p]; ok {
		return i
	}
	t.points = append(t.points, p)
	i := len(t.points)
	t.lookup[p] = i
	return i
}

// Append adds every point in order, without deduplication against the
// points already present.
func (t *Table) Append(points []geom.Point) {
	for _, p := range points {
		t.points = append(t.points, p)
		if _, ok := t.lookup[p]; !ok {
			t.lookup[p] = len(t.points)
		}
	}
}

// IndexGlobalThenLocal returns the index of p in global when it is there.
// Otherwise p is looked up in, or added to, local and its local index is
// shifted by the size of global, which is where local will be appended.
func IndexGlobalThenLocal(p geom.Point, local, global *Table) int {
	if i, ok := global.Lookup(p); ok {
		return i
	}
	return local.Add(p) + global.Len()
}
