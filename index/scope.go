package index

import "github.com/akmonengine/citymesh/geom"

// Scope is the local vertex table of one feature, bound to the global table
// of its output class. The global table must not grow while the scope is
// open.
type Scope struct {
	global *Table
	local  *Table
}

// NewScope opens a scope on global.
func NewScope(global *Table) *Scope {
	return &Scope{global: global, local: NewTable()}
}

// Index returns the index p will have once the scope is committed.
func (s *Scope) Index(p geom.Point) int {
	return IndexGlobalThenLocal(p, s.local, s.global)
}

// Face indexes every point of a face.
func (s *Scope) Face(face geom.Face) []int {
	out := make([]int, len(face))
	for i, p := range face {
		out[i] = s.Index(p)
	}
	return out
}

// Len returns the number of points waiting to be committed.
func (s *Scope) Len() int {
	return s.local.Len()
}

// Commit appends the local points to the global table in insertion order,
// without deduplicating again, and empties the scope.
func (s *Scope) Commit() {
	s.global.Append(s.local.Points())
	s.local = NewTable()
}
