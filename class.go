package citymesh

import (
	"github.com/akmonengine/citymesh/geom"
	"github.com/akmonengine/citymesh/index"
)

// ClassAll receives every surface of every feature.
const ClassAll = "All"

// Surface is one polygon of a feature, routed to an output class.
type Surface struct {
	Polygon geom.Polygon
	Class   string
	// Material names the material of the faces, empty for none.
	Material string
}

// Feature is the unit of work: its surfaces are tessellated and their
// vertices merged into the class tables together. ID groups the faces in
// the output.
type Feature struct {
	ID       string
	Surfaces []Surface
}

// Face is one output face: 1-based indices into the vertex table of its
// class.
type Face struct {
	Indices  []int
	Material string
	// Object is the ID of the feature the face comes from.
	Object string
}

// Class accumulates the vertices and faces of one output class over a
// document.
type Class struct {
	Name     string
	Vertices *index.Table
	Faces    []Face
	Bounds   geom.Bounds
}

func newClass(name string) *Class {
	return &Class{
		Name:     name,
		Vertices: index.NewTable(),
	}
}

// IsEmpty reports whether the class has no vertex, in which case it is not
// written.
func (c *Class) IsEmpty() bool {
	return c.Vertices.Len() == 0
}

// Stats counts what a Converter processed.
type Stats struct {
	Features int
	Polygons int
	Faces    int
	Invalid  int
	Failed   int
	Rejected int
}

// Add sums two counts.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Features: s.Features + other.Features,
		Polygons: s.Polygons + other.Polygons,
		Faces:    s.Faces + other.Faces,
		Invalid:  s.Invalid + other.Invalid,
		Failed:   s.Failed + other.Failed,
		Rejected: s.Rejected + other.Rejected,
	}
}
