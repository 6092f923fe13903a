// Package stl writes the faces of a class as an STL mesh.
package stl

import (
	"io"

	"github.com/akmonengine/citymesh"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Triangles returns the faces of a class as triangles. Faces with more than
// three vertices are split into a fan around their first vertex.
func Triangles(class *citymesh.Class) []*model3d.Triangle {
	points := class.Vertices.Points()
	coord := func(idx int) model3d.Coord3D {
		p := points[idx-1]
		return model3d.Coord3D{X: p.X(), Y: p.Y(), Z: p.Z()}
	}

	var triangles []*model3d.Triangle
	for _, f := range class.Faces {
		for i := 1; i+1 < len(f.Indices); i++ {
			triangles = append(triangles, &model3d.Triangle{
				coord(f.Indices[0]),
				coord(f.Indices[i]),
				coord(f.Indices[i+1]),
			})
		}
	}
	return triangles
}

// Write encodes a class as binary STL.
func Write(w io.Writer, class *citymesh.Class) error {
	return errors.Wrapf(model3d.WriteSTL(w, Triangles(class)), "write stl %s", class.Name)
}

// SaveClass saves a class to path, grouping the triangles by connectivity.
func SaveClass(path string, class *citymesh.Class) error {
	mesh := model3d.NewMeshTriangles(Triangles(class))
	return errors.Wrapf(mesh.SaveGroupedSTL(path), "save stl %s", path)
}
