// Package obj writes the classes of a conversion as Wavefront OBJ files,
// with an optional colormap material library.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/akmonengine/citymesh"
	"github.com/pkg/errors"
)

const header = "# Converted from CityGML to OBJ with citymesh.\n"

type Options struct {
	// Grouping starts an object at the first face of every feature.
	Grouping bool
	// Materials references MaterialLibrary and writes usemtl lines.
	Materials bool
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Write writes one class: its vertices in index order, then its faces.
func Write(w io.Writer, class *citymesh.Class, opts Options) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(header)
	fmt.Fprintf(bw, "# %s: %d vertices, %d faces\n", class.Name, class.Vertices.Len(), len(class.Faces))
	if b := class.Bounds; !b.IsEmpty() {
		fmt.Fprintf(bw, "# bounds: %s %s %s .. %s %s %s\n",
			formatFloat(b.Min.X()), formatFloat(b.Min.Y()), formatFloat(b.Min.Z()),
			formatFloat(b.Max.X()), formatFloat(b.Max.Y()), formatFloat(b.Max.Z()))
	}
	if opts.Materials {
		fmt.Fprintf(bw, "mtllib %s\n", MaterialLibrary)
	}

	bw.WriteString("\n")
	for _, v := range class.Vertices.Points() {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
	}

	bw.WriteString("\n")
	object, material := "", ""
	for i, f := range class.Faces {
		if opts.Grouping && (i == 0 || f.Object != object) {
			fmt.Fprintf(bw, "o %s\n", f.Object)
		}
		object = f.Object
		if opts.Materials && f.Material != material {
			name := f.Material
			if name == "" {
				name = NoMaterial
			}
			fmt.Fprintf(bw, "usemtl %s\n", name)
			material = f.Material
		}
		bw.WriteString("f")
		for _, idx := range f.Indices {
			bw.WriteString(" ")
			bw.WriteString(strconv.Itoa(idx))
		}
		bw.WriteString("\n")
	}
	return errors.Wrapf(bw.Flush(), "write class %s", class.Name)
}

// FileName returns the name of the OBJ file of a class: <doc>.obj for class
// All and <doc>-<class>.obj otherwise.
func FileName(doc, class string) string {
	if class == citymesh.ClassAll {
		return doc + ".obj"
	}
	return doc + "-" + class + ".obj"
}

// WriteFiles writes every non empty class to dir and returns the paths
// written.
func WriteFiles(dir, doc string, classes []*citymesh.Class, opts Options) ([]string, error) {
	var written []string
	for _, class := range classes {
		if class.IsEmpty() {
			continue
		}
		path := filepath.Join(dir, FileName(doc, class.Name))
		if err := writeFile(path, func(w io.Writer) error { return Write(w, class, opts) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteMTLFile writes the colormap to dir/MaterialLibrary.
func WriteMTLFile(dir string, c Colormap) (string, error) {
	path := filepath.Join(dir, MaterialLibrary)
	return path, writeFile(path, func(w io.Writer) error { return WriteMTL(w, c) })
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "close %s", path)
}
