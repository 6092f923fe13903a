package obj

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/akmonengine/citymesh/citygml"
	"github.com/pkg/errors"
)

// MaterialLibrary is the file name of the colormap next to the OBJ files.
const MaterialLibrary = "colormap.mtl"

// DefaultClasses is the number of colours of a colormap: steps of 0.01.
const DefaultClasses = 101

// NoMaterial is the neutral grey material of faces without a value.
const NoMaterial = "none"

// Colormap maps values in [Min, Max] to Classes material names, "0" for Min
// up to "1" for Max.
type Colormap struct {
	Min, Max float64
	Classes  int
}

// ColormapFor returns the value range used for an attribute mode.
func ColormapFor(attr citygml.Attribute) (Colormap, bool) {
	switch attr {
	case citygml.AttributeIrradiation:
		return Colormap{Min: 0, Max: 1500, Classes: DefaultClasses}, true
	case citygml.AttributeTotalIrradiation:
		return Colormap{Min: 157.0136575, Max: 83371.4359245, Classes: DefaultClasses}, true
	case citygml.AttributeYearlyIrradiation:
		return Colormap{Min: 24925, Max: 103454, Classes: DefaultClasses}, true
	}
	return Colormap{}, false
}

func (c Colormap) classes() int {
	if c.Classes < 2 {
		return DefaultClasses
	}
	return c.Classes
}

// Class returns the position of the nearest colour to v. Values outside the
// range are clamped.
func (c Colormap) Class(v float64) int {
	n := c.classes()
	t := 0.0
	if c.Max > c.Min {
		t = (v - c.Min) / (c.Max - c.Min)
	}
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Min(1, math.Max(0, t))
	return int(math.Round(t * float64(n-1)))
}

// Name returns the material name of a class.
func (c Colormap) Name(class int) string {
	return strconv.FormatFloat(float64(class)/float64(c.classes()-1), 'f', -1, 64)
}

// Material returns the material name of v.
func (c Colormap) Material(v float64) string {
	return c.Name(c.Class(v))
}

// afmhot is a black-red-yellow-white ramp for t in [0, 1].
func afmhot(t float64) (r, g, b float64) {
	clip := func(x float64) float64 { return math.Min(1, math.Max(0, x)) }
	return clip(2 * t), clip(2*t - 0.5), clip(2*t - 1)
}

func writeMaterial(w io.Writer, name string, r, g, b float64) {
	fmt.Fprintf(w, "newmtl %s\n", name)
	fmt.Fprintf(w, "Ka %s %s %s\n", formatFloat(r), formatFloat(g), formatFloat(b))
	fmt.Fprintf(w, "Kd %s %s %s\n", formatFloat(r), formatFloat(g), formatFloat(b))
}

// WriteMTL writes one material per class of the colormap, then NoMaterial.
func WriteMTL(w io.Writer, c Colormap) error {
	bw := bufio.NewWriter(w)
	n := c.classes()
	for i := 0; i < n; i++ {
		r, g, b := afmhot(float64(i) / float64(n-1))
		writeMaterial(bw, c.Name(i), r, g, b)
	}
	writeMaterial(bw, NoMaterial, 0.5, 0.5, 0.5)
	return errors.Wrap(bw.Flush(), "write mtl")
}
