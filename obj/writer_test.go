package obj

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akmonengine/citymesh"
	"github.com/akmonengine/citymesh/citygml"
	"github.com/akmonengine/citymesh/geom"
	"github.com/akmonengine/citymesh/tessellate"
)

func convertSquares(t *testing.T, mode tessellate.Mode) *citymesh.Converter {
	t.Helper()
	square := func(x float64) geom.Polygon {
		return geom.NewPolygon(geom.Ring{{x, 0, 0}, {x + 1, 0, 0}, {x + 1, 1, 0}, {x, 1, 0}, {x, 0, 0}})
	}
	conv := citymesh.NewConverter(tessellate.Options{Mode: mode}, citymesh.ClassAll, "RoofSurface")
	err := conv.Convert([]citymesh.Feature{
		{ID: "a", Surfaces: []citymesh.Surface{{Polygon: square(0), Class: citymesh.ClassAll, Material: "0.5"}}},
		{ID: "b", Surfaces: []citymesh.Surface{{Polygon: square(1), Class: citymesh.ClassAll, Material: "1"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return conv
}

func TestWrite_Preserve(t *testing.T) {
	conv := convertSquares(t, tessellate.Preserve)
	var buf bytes.Buffer
	if err := Write(&buf, conv.Class(citymesh.ClassAll), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := header +
		"# All: 6 vertices, 2 faces\n" +
		"# bounds: 0 0 0 .. 2 1 0\n" +
		"\n" +
		"v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 2 0 0\nv 2 1 0\n" +
		"\n" +
		"f 1 2 3 4\nf 2 5 6 3\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestWrite_GroupingAndMaterials(t *testing.T) {
	conv := convertSquares(t, tessellate.Triangulate)
	var buf bytes.Buffer
	if err := Write(&buf, conv.Class(citymesh.ClassAll), Options{Grouping: true, Materials: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "mtllib colormap.mtl\n") {
		t.Errorf("missing mtllib")
	}
	if strings.Count(out, "\no ") != 2 || !strings.Contains(out, "\no a\n") || !strings.Contains(out, "\no b\n") {
		t.Errorf("expected one object per feature:\n%s", out)
	}
	if strings.Count(out, "usemtl ") != 2 || !strings.Contains(out, "usemtl 0.5\n") || !strings.Contains(out, "usemtl 1\n") {
		t.Errorf("expected one usemtl per material change:\n%s", out)
	}
	if strings.Index(out, "o b") > strings.Index(out, "usemtl 1") {
		t.Errorf("the object must start before its material")
	}
	if strings.Count(out, "\nf ") != 4 {
		t.Errorf("expected 4 triangles:\n%s", out)
	}
}

func TestWrite_FaceWithoutMaterial(t *testing.T) {
	square := func(x float64) geom.Polygon {
		return geom.NewPolygon(geom.Ring{{x, 0, 0}, {x + 1, 0, 0}, {x + 1, 1, 0}, {x, 1, 0}, {x, 0, 0}})
	}
	conv := citymesh.NewConverter(tessellate.Options{Mode: tessellate.Preserve}, citymesh.ClassAll)
	err := conv.Convert([]citymesh.Feature{
		{ID: "bare", Surfaces: []citymesh.Surface{{Polygon: square(0), Class: citymesh.ClassAll}}},
		{ID: "lit", Surfaces: []citymesh.Surface{{Polygon: square(1), Class: citymesh.ClassAll, Material: "0.5"}}},
		{ID: "unknown", Surfaces: []citymesh.Surface{{Polygon: square(2), Class: citymesh.ClassAll}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, conv.Class(citymesh.ClassAll), Options{Materials: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	faces := out[strings.Index(out, "\nf "):]
	expected := "\nf 1 2 3 4\nusemtl 0.5\nf 2 5 6 3\nusemtl none\nf 5 7 8 6\n"
	if faces != expected {
		t.Errorf("faces:\n%s\nwant:\n%s", faces, expected)
	}
}

func TestWriteFiles(t *testing.T) {
	conv := convertSquares(t, tessellate.Triangulate)
	dir := t.TempDir()

	written, err := WriteFiles(dir, "city", conv.Classes(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 1 || filepath.Base(written[0]) != "city.obj" {
		t.Fatalf("written = %v, want only city.obj (RoofSurface is empty)", written)
	}
	data, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), header) {
		t.Errorf("missing header")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("city", citymesh.ClassAll); got != "city.obj" {
		t.Errorf("FileName = %s", got)
	}
	if got := FileName("city", "RoofSurface"); got != "city-RoofSurface.obj" {
		t.Errorf("FileName = %s", got)
	}
}

// =============================================================================
// Colormap
// =============================================================================

func TestColormap(t *testing.T) {
	c := Colormap{Min: 0, Max: 1500, Classes: DefaultClasses}
	tests := []struct {
		value float64
		name  string
	}{
		{0, "0"},
		{750, "0.5"},
		{1500, "1"},
		{15, "0.01"},
		{22.6, "0.02"},
		{-100, "0"},
		{99999, "1"},
	}
	for _, tt := range tests {
		if got := c.Material(tt.value); got != tt.name {
			t.Errorf("Material(%v) = %s, want %s", tt.value, got, tt.name)
		}
	}

	offset := Colormap{Min: 24925, Max: 103454, Classes: DefaultClasses}
	if got := offset.Material(24925); got != "0" {
		t.Errorf("the minimum maps to the first class, got %s", got)
	}
}

func TestColormapFor(t *testing.T) {
	if _, ok := ColormapFor(citygml.AttributeNone); ok {
		t.Errorf("no colormap without attribute")
	}
	c, ok := ColormapFor(citygml.AttributeTotalIrradiation)
	if !ok || c.Min != 157.0136575 || c.Max != 83371.4359245 {
		t.Errorf("unexpected colormap %+v", c)
	}
}

func TestWriteMTL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMTL(&buf, Colormap{Min: 0, Max: 1, Classes: DefaultClasses}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3*(DefaultClasses+1) {
		t.Fatalf("got %d lines, want %d", len(lines), 3*(DefaultClasses+1))
	}
	if lines[0] != "newmtl 0" || lines[1] != "Ka 0 0 0" {
		t.Errorf("first material %q %q", lines[0], lines[1])
	}
	if lines[150] != "newmtl 0.5" || lines[151] != "Ka 1 0.5 0" {
		t.Errorf("middle material %q %q", lines[150], lines[151])
	}
	last := lines[len(lines)-6 : len(lines)-3]
	if last[0] != "newmtl 1" || last[2] != "Kd 1 1 1" {
		t.Errorf("last colormap material %v", last)
	}
	neutral := lines[len(lines)-3:]
	if neutral[0] != "newmtl "+NoMaterial || neutral[1] != "Ka 0.5 0.5 0.5" {
		t.Errorf("neutral material %v", neutral)
	}
}
