package citygml

import (
	"math"

	"github.com/akmonengine/citymesh"
	"github.com/pkg/errors"
)

// Attribute selects the value that drives the material of a surface.
type Attribute int

const (
	AttributeNone Attribute = iota
	// AttributeIrradiation reads the irradiation of each roof polygon.
	AttributeIrradiation
	// AttributeTotalIrradiation reads the totalIrradiation of each roof
	// polygon.
	AttributeTotalIrradiation
	// AttributeYearlyIrradiation gives roofs the yearlyIrradiation of their
	// building.
	AttributeYearlyIrradiation
)

// Thematic classes, in output order. Window and Door only receive the
// polygons of openings.
var SemanticClasses = []string{
	"GroundSurface",
	"WallSurface",
	"RoofSurface",
	"ClosureSurface",
	"CeilingSurface",
	"InteriorWallSurface",
	"FloorSurface",
	"OuterCeilingSurface",
	"OuterFloorSurface",
	"Door",
	"Window",
}

// Classes returns the output classes of a conversion, All first.
func Classes(semantics bool) []string {
	if !semantics {
		return []string{citymesh.ClassAll}
	}
	return append([]string{citymesh.ClassAll}, SemanticClasses...)
}

type FeatureOptions struct {
	Semantics bool
	Attribute Attribute
	// Material names the material of a value. Surfaces get no material when
	// it is nil.
	Material func(value float64) string
}

// Features converts every building into a feature. Every polygon goes to
// class All; with semantics, thematic surfaces also go to their class and
// opening polygons to Window or Door only.
func (d *Document) Features(opts FeatureOptions) ([]citymesh.Feature, error) {
	features := make([]citymesh.Feature, 0, len(d.Buildings))
	for _, b := range d.Buildings {
		f, err := b.feature(opts)
		if err != nil {
			return nil, errors.WithMessagef(err, "building %s", b.ID)
		}
		features = append(features, f)
	}
	return features, nil
}

func (b *Building) feature(opts FeatureOptions) (citymesh.Feature, error) {
	f := citymesh.Feature{ID: b.ID}
	add := func(n *node, class string, value *float64) error {
		poly, err := readPolygon(n)
		if err != nil {
			return err
		}
		s := citymesh.Surface{Polygon: poly, Class: class}
		if value != nil && opts.Material != nil {
			s.Material = opts.Material(*value)
		}
		f.Surfaces = append(f.Surfaces, s)
		return nil
	}

	var buildingValue *float64
	if opts.Attribute != AttributeNone {
		buildingValue = b.Yearly
	}
	for _, poly := range b.node.find(NamespaceGML, "Polygon") {
		if err := add(poly, citymesh.ClassAll, buildingValue); err != nil {
			return f, err
		}
	}
	if !opts.Semantics {
		return f, nil
	}

	inOpening := make(map[*node]bool)
	for _, opening := range b.node.find(NamespaceBuilding, "opening") {
		polys := opening.find(NamespaceGML, "Polygon")
		for _, p := range polys {
			inOpening[p] = true
		}
		class := openingClass(opening)
		if class == "" {
			continue
		}
		for _, p := range polys {
			if err := add(p, class, nil); err != nil {
				return f, err
			}
		}
	}

	for _, class := range SemanticClasses {
		if class == "Window" || class == "Door" {
			continue
		}
		for _, surface := range b.node.find(NamespaceBuilding, class) {
			for _, p := range surface.find(NamespaceGML, "Polygon") {
				if inOpening[p] {
					continue
				}
				if err := add(p, class, b.value(p, class, opts.Attribute)); err != nil {
					return f, err
				}
			}
		}
	}
	return f, nil
}

func openingClass(opening *node) string {
	kinds := opening.descendants(func(n *node) bool {
		return n.is(NamespaceBuilding, "Window") || n.is(NamespaceBuilding, "Door")
	})
	if len(kinds) == 0 {
		return ""
	}
	return kinds[0].name.Local
}

// value returns the attribute of a thematic polygon. Only roofs carry one.
func (b *Building) value(poly *node, class string, attr Attribute) *float64 {
	if class != "RoofSurface" {
		return nil
	}
	switch attr {
	case AttributeIrradiation:
		return polygonValue(poly, "irradiation")
	case AttributeTotalIrradiation:
		return polygonValue(poly, "totalIrradiation")
	case AttributeYearlyIrradiation:
		return b.Yearly
	}
	return nil
}

// polygonValue reads a numeric attribute written as a child of the polygon.
// Values that do not parse are ignored.
func polygonValue(poly *node, local string) *float64 {
	n := poly.child(NamespaceCore, local)
	if n == nil {
		return nil
	}
	v, err := parseFloat(n.content())
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// AttributeRange returns the extent of the values read for attr, which helps
// choosing the bounds of a colormap.
func (d *Document) AttributeRange(attr Attribute) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	visit := func(v *float64) {
		if v == nil {
			return
		}
		lo, hi, ok = math.Min(lo, *v), math.Max(hi, *v), true
	}

	for _, b := range d.Buildings {
		switch attr {
		case AttributeYearlyIrradiation:
			visit(b.Yearly)
		case AttributeIrradiation, AttributeTotalIrradiation:
			for _, roof := range b.node.find(NamespaceBuilding, "RoofSurface") {
				for _, p := range roof.find(NamespaceGML, "Polygon") {
					visit(b.value(p, "RoofSurface", attr))
				}
			}
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}
