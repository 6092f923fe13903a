// Package citygml reads the buildings of a CityGML 2.0 document and turns
// their polygons into features for the converter, routed to the class of
// every surface and to its thematic class.
package citygml

import (
	"io"
	"strconv"
	"strings"

	"github.com/akmonengine/citymesh/geom"
	"github.com/pkg/errors"
)

const (
	NamespaceCore     = "http://www.opengis.net/citygml/2.0"
	NamespaceGML      = "http://www.opengis.net/gml"
	NamespaceBuilding = "http://www.opengis.net/citygml/building/2.0"
)

// ErrMalformed marks a document that cannot be converted.
var ErrMalformed = errors.New("malformed citygml")

// Document is a parsed CityGML file.
type Document struct {
	// Members counts the cityObjectMember elements. A document without any is
	// most likely not CityGML 2.0.
	Members   int
	Buildings []*Building
}

// Building is one bldg:Building member.
type Building struct {
	// ID is the gml:id of the building, or its 1-based position when it has
	// none.
	ID string
	// Yearly is the yearlyIrradiation attribute of the building.
	Yearly *float64

	node *node
}

// Read parses a document and lists its buildings in document order.
func Read(r io.Reader) (*Document, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for _, member := range root.find(NamespaceCore, "cityObjectMember") {
		doc.Members++
		for _, c := range member.children {
			if !c.is(NamespaceBuilding, "Building") {
				continue
			}
			b := &Building{node: c}
			b.ID = strconv.Itoa(len(doc.Buildings) + 1)
			if id, ok := c.attr(NamespaceGML, "id"); ok && id != "" {
				b.ID = id
			}
			if v := c.child(NamespaceCore, "yearlyIrradiation"); v != nil {
				value, err := parseFloat(v.content())
				if err != nil {
					return nil, errors.WithMessagef(err, "building %s: yearlyIrradiation", b.ID)
				}
				b.Yearly = &value
			}
			doc.Buildings = append(doc.Buildings, b)
		}
	}
	return doc, nil
}

// readPolygon builds a polygon from a gml:Polygon element.
func readPolygon(n *node) (geom.Polygon, error) {
	exteriors := n.find(NamespaceGML, "exterior")
	if len(exteriors) == 0 {
		return geom.Polygon{}, errors.Wrap(ErrMalformed, "polygon without exterior")
	}
	exterior, err := readRing(exteriors[0])
	if err != nil {
		return geom.Polygon{}, errors.WithMessage(err, "exterior")
	}

	var interiors []geom.Ring
	for i, in := range n.find(NamespaceGML, "interior") {
		ring, err := readRing(in)
		if err != nil {
			return geom.Polygon{}, errors.WithMessagef(err, "interior %d", i)
		}
		interiors = append(interiors, ring)
	}
	return geom.NewPolygon(exterior, interiors...), nil
}

// readRing reads the points of a ring from its gml:posList, or else from its
// gml:pos elements.
func readRing(n *node) (geom.Ring, error) {
	if lists := n.find(NamespaceGML, "posList"); len(lists) > 0 {
		return parseCoordinates(lists[0].content())
	}

	positions := n.find(NamespaceGML, "pos")
	if len(positions) == 0 {
		return nil, errors.Wrap(ErrMalformed, "ring without coordinates")
	}
	var ring geom.Ring
	for _, pos := range positions {
		points, err := parseCoordinates(pos.content())
		if err != nil {
			return nil, err
		}
		ring = append(ring, points...)
	}
	return ring, nil
}

func parseCoordinates(text string) (geom.Ring, error) {
	fields := strings.Fields(text)
	if len(fields)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformed, "%d coordinates is not a multiple of 3", len(fields))
	}
	ring := make(geom.Ring, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		var p geom.Point
		for k := 0; k < 3; k++ {
			v, err := parseFloat(fields[i+k])
			if err != nil {
				return nil, err
			}
			p[k] = v
		}
		ring = append(ring, p)
	}
	return ring, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "number %q", s)
	}
	return v, nil
}
