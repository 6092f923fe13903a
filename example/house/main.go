package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/citymesh"
	"github.com/akmonengine/citymesh/geom"
	"github.com/akmonengine/citymesh/obj"
	"github.com/akmonengine/citymesh/tessellate"
)

// ConversionDebugger prints what happens to the polygons of a conversion
type ConversionDebugger struct{}

func (d *ConversionDebugger) Subscribe(events *citymesh.Events) {
	polygon := func(event citymesh.Event) {
		var p citymesh.PolygonEvent
		switch e := event.(type) {
		case citymesh.PolygonInvalidEvent:
			p = e.PolygonEvent
		case citymesh.TriangulationFailedEvent:
			p = e.PolygonEvent
		case citymesh.PolygonRejectedEvent:
			p = e.PolygonEvent
		}
		fmt.Printf("   %s surface %d (%s): %v\n", p.Feature, p.Surface, p.Class, p.Err)
	}
	events.Subscribe(citymesh.POLYGON_INVALID, polygon)
	events.Subscribe(citymesh.TRIANGULATION_FAILED, polygon)
	events.Subscribe(citymesh.POLYGON_REJECTED, polygon)
	events.Subscribe(citymesh.FEATURE_DONE, func(event citymesh.Event) {
		done := event.(citymesh.FeatureDoneEvent)
		fmt.Printf("   %s: %d faces\n", done.Feature, done.Faces)
	})
}

// SetupHouse creates a 4x4x3 box with a skylight in its roof and a broken
// wall that folds out of its plane.
func SetupHouse() citymesh.Feature {
	ring := func(points ...geom.Point) geom.Ring {
		return append(geom.Ring(points), points[0])
	}

	ground := geom.NewPolygon(ring(geom.Point{0, 0, 0}, geom.Point{0, 4, 0}, geom.Point{4, 4, 0}, geom.Point{4, 0, 0}))
	roof := geom.NewPolygon(
		ring(geom.Point{0, 0, 3}, geom.Point{4, 0, 3}, geom.Point{4, 4, 3}, geom.Point{0, 4, 3}),
		ring(geom.Point{1, 1, 3}, geom.Point{1, 2, 3}, geom.Point{2, 2, 3}, geom.Point{2, 1, 3}),
	)
	south := geom.NewPolygon(ring(geom.Point{0, 0, 0}, geom.Point{4, 0, 0}, geom.Point{4, 0, 3}, geom.Point{0, 0, 3}))
	east := geom.NewPolygon(ring(geom.Point{4, 0, 0}, geom.Point{4, 4, 0}, geom.Point{4, 4, 3}, geom.Point{4, 0, 3}))
	north := geom.NewPolygon(ring(geom.Point{4, 4, 0}, geom.Point{0, 4, 0}, geom.Point{0, 4, 3}, geom.Point{4, 4, 3}))
	broken := geom.NewPolygon(ring(geom.Point{0, 4, 0}, geom.Point{0, 0, 0}, geom.Point{0, 0, 3}, geom.Point{1, 4, 3}))

	surfaces := []citymesh.Surface{}
	for _, wall := range []geom.Polygon{south, east, north, broken} {
		surfaces = append(surfaces, citymesh.Surface{Polygon: wall, Class: "WallSurface"})
	}
	surfaces = append(surfaces,
		citymesh.Surface{Polygon: ground, Class: "GroundSurface"},
		citymesh.Surface{Polygon: roof, Class: "RoofSurface"},
	)
	for _, s := range surfaces {
		surfaces = append(surfaces, citymesh.Surface{Polygon: s.Polygon, Class: citymesh.ClassAll})
	}

	return citymesh.Feature{ID: "house", Surfaces: surfaces}
}

func main() {
	fmt.Println("Converting a house")
	fmt.Println("==================")

	for _, mode := range []tessellate.Mode{tessellate.Triangulate, tessellate.Preserve} {
		fmt.Printf("--- %s ---\n", mode)

		conv := citymesh.NewConverter(tessellate.Options{Mode: mode, Validate: true},
			citymesh.ClassAll, "GroundSurface", "WallSurface", "RoofSurface")
		(&ConversionDebugger{}).Subscribe(&conv.Events)

		if err := conv.Convert([]citymesh.Feature{SetupHouse()}); err != nil {
			fmt.Printf("conversion failed: %+v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stats: %+v\n", conv.Stats)
		fmt.Printf("Bounds: %v .. %v\n", conv.Bounds().Min, conv.Bounds().Max)

		if err := obj.Write(os.Stdout, conv.Class(citymesh.ClassAll), obj.Options{Grouping: true}); err != nil {
			fmt.Printf("write failed: %+v\n", err)
			os.Exit(1)
		}
		fmt.Println()
	}
}
