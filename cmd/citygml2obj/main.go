// Command citygml2obj converts the buildings of every CityGML file of a
// directory into OBJ files, one per output class.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/citymesh"
	"github.com/akmonengine/citymesh/citygml"
	"github.com/akmonengine/citymesh/config"
	"github.com/akmonengine/citymesh/obj"
	"github.com/akmonengine/citymesh/stl"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

func main() {
	var configPath string
	opts := config.Default()
	attribute := int(opts.Attribute)

	flag.StringVar(&configPath, "config", "", "YAML file of options, overridden by the flags")
	flag.StringVar(&opts.Input, "i", "", "directory of the CityGML files")
	flag.StringVar(&opts.Output, "o", "", "directory of the OBJ files")
	flag.BoolVar(&opts.Semantics, "s", false, "also write one file per thematic surface")
	flag.BoolVar(&opts.Grouping, "g", false, "start an object per building")
	flag.IntVar(&attribute, "a", 0, "materials: 1 irradiation, 2 total irradiation, 3 yearly irradiation")
	flag.BoolVar(&opts.Validate, "v", false, "skip polygons that are not valid")
	preserve := flag.Bool("p", false, "keep polygons whole instead of triangulating them")
	flag.IntVar(&opts.Workers, "w", opts.Workers, "number of workers")
	flag.BoolVar(&opts.STL, "stl", false, "also write STL files")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: citygml2obj [flags] -i <input dir> -o <output dir>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		essentials.Must(err)
		// Flags given on the command line win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "i":
				loaded.Input = opts.Input
			case "o":
				loaded.Output = opts.Output
			case "s":
				loaded.Semantics = opts.Semantics
			case "g":
				loaded.Grouping = opts.Grouping
			case "a":
				loaded.Attribute = citygml.Attribute(attribute)
			case "v":
				loaded.Validate = opts.Validate
			case "p":
				loaded.Mode = modeName(*preserve)
			case "w":
				loaded.Workers = opts.Workers
			case "stl":
				loaded.STL = opts.STL
			}
		})
		opts = loaded
	} else {
		opts.Attribute = citygml.Attribute(attribute)
		opts.Mode = modeName(*preserve)
	}

	if opts.Input == "" || opts.Output == "" {
		flag.Usage()
		os.Exit(1)
	}
	essentials.Must(opts.Check())
	essentials.Must(os.MkdirAll(opts.Output, 0755))

	paths, err := filepath.Glob(filepath.Join(opts.Input, "*.gml"))
	essentials.Must(err)
	if len(paths) == 0 {
		log.Printf("no .gml file in %s", opts.Input)
		os.Exit(1)
	}

	colormap, materials := obj.ColormapFor(opts.Attribute)
	if materials {
		path, err := obj.WriteMTLFile(opts.Output, colormap)
		essentials.Must(err)
		log.Printf("wrote %s", path)
	}

	var total citymesh.Stats
	failed := 0
	for _, path := range paths {
		stats, err := convertFile(path, opts, colormap, materials)
		total = total.Add(stats)
		if err != nil {
			log.Printf("%s: %+v", path, err)
			failed++
		}
	}

	log.Printf("%d files, %d buildings, %d polygons, %d faces", len(paths), total.Features, total.Polygons, total.Faces)
	log.Printf("%d invalid, %d failed, %d rejected polygons", total.Invalid, total.Failed, total.Rejected)
	if failed > 0 || total.Rejected > 0 {
		os.Exit(1)
	}
}

func modeName(preserve bool) string {
	if preserve {
		return "preserve"
	}
	return "triangulate"
}

func convertFile(path string, opts config.Options, colormap obj.Colormap, materials bool) (citymesh.Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return citymesh.Stats{}, errors.Wrap(err, "open")
	}
	doc, err := citygml.Read(file)
	file.Close()
	if err != nil {
		return citymesh.Stats{}, err
	}
	log.Printf("%s: %d buildings", path, len(doc.Buildings))

	featureOpts := citygml.FeatureOptions{Semantics: opts.Semantics, Attribute: opts.Attribute}
	if materials {
		featureOpts.Material = colormap.Material
		if lo, hi, ok := doc.AttributeRange(opts.Attribute); ok {
			log.Printf("%s: values from %v to %v, colormap from %v to %v", path, lo, hi, colormap.Min, colormap.Max)
		}
	}
	features, err := doc.Features(featureOpts)
	if err != nil {
		return citymesh.Stats{}, err
	}

	tess, err := opts.Tessellate()
	if err != nil {
		return citymesh.Stats{}, err
	}
	conv := citymesh.NewConverter(tess, citygml.Classes(opts.Semantics)...)
	conv.Workers = opts.Workers
	logPolygon := func(what string) citymesh.EventListener {
		return func(event citymesh.Event) {
			var p citymesh.PolygonEvent
			switch e := event.(type) {
			case citymesh.PolygonInvalidEvent:
				p = e.PolygonEvent
			case citymesh.TriangulationFailedEvent:
				p = e.PolygonEvent
			case citymesh.PolygonRejectedEvent:
				p = e.PolygonEvent
			}
			log.Printf("%s: building %s, %s surface %d %s: %v", path, p.Feature, p.Class, p.Surface, what, p.Err)
		}
	}
	conv.Events.Subscribe(citymesh.POLYGON_INVALID, logPolygon("is invalid"))
	conv.Events.Subscribe(citymesh.TRIANGULATION_FAILED, logPolygon("failed"))
	conv.Events.Subscribe(citymesh.POLYGON_REJECTED, logPolygon("was rejected"))

	if err := conv.Convert(features); err != nil {
		return conv.Stats, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written, err := obj.WriteFiles(opts.Output, name, conv.Classes(), obj.Options{
		Grouping:  opts.Grouping,
		Materials: materials,
	})
	for _, w := range written {
		log.Printf("wrote %s", w)
	}
	if err != nil {
		return conv.Stats, err
	}

	if opts.STL {
		for _, class := range conv.Classes() {
			if class.IsEmpty() {
				continue
			}
			out := filepath.Join(opts.Output, strings.TrimSuffix(obj.FileName(name, class.Name), ".obj")+".stl")
			if err := stl.SaveClass(out, class); err != nil {
				return conv.Stats, err
			}
			log.Printf("wrote %s", out)
		}
	}
	return conv.Stats, nil
}
