// Package citymesh converts features made of planar 3D polygons into indexed
// meshes, one per output class. Polygons are validated, triangulated (or kept
// whole) and wound like their source surface by the tessellate package; the
// resulting faces are deduplicated into per-class vertex tables.
package citymesh

import (
	"github.com/akmonengine/citymesh/geom"
	"github.com/akmonengine/citymesh/index"
	"github.com/akmonengine/citymesh/tessellate"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

// featuresPerWorker bounds how many tessellated features wait for their
// merge at once.
const featuresPerWorker = 16

type Converter struct {
	Options tessellate.Options
	// Workers tessellating features in parallel. Merging always happens in
	// input order on the calling goroutine.
	Workers int
	Events  Events
	Stats   Stats

	classes []*Class
	byName  map[string]*Class
}

// NewConverter returns a converter whose classes are listed in the given
// order; other classes are appended as they show up.
func NewConverter(opts tessellate.Options, classes ...string) *Converter {
	c := &Converter{
		Options: opts,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
		byName:  make(map[string]*Class),
	}
	for _, name := range classes {
		c.class(name)
	}
	return c
}

// Classes returns the output classes in order.
func (c *Converter) Classes() []*Class {
	return c.classes
}

// Class returns the class with the given name, or nil.
func (c *Converter) Class(name string) *Class {
	return c.byName[name]
}

// Bounds returns the extent of every class.
func (c *Converter) Bounds() geom.Bounds {
	var b geom.Bounds
	for _, class := range c.classes {
		b.Union(class.Bounds)
	}
	return b
}

func (c *Converter) class(name string) *Class {
	if class, ok := c.byName[name]; ok {
		return class
	}
	class := newClass(name)
	c.byName[name] = class
	c.classes = append(c.classes, class)
	return class
}

type featureResult struct {
	results []tessellate.Result
	err     error
}

// Convert processes the features in order. Each feature is merged into the
// class tables before the next one. Polygons that fail only produce events;
// the returned error is an internal failure, after which the features that
// precede the failing one are merged and the rest are not.
func (c *Converter) Convert(features []Feature) error {
	c.Workers = max(DEFAULT_WORKERS, c.Workers)
	batch := c.Workers * featuresPerWorker

	for start := 0; start < len(features); start += batch {
		chunk := features[start:min(start+batch, len(features))]
		results := make([]featureResult, len(chunk))

		task(c.Workers, chunk, func(i int, f Feature) {
			results[i] = c.tessellate(f)
		})

		for i, f := range chunk {
			if err := results[i].err; err != nil {
				return errors.Wrapf(err, "feature %q", f.ID)
			}
			c.merge(f, results[i].results)
		}
	}
	return nil
}

// tessellate runs on a worker: it must not touch the converter state.
func (c *Converter) tessellate(f Feature) featureResult {
	out := featureResult{results: make([]tessellate.Result, len(f.Surfaces))}
	for i, s := range f.Surfaces {
		res, err := tessellate.Tessellate(s.Polygon, c.Options)
		if err != nil {
			out.err = errors.WithMessagef(err, "surface %d", i)
			return out
		}
		out.results[i] = res
	}
	return out
}

// merge indexes the faces of one feature with a local scope per class, then
// commits the scopes and flushes the events of the feature.
func (c *Converter) merge(f Feature, results []tessellate.Result) {
	scopes := make(map[*Class]*index.Scope)
	var order []*Class
	faces := 0

	for i, s := range f.Surfaces {
		res := results[i]
		c.Stats.Polygons++

		switch res.Status {
		case tessellate.StatusInvalid:
			c.Stats.Invalid++
		case tessellate.StatusFailed:
			c.Stats.Failed++
		case tessellate.StatusRejected:
			c.Stats.Rejected++
		}
		if res.Status != tessellate.StatusOK {
			c.Events.emitPolygon(res.Status, PolygonEvent{
				Feature: f.ID,
				Class:   s.Class,
				Surface: i,
				Err:     res.Err,
			})
			continue
		}

		class := c.class(s.Class)
		scope, ok := scopes[class]
		if !ok {
			scope = index.NewScope(class.Vertices)
			scopes[class] = scope
			order = append(order, class)
		}
		for _, face := range res.Faces {
			class.Faces = append(class.Faces, Face{
				Indices:  scope.Face(face),
				Material: s.Material,
				Object:   f.ID,
			})
			for _, p := range face {
				class.Bounds.Extend(p)
			}
		}
		faces += len(res.Faces)
	}

	for _, class := range order {
		scopes[class].Commit()
	}
	c.Stats.Features++
	c.Stats.Faces += faces

	c.Events.emit(FeatureDoneEvent{Feature: f.ID, Faces: faces})
	c.Events.flush()
}
