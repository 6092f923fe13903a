// Package config loads the conversion options from a YAML file.
package config

import (
	"os"

	"github.com/akmonengine/citymesh/citygml"
	"github.com/akmonengine/citymesh/tessellate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidOptions = errors.New("invalid options")

type Options struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	// Mode is "triangulate" or "preserve".
	Mode      string `yaml:"mode"`
	Validate  bool   `yaml:"validate"`
	Semantics bool   `yaml:"semantics"`
	Grouping  bool   `yaml:"grouping"`
	// Attribute drives the materials, see citygml.Attribute.
	Attribute citygml.Attribute `yaml:"attribute"`
	Workers   int               `yaml:"workers"`
	STL       bool              `yaml:"stl"`
}

// Default returns triangulation without validation, semantics, grouping or
// materials, on one worker.
func Default() Options {
	return Options{
		Mode:    tessellate.Triangulate.String(),
		Workers: 1,
	}
}

// Load reads path over the defaults.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(err, "decode %s", path)
	}
	return opts, opts.Check()
}

// Check checks the values that YAML cannot.
func (o Options) Check() error {
	if _, err := o.TessellateMode(); err != nil {
		return err
	}
	if o.Attribute < citygml.AttributeNone || o.Attribute > citygml.AttributeYearlyIrradiation {
		return errors.Wrapf(ErrInvalidOptions, "attribute %d, want 0 to 3", o.Attribute)
	}
	if o.Workers < 1 {
		return errors.Wrapf(ErrInvalidOptions, "workers %d, want at least 1", o.Workers)
	}
	return nil
}

// TessellateMode parses Mode.
func (o Options) TessellateMode() (tessellate.Mode, error) {
	switch o.Mode {
	case "", tessellate.Triangulate.String():
		return tessellate.Triangulate, nil
	case tessellate.Preserve.String():
		return tessellate.Preserve, nil
	}
	return tessellate.Triangulate, errors.Wrapf(ErrInvalidOptions, "mode %q", o.Mode)
}

// Tessellate returns the options of the geometry pipeline.
func (o Options) Tessellate() (tessellate.Options, error) {
	mode, err := o.TessellateMode()
	if err != nil {
		return tessellate.Options{}, err
	}
	return tessellate.Options{Mode: mode, Validate: o.Validate}, nil
}
