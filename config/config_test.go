package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akmonengine/citymesh/citygml"
	"github.com/akmonengine/citymesh/tessellate"
	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "citymesh.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	opts := Default()
	if err := opts.Check(); err != nil {
		t.Fatalf("default options must be valid: %v", err)
	}
	tess, err := opts.Tessellate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tess.Mode != tessellate.Triangulate || tess.Validate {
		t.Errorf("unexpected defaults %+v", tess)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input: data/in
output: data/out
mode: preserve
validate: true
semantics: true
grouping: true
attribute: 3
workers: 4
stl: true
`)
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := Options{
		Input:     "data/in",
		Output:    "data/out",
		Mode:      "preserve",
		Validate:  true,
		Semantics: true,
		Grouping:  true,
		Attribute: citygml.AttributeYearlyIrradiation,
		Workers:   4,
		STL:       true,
	}
	if opts != expected {
		t.Errorf("Load = %+v, want %+v", opts, expected)
	}
	if mode, _ := opts.TessellateMode(); mode != tessellate.Preserve {
		t.Errorf("mode = %v, want preserve", mode)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	opts, err := Load(writeConfig(t, "validate: true\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Workers != 1 || opts.Mode != "triangulate" || !opts.Validate {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"Unknown mode", "mode: quads\n", true},
		{"Attribute out of range", "attribute: 4\n", true},
		{"No worker", "workers: 0\n", true},
		{"Malformed YAML", "mode: [preserve\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if errors.Is(err, ErrInvalidOptions) != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidOptions) = %v, want %v (%v)", !tt.invalid, tt.invalid, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("a missing file must fail")
	}
}
