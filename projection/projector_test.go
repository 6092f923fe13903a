package projection

import (
	"math"
	"testing"

	"github.com/akmonengine/citymesh/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func TestFitPlane(t *testing.T) {
	plane := FitPlane(geom.Point{0, 0, 2}, geom.Point{1, 0, 2}, geom.Point{0, 1, 2})
	if plane.A != 0 || plane.B != 0 || plane.C != 1 || plane.D != -2 {
		t.Errorf("unexpected plane %+v", plane)
	}
	for _, p := range []geom.Point{{0, 0, 2}, {5, -3, 2}, {100, 100, 2}} {
		if plane.Eval(p) != 0 {
			t.Errorf("%v should lie on the plane", p)
		}
	}
	if plane.IsDegenerate() {
		t.Errorf("plane should not be degenerate")
	}
	if !FitPlane(geom.Point{0, 0, 0}, geom.Point{1, 1, 1}, geom.Point{2, 2, 2}).IsDegenerate() {
		t.Errorf("collinear points should give a degenerate plane")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ring     geom.Ring
		expected Classification
	}{
		{
			name:     "Flat roof",
			ring:     geom.Ring{{0, 0, 3}, {1, 0, 3}, {1, 1, 3}, {0, 1, 3}, {0, 0, 3}},
			expected: General,
		},
		{
			name:     "Sloped roof",
			ring:     geom.Ring{{0, 0, 3}, {4, 0, 3}, {4, 2, 5}, {0, 2, 5}, {0, 0, 3}},
			expected: General,
		},
		{
			name:     "Wall facing -y",
			ring:     geom.Ring{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}, {0, 0, 0}},
			expected: VerticalOther,
		},
		{
			name:     "Diagonal wall",
			ring:     geom.Ring{{0, 0, 0}, {1, 1, 0}, {1, 1, 1}, {0, 0, 1}, {0, 0, 0}},
			expected: VerticalOther,
		},
		{
			name:     "Wall at constant x",
			ring:     geom.Ring{{7, 0, 0}, {7, 1, 0}, {7, 1, 1}, {7, 0, 1}, {7, 0, 0}},
			expected: VerticalYZ,
		},
		{
			name: "Narrow wall in world coordinates",
			ring: geom.Ring{
				{85007.49, 446003.74, 0}, {85007.69, 446003.89, 0}, {85007.69, 446003.89, 2.7},
				{85007.49, 446003.74, 2.7}, {85007.49, 446003.74, 0},
			},
			expected: VerticalOther,
		},
		{
			name: "Small roof in world coordinates",
			ring: geom.Ring{
				{85007.49, 446003.74, 10}, {85007.79, 446003.74, 10}, {85007.79, 446004.04, 10.1},
				{85007.49, 446004.04, 10.1}, {85007.49, 446003.74, 10},
			},
			expected: General,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, err := NewProjector(geom.NewPolygon(tt.ring))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if proj.Class != tt.expected {
				t.Errorf("Classify = %v, want %v", proj.Class, tt.expected)
			}
		})
	}
}

func TestClassify_NearlyConstantX(t *testing.T) {
	// The normal has no usable y component even though x is not constant.
	normal := mgl64.Vec3{1, 1e-7, 0}.Normalize()
	points := []geom.Point{{7, 0, 0}, {7 + 1e-7, 1, 0}, {7 + 1e-7, 1, 1}}
	if got := Classify(normal, points); got != VerticalYZ {
		t.Errorf("Classify = %v, want %v", got, VerticalYZ)
	}
}

func TestRoundTrip_WorldCoordinates(t *testing.T) {
	ring := geom.Ring{
		{85007.49, 446003.74, 0}, {85007.69, 446003.89, 0}, {85007.69, 446003.89, 2.7},
		{85007.59, 446003.815, 3.5}, {85007.49, 446003.74, 2.7}, {85007.49, 446003.74, 0},
	}
	proj, err := NewProjector(geom.NewPolygon(ring))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, q := range proj.To2D(ring) {
		back, err := proj.From2D(q)
		if err != nil {
			t.Fatalf("point %d: unexpected error: %v", i, err)
		}
		if !vec3ApproxEqual(back, ring[i], 1e-6) {
			t.Errorf("point %d: From2D(To2D) = %v, want %v", i, back, ring[i])
		}
	}
}

func TestNewProjector_Degenerate(t *testing.T) {
	ring := geom.Ring{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {0, 0, 0}}
	if _, err := NewProjector(geom.NewPolygon(ring)); !errors.Is(err, geom.ErrDegenerateRing) {
		t.Errorf("expected ErrDegenerateRing, got %v", err)
	}
}

func TestTo2D(t *testing.T) {
	p := []geom.Point{{1, 2, 3}}
	tests := []struct {
		class    Classification
		expected mgl64.Vec2
	}{
		{General, mgl64.Vec2{1, 2}},
		{VerticalOther, mgl64.Vec2{1, 3}},
		{VerticalYZ, mgl64.Vec2{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			if got := To2D(p, tt.class)[0]; got != tt.expected {
				t.Errorf("To2D = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		ring  geom.Ring
		class Classification
	}{
		{
			name:  "General sloped roof",
			ring:  geom.Ring{{10, 20, 3}, {14, 20, 3}, {14, 22, 5.5}, {10, 22, 5.5}, {10, 20, 3}},
			class: General,
		},
		{
			name:  "General far from origin",
			ring:  geom.Ring{{85000.25, 446000.5, 12}, {85010.25, 446000.5, 12}, {85010.25, 446004.5, 15}, {85000.25, 446004.5, 15}, {85000.25, 446000.5, 12}},
			class: General,
		},
		{
			name:  "Vertical diagonal wall",
			ring:  geom.Ring{{0, 0, 0}, {3, 4, 0}, {3, 4, 2.5}, {0, 0, 2.5}, {0, 0, 0}},
			class: VerticalOther,
		},
		{
			name:  "Vertical YZ wall",
			ring:  geom.Ring{{7.5, 0, 0}, {7.5, 3, 0}, {7.5, 3, 2}, {7.5, 0, 2}, {7.5, 0, 0}},
			class: VerticalYZ,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, err := NewProjector(geom.NewPolygon(tt.ring))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if proj.Class != tt.class {
				t.Fatalf("classification = %v, want %v", proj.Class, tt.class)
			}

			for i, q := range proj.To2D(tt.ring) {
				back, err := proj.From2D(q)
				if err != nil {
					t.Fatalf("From2D: %v", err)
				}
				if !vec3ApproxEqual(back, tt.ring[i], 1e-9) {
					t.Errorf("point %d: round trip gave %v, want %v", i, back, tt.ring[i])
				}
			}
		})
	}
}

func TestFrom2D_Unprojectable(t *testing.T) {
	wall := FitPlane(geom.Point{0, 0, 0}, geom.Point{1, 0, 0}, geom.Point{0, 0, 1})
	if _, err := From2D(mgl64.Vec2{0.5, 0.5}, wall, General); !errors.Is(err, ErrUnprojectable) {
		t.Errorf("solving z on a vertical plane must fail, got %v", err)
	}

	yz := FitPlane(geom.Point{2, 0, 0}, geom.Point{2, 1, 0}, geom.Point{2, 0, 1})
	if _, err := From2D(mgl64.Vec2{0.5, 0.5}, yz, VerticalOther); !errors.Is(err, ErrUnprojectable) {
		t.Errorf("solving y on a YZ plane must fail, got %v", err)
	}

	if _, err := From2D(mgl64.Vec2{}, Plane{}, General); !errors.Is(err, ErrUnprojectable) {
		t.Errorf("degenerate plane must fail, got %v", err)
	}
}

func TestHoleCentroid(t *testing.T) {
	outer := geom.Ring{{0, 0, 5}, {4, 0, 5}, {4, 4, 5}, {0, 4, 5}, {0, 0, 5}}
	hole := geom.Ring{{1, 1, 5}, {1, 3, 5}, {3, 3, 5}, {3, 1, 5}, {1, 1, 5}}
	proj, err := NewProjector(geom.NewPolygon(outer, hole))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := proj.HoleCentroid(hole); c != (mgl64.Vec2{2, 2}) {
		t.Errorf("HoleCentroid = %v, want (2, 2)", c)
	}
}
