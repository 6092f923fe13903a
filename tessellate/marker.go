package tessellate

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func toOrbRing(points []mgl64.Vec2) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p[0], p[1]})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// holeMarker returns a point inside the projected hole. The centroid of the
// hole's points is used when it falls inside; a concave hole falls back to
// the centre of the first convex corner triangle that holds no other hole
// vertex.
func holeMarker(hole []mgl64.Vec2, centroid mgl64.Vec2) mgl64.Vec2 {
	ring := toOrbRing(hole)
	if strictlyInside(ring, centroid) {
		return centroid
	}

	n := len(hole)
	orientation := int(ring.Orientation())
	for i := 0; i < n; i++ {
		prev, cur, next := hole[(i+n-1)%n], hole[i], hole[(i+1)%n]
		if sign(cross(prev, cur, next)) != orientation {
			continue
		}
		candidate := prev.Add(cur).Add(next).Mul(1.0 / 3)
		if strictlyInside(ring, candidate) && !holdsVertex(hole, prev, cur, next) {
			return candidate
		}
	}
	return centroid
}

// strictlyInside excludes the boundary, which orb counts as inside.
func strictlyInside(ring orb.Ring, p mgl64.Vec2) bool {
	pt := orb.Point{p[0], p[1]}
	if !planar.RingContains(ring, pt) {
		return false
	}
	for i := 0; i+1 < len(ring); i++ {
		a, b := ring[i], ring[i+1]
		if cross(mgl64.Vec2(a), mgl64.Vec2(b), p) == 0 &&
			p[0] >= min(a[0], b[0]) && p[0] <= max(a[0], b[0]) &&
			p[1] >= min(a[1], b[1]) && p[1] <= max(a[1], b[1]) {
			return false
		}
	}
	return true
}

func holdsVertex(hole []mgl64.Vec2, a, b, c mgl64.Vec2) bool {
	s := sign(cross(a, b, c))
	for _, p := range hole {
		if p == a || p == b || p == c {
			continue
		}
		if sign(cross(a, b, p)) == s && sign(cross(b, c, p)) == s && sign(cross(c, a, p)) == s {
			return true
		}
	}
	return false
}

func cross(a, b, c mgl64.Vec2) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
