package cdt

import "github.com/go-gl/mathgl/mgl64"

// orient is twice the signed area of abc: positive when c is left of a->b.
func orient(a, b, c mgl64.Vec2) float64 {
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

// incircle is positive when d lies inside the circumcircle of the
// counter-clockwise triangle abc.
func incircle(a, b, c, d mgl64.Vec2) float64 {
	adx, ady := a[0]-d[0], a[1]-d[1]
	bdx, bdy := b[0]-d[0], b[1]-d[1]
	cdx, cdy := c[0]-d[0], c[1]-d[1]

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	return ad*(bdx*cdy-cdx*bdy) -
		bd*(adx*cdy-cdx*ady) +
		cd*(adx*bdy-bdx*ady)
}

// inTriangle reports whether p is inside or on the counter-clockwise
// triangle abc.
func inTriangle(a, b, c, p mgl64.Vec2) bool {
	return orient(a, b, p) >= 0 && orient(b, c, p) >= 0 && orient(c, a, p) >= 0
}

// properCross reports whether segments ab and cd cross at a single point
// interior to both.
func properCross(a, b, c, d mgl64.Vec2) bool {
	return sign(orient(a, b, c))*sign(orient(a, b, d)) < 0 &&
		sign(orient(c, d, a))*sign(orient(c, d, b)) < 0
}

// strictlyBetween reports whether p, known to be collinear with ab, lies
// strictly inside the segment.
func strictlyBetween(a, b, p mgl64.Vec2) bool {
	ab := b.Sub(a)
	t := p.Sub(a).Dot(ab)
	return t > 0 && t < ab.Dot(ab)
}

// intersection returns the crossing point of the lines ab and cd.
func intersection(a, b, c, d mgl64.Vec2) mgl64.Vec2 {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r[0]*s[1] - r[1]*s[0]
	t := ((c[0]-a[0])*s[1] - (c[1]-a[1])*s[0]) / denom
	return a.Add(r.Mul(t))
}
