package cdt

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// dedupe maps every point index to the first index holding the same
// coordinates.
func dedupe(pts []mgl64.Vec2) []int {
	canon := make([]int, len(pts))
	seen := make(map[mgl64.Vec2]int, len(pts))
	for i, p := range pts {
		if first, ok := seen[p]; ok {
			canon[i] = first
			continue
		}
		seen[p] = i
		canon[i] = i
	}
	return canon
}

// splitter cuts segments at the vertices lying on them and at the points
// where two segments cross, so that the remaining segments only meet at
// their endpoints.
type splitter struct {
	pts     []mgl64.Vec2
	usable  []bool
	lookup  map[mgl64.Vec2]int
	segs    []edge
	created int
}

func newSplitter(pts []mgl64.Vec2, canon []int, segments []Segment) *splitter {
	s := &splitter{
		pts:    pts,
		usable: make([]bool, len(pts)),
		lookup: make(map[mgl64.Vec2]int, len(pts)),
	}
	for i, c := range canon {
		if c == i {
			s.usable[i] = true
			s.lookup[pts[i]] = i
		}
	}

	known := make(map[edge]bool, len(segments))
	for _, seg := range segments {
		e := edge{canon[seg[0]], canon[seg[1]]}
		if e[0] == e[1] || known[e.key()] {
			continue
		}
		known[e.key()] = true
		s.segs = append(s.segs, e)
	}
	return s
}

// run splits until no segment is touched by another. limit bounds the
// number of splits.
func (s *splitter) run(limit int) error {
	for splits := 0; ; splits++ {
		if splits > limit {
			return errors.Wrapf(ErrSegmentSplit, "more than %d splits", limit)
		}
		if !s.splitOnce() {
			return nil
		}
	}
}

func (s *splitter) splitOnce() bool {
	for i, seg := range s.segs {
		a, b := s.pts[seg[0]], s.pts[seg[1]]
		for k := range s.pts {
			if !s.usable[k] || k == seg[0] || k == seg[1] {
				continue
			}
			p := s.pts[k]
			if orient(a, b, p) == 0 && strictlyBetween(a, b, p) {
				s.replace(i, k)
				return true
			}
		}
	}

	for i := range s.segs {
		for j := i + 1; j < len(s.segs); j++ {
			si, sj := s.segs[i], s.segs[j]
			a, b := s.pts[si[0]], s.pts[si[1]]
			c, d := s.pts[sj[0]], s.pts[sj[1]]
			if !properCross(a, b, c, d) {
				continue
			}
			k := s.point(intersection(a, b, c, d))
			if k == si[0] || k == si[1] || k == sj[0] || k == sj[1] {
				// The crossing rounded onto an endpoint: the vertex-on-segment
				// pass handles it next round.
				continue
			}
			s.replace(j, k)
			s.replace(i, k)
			return true
		}
	}
	return false
}

// replace cuts segment i at point index k.
func (s *splitter) replace(i, k int) {
	seg := s.segs[i]
	s.segs[i] = edge{seg[0], k}
	s.segs = append(s.segs, edge{k, seg[1]})
}

// point returns the index of p, adding it when it is new.
func (s *splitter) point(p mgl64.Vec2) int {
	if k, ok := s.lookup[p]; ok {
		return k
	}
	k := len(s.pts)
	s.pts = append(s.pts, p)
	s.usable = append(s.usable, true)
	s.lookup[p] = k
	s.created++
	return k
}
