package curl

import (
	"github.com/foldline/pagecurl/pkg/geom"
)

const (
	// intersectEps widens the accepted segment parameter range so fold
	// lines passing through a rectangle corner still register a hit.
	intersectEps = 1e-4

	// parallelEps is the normalized cross-product magnitude below which a
	// fold line and a rectangle edge are treated as parallel (no hit).
	parallelEps = 1e-3
)

// PartitionRect splits the page rectangle [0,w]x[0,h] into the still-flat
// polygon and the curling polygon. The two polygons partition the page
// exactly: every rectangle edge crossing the fold line contributes one
// shared vertex to both outputs. A result with fewer than three vertices
// is empty (nothing to draw on that side).
func PartitionRect(w, h float32, fl FoldLine) (flat, curl Polygon) {
	corners := [4]geom.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}

	for i := range corners {
		cur := corners[i]
		next := corners[(i+1)%4]
		curCurl := fl.OnCurlSide(cur)

		if curCurl {
			curl = append(curl, cur)
		} else {
			flat = append(flat, cur)
		}

		// Side change along this edge: the crossing point belongs to both.
		if curCurl != fl.OnCurlSide(next) {
			if hit, ok := fl.intersectSegment(cur, next); ok {
				flat = append(flat, hit)
				curl = append(curl, hit)
			}
		}
	}

	if flat.Empty() {
		flat = nil
	}
	if curl.Empty() {
		curl = nil
	}
	return flat, curl
}

// intersectSegment intersects the infinite fold line with the segment a-b.
// The segment parameter must land in [-intersectEps, 1+intersectEps] and is
// clamped to [0,1]; near-parallel configurations report no intersection.
func (fl FoldLine) intersectSegment(a, b geom.Vec2) (geom.Vec2, bool) {
	seg := b.Sub(a)
	segLen := seg.Length()
	if segLen == 0 {
		return geom.Vec2{}, false
	}

	denom := fl.Dir.Cross(seg)
	if absf(denom) < parallelEps*segLen {
		return geom.Vec2{}, false
	}

	// Solve Point + t*Dir == a + s*seg for s.
	s := fl.Dir.Cross(fl.Point.Sub(a)) / denom
	if s < -intersectEps || s > 1+intersectEps {
		return geom.Vec2{}, false
	}
	s = clampf(s, 0, 1)
	return a.Add(seg.Scale(s)), true
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
