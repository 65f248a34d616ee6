package curl

import (
	"math"

	"github.com/foldline/pagecurl/pkg/geom"
)

// Polygon is an ordered vertex list. Partition results are convex with
// three to six vertices; anything smaller is empty and draws nothing.
type Polygon []geom.Vec2

// Empty reports whether the polygon has too few vertices to draw.
func (p Polygon) Empty() bool {
	return len(p) < 3
}

// Area returns the absolute area (shoelace formula).
func (p Polygon) Area() float32 {
	if p.Empty() {
		return 0
	}
	var sum float32
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		sum += a.Cross(b)
	}
	return float32(math.Abs(float64(sum))) * 0.5
}

// Contains reports whether pt lies inside or on the boundary of a convex
// polygon with consistently ordered vertices.
func (p Polygon) Contains(pt geom.Vec2) bool {
	if p.Empty() {
		return false
	}
	var sign float32
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		c := b.Sub(a).Cross(pt.Sub(a))
		if c == 0 {
			continue
		}
		if sign == 0 {
			sign = c
		} else if (sign > 0) != (c > 0) {
			return false
		}
	}
	return true
}

// ClipToRect clips the polygon against the axis-aligned rectangle
// [0,w]x[0,h] (Sutherland-Hodgman, one half-plane at a time).
func (p Polygon) ClipToRect(w, h float32) Polygon {
	out := p
	out = clipHalfPlane(out, func(v geom.Vec2) float32 { return v.X })
	out = clipHalfPlane(out, func(v geom.Vec2) float32 { return w - v.X })
	out = clipHalfPlane(out, func(v geom.Vec2) float32 { return v.Y })
	out = clipHalfPlane(out, func(v geom.Vec2) float32 { return h - v.Y })
	return out
}

// clipHalfPlane keeps the part of the polygon where inside(v) >= 0.
func clipHalfPlane(p Polygon, inside func(geom.Vec2) float32) Polygon {
	if len(p) == 0 {
		return nil
	}
	var out Polygon
	for i := range p {
		cur := p[i]
		next := p[(i+1)%len(p)]
		dCur := inside(cur)
		dNext := inside(next)

		if dCur >= 0 {
			out = append(out, cur)
		}
		// Edge crosses the boundary: emit the crossing point.
		if (dCur >= 0) != (dNext >= 0) {
			t := dCur / (dCur - dNext)
			out = append(out, cur.Lerp(next, t))
		}
	}
	return out
}
