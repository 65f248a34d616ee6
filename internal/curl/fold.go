// Package curl implements the page-curl geometry engine: fold-line solving,
// planar partitioning, reflection and shadow profiles, and the cylindrical
// mesh deformation used by the GPU backend. Everything here is pure math so
// it can be exercised without a GL context.
package curl

import (
	"github.com/foldline/pagecurl/pkg/geom"
)

// minFoldDistance is the drag distance in pixels below which no fold line
// exists and the page renders fully flat.
const minFoldDistance = 1.0

// FoldLine separates the still-flat portion of a page from the portion
// currently curling away.
type FoldLine struct {
	Point  geom.Vec2 // midpoint of the touch-corner segment
	Normal geom.Vec2 // unit vector pointing toward the dragged corner
	Dir    geom.Vec2 // unit vector along the fold line
}

// SolveFold derives the fold line for a drag from touch toward the page's
// original corner. ok is false when the two points are too close to define
// a line; callers must then render the page fully flat.
func SolveFold(touch, corner geom.Vec2) (fl FoldLine, ok bool) {
	d := corner.Sub(touch)
	if d.Length() < minFoldDistance {
		return FoldLine{}, false
	}
	n := d.Normalize()
	return FoldLine{
		Point:  touch.Lerp(corner, 0.5),
		Normal: n,
		Dir:    n.Perp(),
	}, true
}

// OnCurlSide reports whether p lies on the curling side of the fold line.
// Points exactly on the line count as flat.
func (fl FoldLine) OnCurlSide(p geom.Vec2) bool {
	return p.Sub(fl.Point).Dot(fl.Normal) > 0
}
