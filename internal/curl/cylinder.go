package curl

import (
	"math"

	"github.com/foldline/pagecurl/pkg/geom"
)

// DefaultRadius is the cylinder radius as a fraction of page width.
// Tighter values give a crisper curl.
const DefaultRadius = 0.065

// CylinderParams are the per-pass uniforms of the cylindrical backend.
// FoldX is the normalized fold-line x position: 1 means no curl, 0 fully
// turned. FoldSlope tilts the fold line diagonally across the page height:
// the line is x = FoldX + FoldSlope*(y-0.5).
type CylinderParams struct {
	FoldX     float32
	FoldSlope float32
	Radius    float32
	Darken    float32
	BackFace  bool
}

// FoldLineX returns the fold line x position at normalized height y.
func (p CylinderParams) FoldLineX(y float32) float32 {
	return p.FoldX + p.FoldSlope*(y-0.5)
}

// Displaced is the output of the cylindrical wrap for one mesh vertex.
type Displaced struct {
	Pos    geom.Vec2
	Z      float32
	UV     geom.Vec2
	Shadow float32
}

// Displace applies the cylindrical wrap to one normalized vertex. It
// mirrors the vertex shader exactly so the geometry is testable on the
// CPU; the GPU path never calls it.
//
// Vertices left of the fold line are untouched with zero shadow, so the
// surface is continuous at dx = 0. Right of the line the vertex wraps
// around a cylinder of the given radius: theta = min(dx/radius, pi),
// x' = foldLineX + radius*sin(theta), z = radius*(1-cos(theta)). Shadow
// intensity peaks at the cylinder's silhouette edge (theta = pi/2). In
// back-face mode the texture coordinate mirrors across the local fold
// line so the reverse side of the same content shows.
func (p CylinderParams) Displace(pos, uv geom.Vec2) Displaced {
	out := Displaced{Pos: pos, UV: uv}

	flx := p.FoldLineX(pos.Y)
	dx := pos.X - flx
	if dx <= 0 || p.Radius <= 0 {
		return out
	}

	theta := dx / p.Radius
	if theta > math.Pi {
		theta = math.Pi
	}
	sin := float32(math.Sin(float64(theta)))
	cos := float32(math.Cos(float64(theta)))

	out.Pos.X = flx + p.Radius*sin
	out.Z = p.Radius * (1 - cos)
	out.Shadow = p.Darken * sin

	if p.BackFace {
		out.UV.X = clampf(2*flx-uv.X, 0, 1)
	}
	return out
}
