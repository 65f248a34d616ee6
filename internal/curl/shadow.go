package curl

import (
	"github.com/foldline/pagecurl/pkg/geom"
)

// ShadowKind distinguishes the two gradient strips drawn around the fold.
type ShadowKind int

const (
	// CastShadow is thrown by the curling page onto the revealed page.
	CastShadow ShadowKind = iota
	// CreaseShadow darkens the still-flat page right at the fold.
	CreaseShadow
)

// Shadow is a gradient strip anchored at the fold line. Quad is the strip
// clipped to the page; the alpha fades linearly from Alpha at From to zero
// at To, measured by projection onto the From-To axis.
type Shadow struct {
	Kind  ShadowKind
	Quad  Polygon
	From  geom.Vec2
	To    geom.Vec2
	Alpha float32
}

// ShadowConfig holds the strip widths (as fractions of page width) and the
// peak opacities of the two shadows.
type ShadowConfig struct {
	CastWidthFrac   float32
	CreaseWidthFrac float32
	CastAlpha       float32
	CreaseAlpha     float32
}

// DefaultShadowConfig matches the tuned widths of the planar model: a wide
// soft cast shadow and a narrow crease.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		CastWidthFrac:   0.15,
		CreaseWidthFrac: 0.06,
		CastAlpha:       0.35,
		CreaseAlpha:     0.24,
	}
}

// BuildShadows derives the cast and crease strips for a fold line on a
// w x h page. Strips are parallelograms running the full extended fold
// line, offset along the fold normal, clipped to the page bounds. A strip
// fully outside the page comes back empty and is skipped by callers.
func BuildShadows(fl FoldLine, w, h float32, cfg ShadowConfig) (cast, crease Shadow) {
	cast = buildStrip(fl, w, h, CastShadow, cfg.CastWidthFrac*w, cfg.CastAlpha)
	crease = buildStrip(fl, w, h, CreaseShadow, cfg.CreaseWidthFrac*w, cfg.CreaseAlpha)
	return cast, crease
}

func buildStrip(fl FoldLine, w, h float32, kind ShadowKind, width, alpha float32) Shadow {
	// The cast shadow lies on the curl side of the line (over the revealed
	// page), the crease on the flat side.
	offDir := fl.Normal
	if kind == CreaseShadow {
		offDir = offDir.Scale(-1)
	}
	off := offDir.Scale(width)

	// Extend well past the page so clipping defines the final extent.
	ext := w + h
	p0 := fl.Point.Sub(fl.Dir.Scale(ext))
	p1 := fl.Point.Add(fl.Dir.Scale(ext))

	quad := Polygon{p0, p1, p1.Add(off), p0.Add(off)}.ClipToRect(w, h)
	if quad.Empty() {
		quad = nil
	}

	return Shadow{
		Kind:  kind,
		Quad:  quad,
		From:  fl.Point,
		To:    fl.Point.Add(off),
		Alpha: alpha,
	}
}

// GradientAt returns the normalized gradient coordinate of p: 0 at the fold
// line (full opacity) rising to 1 at the strip's outer edge (transparent).
func (s Shadow) GradientAt(p geom.Vec2) float32 {
	axis := s.To.Sub(s.From)
	l2 := axis.Dot(axis)
	if l2 == 0 {
		return 1
	}
	return clampf(p.Sub(s.From).Dot(axis)/l2, 0, 1)
}
