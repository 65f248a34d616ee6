package curl

import (
	"testing"

	"github.com/foldline/pagecurl/pkg/geom"
)

func TestBuildShadowsGeometry(t *testing.T) {
	const w, h = 800, 1200
	fl, ok := SolveFold(geom.Vec2{X: 400, Y: 600}, geom.Vec2{X: 800, Y: 1200})
	if !ok {
		t.Fatal("unexpected degenerate fold")
	}

	cast, crease := BuildShadows(fl, w, h, DefaultShadowConfig())

	if cast.Kind != CastShadow || crease.Kind != CreaseShadow {
		t.Fatal("shadow kinds mixed up")
	}
	if cast.Quad.Empty() {
		t.Error("cast strip should intersect the page")
	}
	if crease.Quad.Empty() {
		t.Error("crease strip should intersect the page")
	}

	// Strips are clipped to the page bounds.
	for _, s := range []Shadow{cast, crease} {
		for _, v := range s.Quad {
			if v.X < -1e-2 || v.X > w+1e-2 || v.Y < -1e-2 || v.Y > h+1e-2 {
				t.Errorf("%v strip vertex %v outside page", s.Kind, v)
			}
		}
	}

	// The strips extend along opposite sides of the fold line.
	castDir := cast.To.Sub(cast.From)
	creaseDir := crease.To.Sub(crease.From)
	if castDir.Dot(fl.Normal) <= 0 {
		t.Error("cast strip should extend toward the curl side")
	}
	if creaseDir.Dot(fl.Normal) >= 0 {
		t.Error("crease strip should extend toward the flat side")
	}

	// Widths are fractions of page width.
	if got, want := castDir.Length(), float32(0.15*w); absf(got-want) > 0.5 {
		t.Errorf("cast width = %v, want %v", got, want)
	}
	if got, want := creaseDir.Length(), float32(0.06*w); absf(got-want) > 0.5 {
		t.Errorf("crease width = %v, want %v", got, want)
	}
}

func TestShadowGradient(t *testing.T) {
	s := Shadow{
		From:  geom.Vec2{X: 0, Y: 0},
		To:    geom.Vec2{X: 10, Y: 0},
		Alpha: 0.35,
	}

	if got := s.GradientAt(geom.Vec2{X: 0, Y: 5}); got != 0 {
		t.Errorf("gradient at fold edge = %v, want 0", got)
	}
	if got := s.GradientAt(geom.Vec2{X: 10, Y: -3}); got != 1 {
		t.Errorf("gradient at outer edge = %v, want 1", got)
	}
	if got := s.GradientAt(geom.Vec2{X: 5, Y: 0}); absf(got-0.5) > 1e-5 {
		t.Errorf("gradient at midpoint = %v, want 0.5", got)
	}
	// Clamped outside the strip.
	if got := s.GradientAt(geom.Vec2{X: 25, Y: 0}); got != 1 {
		t.Errorf("gradient beyond outer edge = %v, want 1", got)
	}
	if got := s.GradientAt(geom.Vec2{X: -5, Y: 0}); got != 0 {
		t.Errorf("gradient behind fold = %v, want 0", got)
	}
}

func TestShadowStripOffPage(t *testing.T) {
	// Fold at the far right corner pushes the cast strip off the page.
	fl, ok := SolveFold(geom.Vec2{X: 796, Y: 1200}, geom.Vec2{X: 810, Y: 1200})
	if !ok {
		t.Fatal("unexpected degenerate fold")
	}
	cast, _ := BuildShadows(fl, 800, 1200, DefaultShadowConfig())
	if !cast.Quad.Empty() {
		// The strip starts at x=803: nothing of it lies on the page.
		t.Errorf("expected empty cast strip, got %v", cast.Quad)
	}
}
