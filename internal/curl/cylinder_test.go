package curl

import (
	"math"
	"testing"

	"github.com/foldline/pagecurl/pkg/geom"
)

func TestDisplaceFlatSide(t *testing.T) {
	p := CylinderParams{FoldX: 0.5, Radius: DefaultRadius, Darken: 0.35}

	for _, x := range []float32{0, 0.1, 0.25, 0.49999, 0.5} {
		pos := geom.Vec2{X: x, Y: 0.5}
		got := p.Displace(pos, pos)
		if got.Pos != pos || got.Z != 0 || got.Shadow != 0 {
			t.Errorf("Displace(%v) = %+v, want untouched", pos, got)
		}
	}
}

func TestDisplaceContinuityAtFold(t *testing.T) {
	// No seam at dx = 0: the displaced position converges to the flat one.
	p := CylinderParams{FoldX: 0.5, Radius: DefaultRadius, Darken: 0.35}

	at := p.Displace(geom.Vec2{X: 0.5, Y: 0.3}, geom.Vec2{X: 0.5, Y: 0.3})
	if at.Pos.X != 0.5 || at.Z != 0 {
		t.Errorf("at fold: pos.X=%v z=%v, want exactly 0.5 and 0", at.Pos.X, at.Z)
	}

	just := p.Displace(geom.Vec2{X: 0.5 + 1e-5, Y: 0.3}, geom.Vec2{X: 0.5, Y: 0.3})
	if absf(just.Pos.X-0.5) > 1e-4 || just.Z > 1e-4 {
		t.Errorf("just past fold: pos.X=%v z=%v, want ~0.5 and ~0", just.Pos.X, just.Z)
	}
}

func TestDisplaceWrapGeometry(t *testing.T) {
	p := CylinderParams{FoldX: 0.5, Radius: 0.1, Darken: 1}

	// theta = pi/2: the silhouette edge. x' = foldX + r, z = r.
	d := p.Displace(geom.Vec2{X: 0.5 + 0.1*math.Pi/2, Y: 0.5}, geom.Vec2{})
	if absf(d.Pos.X-0.6) > 1e-4 {
		t.Errorf("silhouette x = %v, want 0.6", d.Pos.X)
	}
	if absf(d.Z-0.1) > 1e-4 {
		t.Errorf("silhouette z = %v, want 0.1", d.Z)
	}
	if absf(d.Shadow-1) > 1e-4 {
		t.Errorf("silhouette shadow = %v, want 1", d.Shadow)
	}

	// theta capped at pi: fully wrapped, x back at the fold line, z = 2r.
	far := p.Displace(geom.Vec2{X: 2, Y: 0.5}, geom.Vec2{})
	if absf(far.Pos.X-0.5) > 1e-4 {
		t.Errorf("wrapped x = %v, want 0.5", far.Pos.X)
	}
	if absf(far.Z-0.2) > 1e-4 {
		t.Errorf("wrapped z = %v, want 0.2", far.Z)
	}
}

func TestDisplaceShadowProfile(t *testing.T) {
	// Shadow intensity rises monotonically up to theta = pi/2, then falls
	// symmetrically toward theta = pi.
	p := CylinderParams{FoldX: 0, Radius: 0.1, Darken: 1}

	steps := 32
	var prev float32 = -1
	for i := 0; i <= steps; i++ {
		theta := float32(math.Pi / 2 * float64(i) / float64(steps))
		d := p.Displace(geom.Vec2{X: theta * p.Radius, Y: 0.5}, geom.Vec2{})
		if d.Shadow < prev-1e-6 {
			t.Fatalf("shadow decreased before pi/2 at step %d: %v < %v", i, d.Shadow, prev)
		}
		prev = d.Shadow
	}

	prev = 2
	for i := 0; i <= steps; i++ {
		theta := float32(math.Pi/2 + math.Pi/2*float64(i)/float64(steps))
		d := p.Displace(geom.Vec2{X: theta * p.Radius, Y: 0.5}, geom.Vec2{})
		if d.Shadow > prev+1e-6 {
			t.Fatalf("shadow increased after pi/2 at step %d: %v > %v", i, d.Shadow, prev)
		}
		prev = d.Shadow
	}
}

func TestDisplaceBackFaceMirrorsUV(t *testing.T) {
	p := CylinderParams{FoldX: 0.4, Radius: 0.1, Darken: 0.15, BackFace: true}

	uv := geom.Vec2{X: 0.6, Y: 0.3}
	d := p.Displace(geom.Vec2{X: 0.6, Y: 0.3}, uv)
	// u' = 2*foldX - u = 0.8 - 0.6 = 0.2
	if absf(d.UV.X-0.2) > 1e-5 {
		t.Errorf("mirrored u = %v, want 0.2", d.UV.X)
	}
	if d.UV.Y != uv.Y {
		t.Errorf("v changed: %v, want %v", d.UV.Y, uv.Y)
	}

	// Mirror result clamps into [0,1].
	d = p.Displace(geom.Vec2{X: 0.99, Y: 0.3}, geom.Vec2{X: 0.99, Y: 0.3})
	if d.UV.X < 0 || d.UV.X > 1 {
		t.Errorf("mirrored u out of range: %v", d.UV.X)
	}
}

func TestFoldLineXSlope(t *testing.T) {
	p := CylinderParams{FoldX: 0.5, FoldSlope: 0.2}
	if got := p.FoldLineX(0.5); got != 0.5 {
		t.Errorf("FoldLineX(0.5) = %v, want 0.5", got)
	}
	if got := p.FoldLineX(1); absf(got-0.6) > 1e-6 {
		t.Errorf("FoldLineX(1) = %v, want 0.6", got)
	}
	if got := p.FoldLineX(0); absf(got-0.4) > 1e-6 {
		t.Errorf("FoldLineX(0) = %v, want 0.4", got)
	}
}
