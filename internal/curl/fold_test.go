package curl

import (
	"testing"

	"github.com/foldline/pagecurl/pkg/geom"
)

func TestSolveFoldDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		touch, corner geom.Vec2
	}{
		{"identical", geom.Vec2{X: 400, Y: 600}, geom.Vec2{X: 400, Y: 600}},
		{"sub-pixel", geom.Vec2{X: 400, Y: 600}, geom.Vec2{X: 400.5, Y: 600.5}},
		{"zero", geom.Vec2{}, geom.Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := SolveFold(tt.touch, tt.corner); ok {
				t.Errorf("SolveFold(%v, %v) should be degenerate", tt.touch, tt.corner)
			}
		})
	}
}

func TestSolveFoldMidpointAndNormal(t *testing.T) {
	touch := geom.Vec2{X: 400, Y: 600}
	corner := geom.Vec2{X: 800, Y: 1200}

	fl, ok := SolveFold(touch, corner)
	if !ok {
		t.Fatal("unexpected degenerate fold")
	}

	if fl.Point.Distance(geom.Vec2{X: 600, Y: 900}) > 1e-3 {
		t.Errorf("fold point = %v, want (600, 900)", fl.Point)
	}

	// Normal is the unit vector from touch toward the corner.
	want := corner.Sub(touch).Normalize()
	if fl.Normal.Distance(want) > 1e-5 {
		t.Errorf("normal = %v, want %v", fl.Normal, want)
	}

	// Direction is a unit vector perpendicular to the normal.
	if d := absf(fl.Normal.Dot(fl.Dir)); d > 1e-5 {
		t.Errorf("dir not perpendicular to normal, dot = %v", d)
	}
	if l := fl.Dir.Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("dir not unit length: %v", l)
	}
}

func TestFoldSideClassification(t *testing.T) {
	fl, ok := SolveFold(geom.Vec2{X: 400, Y: 600}, geom.Vec2{X: 800, Y: 1200})
	if !ok {
		t.Fatal("unexpected degenerate fold")
	}

	if !fl.OnCurlSide(geom.Vec2{X: 800, Y: 1200}) {
		t.Error("dragged corner must be on the curl side")
	}
	if fl.OnCurlSide(geom.Vec2{X: 0, Y: 0}) {
		t.Error("opposite corner must be on the flat side")
	}
	// The fold point itself counts as flat.
	if fl.OnCurlSide(fl.Point) {
		t.Error("fold point should classify as flat")
	}
}
