package curl

import (
	"github.com/foldline/pagecurl/pkg/geom"
)

// PlanarEngine renders the curl as a 2D polygon split: the page rectangle
// is clipped against the fold line, the curling part draws mirrored via a
// reflection transform, and two gradient strips fake the lighting.
type PlanarEngine struct {
	params Params
}

// NewPlanarEngine creates the planar backend.
func NewPlanarEngine(params Params) *PlanarEngine {
	return &PlanarEngine{params: params}
}

// Name implements Engine.
func (e *PlanarEngine) Name() string { return "planar" }

// Frame implements Engine. Degenerate folds and empty curl regions both
// collapse to a single full-page draw of the curling page, never an error.
func (e *PlanarEngine) Frame(in FrameInput) FramePlan {
	touch, corner := in.dragPoints()
	w, h := in.PageW, in.PageH

	fl, ok := SolveFold(touch, corner)
	if !ok {
		return flatPlan(curlSlot(in.Direction))
	}

	flat, curl := PartitionRect(w, h, fl)
	if curl.Empty() {
		return flatPlan(curlSlot(in.Direction))
	}

	reflect := geom.ReflectAcross(fl.Point, fl.Dir)
	cast, crease := BuildShadows(fl, w, h, e.params.Shadow)

	plan := FramePlan{
		Geometry: &FrameGeometry{
			Flat:       flat,
			Curl:       curl,
			Reflection: reflect,
			Cast:       cast,
			Crease:     crease,
		},
	}

	// 1. Revealed page, clipped to the curl region.
	plan.Passes = append(plan.Passes, Pass{
		Kind:   PassRevealed,
		Slot:   revealSlot(in.Direction),
		Planar: upright(curl, w, h),
	})

	// 2. Cast shadow over the revealed page.
	if !cast.Quad.Empty() {
		plan.Passes = append(plan.Passes, Pass{
			Kind:   PassCastShadow,
			Shadow: normShadow(cast, w, h),
		})
	}

	// 3. Still-flat portion of the curling page.
	if !flat.Empty() {
		plan.Passes = append(plan.Passes, Pass{
			Kind:   PassFlat,
			Slot:   curlSlot(in.Direction),
			Planar: upright(flat, w, h),
		})

		// 4. Crease shadow on the flat portion.
		if !crease.Quad.Empty() {
			plan.Passes = append(plan.Passes, Pass{
				Kind:   PassCreaseShadow,
				Shadow: normShadow(crease, w, h),
			})
		}
	}

	// 5. Back face: the curl region with content mirrored across the fold.
	plan.Passes = append(plan.Passes, Pass{
		Kind: PassBackFace,
		Slot: curlSlot(in.Direction),
		Planar: &PlanarPass{
			Verts:   normPoly(curl, w, h),
			UVs:     mirroredUVs(curl, reflect, w, h),
			Opacity: e.params.BackOpacity,
			Overlay: e.params.BackOverlay,
		},
	})

	return plan
}

// flatPlan is the fully-flat fallback: one full-page draw.
func flatPlan(slot PageSlot) FramePlan {
	return FramePlan{
		Passes:   []Pass{{Kind: PassFlat, Slot: slot}},
		Geometry: &FrameGeometry{},
	}
}

// upright builds a pass payload whose UVs coincide with the normalized
// vertex positions.
func upright(poly Polygon, w, h float32) *PlanarPass {
	verts := normPoly(poly, w, h)
	return &PlanarPass{Verts: verts, UVs: verts, Opacity: 1}
}

func normPoly(poly Polygon, w, h float32) []geom.Vec2 {
	out := make([]geom.Vec2, len(poly))
	for i, v := range poly {
		out[i] = geom.Vec2{X: v.X / w, Y: v.Y / h}
	}
	return out
}

// mirroredUVs samples the reflected page content: each vertex is reflected
// across the fold line in pixel space, then normalized into texture space.
func mirroredUVs(poly Polygon, reflect geom.Affine, w, h float32) []geom.Vec2 {
	out := make([]geom.Vec2, len(poly))
	for i, v := range poly {
		r := reflect.Apply(v)
		out[i] = geom.Vec2{X: clampf(r.X/w, 0, 1), Y: clampf(r.Y/h, 0, 1)}
	}
	return out
}

func normShadow(s Shadow, w, h float32) *Shadow {
	out := Shadow{
		Kind:  s.Kind,
		Quad:  Polygon(normPoly(s.Quad, w, h)),
		From:  geom.Vec2{X: s.From.X / w, Y: s.From.Y / h},
		To:    geom.Vec2{X: s.To.X / w, Y: s.To.Y / h},
		Alpha: s.Alpha,
	}
	return &out
}
