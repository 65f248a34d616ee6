package curl

import (
	"github.com/foldline/pagecurl/pkg/geom"
)

// CylinderEngine renders the curl as a GPU mesh deformation: vertices
// right of the fold line wrap around a fixed-radius cylinder in the vertex
// shader. The engine itself only derives per-pass uniforms and shadow
// strips; the mesh never changes after construction.
type CylinderEngine struct {
	params Params
	mesh   *Mesh
}

// NewCylinderEngine creates the cylindrical backend with its static mesh.
func NewCylinderEngine(params Params) *CylinderEngine {
	return &CylinderEngine{
		params: params,
		mesh:   BuildMesh(params.MeshCols, params.MeshRows),
	}
}

// Name implements Engine.
func (e *CylinderEngine) Name() string { return "cylinder" }

// Mesh returns the static page tessellation for GPU upload.
func (e *CylinderEngine) Mesh() *Mesh { return e.mesh }

// Frame implements Engine. FoldX runs from 1 (no curl) to 0 (fully
// turned); backward turns mirror the drag tilt and operate on the
// previous page, reusing the identical transform.
func (e *CylinderEngine) Frame(in FrameInput) FramePlan {
	slope := in.FoldSlope
	if in.Direction == Backward {
		slope = -slope
	}

	front := CylinderParams{
		FoldX:     1 - clampf(in.Progress, 0, 1),
		FoldSlope: slope,
		Radius:    e.params.Radius,
		Darken:    e.params.FrontDarken,
	}

	// No curl at all: a single flat draw of the curling page.
	if front.FoldX >= 1 {
		plan := flatPlan(curlSlot(in.Direction))
		plan.Geometry = nil
		plan.Uniforms = &front
		return plan
	}

	back := front
	back.BackFace = true
	back.Darken = e.params.BackDarken

	plan := FramePlan{Uniforms: &front}

	// 1. Revealed page underneath, full and unclipped.
	plan.Passes = append(plan.Passes, Pass{
		Kind: PassRevealed,
		Slot: revealSlot(in.Direction),
	})

	// Fully turned: only the revealed page and the wrapped back face are
	// visible; the front pass and shadows would draw nothing useful.
	if front.FoldX <= 0 {
		plan.Passes = append(plan.Passes, Pass{
			Kind:     PassBackFace,
			Slot:     curlSlot(in.Direction),
			Cylinder: &back,
		})
		return plan
	}

	cast, crease := e.foldStrips(front)

	// 2. Cast shadow on the revealed page, right of the fold line.
	if !cast.Quad.Empty() {
		plan.Passes = append(plan.Passes, Pass{Kind: PassCastShadow, Shadow: &cast})
	}

	// 3. Front face: flat vertices left of the fold plus the curl's front.
	plan.Passes = append(plan.Passes, Pass{
		Kind:     PassFlat,
		Slot:     curlSlot(in.Direction),
		Cylinder: &front,
	})

	// 4. Crease shadow on the still-flat portion, left of the fold line.
	if !crease.Quad.Empty() {
		plan.Passes = append(plan.Passes, Pass{Kind: PassCreaseShadow, Shadow: &crease})
	}

	// 5. Back face of the same mesh, opposite winding, mirrored UVs.
	plan.Passes = append(plan.Passes, Pass{
		Kind:     PassBackFace,
		Slot:     curlSlot(in.Direction),
		Cylinder: &back,
	})

	return plan
}

// foldStrips builds the two shadow strips along the (possibly diagonal)
// fold line, in normalized page space.
func (e *CylinderEngine) foldStrips(p CylinderParams) (cast, crease Shadow) {
	fl := foldLineOf(p)
	return BuildShadows(fl, 1, 1, e.params.StripShadow)
}

// foldLineOf converts cylinder uniforms to a normalized-space fold line
// with the normal pointing at the curl side (+x).
func foldLineOf(p CylinderParams) FoldLine {
	dir := geom.Vec2{X: p.FoldSlope, Y: 1}.Normalize()
	normal := geom.Vec2{X: dir.Y, Y: -dir.X}
	return FoldLine{
		Point:  geom.Vec2{X: p.FoldLineX(0.5), Y: 0.5},
		Normal: normal,
		Dir:    dir,
	}
}
