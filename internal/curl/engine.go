package curl

import (
	"github.com/foldline/pagecurl/pkg/geom"
)

// Direction of a page turn.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// PageSlot identifies one of the three resident page textures.
type PageSlot int

const (
	SlotCurrent PageSlot = iota
	SlotNext
	SlotPrevious
	SlotCount
)

// PassKind enumerates the compositor passes. Plans list passes in this
// order: revealed page, cast shadow, flat/front page, crease shadow,
// back face.
type PassKind int

const (
	PassRevealed PassKind = iota
	PassCastShadow
	PassFlat
	PassCreaseShadow
	PassBackFace
)

// PlanarPass is the payload of a planar-model draw pass: a clipped polygon
// in normalized [0,1] page coordinates with per-vertex texture coordinates.
// Back-face passes carry mirrored UVs, reduced opacity, and a translucent
// white paper-back overlay.
type PlanarPass struct {
	Verts   []geom.Vec2
	UVs     []geom.Vec2
	Opacity float32
	Overlay float32
}

// Pass describes one draw pass. Page passes set exactly one of Planar or
// Cylinder (a flat full-page draw sets neither); shadow passes set Shadow.
type Pass struct {
	Kind     PassKind
	Slot     PageSlot
	Planar   *PlanarPass
	Cylinder *CylinderParams
	Shadow   *Shadow
}

// FrameGeometry is the planar model's raw per-frame output in page pixels,
// exposed for the gesture layer and for tests.
type FrameGeometry struct {
	Flat       Polygon
	Curl       Polygon
	Reflection geom.Affine
	Cast       Shadow
	Crease     Shadow
}

// FramePlan is one frame's ordered draw passes plus the backend-specific
// raw outputs (Geometry for the planar engine, Uniforms for the
// cylindrical one).
type FramePlan struct {
	Passes   []Pass
	Geometry *FrameGeometry
	Uniforms *CylinderParams
}

// FrameInput is the snapshot an engine consumes each frame.
//
// Progress is the turn amount of the curling page: 0 means it lies flat
// over the view, 1 means fully turned away. Forward turns run 0 to 1 on
// the current page; backward turns run 1 to 0 on the previous page. Touch
// and Corner are page-local pixel coordinates; Corner is honored only when
// CornerSet, so an anchor at the page origin is not mistaken for an unset
// field. Without a set corner engines anchor at the bottom-right corner,
// and outside a drag the touch is synthesized from Progress.
type FrameInput struct {
	PageW, PageH float32
	Direction    Direction
	Progress     float32
	Dragging     bool
	Touch        geom.Vec2
	Corner       geom.Vec2
	CornerSet    bool
	FoldSlope    float32
}

// dragPoints returns the effective touch and corner driving the fold. When
// no drag is active the touch is synthesized so the fold midpoint sweeps
// from the corner's edge (Progress 0) across the page (Progress 1), moving
// away from whichever vertical edge anchors the corner.
func (in FrameInput) dragPoints() (touch, corner geom.Vec2) {
	corner = in.Corner
	if !in.CornerSet {
		corner = geom.Vec2{X: in.PageW, Y: in.PageH}
	}
	if in.Dragging {
		return in.Touch, corner
	}
	dx := 2 * in.Progress * in.PageW
	if corner.X < in.PageW/2 {
		dx = -dx
	}
	touch = geom.Vec2{X: corner.X - dx, Y: corner.Y}
	return touch, corner
}

// revealSlot returns the page exposed underneath the curling one.
func revealSlot(d Direction) PageSlot {
	if d == Backward {
		return SlotCurrent
	}
	return SlotNext
}

// curlSlot returns the page that is curling.
func curlSlot(d Direction) PageSlot {
	if d == Backward {
		return SlotPrevious
	}
	return SlotCurrent
}

// Params are the construction-time tunables shared by both engines.
type Params struct {
	// Radius is the cylinder radius as a fraction of page width.
	Radius float32

	// Shadow configures the planar model's wide gradient strips;
	// StripShadow the cylindrical model's narrow ones.
	Shadow      ShadowConfig
	StripShadow ShadowConfig

	MeshCols, MeshRows int

	// FrontDarken and BackDarken shade the curling page's two faces.
	FrontDarken float32
	BackDarken  float32

	// BackOpacity and BackOverlay style the planar back face: reduced
	// opacity plus a translucent white paper-back wash.
	BackOpacity float32
	BackOverlay float32
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		Radius:      DefaultRadius,
		Shadow:      DefaultShadowConfig(),
		StripShadow: DefaultStripShadowConfig(),
		MeshCols:    64,
		MeshRows:    32,
		FrontDarken: 0.35,
		BackDarken:  0.15,
		BackOpacity: 0.7,
		BackOverlay: 0.25,
	}
}

// DefaultStripShadowConfig returns the cylindrical model's strip widths:
// narrow bands hugging the fold line.
func DefaultStripShadowConfig() ShadowConfig {
	return ShadowConfig{
		CastWidthFrac:   0.04,
		CreaseWidthFrac: 0.03,
		CastAlpha:       0.35,
		CreaseAlpha:     0.24,
	}
}

// Engine derives one frame's draw plan from an input snapshot. The two
// implementations (planar and cylindrical) are interchangeable behind this
// interface and selected at construction time.
type Engine interface {
	Name() string
	Frame(in FrameInput) FramePlan
}
