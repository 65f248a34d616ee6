package curl

import (
	"math"

	"github.com/foldline/pagecurl/pkg/geom"
)

// GestureState tracks one page-turn gesture.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDragging
	StateCompleting
	StateCancelling
)

func (s GestureState) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateCompleting:
		return "completing"
	case StateCancelling:
		return "cancelling"
	default:
		return "idle"
	}
}

// Callbacks fire on the loop thread when a settle animation finishes.
type Callbacks struct {
	OnTurnCompleted func(Direction)
	OnTurnCancelled func()
}

// maxFoldSlope caps the diagonal tilt a drag can impose on the fold line.
const maxFoldSlope = 0.4

// Gesture drives a single page turn through
// Idle -> Dragging -> {Completing, Cancelling} -> Idle.
//
// Once a settle animation starts it runs to completion; StartDrag is
// refused until the machine returns to Idle.
type Gesture struct {
	pageW, pageH float32
	settle       float32 // settle animation duration, seconds
	cb           Callbacks

	state     GestureState
	dir       Direction
	corner    geom.Vec2
	touch     geom.Vec2
	foldSlope float32
	progress  float32 // turn amount of the curling page, 0 flat .. 1 turned

	animFrom, animTo float32
	animT            float32
}

// NewGesture creates a gesture machine for a pageW x pageH page.
func NewGesture(pageW, pageH, settleDuration float32, cb Callbacks) *Gesture {
	if settleDuration <= 0 {
		settleDuration = 0.3
	}
	return &Gesture{
		pageW:  pageW,
		pageH:  pageH,
		settle: settleDuration,
		cb:     cb,
	}
}

// State returns the current gesture state.
func (g *Gesture) State() GestureState { return g.state }

// Direction returns the direction of the active or last turn.
func (g *Gesture) Direction() Direction { return g.dir }

// Progress returns the curling page's current turn amount.
func (g *Gesture) Progress() float32 { return g.progress }

// Resize updates the page dimensions mid-gesture.
func (g *Gesture) Resize(pageW, pageH float32) {
	g.pageW = pageW
	g.pageH = pageH
}

// StartDrag begins a turn at the given page corner. It returns false while
// a settle animation is in flight.
func (g *Gesture) StartDrag(dir Direction, corner, touch geom.Vec2) bool {
	if g.state != StateIdle {
		return false
	}
	g.state = StateDragging
	g.dir = dir
	g.corner = corner
	g.Drag(touch)
	return true
}

// Drag updates the dragged corner position. Ignored outside Dragging.
func (g *Gesture) Drag(touch geom.Vec2) {
	if g.state != StateDragging {
		return
	}
	g.touch = touch
	g.progress = clampf((g.corner.X-touch.X)/(2*g.pageW), 0, 1)
	if g.pageH > 0 {
		g.foldSlope = clampf((g.corner.Y-touch.Y)/g.pageH*0.5, -maxFoldSlope, maxFoldSlope)
	}
}

// Release ends the drag. With commit the turn animates to completion and
// the OnTurnCompleted callback fires; otherwise it animates back to the
// neutral flat state and OnTurnCancelled fires.
func (g *Gesture) Release(commit bool) {
	if g.state != StateDragging {
		return
	}
	g.animFrom = g.progress
	g.animT = 0

	turned, neutral := float32(1), float32(0)
	if g.dir == Backward {
		// A backward turn completes with the previous page lying flat.
		turned, neutral = 0, 1
	}
	if commit {
		g.state = StateCompleting
		g.animTo = turned
	} else {
		g.state = StateCancelling
		g.animTo = neutral
	}
}

// Update advances an in-flight settle animation by dt seconds.
func (g *Gesture) Update(dt float32) {
	if g.state != StateCompleting && g.state != StateCancelling {
		return
	}

	g.animT += dt / g.settle
	t := easeOutCubic(clampf(g.animT, 0, 1))
	g.progress = g.animFrom + (g.animTo-g.animFrom)*t
	if g.animT < 1 {
		return
	}

	done, dir := g.state, g.dir
	g.reset()
	switch done {
	case StateCompleting:
		if g.cb.OnTurnCompleted != nil {
			g.cb.OnTurnCompleted(dir)
		}
	case StateCancelling:
		if g.cb.OnTurnCancelled != nil {
			g.cb.OnTurnCancelled()
		}
	}
}

// reset returns the machine to the neutral flat state. The committed page
// index change is the caller's concern (see book.Book).
func (g *Gesture) reset() {
	g.state = StateIdle
	g.dir = Forward
	g.progress = 0
	g.foldSlope = 0
	g.animT = 0
	g.touch = geom.Vec2{}
	g.corner = geom.Vec2{}
}

// Input returns the engine snapshot for the current frame.
func (g *Gesture) Input() FrameInput {
	return FrameInput{
		PageW:     g.pageW,
		PageH:     g.pageH,
		Direction: g.dir,
		Progress:  g.progress,
		Dragging:  g.state == StateDragging,
		Touch:     g.touch,
		Corner:    g.corner,
		CornerSet: g.state != StateIdle,
		FoldSlope: g.foldSlope,
	}
}

func easeOutCubic(t float32) float32 {
	inv := 1 - t
	return 1 - float32(math.Pow(float64(inv), 3))
}
