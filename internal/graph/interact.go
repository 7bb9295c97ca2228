package graph

import (
	"math"
	"time"
)

const (
	// clickSlop is the screen-space travel allowed before a press stops
	// counting as a click.
	clickSlop = 3.0

	doublePressWindow = 400 * time.Millisecond
)

type gestureMode int

const (
	modeIdle gestureMode = iota
	modePan
	modeDrag
)

// Controller turns pointer and wheel events into engine and view mutations:
// panning on empty canvas, node dragging with pin-on-release, hover
// agitation, cursor-anchored zoom, and click selection. All coordinates are
// screen-space; the view transform maps them to the world.
type Controller struct {
	engine *Engine
	view   *View

	mode      gestureMode
	panAnchor Vec
	dragID    string
	dragGrab  Vec
	pressAt   Vec
	moved     bool

	hoverID  string
	selected string

	lastPressID string
	lastPressAt time.Time

	// HitSlack widens node hit areas by a screen-space margin; terminals
	// report the pointer at cell resolution, so half a cell is typical.
	HitSlack float64

	onNavigate func(entityID string)
}

// NewController wires a controller to an engine and view pair.
func NewController(engine *Engine, view *View) *Controller {
	return &Controller{engine: engine, view: view}
}

// OnNavigate registers the open-entity callback fired by a double press (or
// NavigateSelected). Property nodes resolve to their owner's id.
func (c *Controller) OnNavigate(fn func(entityID string)) { c.onNavigate = fn }

// Selected returns the id of the selected node, or "".
func (c *Controller) Selected() string { return c.selected }

// Hovered returns the id under the pointer, or "".
func (c *Controller) Hovered() string { return c.hoverID }

// Dragging reports whether a node drag is in progress.
func (c *Controller) Dragging() bool { return c.mode == modeDrag }

// PointerDown begins a gesture. A node hit starts a drag (and arms click
// and double-press detection); empty canvas starts a pan.
func (c *Controller) PointerDown(at Vec, now time.Time) {
	world := c.view.ToWorld(at)
	if id, ok := c.engine.HitTest(world, c.worldSlack()); ok {
		c.mode = modeDrag
		c.dragID = id
		node := c.engine.g.Node(id)
		c.dragGrab = Vec{X: world.X - node.Pos.X, Y: world.Y - node.Pos.Y}
		c.engine.BeginDrag(id)

		if id == c.lastPressID && now.Sub(c.lastPressAt) <= doublePressWindow {
			c.navigate(id)
		}
		c.lastPressID, c.lastPressAt = id, now
	} else {
		c.mode = modePan
		c.panAnchor = Vec{X: at.X - c.view.Offset.X, Y: at.Y - c.view.Offset.Y}
		c.lastPressID = ""
	}
	c.pressAt = at
	c.moved = false
}

// PointerMove continues the active gesture: pan follows the anchor, drag
// moves the grabbed node (an entity carries its properties rigidly).
func (c *Controller) PointerMove(at Vec) {
	switch c.mode {
	case modePan:
		c.view.Offset = Vec{X: at.X - c.panAnchor.X, Y: at.Y - c.panAnchor.Y}
	case modeDrag:
		world := c.view.ToWorld(at)
		c.engine.MoveNode(c.dragID, Vec{X: world.X - c.dragGrab.X, Y: world.Y - c.dragGrab.Y})
	default:
		return
	}
	if math.Hypot(at.X-c.pressAt.X, at.Y-c.pressAt.Y) > clickSlop {
		c.moved = true
	}
}

// PointerUp ends the gesture. Releasing a drag pins the dragged node; if
// the pointer never left the click slop it also toggles selection. A still
// click on empty canvas clears the selection.
func (c *Controller) PointerUp(at Vec) {
	if math.Hypot(at.X-c.pressAt.X, at.Y-c.pressAt.Y) > clickSlop {
		c.moved = true
	}
	switch c.mode {
	case modeDrag:
		c.engine.EndDrag()
		c.engine.Pin(c.dragID)
		if !c.moved {
			c.toggleSelect(c.dragID)
		}
	case modePan:
		if !c.moved {
			c.selected = ""
		}
	}
	c.mode = modeIdle
	c.dragID = ""
}

// Cancel abandons the active gesture without the release side effects (no
// pin, no selection toggle).
func (c *Controller) Cancel() {
	if c.mode == modeDrag {
		c.engine.EndDrag()
	}
	c.mode = modeIdle
	c.dragID = ""
}

// Hover tracks pointer motion with no button held. Entering a node fires
// the engine's one-shot agitation impulse.
func (c *Controller) Hover(at Vec) {
	if c.mode != modeIdle {
		return
	}
	world := c.view.ToWorld(at)
	id, _ := c.engine.HitTest(world, c.worldSlack())
	if id != "" && id != c.hoverID {
		c.engine.Agitate(id)
	}
	c.hoverID = id
}

// Wheel zooms one notch anchored at the cursor.
func (c *Controller) Wheel(at Vec, in bool) {
	c.view.ZoomStep(at, in)
}

// Reset restores the identity view and returns every pinned node to
// simulation control.
func (c *Controller) Reset() {
	c.view.Reset()
	c.engine.ResetPins()
}

// Select toggles selection of a node directly (keyboard path).
func (c *Controller) Select(id string) {
	if !c.engine.g.Contains(id) {
		return
	}
	c.toggleSelect(id)
}

// Deselect clears the selection.
func (c *Controller) Deselect() { c.selected = "" }

// NavigateSelected fires onNavigate for the current selection, if any.
func (c *Controller) NavigateSelected() {
	if c.selected != "" {
		c.navigate(c.selected)
	}
}

func (c *Controller) toggleSelect(id string) {
	if c.selected == id {
		c.selected = ""
	} else {
		c.selected = id
	}
}

func (c *Controller) navigate(id string) {
	if c.onNavigate == nil {
		return
	}
	entityID := id
	if n := c.engine.g.Node(id); n != nil && n.Kind == KindProperty {
		entityID = n.OwnerID
	}
	c.onNavigate(entityID)
}

func (c *Controller) worldSlack() float64 {
	if c.HitSlack <= 0 {
		return 0
	}
	return c.HitSlack / c.view.Zoom
}
