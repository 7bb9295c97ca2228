package graph

import "math"

const (
	// settleLimit bounds how many frames the O(n²) entity forces run;
	// afterwards damping bleeds residual velocity off and positions hold.
	settleLimit = 150

	kRepel     = 400.0
	repelRange = 120.0
	kCenter    = 0.006
	damping    = 0.88
	edgeMargin = 80.0

	agitateRange = 100.0
	agitateScale = 0.05
)

// Engine advances the simulation one frame at a time. It is not safe for
// concurrent use; the host calls every method from its single update loop.
type Engine struct {
	g       *Graph
	w, h    float64
	frame   int
	dragged string
}

// NewEngine wraps a freshly built graph with the viewport dimensions the
// build was centered on.
func NewEngine(g *Graph, width, height float64) *Engine {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Engine{g: g, w: width, h: height}
}

// Graph exposes the underlying arena.
func (e *Engine) Graph() *Graph { return e.g }

// SetDims follows a viewport resize. Positions are kept; only the center
// pull target and the clamp bounds move. No rebuild happens here.
func (e *Engine) SetDims(width, height float64) {
	if width > 0 {
		e.w = width
	}
	if height > 0 {
		e.h = height
	}
}

// Settled reports whether the entity-force window has run out.
func (e *Engine) Settled() bool { return e.frame > settleLimit }

// Step advances one frame. Repulsion and center pull are computed only
// inside the settle window; velocity integration and damping run every
// frame so transient impulses still play out afterwards. Property nodes
// never receive forces, they track their owner's position on their orbit
// indefinitely.
func (e *Engine) Step() {
	e.frame++
	e.stepEntities()
	e.stepOrbits()
}

func (e *Engine) stepEntities() {
	nodes := e.g.Nodes
	center := Vec{X: e.w / 2, Y: e.h / 2}
	simulate := e.frame <= settleLimit

	for i := range nodes {
		n := &nodes[i]
		if n.Kind != KindEntity || n.Pinned || n.ID == e.dragged {
			continue
		}
		var f Vec
		if simulate {
			for j := range nodes {
				if j == i {
					continue
				}
				o := &nodes[j]
				if o.Kind != KindEntity || o.Pinned {
					continue
				}
				dx := n.Pos.X - o.Pos.X
				dy := n.Pos.Y - o.Pos.Y
				dist := math.Hypot(dx, dy)
				if dist >= repelRange {
					continue
				}
				if dist < 1 {
					dist = 1
				}
				rep := kRepel / (dist * dist)
				f.X += dx / dist * rep
				f.Y += dy / dist * rep
			}
			f.X += (center.X - n.Pos.X) * kCenter
			f.Y += (center.Y - n.Pos.Y) * kCenter
		}
		n.Vel.X = (n.Vel.X + f.X) * damping
		n.Vel.Y = (n.Vel.Y + f.Y) * damping
		n.Pos.X = clamp(n.Pos.X+n.Vel.X, edgeMargin, e.w-edgeMargin)
		n.Pos.Y = clamp(n.Pos.Y+n.Vel.Y, edgeMargin, e.h-edgeMargin)
	}
}

func (e *Engine) stepOrbits() {
	nodes := e.g.Nodes
	for i := range nodes {
		n := &nodes[i]
		if n.Kind != KindProperty || n.Pinned || n.ID == e.dragged {
			continue
		}
		owner := e.g.Node(n.OwnerID)
		if owner == nil {
			continue
		}
		n.OrbitAngle += n.OrbitSpeed
		n.Pos = orbitPos(owner.Pos, n.OrbitAngle, n.OrbitRadius)
	}
}

// Agitate fires the hover-enter impulse: every other node within range gets
// a one-shot velocity kick away from the hovered node, pin flag and settle
// window ignored. What shows is up to each node's integration rules.
func (e *Engine) Agitate(id string) {
	src := e.g.Node(id)
	if src == nil {
		return
	}
	origin := src.Pos
	nodes := e.g.Nodes
	for i := range nodes {
		n := &nodes[i]
		if n.ID == id {
			continue
		}
		dx := n.Pos.X - origin.X
		dy := n.Pos.Y - origin.Y
		dist := math.Hypot(dx, dy)
		if dist >= agitateRange || dist == 0 {
			continue
		}
		kick := (agitateRange - dist) * agitateScale
		n.Vel.X += dx / dist * kick
		n.Vel.Y += dy / dist * kick
	}
}

// MoveNode places a node directly, as during a drag: velocity zeroed, and an
// entity's properties re-centered rigidly from their stored orbit offsets.
func (e *Engine) MoveNode(id string, pos Vec) {
	n := e.g.Node(id)
	if n == nil {
		return
	}
	n.Pos = pos
	n.Vel = Vec{}
	if n.Kind != KindEntity {
		return
	}
	nodes := e.g.Nodes
	for i := range nodes {
		p := &nodes[i]
		if p.Kind == KindProperty && p.OwnerID == id {
			p.Pos = orbitPos(pos, p.OrbitAngle, p.OrbitRadius)
		}
	}
}

// BeginDrag marks a node as user-held so the physics step leaves it alone.
func (e *Engine) BeginDrag(id string) { e.dragged = id }

// EndDrag releases the drag mark.
func (e *Engine) EndDrag() { e.dragged = "" }

// Pin fixes a node at its current position until ResetPins.
func (e *Engine) Pin(id string) {
	if n := e.g.Node(id); n != nil {
		n.Pinned = true
	}
}

// TogglePin flips a node's pin and reports the new state.
func (e *Engine) TogglePin(id string) bool {
	n := e.g.Node(id)
	if n == nil {
		return false
	}
	n.Pinned = !n.Pinned
	return n.Pinned
}

// ResetPins returns every node to simulation control.
func (e *Engine) ResetPins() {
	for i := range e.g.Nodes {
		e.g.Nodes[i].Pinned = false
	}
}

// PinnedCount reports how many nodes are currently pinned.
func (e *Engine) PinnedCount() int {
	count := 0
	for i := range e.g.Nodes {
		if e.g.Nodes[i].Pinned {
			count++
		}
	}
	return count
}

// HitTest returns the node whose center is nearest the world point among
// those within radius+slack of it. Slack widens the target for coarse
// pointers (terminal cells); pass 0 for exact hits.
func (e *Engine) HitTest(p Vec, slack float64) (string, bool) {
	best := ""
	bestDist := math.MaxFloat64
	for i := range e.g.Nodes {
		n := &e.g.Nodes[i]
		d := n.Pos.Dist(p)
		if d <= n.Radius+slack && d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != ""
}

// Snapshot copies node state for rendering. The renderer always observes a
// complete, self-consistent frame; later steps never mutate it.
func (e *Engine) Snapshot() Snapshot {
	nodes := make([]Node, len(e.g.Nodes))
	copy(nodes, e.g.Nodes)
	return Snapshot{
		Nodes:   nodes,
		Edges:   e.g.Edges,
		Frame:   e.frame,
		index:   e.g.index,
		folders: e.g.folders,
	}
}
