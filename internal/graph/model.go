// Package graph builds and animates the knowledge-graph model: entity nodes
// seeded on a spiral, property nodes orbiting their owners, and relation
// edges detected from typed properties or naming. Nodes and edges live in a
// flat arena keyed by string id; ownership is an id field, never a pointer.
package graph

import (
	"math"

	"github.com/gravitrone/orrery/internal/schema"
)

// Vec is a 2D point or vector in world or screen space.
type Vec struct {
	X, Y float64
}

// Dist returns the euclidean distance to another point.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// NodeKind distinguishes entity vertices from orbiting attribute vertices.
type NodeKind int

const (
	KindEntity NodeKind = iota
	KindProperty
)

func (k NodeKind) String() string {
	if k == KindProperty {
		return "property"
	}
	return "entity"
}

// EdgeKind distinguishes owner links from cross-entity relations.
type EdgeKind int

const (
	EdgeOwnership EdgeKind = iota
	EdgeRelation
)

func (k EdgeKind) String() string {
	if k == EdgeRelation {
		return "relation"
	}
	return "ownership"
}

// Node is one flat vertex record. Property nodes carry their orbit state
// relative to the owner entity; entity nodes carry the id of their folder
// when they belong to one.
type Node struct {
	ID     string
	Kind   NodeKind
	Label  string
	Pos    Vec
	Vel    Vec
	Radius float64

	OwnerID     string
	OrbitRadius float64
	OrbitAngle  float64
	OrbitSpeed  float64

	Pinned bool

	FolderID string
}

// Edge links two node ids. Renderers skip edges whose endpoints are missing
// from the current node set rather than failing. Implicit marks relation
// edges found by the naming heuristic rather than a typed property.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Kind     EdgeKind
	Implicit bool
}

// Graph is the arena produced by one wholesale Build. The id index and the
// edge slice are immutable afterwards; node state is mutated in place by the
// engine.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index   map[string]int
	folders map[string]schema.Folder
}

// Node returns a pointer into the arena, or nil for an unknown id.
func (g *Graph) Node(id string) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return &g.Nodes[i]
}

// Contains reports whether id is in the current node set.
func (g *Graph) Contains(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Folder returns the folder record behind a node's FolderID.
func (g *Graph) Folder(id string) (schema.Folder, bool) {
	f, ok := g.folders[id]
	return f, ok
}

// Counts returns the number of entity and property nodes.
func (g *Graph) Counts() (entities, properties int) {
	for i := range g.Nodes {
		if g.Nodes[i].Kind == KindEntity {
			entities++
		} else {
			properties++
		}
	}
	return entities, properties
}

func (g *Graph) add(n Node) {
	if _, dup := g.index[n.ID]; dup {
		return
	}
	g.index[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
}

// Snapshot is an immutable copy of node state for rendering. Edges, the id
// index, and the folder table are shared with the arena; all are fixed
// after Build.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
	Frame int

	index   map[string]int
	folders map[string]schema.Folder
}

// Node returns the copied node for id.
func (s Snapshot) Node(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.Nodes[i], true
}

// Folder returns the folder record behind a node's FolderID.
func (s Snapshot) Folder(id string) (schema.Folder, bool) {
	f, ok := s.folders[id]
	return f, ok
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
