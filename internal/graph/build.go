package graph

import (
	"math"
	"math/rand"
	"strings"

	"github.com/gravitrone/orrery/internal/schema"
)

// Default world dimensions when the host has not sized the viewport yet.
const (
	DefaultWidth  = 1200.0
	DefaultHeight = 800.0
)

const (
	entityRadius   = 26.0
	propertyRadius = 10.0

	// Entities start on a golden-angle spiral so common counts begin with
	// low overlap before the simulation settles.
	spiralAngle     = 2.4
	spiralBase      = 30.0
	spiralStep      = 35.0
	spiralRadiusCap = 300.0

	// Properties sit in rings of 8, each ring rotated so slots don't align
	// radially across rings.
	orbitBase      = 35.0
	orbitRingStep  = 25.0
	orbitRingSize  = 8
	orbitRingShift = 0.3

	orbitSpeedMin = 0.0003
	orbitSpeedMax = 0.0005
)

// Options configure one wholesale build. Identical inputs (entities,
// folders, flags, seed, dimensions) produce identical node and edge sets.
type Options struct {
	// ShowProperties adds one orbiting node per attribute plus its
	// ownership edge. Relation detection runs either way.
	ShowProperties bool
	Width, Height  float64
	// Seed feeds the PRNG behind per-node orbit speeds.
	Seed int64
}

// Build constructs the node/edge arena from a workspace snapshot. Pins and
// selection never survive a build; callers rebuild wholesale whenever the
// snapshot or ShowProperties changes.
//
// Relation edges are found in two passes, deduplicated by unordered endpoint
// pair (first write wins). Pass one links every relation-typed property with
// a RelatedEntityID set. Pass two is a naming heuristic over the remaining
// properties: a lower-cased property name that contains another entity's
// name, or equals "<name>_id" / "<name>id", links the two entities. The
// heuristic is best-effort and loose on purpose; substring false positives
// are expected, but an edge is never created to an id outside the node set.
func Build(ws *schema.Workspace, opts Options) *Graph {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Graph{
		index:   make(map[string]int, len(ws.Entities)),
		folders: make(map[string]schema.Folder, len(ws.Folders)),
	}
	for _, f := range ws.Folders {
		g.folders[f.ID] = f
	}

	center := Vec{X: opts.Width / 2, Y: opts.Height / 2}
	for i, e := range ws.Entities {
		angle := float64(i) * spiralAngle
		radius := math.Min(spiralBase+float64(i)*spiralStep, spiralRadiusCap)
		n := Node{
			ID:     e.ID,
			Kind:   KindEntity,
			Label:  e.Name,
			Pos:    Vec{X: center.X + math.Cos(angle)*radius, Y: center.Y + math.Sin(angle)*radius},
			Radius: entityRadius,
		}
		if f := ws.FolderOf(e.ID); f != nil {
			n.FolderID = f.ID
		}
		g.add(n)
	}

	if opts.ShowProperties {
		for _, e := range ws.Entities {
			owner := g.Node(e.ID)
			if owner == nil {
				continue
			}
			for pi, p := range e.Properties {
				id := propNodeID(e.ID, p.Name)
				if g.Contains(id) {
					// Duplicate property name; first one wins so ids stay unique.
					continue
				}
				ring := pi / orbitRingSize
				slot := pi % orbitRingSize
				orbitRadius := orbitBase + float64(ring)*orbitRingStep
				angle := float64(slot)*(2*math.Pi/orbitRingSize) + float64(ring)*orbitRingShift
				g.add(Node{
					ID:          id,
					Kind:        KindProperty,
					Label:       p.Name,
					Pos:         orbitPos(owner.Pos, angle, orbitRadius),
					Radius:      propertyRadius,
					OwnerID:     e.ID,
					OrbitRadius: orbitRadius,
					OrbitAngle:  angle,
					OrbitSpeed:  orbitSpeedMin + rng.Float64()*(orbitSpeedMax-orbitSpeedMin),
				})
				g.Edges = append(g.Edges, Edge{
					ID:     "own-" + e.ID + "-" + p.Name,
					Source: id,
					Target: e.ID,
					Kind:   EdgeOwnership,
				})
			}
		}
	}

	relSeen := make(map[[2]string]struct{})
	addRelation := func(a, b string, implicit bool) {
		if !g.Contains(a) || !g.Contains(b) {
			return
		}
		key := pairKey(a, b)
		if _, dup := relSeen[key]; dup {
			return
		}
		relSeen[key] = struct{}{}
		g.Edges = append(g.Edges, Edge{
			ID:       "rel-" + a + "-" + b,
			Source:   a,
			Target:   b,
			Kind:     EdgeRelation,
			Implicit: implicit,
		})
	}

	// Pass one: explicit relation properties always link, independent of naming.
	explicit := make(map[string]struct{})
	for _, e := range ws.Entities {
		for _, p := range e.Properties {
			if p.Type == schema.TypeRelation && p.RelatedEntityID != "" {
				addRelation(e.ID, p.RelatedEntityID, false)
				explicit[e.ID+"\x00"+p.Name] = struct{}{}
			}
		}
	}

	// Pass two: naming heuristic over everything pass one didn't claim.
	for _, e := range ws.Entities {
		for _, p := range e.Properties {
			if _, ok := explicit[e.ID+"\x00"+p.Name]; ok {
				continue
			}
			prop := strings.ToLower(p.Name)
			for _, other := range ws.Entities {
				if other.ID == e.ID {
					continue
				}
				name := strings.ToLower(other.Name)
				if name == "" {
					continue
				}
				if strings.Contains(prop, name) || prop == name+"_id" || prop == name+"id" {
					addRelation(e.ID, other.ID, true)
				}
			}
		}
	}

	return g
}

func propNodeID(entityID, propName string) string {
	return "prop-" + entityID + "-" + propName
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func orbitPos(owner Vec, angle, radius float64) Vec {
	return Vec{X: owner.X + math.Cos(angle)*radius, Y: owner.Y + math.Sin(angle)*radius}
}
