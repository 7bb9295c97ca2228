// Package render draws layout snapshots to PNG or SVG for headless export.
// Colors follow the terminal theme so exports look like the live view.
package render

import (
	"hash/fnv"

	"github.com/gravitrone/orrery/internal/graph"
	"github.com/gravitrone/orrery/internal/schema"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 1000

	// DefaultFrames runs the simulation through its whole settle window
	// before drawing.
	DefaultFrames = 150
)

const (
	hexBackground = "#16161d"
	hexEntity     = "#7f57b4"
	hexProperty   = "#436b77"
	hexText       = "#d7d9da"
	hexMuted      = "#9ba0bf"
	hexOwnership  = "#273540"
	hexRelation   = "#a7754e"
)

var folderPalette = []string{"#7f57b4", "#436b77", "#3f866b", "#c78854", "#a7754e"}

// Options size the output canvas. Zero values fall back to the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Compute builds a graph from the workspace and advances the simulation the
// given number of frames, returning the final snapshot. frames <= 0 runs
// the full settle window.
func Compute(ws *schema.Workspace, opts graph.Options, frames int) graph.Snapshot {
	if frames <= 0 {
		frames = DefaultFrames
	}
	g := graph.Build(ws, opts)
	eng := graph.NewEngine(g, opts.Width, opts.Height)
	for i := 0; i < frames; i++ {
		eng.Step()
	}
	return eng.Snapshot()
}

// FolderHex returns the display color for a folder: the explicit workspace
// color when set, otherwise a palette pick stable in the folder id.
func FolderHex(f schema.Folder) string {
	if f.Color != "" {
		return f.Color
	}
	h := fnv.New32a()
	h.Write([]byte(f.ID))
	return folderPalette[h.Sum32()%uint32(len(folderPalette))]
}

// NodeHex resolves a node's fill color from its kind and folder.
func NodeHex(snap graph.Snapshot, n graph.Node) string {
	if n.Kind == graph.KindProperty {
		return hexProperty
	}
	if f, ok := snap.Folder(n.FolderID); ok {
		return FolderHex(f)
	}
	return hexEntity
}

func countKinds(snap graph.Snapshot) (entities, properties int) {
	for i := range snap.Nodes {
		if snap.Nodes[i].Kind == graph.KindEntity {
			entities++
		} else {
			properties++
		}
	}
	return entities, properties
}
