package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/gravitrone/orrery/internal/graph"
)

// PNG draws a snapshot to w. Edges render beneath nodes; an edge whose
// endpoint has left the node set is skipped, never an error.
func PNG(snap graph.Snapshot, opts Options, w io.Writer) error {
	width, height := opts.size()
	dc := gg.NewContext(width, height)
	dc.SetHexColor(hexBackground)
	dc.Clear()

	for _, e := range snap.Edges {
		src, ok := snap.Node(e.Source)
		if !ok {
			continue
		}
		dst, ok := snap.Node(e.Target)
		if !ok {
			continue
		}
		if e.Kind == graph.EdgeRelation {
			dc.SetHexColor(hexRelation)
			dc.SetLineWidth(2)
		} else {
			dc.SetHexColor(hexOwnership)
			dc.SetLineWidth(1)
		}
		dc.DrawLine(src.Pos.X, src.Pos.Y, dst.Pos.X, dst.Pos.Y)
		dc.Stroke()
	}

	for _, n := range snap.Nodes {
		dc.SetHexColor(NodeHex(snap, n))
		dc.DrawCircle(n.Pos.X, n.Pos.Y, n.Radius)
		dc.Fill()
		if n.Pinned {
			dc.SetHexColor(hexText)
			dc.SetLineWidth(1.5)
			dc.DrawCircle(n.Pos.X, n.Pos.Y, n.Radius+2)
			dc.Stroke()
		}
	}

	for _, n := range snap.Nodes {
		if n.Kind == graph.KindEntity {
			dc.SetHexColor(hexText)
			dc.DrawStringAnchored(n.Label, n.Pos.X, n.Pos.Y+n.Radius+10, 0.5, 0.5)
		} else {
			dc.SetHexColor(hexMuted)
			dc.DrawStringAnchored(n.Label, n.Pos.X, n.Pos.Y-n.Radius-6, 0.5, 0.5)
		}
	}

	drawLegendPNG(dc, snap, height)

	return dc.EncodePNG(w)
}

func drawLegendPNG(dc *gg.Context, snap graph.Snapshot, height int) {
	y := float64(height) - 18

	dc.SetHexColor(hexRelation)
	dc.SetLineWidth(2)
	dc.DrawLine(16, y, 44, y)
	dc.Stroke()
	dc.SetHexColor(hexMuted)
	dc.DrawStringAnchored("relation", 52, y, 0, 0.5)

	dc.SetHexColor(hexOwnership)
	dc.SetLineWidth(1)
	dc.DrawLine(130, y, 158, y)
	dc.Stroke()
	dc.SetHexColor(hexMuted)
	dc.DrawStringAnchored("ownership", 166, y, 0, 0.5)

	entities, properties := countKinds(snap)
	dc.DrawStringAnchored(fmt.Sprintf("%d entities, %d properties", entities, properties), 280, y, 0, 0.5)
}
