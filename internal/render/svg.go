package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/gravitrone/orrery/internal/graph"
)

// SVG draws a snapshot to w with the same layout rules as PNG.
func SVG(snap graph.Snapshot, opts Options, w io.Writer) error {
	width, height := opts.size()
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+hexBackground)

	for _, e := range snap.Edges {
		src, ok := snap.Node(e.Source)
		if !ok {
			continue
		}
		dst, ok := snap.Node(e.Target)
		if !ok {
			continue
		}
		style := fmt.Sprintf("stroke:%s;stroke-width:1", hexOwnership)
		if e.Kind == graph.EdgeRelation {
			style = fmt.Sprintf("stroke:%s;stroke-width:2", hexRelation)
		}
		canvas.Line(int(src.Pos.X), int(src.Pos.Y), int(dst.Pos.X), int(dst.Pos.Y), style)
	}

	for _, n := range snap.Nodes {
		canvas.Circle(int(n.Pos.X), int(n.Pos.Y), int(n.Radius), "fill:"+NodeHex(snap, n))
		if n.Pinned {
			canvas.Circle(int(n.Pos.X), int(n.Pos.Y), int(n.Radius)+2,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", hexText))
		}
	}

	for _, n := range snap.Nodes {
		fill, dy := hexText, int(n.Radius)+14
		if n.Kind == graph.KindProperty {
			fill, dy = hexMuted, -(int(n.Radius) + 6)
		}
		canvas.Text(int(n.Pos.X), int(n.Pos.Y)+dy, n.Label,
			fmt.Sprintf("fill:%s;font-family:monospace;font-size:11px;text-anchor:middle", fill))
	}

	entities, properties := countKinds(snap)
	canvas.Text(16, height-14, fmt.Sprintf("%d entities, %d properties", entities, properties),
		fmt.Sprintf("fill:%s;font-family:monospace;font-size:11px", hexMuted))

	canvas.End()
	return nil
}
