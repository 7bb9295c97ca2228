package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/orrery/internal/graph"
	"github.com/gravitrone/orrery/internal/schema"
)

func exportWorkspace() *schema.Workspace {
	return &schema.Workspace{
		Entities: []schema.Entity{
			{ID: "e1", Name: "Customer", Properties: []schema.Property{
				{Name: "email", Type: "text"},
			}},
			{ID: "e2", Name: "Order", Properties: []schema.Property{
				{Name: "customer_id", Type: "text"},
			}},
		},
		Folders: []schema.Folder{
			{ID: "f1", Name: "Sales", Color: "#7f57b4", EntityIDs: []string{"e1", "e2"}},
		},
	}
}

func exportSnapshot(t *testing.T) graph.Snapshot {
	t.Helper()
	opts := graph.Options{ShowProperties: true, Width: 400, Height: 300}
	return Compute(exportWorkspace(), opts, 0)
}

func TestPNGWritesValidSignature(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(exportSnapshot(t), Options{Width: 400, Height: 300}, &buf)
	require.NoError(t, err)
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf.Bytes()[:8])
}

func TestSVGContainsEveryNode(t *testing.T) {
	snap := exportSnapshot(t)

	var buf bytes.Buffer
	err := SVG(snap, Options{Width: 400, Height: 300}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.GreaterOrEqual(t, strings.Count(out, "<circle"), len(snap.Nodes))
	assert.Contains(t, out, "Customer")
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "</svg>")
}

func TestComputeRunsFullSettleWindow(t *testing.T) {
	snap := exportSnapshot(t)
	assert.Equal(t, DefaultFrames, snap.Frame)
	assert.Len(t, snap.Nodes, 4)
}

func TestFolderHexPrefersExplicitColor(t *testing.T) {
	assert.Equal(t, "#3f866b", FolderHex(schema.Folder{ID: "f1", Color: "#3f866b"}))
}

func TestFolderHexFallbackIsStable(t *testing.T) {
	f := schema.Folder{ID: "warehouse"}
	first := FolderHex(f)
	assert.Contains(t, folderPalette, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FolderHex(f))
	}
}

func TestNodeHexByKindAndFolder(t *testing.T) {
	snap := exportSnapshot(t)

	ent, ok := snap.Node("e1")
	require.True(t, ok)
	assert.Equal(t, "#7f57b4", NodeHex(snap, ent))

	prop, ok := snap.Node("prop-e1-email")
	require.True(t, ok)
	assert.Equal(t, hexProperty, NodeHex(snap, prop))

	// No folder on the node falls back to the entity color.
	loose := graph.Node{ID: "x", Kind: graph.KindEntity}
	assert.Equal(t, hexEntity, NodeHex(snap, loose))
}

func TestRenderSkipsDanglingEdges(t *testing.T) {
	snap := exportSnapshot(t)
	snap.Edges = append(snap.Edges, graph.Edge{
		ID: "rel-e1-gone", Kind: graph.EdgeRelation, Source: "e1", Target: "gone",
	})

	var png bytes.Buffer
	require.NoError(t, PNG(snap, Options{Width: 200, Height: 200}, &png))

	var svgOut bytes.Buffer
	require.NoError(t, SVG(snap, Options{Width: 200, Height: 200}, &svgOut))
	assert.NotContains(t, svgOut.String(), "NaN")
}
