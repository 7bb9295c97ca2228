package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/orrery/internal/graph"
)

// The 100x30 test window builds the graph in an 800x480 world, so the first
// entity sits at (430, 240): canvas cell (43, 12), screen row 13 under the
// title row.
const (
	e1CellX = 43
	e1CellY = 13
)

func mouse(t *testing.T, app App, msg tea.MouseMsg) App {
	t.Helper()
	model, _ := app.Update(msg)
	return model.(App)
}

func TestMouseClickSelectsNode(t *testing.T) {
	app := newTestApp(t)

	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Equal(t, "e1", app.graph.ctl.Selected())
}

func TestMouseClickEmptyCanvasClearsSelection(t *testing.T) {
	app := newTestApp(t)
	app.graph.ctl.Select("e1")

	app = mouse(t, app, tea.MouseMsg{X: 80, Y: 21, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: 80, Y: 21, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Empty(t, app.graph.ctl.Selected())
}

func TestMouseDragMovesAndPinsNode(t *testing.T) {
	app := newTestApp(t)

	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, app.graph.ctl.Dragging())

	app = mouse(t, app, tea.MouseMsg{X: e1CellX + 10, Y: e1CellY, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: e1CellX + 10, Y: e1CellY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	n, ok := app.graph.snap.Node("e1")
	require.True(t, ok)
	assert.InDelta(t, 530.0, n.Pos.X, 1e-9)
	assert.InDelta(t, 240.0, n.Pos.Y, 1e-9)
	assert.True(t, n.Pinned)
	// A real drag is not a click, so nothing got selected.
	assert.Empty(t, app.graph.ctl.Selected())
}

func TestMouseDragCarriesOrbitingProperties(t *testing.T) {
	app := newTestApp(t)
	prop, ok := app.graph.snap.Node("prop-e1-email")
	require.True(t, ok)
	ent, _ := app.graph.snap.Node("e1")
	offX := prop.Pos.X - ent.Pos.X
	offY := prop.Pos.Y - ent.Pos.Y

	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: e1CellX + 10, Y: e1CellY + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: e1CellX + 10, Y: e1CellY + 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	ent, _ = app.graph.snap.Node("e1")
	prop, _ = app.graph.snap.Node("prop-e1-email")
	assert.InDelta(t, offX, prop.Pos.X-ent.Pos.X, 1e-9)
	assert.InDelta(t, offY, prop.Pos.Y-ent.Pos.Y, 1e-9)
}

func TestMouseDoubleClickOpensDetail(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	}

	assert.True(t, app.graph.DetailOpen())
	assert.Equal(t, "e1", app.graph.detailID)
}

func TestMouseWheelZoomsAnchoredAtCursor(t *testing.T) {
	app := newTestApp(t)

	before := app.graph.view.ToScreen(graph.Vec{X: 430, Y: 240})
	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})

	assert.InDelta(t, 1.05, app.graph.view.Zoom, 1e-9)
	// The zoom anchor sits on the node, so its screen position barely moves.
	after := app.graph.view.ToScreen(graph.Vec{X: 430, Y: 240})
	assert.InDelta(t, before.X, after.X, cellWidth)
	assert.InDelta(t, before.Y, after.Y, cellHeight)
}

func TestMousePanDragsEmptyCanvas(t *testing.T) {
	app := newTestApp(t)

	app = mouse(t, app, tea.MouseMsg{X: 80, Y: 21, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: 84, Y: 19, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	app = mouse(t, app, tea.MouseMsg{X: 84, Y: 19, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.InDelta(t, 40.0, app.graph.view.Offset.X, 1e-9)
	assert.InDelta(t, -40.0, app.graph.view.Offset.Y, 1e-9)
}

func TestMouseOutsideCanvasIsIgnoredForPress(t *testing.T) {
	app := newTestApp(t)

	// Title row press lands outside the canvas.
	app = mouse(t, app, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, app.graph.ctl.Dragging())

	before := app.graph.view.Zoom
	app = mouse(t, app, tea.MouseMsg{X: 10, Y: 29, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, before, app.graph.view.Zoom)
}

func TestMouseHoverAgitatesNeighborsOnce(t *testing.T) {
	app := newTestApp(t)

	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.Equal(t, "e1", app.graph.ctl.Hovered())

	// The agitation impulse lands on nodes near the hovered one, not on the
	// hovered node itself. The second entity spawns ~89 world units away.
	n, ok := app.graph.eng.Snapshot().Node("e2")
	require.True(t, ok)
	kick := n.Vel.X*n.Vel.X + n.Vel.Y*n.Vel.Y
	assert.Greater(t, kick, 0.0)

	// Hovering in place adds no further impulse.
	app = mouse(t, app, tea.MouseMsg{X: e1CellX, Y: e1CellY, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	again, _ := app.graph.eng.Snapshot().Node("e2")
	assert.Equal(t, n.Vel, again.Vel)
}
