package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gravitrone/orrery/internal/graph"
	"github.com/gravitrone/orrery/internal/render"
	"github.com/gravitrone/orrery/internal/schema"
	"github.com/gravitrone/orrery/internal/ui/components"
)

// One terminal cell covers a 10x20 slice of world space, so circles in the
// roughly 2:1-tall cell grid keep their shape on screen.
const (
	cellWidth  = 10.0
	cellHeight = 20.0

	panStep = 20.0
)

// navSignal carries the controller's navigate callback out to the update
// loop. Models are copied by value, so the callback writes through a
// pointer that every copy shares.
type navSignal struct{ id string }

// GraphModel owns the live graph: simulation stepping, pointer gestures,
// the search filter, and the entity detail panel.
type GraphModel struct {
	ws     *schema.Workspace
	logger *log.Logger

	eng  *graph.Engine
	ctl  *graph.Controller
	view *graph.View
	snap graph.Snapshot
	nav  *navSignal

	width  int // canvas cells
	height int
	top    int // screen rows above the canvas

	showProps bool
	seed      int64

	searching bool
	search    textinput.Model
	visible   map[string]bool

	detailID      string
	detailList    *components.List
	detailRows    [][]string
	detailTargets []string
}

// NewGraphModel builds the initial graph and simulation for a workspace.
func NewGraphModel(ws *schema.Workspace, showProps bool, seed int64, logger *log.Logger) GraphModel {
	input := textinput.New()
	input.Placeholder = "filter nodes"
	input.Prompt = "/ "
	input.CharLimit = 64
	input.Width = 32

	m := GraphModel{
		ws:        ws,
		logger:    logger,
		view:      graph.NewView(),
		nav:       &navSignal{},
		width:     80,
		height:    24,
		top:       1,
		showProps: showProps,
		seed:      seed,
		search:    input,
	}
	m.rebuild()
	return m
}

// rebuild constructs a fresh graph and engine from the current workspace.
// The view transform and search query survive; pins and per-node state do
// not, since the node set is rebuilt wholesale.
func (m *GraphModel) rebuild() {
	g := graph.Build(m.ws, graph.Options{
		ShowProperties: m.showProps,
		Width:          m.worldWidth(),
		Height:         m.worldHeight(),
		Seed:           m.seed,
	})
	m.eng = graph.NewEngine(g, m.worldWidth(), m.worldHeight())
	m.ctl = graph.NewController(m.eng, m.view)
	m.ctl.HitSlack = cellWidth / 2
	nav := m.nav
	m.ctl.OnNavigate(func(entityID string) { nav.id = entityID })
	m.snap = m.eng.Snapshot()
	m.recomputeFilter()
	if m.logger != nil {
		entities, properties := g.Counts()
		m.logger.Debug("graph rebuilt", "entities", entities, "properties", properties)
	}
	if m.detailID != "" && m.ws.Entity(m.detailID) == nil {
		m.closeDetail()
	}
}

func (m *GraphModel) replaceWorkspace(ws *schema.Workspace) {
	m.ws = ws
	m.rebuild()
}

func (m *GraphModel) setSize(wCells, hCells int) {
	if wCells < 20 {
		wCells = 20
	}
	if hCells < 5 {
		hCells = 5
	}
	m.width = wCells
	m.height = hCells
	if m.eng != nil {
		m.eng.SetDims(m.worldWidth(), m.worldHeight())
		m.snap = m.eng.Snapshot()
	}
	m.search.Width = minInt(48, maxInt(16, wCells-8))
}

func (m GraphModel) worldWidth() float64  { return float64(m.width) * cellWidth }
func (m GraphModel) worldHeight() float64 { return float64(m.height) * cellHeight }

func (m *GraphModel) recomputeFilter() {
	m.visible = graph.Filter(m.snap.Nodes, m.search.Value())
}

func (m GraphModel) filterActive() bool { return m.search.Value() != "" }

// Searching reports whether the search input currently owns the keyboard.
func (m GraphModel) Searching() bool { return m.searching }

// DetailOpen reports whether the detail panel replaces the canvas.
func (m GraphModel) DetailOpen() bool { return m.detailID != "" }

func (m GraphModel) Update(msg tea.Msg) (GraphModel, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.eng.Step()
		m.snap = m.eng.Snapshot()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.detailID != "" {
			return m.updateDetail(msg)
		}
		return m.updateCanvasKeys(msg)

	case tea.MouseMsg:
		if m.detailID != "" {
			// A double press can open the detail panel mid-gesture; the
			// matching release still has to end the drag.
			if msg.Action == tea.MouseActionRelease {
				m.ctl.Cancel()
			}
			return m, nil
		}
		return m.updateMouse(msg)
	}

	if m.searching {
		// Cursor blink and other input-internal messages.
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GraphModel) updateCanvasKeys(msg tea.KeyMsg) (GraphModel, tea.Cmd) {
	switch {
	case isKey(msg, "/"):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case isLeft(msg):
		m.view.Pan(graph.Vec{X: panStep})
	case isRight(msg):
		m.view.Pan(graph.Vec{X: -panStep})
	case isUp(msg):
		m.view.Pan(graph.Vec{Y: panStep})
	case isDown(msg):
		m.view.Pan(graph.Vec{Y: -panStep})
	case isZoomIn(msg):
		m.view.ZoomStep(m.canvasCenter(), true)
	case isZoomOut(msg):
		m.view.ZoomStep(m.canvasCenter(), false)
	case isKey(msg, "r"):
		m.ctl.Reset()
		return m, toastCmd("info", "View reset; pins released.")
	case isKey(msg, "o"):
		m.showProps = !m.showProps
		m.rebuild()
		if m.showProps {
			return m, toastCmd("info", "Properties shown.")
		}
		return m, toastCmd("info", "Properties hidden.")
	case isKey(msg, "p"):
		if sel := m.ctl.Selected(); sel != "" {
			if m.eng.TogglePin(sel) {
				return m, toastCmd("info", "Node pinned.")
			}
			return m, toastCmd("info", "Node released.")
		}
	case isKey(msg, "s"):
		return m, m.exportPNGCmd()
	case isEnter(msg):
		m.ctl.NavigateSelected()
		m.consumeNavigate()
	case isBack(msg):
		if m.filterActive() {
			m.search.SetValue("")
			m.recomputeFilter()
		} else {
			m.ctl.Deselect()
		}
	}
	return m, nil
}

func (m GraphModel) updateSearch(msg tea.KeyMsg) (GraphModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.recomputeFilter()
		return m, nil
	case isEnter(msg):
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.recomputeFilter()
	return m, cmd
}

func (m GraphModel) updateDetail(msg tea.KeyMsg) (GraphModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.closeDetail()
	case isUp(msg):
		if m.detailList != nil {
			m.detailList.Up()
		}
	case isDown(msg):
		if m.detailList != nil {
			m.detailList.Down()
		}
	case isEnter(msg):
		if m.detailList == nil {
			return m, nil
		}
		idx := m.detailList.Selected()
		if idx >= 0 && idx < len(m.detailTargets) && m.detailTargets[idx] != "" {
			target := m.detailTargets[idx]
			m.openDetail(target)
			m.ctl.Deselect()
			m.ctl.Select(target)
		}
	}
	return m, nil
}

func (m GraphModel) updateMouse(msg tea.MouseMsg) (GraphModel, tea.Cmd) {
	at, inside := m.pointerAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if inside {
				m.ctl.PointerDown(at, time.Now())
				m.consumeNavigate()
			}
		case tea.MouseButtonWheelUp:
			if inside {
				m.ctl.Wheel(at, true)
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.ctl.Wheel(at, false)
			}
		}
	case tea.MouseActionMotion:
		// Clamp so a drag that leaves the canvas keeps tracking the edge.
		m.ctl.PointerMove(m.clampPointer(msg.X, msg.Y))
		if inside {
			m.ctl.Hover(at)
		}
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			m.ctl.PointerUp(m.clampPointer(msg.X, msg.Y))
		}
	}

	m.snap = m.eng.Snapshot()
	return m, nil
}

// pointerAt maps a terminal cell position to canvas pixel space, reporting
// whether it falls inside the canvas.
func (m GraphModel) pointerAt(x, y int) (graph.Vec, bool) {
	cy := y - m.top
	inside := x >= 0 && x < m.width && cy >= 0 && cy < m.height
	return graph.Vec{
		X: (float64(x) + 0.5) * cellWidth,
		Y: (float64(cy) + 0.5) * cellHeight,
	}, inside
}

func (m GraphModel) clampPointer(x, y int) graph.Vec {
	at, _ := m.pointerAt(x, y)
	return graph.Vec{
		X: clampFloat(at.X, 0, m.worldWidth()),
		Y: clampFloat(at.Y, 0, m.worldHeight()),
	}
}

func (m GraphModel) canvasCenter() graph.Vec {
	return graph.Vec{X: m.worldWidth() / 2, Y: m.worldHeight() / 2}
}

// consumeNavigate applies a navigation fired by the controller callback.
func (m *GraphModel) consumeNavigate() {
	if m.nav.id == "" {
		return
	}
	m.openDetail(m.nav.id)
	m.nav.id = ""
}

func (m *GraphModel) openDetail(entityID string) {
	ent := m.ws.Entity(entityID)
	if ent == nil {
		return
	}
	m.detailID = entityID

	names := make([]string, 0, len(ent.Properties))
	rows := make([][]string, 0, len(ent.Properties))
	targets := make([]string, 0, len(ent.Properties))
	for _, p := range ent.Properties {
		link := ""
		target := ""
		if p.Type == schema.TypeRelation && p.RelatedEntityID != "" {
			// A dangling target stays visible as the raw id, with no navigation.
			link = p.RelatedEntityID
			if rel := m.ws.Entity(p.RelatedEntityID); rel != nil {
				link = rel.Name
				target = rel.ID
			}
		}
		names = append(names, p.Name)
		rows = append(rows, []string{p.Name, p.Type, link})
		targets = append(targets, target)
	}
	list := components.NewList(12)
	list.SetItems(names)
	m.detailList = list
	m.detailRows = rows
	m.detailTargets = targets
}

func (m *GraphModel) closeDetail() {
	m.detailID = ""
	m.detailList = nil
	m.detailRows = nil
	m.detailTargets = nil
}

func (m GraphModel) exportPNGCmd() tea.Cmd {
	snap := m.snap
	opts := render.Options{Width: int(m.worldWidth()), Height: int(m.worldHeight())}
	return func() tea.Msg {
		name := fmt.Sprintf("orrery-%s.png", time.Now().Format("20060102-150405"))
		f, err := os.Create(name)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := render.PNG(snap, opts, f); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: name}
	}
}

// View renders the canvas, or the detail panel when one is open.
func (m GraphModel) View() string {
	if m.detailID != "" {
		return m.viewDetail()
	}
	return m.viewCanvas()
}

func (m GraphModel) viewCanvas() string {
	c := newCellCanvas(m.width, m.height)
	dimmed := m.filterActive()

	borderIdx := c.colorIndex(string(ColorBorder), false)
	accentIdx := c.colorIndex(string(ColorAccent), false)

	for _, e := range m.snap.Edges {
		src, ok := m.snap.Node(e.Source)
		if !ok {
			continue
		}
		dst, ok := m.snap.Node(e.Target)
		if !ok {
			continue
		}
		color := borderIdx
		if e.Kind == graph.EdgeRelation && (!dimmed || graph.EdgeVisible(e, m.visible)) {
			color = accentIdx
		}
		sx, sy := m.toCell(src.Pos)
		dx, dy := m.toCell(dst.Pos)
		c.line(sx, sy, dx, dy, color)
	}

	selected := m.ctl.Selected()
	hovered := m.ctl.Hovered()
	for _, n := range m.snap.Nodes {
		x, y := m.toCell(n.Pos)

		glyph := '•'
		if n.Kind == graph.KindEntity {
			glyph = '●'
		}
		if n.Pinned {
			glyph = '◉'
		}

		if dimmed && !m.visible[n.ID] {
			// Non-matches dim to unlabeled anchors; they still take clicks.
			c.set(x, y, glyph, borderIdx)
			continue
		}

		bold := n.ID == selected || n.ID == hovered
		hex := render.NodeHex(m.snap, n)
		if n.ID == selected {
			hex = string(ColorPrimary)
		}
		c.set(x, y, glyph, c.colorIndex(hex, bold))

		if n.Kind == graph.KindEntity {
			labelHex := string(ColorMuted)
			if n.ID == selected {
				labelHex = string(ColorText)
			}
			c.textCentered(x, y+1, components.SanitizeOneLine(n.Label), c.colorIndex(labelHex, n.ID == selected))
		} else if n.ID == selected || n.ID == hovered {
			c.textCentered(x, y-1, components.SanitizeOneLine(n.Label), c.colorIndex(string(ColorMuted), false))
		}
	}

	return c.String()
}

func (m GraphModel) viewDetail() string {
	ent := m.ws.Entity(m.detailID)
	if ent == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(components.InfoRow("Entity", ent.Name))
	b.WriteString("\n")
	b.WriteString(components.InfoRow("ID", ent.ID))
	b.WriteString("\n")
	if f := m.ws.FolderOf(ent.ID); f != nil {
		b.WriteString(components.InfoRow("Folder", f.Name))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.detailList == nil || len(m.detailRows) == 0 {
		b.WriteString(MutedStyle.Render("No properties."))
	} else {
		b.WriteString(HeaderStyle.Render(fmt.Sprintf("Properties (%d)", len(m.detailRows))))
		b.WriteString("\n")
		start := m.detailList.Offset
		end := start + m.detailList.PageSize
		if end > len(m.detailRows) {
			end = len(m.detailRows)
		}
		cols := []components.TableColumn{
			{Header: "Property", Width: 18},
			{Header: "Type", Width: 10},
			{Header: "Links to", Width: 16},
		}
		grid := components.TableGridWithActiveRow(cols, m.detailRows[start:end],
			components.BoxContentWidth(m.width), m.detailList.Selected()-start)
		b.WriteString(grid)
	}

	width := m.width
	panel := components.TitledBox(ent.Name, b.String(), width)
	body := components.Indent(panel, 1)

	// Pad to canvas height so the surrounding layout holds its shape.
	lines := strings.Count(body, "\n") + 1
	if lines < m.height {
		body += strings.Repeat("\n", m.height-lines)
	}
	return body
}

// StatusLine summarizes selection, counts, and transform state for the row
// under the canvas.
func (m GraphModel) StatusLine() string {
	parts := make([]string, 0, 6)

	if sel := m.ctl.Selected(); sel != "" {
		crumb := graph.Breadcrumb(m.eng.Graph(), sel)
		if len(crumb) > 0 {
			parts = append(parts, SelectedStyle.Render(strings.Join(crumb, " / ")))
		}
	}

	entities, properties := m.eng.Graph().Counts()
	parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d entities", entities)))
	if m.showProps {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d properties", properties)))
	}
	parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d edges", len(m.snap.Edges))))
	parts = append(parts, AccentStyle.Render(fmt.Sprintf("%d%%", int(m.view.Zoom*100+0.5))))

	if pins := m.eng.PinnedCount(); pins > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d pinned", pins)))
	}
	if m.eng.Settled() {
		parts = append(parts, MutedStyle.Render("settled"))
	} else {
		parts = append(parts, SuccessStyle.Render("live"))
	}
	if m.filterActive() {
		matches := 0
		for _, on := range m.visible {
			if on {
				matches++
			}
		}
		parts = append(parts, SearchPromptStyle.Render(fmt.Sprintf("filter: %q (%d)", m.search.Value(), matches)))
	}

	return " " + strings.Join(parts, MutedStyle.Render("  ·  "))
}

// SearchView renders the active search input row.
func (m GraphModel) SearchView() string {
	return " " + SearchPromptStyle.Render("search ") + m.search.View()
}

func (m GraphModel) toCell(world graph.Vec) (int, int) {
	screen := m.view.ToScreen(world)
	return int(screen.X / cellWidth), int(screen.Y / cellHeight)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
