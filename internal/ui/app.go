package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/gravitrone/orrery/internal/frame"
	"github.com/gravitrone/orrery/internal/schema"
	"github.com/gravitrone/orrery/internal/ui/components"
)

// Rows around the canvas: title above, status line below, then the hint
// bar with its border (three rows).
const reservedRows = 5

// --- Messages ---

type frameMsg struct{ tick frame.Tick }
type workspaceChangedMsg struct{}
type workspaceLoadedMsg struct {
	ws    *schema.Workspace
	warns []string
	err   error
}
type toastMsg struct{ level, text string }
type clearToastMsg struct{}
type exportDoneMsg struct {
	path string
	err  error
}

func toastCmd(level, text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{level: level, text: text} }
}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// AppOptions carry the per-run settings the command layer resolved.
type AppOptions struct {
	Path           string
	ShowProperties bool
	Seed           int64
	Watching       bool
	Warnings       []string
}

// App is the root TUI model: it owns the graph view and the chrome around
// it, pumps simulation frames from the scheduler channel, and reloads the
// workspace when the watcher signals a change.
type App struct {
	opts   AppOptions
	logger *log.Logger

	graph GraphModel

	ticks   <-chan frame.Tick
	changes <-chan struct{}

	width    int
	height   int
	helpOpen bool
	toast    *appToast
}

// NewApp creates the root application model.
func NewApp(ws *schema.Workspace, opts AppOptions, logger *log.Logger, ticks <-chan frame.Tick, changes <-chan struct{}) App {
	return App{
		opts:    opts,
		logger:  logger,
		graph:   NewGraphModel(ws, opts.ShowProperties, opts.Seed, logger),
		ticks:   ticks,
		changes: changes,
		width:   80,
		height:  24,
	}
}

func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.ticks != nil {
		cmds = append(cmds, waitForFrame(a.ticks))
	}
	if a.changes != nil {
		cmds = append(cmds, waitForChange(a.changes))
	}
	if n := len(a.opts.Warnings); n > 0 {
		cmds = append(cmds, toastCmd("warning", fmt.Sprintf("Workspace loaded with %d warnings; run the check command for details.", n)))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.graph.setSize(msg.Width, msg.Height-reservedRows)
		return a, nil

	case frameMsg:
		var cmd tea.Cmd
		a.graph, cmd = a.graph.Update(msg)
		if a.ticks != nil {
			cmd = batchCmds(cmd, waitForFrame(a.ticks))
		}
		return a, cmd

	case workspaceChangedMsg:
		cmd := loadWorkspaceCmd(a.opts.Path)
		if a.changes != nil {
			cmd = batchCmds(cmd, waitForChange(a.changes))
		}
		return a, cmd

	case workspaceLoadedMsg:
		if msg.err != nil {
			// Keep showing the previous graph; mid-save files often fail
			// to parse for a moment.
			if a.logger != nil {
				a.logger.Warn("workspace reload failed", "err", msg.err)
			}
			return a, a.setToast("error", fmt.Sprintf("Reload failed: %v", msg.err))
		}
		a.graph.replaceWorkspace(msg.ws)
		if a.logger != nil {
			for _, w := range msg.warns {
				a.logger.Warn("workspace warning", "detail", w)
			}
		}
		entities := len(msg.ws.Entities)
		return a, a.setToast("success", fmt.Sprintf("Workspace reloaded (%d entities).", entities))

	case toastMsg:
		return a, a.setToast(msg.level, msg.text)

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			if a.logger != nil {
				a.logger.Error("snapshot export failed", "err", msg.err)
			}
			return a, a.setToast("error", fmt.Sprintf("Snapshot failed: %v", msg.err))
		}
		return a, a.setToast("success", "Saved "+msg.path)

	case tea.KeyMsg:
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.graph.Searching() {
			if isKey(msg, "ctrl+c") {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.graph, cmd = a.graph.Update(msg)
			return a, cmd
		}
		if isQuit(msg) {
			return a, tea.Quit
		}
		if isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		var cmd tea.Cmd
		a.graph, cmd = a.graph.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.helpOpen {
			return a, nil
		}
		var cmd tea.Cmd
		a.graph, cmd = a.graph.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.graph, cmd = a.graph.Update(msg)
	return a, cmd
}

func (a App) View() string {
	content := a.graph.View()
	if a.helpOpen {
		content = a.renderHelp()
		if lines := strings.Count(content, "\n") + 1; lines < a.height-reservedRows {
			content += strings.Repeat("\n", a.height-reservedRows-lines)
		}
	}

	bottom := components.StatusBar(a.statusHints(), a.width)
	if a.graph.Searching() {
		bottom = "\n" + a.graph.SearchView()
	} else if a.toast != nil {
		bottom = "\n" + a.renderToast()
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", a.renderTitle(), content, a.graph.StatusLine(), bottom)
}

func (a App) renderTitle() string {
	title := TitleStyle.Render(" orrery")
	file := ""
	if a.opts.Path != "" {
		file = TitleAccentStyle.Render("  " + filepath.Base(a.opts.Path))
	}
	watch := ""
	if a.opts.Watching {
		watch = SuccessStyle.Render("  watching")
	}
	return title + file + watch
}

func (a App) statusHints() []string {
	if a.graph.DetailOpen() {
		return []string{
			components.Hint("↑/↓", "Rows"),
			components.Hint("enter", "Follow"),
			components.Hint("esc", "Back"),
			components.Hint("q", "Quit"),
		}
	}
	return []string{
		components.Hint("drag", "Move/Pan"),
		components.Hint("wheel", "Zoom"),
		components.Hint("/", "Search"),
		components.Hint("enter", "Open"),
		components.Hint("p", "Pin"),
		components.Hint("o", "Properties"),
		components.Hint("s", "Snapshot"),
		components.Hint("r", "Reset"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
}

func (a App) renderHelp() string {
	rows := []string{
		MutedStyle.Render("esc to close"),
		"",
		"  " + components.Hint("arrows", "Pan the view"),
		"  " + components.Hint("+/-", "Zoom at center"),
		"  " + components.Hint("wheel", "Zoom at cursor"),
		"  " + components.Hint("drag node", "Move it (pins on release)"),
		"  " + components.Hint("drag canvas", "Pan"),
		"  " + components.Hint("double-click", "Open entity detail"),
		"  " + components.Hint("enter", "Open selected entity"),
		"  " + components.Hint("p", "Pin/unpin selected node"),
		"  " + components.Hint("o", "Toggle property orbits"),
		"  " + components.Hint("/", "Filter nodes by name"),
		"  " + components.Hint("s", "Save a PNG snapshot"),
		"  " + components.Hint("r", "Reset view and pins"),
		"  " + components.Hint("q", "Quit"),
	}
	box := components.TitledBox("Help", strings.Join(rows, "\n"), a.width)
	return centerBlockUniform(components.Indent(box, 1), a.width)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	switch a.toast.level {
	case "success":
		return " " + SuccessStyle.Render(a.toast.text)
	case "warning":
		return " " + WarningStyle.Render(a.toast.text)
	case "error":
		return " " + ErrorStyle.Render(a.toast.text)
	}
	return " " + MutedStyle.Render(a.toast.text)
}

// --- Commands ---

func waitForFrame(ch <-chan frame.Tick) tea.Cmd {
	return func() tea.Msg {
		tick, ok := <-ch
		if !ok {
			return nil
		}
		return frameMsg{tick: tick}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return workspaceChangedMsg{}
	}
}

func loadWorkspaceCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ws, warns, err := schema.Load(path)
		return workspaceLoadedMsg{ws: ws, warns: warns, err: err}
	}
}

func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return tea.Batch(filtered...)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
