// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     treeview
// Description: Main Bubbletea model for the interactive AST tree
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package treeview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/msto63/astview/foundation/ast"
	"github.com/msto63/astview/foundation/utils/stringx"
	"github.com/msto63/astview/internal/outline"
	"github.com/msto63/astview/internal/source"
	"github.com/msto63/astview/pkg/core/logging"
)

// Config holds tree viewer configuration
type Config struct {
	Source       string // AST document path; empty selects the demo tree
	Title        string
	PollInterval time.Duration
	Color        bool
	Logger       *logging.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Title:        "AST",
		PollInterval: time.Second,
		Color:        true,
	}
}

// line is one visible row of the flattened tree
type line struct {
	path   string
	key    string
	entry  *outline.Entry
	depth  int
	parent int
}

// Model is the main Bubbletea model for the tree viewer
type Model struct {
	// State
	width  int
	height int
	ready  bool
	err    error

	// Components
	viewport viewport.Model

	// Tree state
	root     *outline.Entry
	lines    []line
	cursor   int
	expanded map[string]bool
	stamp    source.Stamp

	// Configuration
	config Config
	logger *logging.Logger
}

// New creates a tree viewer model and loads the source
func New(cfg Config) Model {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}

	m := Model{
		expanded: map[string]bool{"": true},
		config:   cfg,
		logger:   logging.OrDiscard(cfg.Logger).Named("tui"),
	}
	m.apply(m.load())
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.config.Source == "" {
		return nil
	}
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Title panel
		footerHeight := 4 // Panel border + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case treeLoadedMsg:
		m.apply(msg)
		m.updateViewportContent()

	case tickMsg:
		if stamp, err := source.Stat(m.config.Source); err == nil && stamp.Changed(m.stamp) {
			cmds = append(cmds, m.reload)
		}
		cmds = append(cmds, m.tick())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.moveTo(m.cursor - 1)

	case "down", "j":
		m.moveTo(m.cursor + 1)

	case "g", "home":
		m.moveTo(0)

	case "G", "end":
		m.moveTo(len(m.lines) - 1)

	case "enter", " ":
		if l, ok := m.current(); ok && !l.entry.Leaf {
			m.expanded[l.path] = !m.expanded[l.path]
			m.rebuild()
		}

	case "right", "l":
		if l, ok := m.current(); ok && !l.entry.Leaf && !m.expanded[l.path] {
			m.expanded[l.path] = true
			m.rebuild()
		}

	case "left", "h":
		l, ok := m.current()
		if !ok {
			break
		}
		if !l.entry.Leaf && m.expanded[l.path] {
			m.expanded[l.path] = false
			m.rebuild()
		} else if l.parent >= 0 {
			m.moveTo(l.parent)
		}

	case "e":
		m.expandAll("", m.root)
		m.rebuild()

	case "c":
		m.expanded = map[string]bool{"": true}
		m.cursor = 0
		m.rebuild()

	case "r":
		return m, m.reload

	default:
		return m, nil
	}

	m.updateViewportContent()
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Baum..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(TreePanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderHeader renders the title panel
func (m Model) renderHeader() string {
	name := m.config.Source
	if name == "" {
		name = source.DemoName
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		SectionStyle.Render(Logo),
		strings.Repeat(" ", 3),
		LeafStyle.Render(stringx.FirstNonBlank(m.config.Title, DefaultConfig().Title)),
		strings.Repeat(" ", 3),
		HelpDescStyle.Render(name),
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderStatusBar renders counts and the last load error
func (m Model) renderStatusBar() string {
	sections, leaves := outline.Count(m.root)
	left := HelpDescStyle.Render(fmt.Sprintf("Sektionen: %d  Blätter: %d  Zeile %d/%d",
		sections, leaves, m.cursor+1, len(m.lines)))

	var right string
	if m.err != nil {
		right = StatusErrorStyle.Render(stringx.Truncate(stringx.SingleLine(m.err.Error()), m.width/2, "..."))
	} else {
		right = StatusOKStyle.Render("OK")
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 2 {
		padding = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", padding) + right)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("↑/↓", "Bewegen"),
		RenderKeyHint("Enter", "Auf/Zu"),
		RenderKeyHint("←/→", "Zu/Auf"),
		RenderKeyHint("e/c", "Alle auf/zu"),
		RenderKeyHint("r", "Neu laden"),
		RenderKeyHint("g/G", "Anfang/Ende"),
		RenderKeyHint("q", "Beenden"),
	}
	return strings.Join(items, "  ")
}

// updateViewportContent renders the visible lines and keeps the cursor in view
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	rendered := make([]string, len(m.lines))
	for i := range m.lines {
		rendered[i] = m.renderLine(i)
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) renderLine(i int) string {
	l := m.lines[i]

	marker := MarkerLeaf
	if !l.entry.Leaf {
		marker = MarkerCollapsed
		if m.expanded[l.path] {
			marker = MarkerExpanded
		}
	}

	prefix := stringx.Indent(l.depth) + marker
	if l.key != "" {
		prefix += l.key + ": "
	}

	label := stringx.SingleLine(l.entry.Label)
	if room := m.viewport.Width - lipgloss.Width(prefix); room > 0 {
		label = stringx.Truncate(label, room, "...")
	}

	style := LeafStyle
	if !l.entry.Leaf {
		style = SectionStyle
	}
	text := stringx.Indent(l.depth) + MarkerStyle.Render(marker)
	if l.key != "" {
		text += KeyStyle.Render(l.key + ": ")
	}
	text += style.Render(label)

	if i == m.cursor {
		return CursorStyle.Render(text)
	}
	return text
}

// load reads the configured source into an outline
func (m Model) load() tea.Msg {
	if m.config.Source == "" {
		return treeLoadedMsg{root: outline.Build(source.Demo())}
	}

	stamp, _ := source.Stat(m.config.Source)
	tree, err := source.Load(m.config.Source)
	if err != nil {
		m.logger.WarnErr("Failed to load source", err, "path", m.config.Source)
		return treeLoadedMsg{stamp: stamp, err: err}
	}
	for _, verr := range ast.Validate(tree) {
		m.logger.WarnErr("AST validation", verr)
	}
	return treeLoadedMsg{root: outline.Build(tree), stamp: stamp}
}

// reload is the command form of load
func (m Model) reload() tea.Msg {
	return m.load()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.config.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// apply takes over a load result; a failed load keeps the previous tree
func (m *Model) apply(msg tea.Msg) {
	loaded, ok := msg.(treeLoadedMsg)
	if !ok {
		return
	}
	m.stamp = loaded.stamp
	m.err = loaded.err
	if loaded.err == nil {
		m.root = loaded.root
	}
	m.rebuild()
}

// rebuild flattens the expanded part of the tree and clamps the cursor
func (m *Model) rebuild() {
	m.lines = nil
	if m.root != nil {
		m.flatten(m.root, "", "", 0, -1)
	}
	m.moveTo(m.cursor)
}

func (m *Model) flatten(e *outline.Entry, path, key string, depth, parent int) {
	idx := len(m.lines)
	m.lines = append(m.lines, line{path: path, key: key, entry: e, depth: depth, parent: parent})
	if e.Leaf || !m.expanded[path] {
		return
	}
	for _, r := range e.Rows {
		m.flatten(r.Entry, path+"/"+r.Key, r.Key, depth+1, idx)
	}
}

func (m *Model) expandAll(path string, e *outline.Entry) {
	if e == nil || e.Leaf {
		return
	}
	m.expanded[path] = true
	for _, r := range e.Rows {
		m.expandAll(path+"/"+r.Key, r.Entry)
	}
}

func (m *Model) moveTo(i int) {
	if i >= len(m.lines) {
		i = len(m.lines) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
}

func (m Model) current() (line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return line{}, false
	}
	return m.lines[m.cursor], true
}

// Run starts the tree viewer TUI
func Run(cfg Config) error {
	if !cfg.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
