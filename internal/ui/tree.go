// Package ui renders a facade.Node snapshot as an interactive,
// collapsible tree (SPEC_FULL.md §14's "confparser inspect"), following
// the teacher's pattern of one small, message-driven tea.Model per CLI
// subcommand.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"confparser/internal/facade"
)

// row is one visible line of the flattened tree: a node plus the depth
// and expand state it's currently rendered at.
type row struct {
	node     facade.Node
	key      string
	depth    int
	hasKids  bool
	expanded bool
}

// TreeModel is a read-only Bubble Tea program over a facade.Node
// snapshot: cursor up/down moves the selection, enter toggles a Scope or
// Type's children, q/ctrl+c quits. Scrolling the flattened row list is
// delegated to a bubbles/viewport.Model; TreeModel only owns cursor
// position and keeps the viewport's visible window following it.
type TreeModel struct {
	root     facade.Node
	expanded map[string]bool // keyed by the row's path, not its name alone
	rows     []row
	cursor   int
	viewport viewport.Model
}

// NewTreeModel builds a browser over root, initially collapsed except
// for root itself.
func NewTreeModel(root facade.Node) *TreeModel {
	m := &TreeModel{
		root:     root,
		expanded: map[string]bool{"": true},
		viewport: viewport.New(80, 20),
	}
	m.rebuild()
	return m
}

func (m *TreeModel) Init() tea.Cmd { return nil }

func (m *TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		if msg.Height > 2 {
			m.viewport.Height = msg.Height - 2
		}
		m.syncViewport()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.syncViewport()
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			m.syncViewport()
		case "enter", " ":
			m.toggleCursor()
		}
	}
	return m, nil
}

func (m *TreeModel) View() string {
	if len(m.rows) == 0 {
		return "(empty scope)\n"
	}
	m.viewport.SetContent(m.renderRows())
	return m.viewport.View() + "\n\n(up/down move, enter toggles, q quits)\n"
}

func (m *TreeModel) renderRows() string {
	nameStyle := lipgloss.NewStyle()
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	payloadStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	var b strings.Builder
	for i, r := range m.rows {
		marker := "  "
		if r.hasKids {
			if r.expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := fmt.Sprintf("%s%s%s", strings.Repeat("  ", r.depth), marker, r.node.Name)
		line = nameStyle.Render(line) + " " + kindStyle.Render(string(r.node.Kind))
		if payload := payloadSummary(r.node); payload != "" {
			line += " " + payloadStyle.Render(payload)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i != len(m.rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func payloadSummary(n facade.Node) string {
	switch n.PayloadKind {
	case "string":
		return fmt.Sprintf("= %q", n.StringValue)
	case "int":
		return fmt.Sprintf("= %d", n.IntValue)
	case "float":
		return fmt.Sprintf("= %g", n.FloatValue)
	default:
		if n.TypeName != "" {
			return fmt.Sprintf(": %s", n.TypeName)
		}
		return ""
	}
}

// syncViewport scrolls the viewport by the minimum amount needed to bring
// the cursor row back into its visible window, replacing the hand-rolled
// start/end clamping this model used before it carried a real viewport.
func (m *TreeModel) syncViewport() {
	if m.viewport.Height <= 0 {
		return
	}
	// The viewport clamps YOffset to its content, so load the rows first.
	m.viewport.SetContent(m.renderRows())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
		return
	}
	if bottom := m.viewport.YOffset + m.viewport.Height - 1; m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *TreeModel) toggleCursor() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if !r.hasKids {
		return
	}
	m.expanded[r.key] = !r.expanded
	m.rebuild()
}

func (m *TreeModel) rebuild() {
	m.rows = nil
	m.flatten(m.root, 0, "")
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// flatten appends n's visible rows, keyed by key (its own expand-state
// key; "" for root, parentKey+"/"+name for everything under it).
func (m *TreeModel) flatten(n facade.Node, depth int, key string) {
	expanded := m.expanded[key]
	m.rows = append(m.rows, row{node: n, key: key, depth: depth, hasKids: len(n.Children) > 0, expanded: expanded})
	if !expanded {
		return
	}
	for _, c := range n.Children {
		m.flatten(c, depth+1, key+"/"+c.Name)
	}
}
