package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"confparser/internal/facade"
)

func sampleTree() facade.Node {
	return facade.Node{
		Name: "",
		Kind: facade.KindScope,
		Children: []facade.Node{
			{Name: "x", Kind: facade.KindInstance, TypeName: "int", PayloadKind: "int", IntValue: 5},
			{
				Name: "Shape",
				Kind: facade.KindType,
				Children: []facade.Node{
					{Name: "sides", Kind: facade.KindInstance, TypeName: "int", PayloadKind: "int", IntValue: 4},
				},
			},
		},
	}
}

func TestNewTreeModelStartsWithOnlyRootExpanded(t *testing.T) {
	m := NewTreeModel(sampleTree())
	if len(m.rows) != 1 {
		t.Fatalf("expected only the root row before any expansion, got %d rows", len(m.rows))
	}
	if !m.rows[0].hasKids {
		t.Fatalf("expected root to report children")
	}
}

func TestEnterExpandsAndCollapsesRoot(t *testing.T) {
	m := NewTreeModel(sampleTree())
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.rows) != 3 {
		t.Fatalf("expected root + 2 children visible after expanding, got %d", len(m.rows))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.rows) != 1 {
		t.Fatalf("expected collapsing root to hide children again, got %d rows", len(m.rows))
	}
}

func TestCursorMovementStaysInBounds(t *testing.T) {
	m := NewTreeModel(sampleTree())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor should not move above 0, got %d", m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Fatalf("expected cursor to stay at 0 with only one visible row, got %d", m.cursor)
	}
}

func TestQuitReturnsTeaQuitCmd(t *testing.T) {
	m := NewTreeModel(sampleTree())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected a non-nil Cmd for 'q'")
	}
}

func TestViewportFollowsCursorPastBottomOfWindow(t *testing.T) {
	children := make([]facade.Node, 0, 10)
	for i := 0; i < 10; i++ {
		children = append(children, facade.Node{Name: "f" + string(rune('a'+i)), Kind: facade.KindInstance, TypeName: "int", PayloadKind: "int", IntValue: int64(i)})
	}
	root := facade.Node{Name: "", Kind: facade.KindScope, Children: children}

	m := NewTreeModel(root)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // expand root: 11 rows now
	m.viewport.Height = 3

	for i := 0; i < 9; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.viewport.YOffset == 0 {
		t.Fatalf("expected the viewport to scroll down as the cursor passed the initial window")
	}
	if m.cursor < m.viewport.YOffset || m.cursor > m.viewport.YOffset+m.viewport.Height-1 {
		t.Fatalf("expected cursor %d to stay within the visible window [%d,%d]", m.cursor, m.viewport.YOffset, m.viewport.YOffset+m.viewport.Height-1)
	}
}

func TestViewRendersInstancePayload(t *testing.T) {
	m := NewTreeModel(sampleTree())
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	out := m.View()
	if !strings.Contains(out, "x") || !strings.Contains(out, "= 5") {
		t.Fatalf("expected view to show instance x's payload, got:\n%s", out)
	}
}
