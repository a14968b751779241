package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive node selection
// =============================================================================

// NodeListModel is the bubbletea model for interactive node selection.
type NodeListModel struct {
	Title    string
	IDs      []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(title string, ids []string) NodeListModel {
	return NodeListModel{
		Title:  title,
		IDs:    ids,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.IDs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.IDs[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.IDs) {
		end = len(m.IDs)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + m.IDs[i]
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.IDs))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// pickNode runs the interactive node picker and returns the chosen node ID.
// It fails when the user quits without selecting.
func pickNode(title string, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("graph has no nodes")
	}

	final, err := tea.NewProgram(NewNodeListModel(title, ids)).Run()
	if err != nil {
		return "", fmt.Errorf("node selection: %w", err)
	}

	m, ok := final.(NodeListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no node selected")
	}
	return m.Selected, nil
}
