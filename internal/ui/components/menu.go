package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled entries are shown dimmed and
// skipped by the cursor.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical numbered menu. Items are picked with the arrows and
// Enter or by typing their number.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func menuCursor() lipgloss.Style { return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true) }
func menuItem() lipgloss.Style   { return lipgloss.NewStyle().Foreground(theme.Text) }

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves the cursor to the next enabled item in direction dir,
// staying put when there is none.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := k.String(); s {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.activate(m.Selected)
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	if it := m.Items[i]; !it.Disabled && it.Action != nil {
		return it.Action()
	}
	return nil
}

// View renders one line per item with a cursor on the selected one.
func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		label := fmt.Sprintf("[%d] %s", i+1, it.Label)
		switch {
		case it.Disabled:
			b.WriteString(theme.Dim.Render("    " + label))
		case i == m.Selected:
			b.WriteString(menuCursor().Render("  ▸ " + label))
		default:
			b.WriteString(menuItem().Render("    " + label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
