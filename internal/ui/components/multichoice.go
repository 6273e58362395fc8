package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Options can be picked with
// the arrows and Enter or directly with their number.
type MultiChoice struct {
	Options  []string
	Details  []string // shown under each option once the answer is revealed
	Selected int
	chosen   int
	correct  int
}

// NewMultiChoice creates a selector with nothing chosen.
func NewMultiChoice(options, details []string) MultiChoice {
	return MultiChoice{
		Options: options,
		Details: details,
		chosen:  -1,
		correct: -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.chosen >= 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.chosen = m.Selected
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.chosen = m.Selected
		}
	}
	return m, nil
}

// Chosen returns the picked option index.
func (m MultiChoice) Chosen() (int, bool) {
	return m.chosen, m.chosen >= 0
}

// Reveal marks the correct option. -1 leaves all options neutral.
func (m *MultiChoice) Reveal(correct int) {
	m.correct = correct
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.chosen < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.chosen >= 0 && i == m.correct:
			style = style.Foreground(theme.Success).Bold(true)
		case m.chosen >= 0 && i == m.chosen:
			style = style.Foreground(theme.Error).Bold(true)
		case m.chosen >= 0:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"

		if m.chosen >= 0 && i < len(m.Details) && m.Details[i] != "" {
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("       "+m.Details[i]) + "\n"
		}
	}
	return s
}
