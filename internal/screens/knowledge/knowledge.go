package knowledge

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screen"
	"github.com/abhisek/lumen/internal/ui/components"
	"github.com/abhisek/lumen/internal/ui/layout"
	"github.com/abhisek/lumen/internal/ui/theme"
)

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowConcept
)

type row struct {
	kind  rowKind
	group string
	item  knowledge.Item
}

// MapScreen shows every tracked concept grouped by mastery status.
type MapScreen struct {
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*MapScreen)(nil)
var _ screen.KeyHintProvider = (*MapScreen)(nil)

// New creates a MapScreen from the tracker's current graph.
func New(t *knowledge.Tracker) *MapScreen {
	g := t.ByStatus()
	var rows []row
	for _, grp := range []struct {
		name  string
		items []knowledge.Item
	}{
		{"Needs review", g.Struggling},
		{"In progress", g.InProgress},
		{"Mastered", g.Mastered},
	} {
		if len(grp.items) == 0 {
			continue
		}
		rows = append(rows, row{kind: rowGroupHeader, group: grp.name})
		for _, it := range grp.items {
			rows = append(rows, row{kind: rowConcept, group: grp.name, item: it})
		}
	}

	s := &MapScreen{rows: rows}
	s.moveCursor(1)
	return s
}

func (s *MapScreen) Init() tea.Cmd {
	return nil
}

func (s *MapScreen) Title() string {
	return "Knowledge Map"
}

func (s *MapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *MapScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing tracked yet. Answer some questions first!")
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		if r.kind == rowGroupHeader {
			lines = append(lines, renderGroupHeader(r.group, width))
			continue
		}
		lines = append(lines, renderConcept(r.item, i == s.cursor, width))
	}
	return strings.Join(lines, "\n")
}

// moveCursor moves the cursor by delta, skipping group headers. A cursor
// resting on a header moves to the nearest concept in that direction.
func (s *MapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	if s.cursor < len(s.rows) && s.rows[s.cursor].kind == rowGroupHeader {
		next = s.cursor
	}
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowConcept {
			s.cursor = next
			return
		}
		next += delta
	}
}

// adjustScroll keeps the cursor and its group header in view.
func (s *MapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	for top > 0 && s.rows[top-1].kind == rowGroupHeader {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func renderGroupHeader(name string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(name))
}

func statusColor(st knowledge.Status) color.Color {
	switch st {
	case knowledge.StatusMastered:
		return theme.Success
	case knowledge.StatusStruggling:
		return theme.Error
	case knowledge.StatusReviewing:
		return theme.Secondary
	default:
		return theme.TextDim
	}
}

func renderConcept(it knowledge.Item, selected bool, width int) string {
	const barWidth = 16
	nameWidth := max(width-barWidth-30, 10)

	name := it.ID
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	cursor := "  "
	if selected {
		nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
		cursor = "▸ "
	}

	bar := components.NewProgressBar(float64(it.Strength)/100, barWidth, false)
	bar.Fill = statusColor(it.Status)

	misses := ""
	if it.FailureCount > 0 {
		misses = lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("  %d missed", it.FailureCount))
	}

	return fmt.Sprintf("  %s%s  %s %3d%%%s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		bar.View(),
		it.Strength,
		misses,
	)
}
