package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screen"
	"github.com/abhisek/lumen/internal/screens/lesson"
	"github.com/abhisek/lumen/internal/ui/layout"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// HistoryScreen lists past lessons and curricula. Lessons can be replayed;
// curricula expand to show their chapters.
type HistoryScreen struct {
	items    []history.Item
	deps     lesson.Deps
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen over the current entries. deps are used to
// replay a lesson.
func New(h *history.History, deps lesson.Deps) *HistoryScreen {
	return &HistoryScreen{
		items:    h.List(),
		deps:     deps,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Replay"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.items)-1 {
			s.selected++
		}
	case "enter":
		return s, s.open()
	}
	return s, nil
}

func (s *HistoryScreen) open() tea.Cmd {
	if s.selected >= len(s.items) {
		return nil
	}
	it := s.items[s.selected]
	if it.Kind == history.KindLesson && it.Lesson != nil {
		deps := s.deps
		if it.Difficulty != "" {
			deps.Difficulty = it.Difficulty
		}
		replay := lesson.NewReplay(it.Lesson, deps)
		return func() tea.Msg { return router.PushScreenMsg{Screen: replay} }
	}
	s.expanded[s.selected] = !s.expanded[s.selected]
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Start learning!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, it := range s.items {
		kind := "Lesson"
		if it.Kind == history.KindCurriculum {
			kind = "Course"
		}
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-6s  %s", prefix, it.Time().Format("Jan 02, 2006"), kind, it.Title)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] && it.Curriculum != nil {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			for _, ch := range it.Curriculum.Chapters {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					dim.Render(fmt.Sprintf("    %s (%d sections)", ch.Title, len(ch.Sections)))))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
