package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screen"
	"github.com/abhisek/lumen/internal/session"
	"github.com/abhisek/lumen/internal/ui/layout"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// ClosedMsg is sent to the screen below once the summary is dismissed.
type ClosedMsg struct {
	Retry bool
}

// SummaryScreen shows how a lesson went.
type SummaryScreen struct {
	result session.Result
	review []string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary for result. review lists concepts to revisit.
func New(result session.Result, review []string) *SummaryScreen {
	return &SummaryScreen{result: result, review: review}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Lesson Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.result.Passed {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Retry"},
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, dismiss(false)
	case "r", "R":
		if !s.result.Passed {
			return s, dismiss(true)
		}
	}
	return s, nil
}

func dismiss(retry bool) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return ClosedMsg{Retry: retry} },
	)
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")

	if r.Passed {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Lesson complete!"))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not passed yet"))
	}
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render(r.Title))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Score: %d/%d (%d%%)        Hearts: %d        Points: %d",
		r.Correct, r.Total, r.Percent(), r.Hearts, r.Points)
	b.WriteString(center.Foreground(theme.Text).Render(stats))
	b.WriteString("\n")
	if r.Bonus > 0 {
		b.WriteString(center.Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Perfect run! +%d bonus points", r.Bonus)))
		b.WriteString("\n")
	}

	if len(s.review) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Worth another look")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, c := range s.review {
			b.WriteString(center.Foreground(theme.Secondary).Render("• " + c))
			b.WriteString("\n")
		}
	}

	if !r.Passed {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("You need %d%% to pass. Press R to try again.", int(session.PassThreshold*100))))
	}
	return b.String()
}
