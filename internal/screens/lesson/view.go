package lesson

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/assessment"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/session"
	"github.com/abhisek/lumen/internal/ui/components"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// highlight renders [[marked]] terms in the accent color.
func highlight(s string) string {
	for _, term := range content.RevealTerms(s) {
		s = strings.ReplaceAll(s, "[["+term+"]]", lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(term))
	}
	return s
}

func (s *LessonScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.sess == nil:
		return renderLoading(width, s.topic)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.judging:
		return renderCentered(width, theme.TextDim, "\n\n\n  Checking your answer...")
	case s.sess.Finished():
		return renderCentered(width, theme.TextDim, "\n\n\n  Lesson finished.")
	case s.sess.Phase() == session.PhaseLearning:
		return s.renderSlide(width)
	}
	return s.renderItem(width)
}

func textWidth(width int) int {
	return max(min(width-8, 76), 20)
}

func block(width int, body string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth(width)).Render(body))
}

func renderCentered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg).Render(text)
}

// renderSlide renders the current learning slide.
func (s *LessonScreen) renderSlide(width int) string {
	sec := s.sess.Section()
	slide := s.sess.Slide()
	if slide == nil {
		return ""
	}
	idx, total := s.sess.SlideIndex(), len(sec.Slides)

	var b strings.Builder
	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Slide %d/%d", idx+1, total))
	bar := components.NewProgressBar(float64(idx+1)/float64(total), 24, false).View()
	b.WriteString(info + "  " + bar)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(slide.Title)))
	b.WriteString("\n\n")
	b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Text).Render(highlight(slide.Content))))
	b.WriteString("\n")
	if slide.VisualAid != "" {
		b.WriteString("\n")
		b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Picture this: "+slide.VisualAid)))
		b.WriteString("\n")
	}
	if idx == total-1 {
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Accent, "Next: test what you learned"))
	}
	return b.String()
}

// renderItem renders the current question or teaching prompt.
func (s *LessonScreen) renderItem(width int) string {
	it, ok := s.sess.Item()
	if !ok {
		return ""
	}

	var b strings.Builder
	label := "Question"
	if it.IsPrompt() {
		label = "Teach it back"
	}
	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s  %d/%d", label, s.sess.ItemIndex()+1, len(s.sess.Items())))
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(it.Text())))
	b.WriteString("\n\n")

	if it.IsPrompt() {
		b.WriteString(s.renderPrompt(width))
	} else {
		b.WriteString(s.renderQuestion(width, it))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Accent, s.notice))
	}
	return b.String()
}

func (s *LessonScreen) renderQuestion(width int, it assessment.Item) string {
	q := it.Question
	var b strings.Builder

	if q.Kind == content.KindMath && q.InitialState != nil {
		for _, line := range []string{q.InitialState.Expression, q.InitialState.Equation, q.InitialState.FunctionString, q.InitialState.Prompt} {
			if line != "" {
				b.WriteString(renderCentered(width, theme.Secondary, line))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if q.Kind == content.KindMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
		b.WriteString("\n")
	}

	switch s.sess.Status() {
	case session.StatusCorrect:
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Success, "Correct!"))
	case session.StatusIncorrect:
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Error, "Not quite"))
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.TextDim, "Correct answer: "+q.CorrectAnswer))
	default:
		return b.String()
	}

	if q.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Text).Render(q.Explanation)))
	}
	if rs := s.sess.ReviewSlide(); rs != nil {
		b.WriteString("\n\n")
		b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("Review \""+rs.Title+"\": "+content.StripReveal(rs.Content))))
	}
	b.WriteString("\n\n")
	b.WriteString(renderCentered(width, theme.TextDim, "Press any key to continue..."))
	return b.String()
}

func (s *LessonScreen) renderPrompt(width int) string {
	var b strings.Builder

	if ex := s.sess.Example(); ex != nil {
		b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Example: "+ex.Title)))
		b.WriteString("\n")
		b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Text).Render(highlight(ex.Content))))
		b.WriteString("\n\n")
		b.WriteString(renderCentered(width, theme.TextDim, "Press Enter to move on."))
		return b.String()
	}

	if s.sess.Status() == session.StatusCorrect {
		b.WriteString(renderCentered(width, theme.Success, fmt.Sprintf("Well explained! +%d points", session.PointsPerPrompt)))
		if fb := s.sess.Feedback(); fb != "" {
			b.WriteString("\n\n")
			b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Text).Render(fb)))
		}
		b.WriteString("\n\n")
		b.WriteString(renderCentered(width, theme.TextDim, "Press Enter to continue."))
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n")

	if s.sess.Status() == session.StatusIncorrect {
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Error, "Not there yet"))
		if fb := s.sess.Feedback(); fb != "" {
			b.WriteString("\n")
			b.WriteString(block(width, lipgloss.NewStyle().Foreground(theme.Text).Render(fb)))
		}
		if s.sess.ExampleAvailable() {
			b.WriteString("\n\n")
			b.WriteString(renderCentered(width, theme.Accent, "Stuck? Press Ctrl+E to see an example."))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).Bold(true).Render("End lesson early?"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.TextDim, "What you learned so far is kept."))
	b.WriteString("\n\n")
	b.WriteString(renderCentered(width, theme.Success, "[Y] Yes, end lesson"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.Primary, "[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int, topic string) string {
	return renderCentered(width, theme.TextDim, fmt.Sprintf("\n\n\n  Preparing your lesson on %q...", topic))
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return renderCentered(width, theme.Error, fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
