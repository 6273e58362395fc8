// Package layout draws the frame around every screen: a title bar with the
// lesson score, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// Smallest terminal the frame renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one entry of the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Score is the lesson status shown on the right of the header.
type Score struct {
	Hearts int
	Points int
}

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("The window is too small for lumen.\n\nNeeds %d x %d, have %d x %d.",
			MinWidth, MinHeight, width, height))
}

// RenderHeader draws the brand on the left, the title in the middle and,
// during a lesson, hearts and points on the right.
func RenderHeader(title string, score *Score, width int) string {
	left := fg(theme.Primary).Bold(true).Render(" ✦ lumen")
	mid := fg(theme.Text).Render(title)
	var right string
	if score != nil {
		right = fg(theme.Error).Render(fmt.Sprintf("♥ %d", score.Hearts)) + "  " +
			fg(theme.Accent).Render(fmt.Sprintf("★ %d pts", score.Points)) + " "
	}

	inner := max(width-2, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-lw, 1)
	gapR := max(inner-lw-gapL-mw-rw, 1)

	line := left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
	return barStyle().Width(width).Render(line)
}

// RenderFooter lists the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = fg(theme.Text).Bold(true).Render(h.Key) + " " + theme.Dim.Render(h.Description)
	}
	return barStyle().Width(width).Render(" " + strings.Join(parts, "  ·  "))
}

// RenderFrame stacks header, body and footer, sizing the body to fill the
// remaining height.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body),
		footer,
	)
}
