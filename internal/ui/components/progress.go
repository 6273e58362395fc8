package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// ProgressBar is a horizontal bar filled to Percent, which runs from 0 to 1.
type ProgressBar struct {
	Percent     float64
	Width       int
	ShowPercent bool
	Fill        color.Color
}

// NewProgressBar creates a bar in the secondary color.
func NewProgressBar(percent float64, width int, showPercent bool) ProgressBar {
	return ProgressBar{
		Percent:     percent,
		Width:       width,
		ShowPercent: showPercent,
		Fill:        theme.Secondary,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	barWidth := p.Width
	if p.ShowPercent {
		barWidth -= 6
	}
	barWidth = max(barWidth, 4)

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	out := lipgloss.NewStyle().Background(p.Fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	if p.ShowPercent {
		out += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf(" %4d%%", int(p.Percent*100)))
	}
	return out
}
