// Package theme holds the lumen palette and the text styles shared by the
// TUI, the line console and the report renderer.
//
// The palette variables are reassigned by Apply, so renderers read them
// when drawing instead of caching styles at init. Apply is not safe for
// concurrent use with rendering; call it at startup or from the UI loop.
package theme

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Mode is a named palette.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

type palette struct {
	primary, secondary, accent, success, error,
	text, textDim, bgCard, border color.Color
}

var palettes = map[Mode]palette{
	// Warm lamplight accents on a dark slate background.
	Dark: {
		primary:   lipgloss.Color("#F59E0B"), // amber
		secondary: lipgloss.Color("#38BDF8"), // sky
		accent:    lipgloss.Color("#E879F9"), // orchid
		success:   lipgloss.Color("#4ADE80"),
		error:     lipgloss.Color("#FB7185"),
		text:      lipgloss.Color("#F1F5F9"),
		textDim:   lipgloss.Color("#94A3B8"),
		bgCard:    lipgloss.Color("#1E293B"),
		border:    lipgloss.Color("#475569"),
	},
	// Deeper inks for paper-white terminals.
	Light: {
		primary:   lipgloss.Color("#B45309"),
		secondary: lipgloss.Color("#0369A1"),
		accent:    lipgloss.Color("#A21CAF"),
		success:   lipgloss.Color("#15803D"),
		error:     lipgloss.Color("#BE123C"),
		text:      lipgloss.Color("#0F172A"),
		textDim:   lipgloss.Color("#64748B"),
		bgCard:    lipgloss.Color("#F1F5F9"),
		border:    lipgloss.Color("#CBD5E1"),
	},
}

// Palette of the active mode.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
)

// Text styles for line-oriented output.
var (
	Heading   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
)

var current Mode

func init() {
	Apply(Dark)
}

// ParseMode accepts "dark" or "light" in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := palettes[m]; !ok {
		return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
	return m, nil
}

// Apply switches the palette and rebuilds the shared styles. Unknown
// modes fall back to Dark.
func Apply(m Mode) {
	p, ok := palettes[m]
	if !ok {
		m, p = Dark, palettes[Dark]
	}
	current = m
	Primary, Secondary, Accent = p.primary, p.secondary, p.accent
	Success, Error = p.success, p.error
	Text, TextDim, BgCard, Border = p.text, p.textDim, p.bgCard, p.border

	Heading = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Correct = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Incorrect = lipgloss.NewStyle().Bold(true).Foreground(Error)
}

// Current returns the active mode.
func Current() Mode { return current }

// Toggle flips between dark and light and returns the new mode.
func Toggle() Mode {
	if current == Dark {
		Apply(Light)
	} else {
		Apply(Dark)
	}
	return current
}
