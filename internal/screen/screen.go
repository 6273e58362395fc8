// Package screen defines what the router needs from a full-screen view,
// plus optional extras the frame looks for.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumen/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the body; the frame adds
// the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ScoreProvider puts hearts and points in the header.
type ScoreProvider interface {
	Score() *layout.Score
}

// Resumer refreshes a screen when it is uncovered by a pop.
type Resumer interface {
	Resume() tea.Cmd
}
