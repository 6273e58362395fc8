// Package app hosts the full-screen terminal interface.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screen"
	"github.com/abhisek/lumen/internal/screens/home"
	"github.com/abhisek/lumen/internal/screens/lesson"
	"github.com/abhisek/lumen/internal/ui/layout"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// Options configures the terminal interface. When Topic is set a lesson
// on it starts right away, on top of the home screen. SaveTheme, when
// set, persists the palette picked with Ctrl+T.
type Options struct {
	Home      home.Deps
	Topic     string
	SaveTheme func(theme.Mode) error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	topic     string
	lesson    lesson.Deps
	saveTheme func(theme.Mode) error
	width     int
	height    int
}

// ThemeSavedMsg reports the result of persisting a theme change.
type ThemeSavedMsg struct {
	Mode theme.Mode
	Err  error
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router:    router.New(home.New(opts.Home)),
		topic:     opts.Topic,
		lesson:    opts.Home.Lesson,
		saveTheme: opts.SaveTheme,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.topic != "" {
		ls := lesson.New(m.topic, m.lesson)
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: ls} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			return m, m.toggleTheme()
		}

	case ThemeSavedMsg:
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title string
	var score *layout.Score
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.ScoreProvider); ok {
			score = sp.Score()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = hp.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+T", Description: "Theme"}, {Key: "Ctrl+C", Description: "Quit"}}
	}

	header := layout.RenderHeader(title, score, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) toggleTheme() tea.Cmd {
	mode := theme.Toggle()
	save := m.saveTheme
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		return ThemeSavedMsg{Mode: mode, Err: save(mode)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(newAppModel(opts)).Run()
	return err
}
