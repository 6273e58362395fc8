package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/queue"
	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screen"
	historyscreen "github.com/abhisek/lumen/internal/screens/history"
	knowledgescreen "github.com/abhisek/lumen/internal/screens/knowledge"
	"github.com/abhisek/lumen/internal/screens/lesson"
	"github.com/abhisek/lumen/internal/ui/components"
	"github.com/abhisek/lumen/internal/ui/layout"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// Deps are the services reachable from the home menu. Queue may be nil.
type Deps struct {
	Lesson  lesson.Deps
	History *history.History
	Tracker *knowledge.Tracker
	Queue   *queue.Queue
}

type queueLoadedMsg struct {
	Pending []queue.Entry
	Err     error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	input    components.TextInput
	entering bool
	pending  []queue.Entry
	notice   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	queueLabel := "Next from queue"
	if len(h.pending) > 0 {
		queueLabel = fmt.Sprintf("Next from queue: %s", h.pending[0].Topic)
	}
	return []components.MenuItem{
		{Label: "New lesson", Action: func() tea.Cmd {
			h.entering = true
			h.input = components.NewTextInput("What do you want to learn?", 200, 50)
			return h.input.Init()
		}},
		{Label: queueLabel, Disabled: len(h.pending) == 0, Action: h.startQueued},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(h.deps.History, h.deps.Lesson)}
			}
		}},
		{Label: "Knowledge map", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: knowledgescreen.New(h.deps.Tracker)}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadQueue()
}

// Resume reloads the queue when a lesson or list screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadQueue()
}

func (h *HomeScreen) loadQueue() tea.Cmd {
	q := h.deps.Queue
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		pending, err := q.Pending(context.Background())
		return queueLoadedMsg{Pending: pending, Err: err}
	}
}

func (h *HomeScreen) startQueued() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	next := h.pending[0]
	q := h.deps.Queue
	ls := lesson.New(next.Topic, h.deps.Lesson)
	return tea.Batch(
		func() tea.Msg {
			if err := q.MarkDone(context.Background(), next.ID); err != nil {
				return queueLoadedMsg{Err: err}
			}
			pending, err := q.Pending(context.Background())
			return queueLoadedMsg{Pending: pending, Err: err}
		},
		func() tea.Msg { return router.PushScreenMsg{Screen: ls} },
	)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.entering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-5", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(queueLoadedMsg); ok {
		h.notice = ""
		if m.Err != nil {
			h.notice = "Learning queue unavailable: " + m.Err.Error()
		}
		h.pending = m.Pending
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil
	}

	if !h.entering {
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			h.entering = false
			return h, nil
		case "enter":
			topic := strings.TrimSpace(h.input.Value())
			if topic == "" {
				return h, nil
			}
			h.entering = false
			ls := lesson.New(topic, h.deps.Lesson)
			return h, func() tea.Msg { return router.PushScreenMsg{Screen: ls} }
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("L · U · M · E · N"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(h.stats()))
	b.WriteString("\n\n")

	if h.entering {
		b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Topic"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.input.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	}

	if h.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render(h.notice))
	}
	return b.String()
}

func (h *HomeScreen) stats() string {
	d := h.deps.Lesson.Difficulty
	var parts []string
	if d != "" {
		parts = append(parts, "Level: "+string(d))
	}
	if h.deps.Tracker != nil {
		parts = append(parts, fmt.Sprintf("%d mastered", len(h.deps.Tracker.ByStatus().Mastered)))
	}
	if h.deps.History != nil {
		parts = append(parts, fmt.Sprintf("%d in history", h.deps.History.Len()))
	}
	parts = append(parts, fmt.Sprintf("%d queued", len(h.pending)))
	return strings.Join(parts, "   ")
}
