package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screens/home"
	"github.com/abhisek/lumen/internal/screens/lesson"
	"github.com/abhisek/lumen/internal/store"
	"github.com/abhisek/lumen/internal/ui/theme"
)

func testOptions(topic string) Options {
	st := store.NewMemory()
	return Options{
		Home: home.Deps{
			History: history.New(st, nil),
			Tracker: knowledge.NewTracker(st),
		},
		Topic: topic,
	}
}

func TestAppModel_StartsAtHome(t *testing.T) {
	m := newAppModel(testOptions(""))
	if got := m.router.Active().Title(); got != "Home" {
		t.Errorf("active = %q, want Home", got)
	}
	if m.Init() != nil {
		t.Error("home without a queue needs no initial command")
	}
}

func TestAppModel_TopicPushesLesson(t *testing.T) {
	m := newAppModel(testOptions("Black holes"))
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a command to open the lesson")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a pushed screen")
	}
	if _, ok := push.Screen.(*lesson.LessonScreen); !ok {
		t.Fatalf("pushed %T", push.Screen)
	}

	m.Update(push)
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}
}

func TestAppModel_WindowSizeAndQuit(t *testing.T) {
	m := newAppModel(testOptions(""))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	am := updated.(AppModel)
	if am.width != 120 || am.height != 40 {
		t.Errorf("size = %dx%d", am.width, am.height)
	}

	_, cmd := am.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestAppModel_ToggleThemePersists(t *testing.T) {
	theme.Apply(theme.Dark)
	t.Cleanup(func() { theme.Apply(theme.Dark) })

	var saved []theme.Mode
	opts := testOptions("")
	opts.SaveTheme = func(m theme.Mode) error {
		saved = append(saved, m)
		return nil
	}
	m := newAppModel(opts)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if theme.Current() != theme.Light {
		t.Fatalf("theme = %s after ctrl+t, want light", theme.Current())
	}
	if cmd == nil {
		t.Fatal("ctrl+t returned no save command")
	}
	msg, ok := cmd().(ThemeSavedMsg)
	if !ok || msg.Err != nil || msg.Mode != theme.Light {
		t.Errorf("save result = %+v", msg)
	}

	m.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if theme.Current() != theme.Dark {
		t.Errorf("theme = %s after a second ctrl+t", theme.Current())
	}
	if len(saved) != 1 {
		t.Errorf("saved %v; the second command was not run", saved)
	}
}
