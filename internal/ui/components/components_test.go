package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoice(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
		ok   bool
	}{
		{"enter picks first", []string{"enter"}, 0, true},
		{"arrows then enter", []string{"down", "down", "up", "enter"}, 1, true},
		{"number picks directly", []string{"3"}, 2, true},
		{"out of range number ignored", []string{"7"}, -1, false},
		{"navigation alone", []string{"down"}, -1, false},
		{"locked after choice", []string{"2", "down", "enter"}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMultiChoice([]string{"a", "b", "c"}, nil)
			for _, k := range tt.keys {
				m, _ = m.Update(key(k))
			}
			got, ok := m.Chosen()
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Chosen() = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMultiChoice_DetailsAfterChoice(t *testing.T) {
	m := NewMultiChoice([]string{"Mitosis", "Meiosis"}, []string{"one division", "two divisions"})
	if strings.Contains(m.View(), "two divisions") {
		t.Error("details shown before an answer")
	}
	m, _ = m.Update(key("2"))
	m.Reveal(0)
	if !strings.Contains(m.View(), "two divisions") {
		t.Error("details missing after an answer")
	}
}

func TestMenu(t *testing.T) {
	var picked string
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd { picked = label; return nil }}
	}
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		item("Lesson"),
		item("History"),
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m.Update(key("1"))
	if picked != "" {
		t.Errorf("disabled item ran %q", picked)
	}
	m.Update(key("3"))
	if picked != "History" {
		t.Errorf("picked = %q, want History", picked)
	}
	m, _ = m.Update(key("up"))
	m.Update(key("enter"))
	if picked != "Lesson" {
		t.Errorf("picked = %q, want Lesson", picked)
	}
	if !strings.Contains(m.View(), "[2] Lesson") {
		t.Errorf("menu not numbered:\n%s", m.View())
	}
}

func TestProgressBar(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		out := NewProgressBar(pct, 20, true).View()
		if out == "" {
			t.Errorf("empty bar for %v", pct)
		}
	}
	if out := NewProgressBar(0.4, 20, true).View(); !strings.Contains(out, "40%") {
		t.Errorf("percent missing: %q", out)
	}
}
