package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumen/internal/session"
)

func passed() session.Result {
	return session.Result{Title: "Tides", Correct: 7, Total: 7, Score: 1, Points: 100, Hearts: 5, Bonus: 50, Passed: true}
}

func failed() session.Result {
	return session.Result{Title: "Tides", Correct: 2, Total: 7, Score: 2.0 / 7, Points: 20, Hearts: 0}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(passed(), nil)
	if s.Title() != "Lesson Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Lesson Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	tests := []struct {
		name   string
		result session.Result
		review []string
		want   []string
	}{
		{"passed", passed(), nil, []string{"Lesson complete!", "Tides", "7/7", "+50 bonus"}},
		{"failed", failed(), []string{"Gravity"}, []string{"Not passed yet", "2/7", "Gravity", "Press R"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := New(tt.result, tt.review).View(80, 24)
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("view missing %q:\n%s", w, view)
				}
			}
		})
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	tests := []struct {
		name    string
		result  session.Result
		key     tea.KeyPressMsg
		wantCmd bool
	}{
		{"enter closes", passed(), tea.KeyPressMsg{Code: tea.KeyEnter}, true},
		{"esc closes", passed(), tea.KeyPressMsg{Code: tea.KeyEscape}, true},
		{"retry after fail", failed(), tea.KeyPressMsg{Code: 'r', Text: "r"}, true},
		{"no retry after pass", passed(), tea.KeyPressMsg{Code: 'r', Text: "r"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := New(tt.result, nil).Update(tt.key)
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd = %v, want command %v", cmd != nil, tt.wantCmd)
			}
		})
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(passed(), nil).KeyHints()); n != 1 {
		t.Errorf("passed KeyHints length = %d, want 1", n)
	}
	if n := len(New(failed(), nil).KeyHints()); n != 2 {
		t.Errorf("failed KeyHints length = %d, want 2", n)
	}
}
