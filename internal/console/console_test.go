package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lumen/internal/assessment"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/session"
)

func keepOrder([]assessment.Item) {}

func testSection() *content.Section {
	return &content.Section{
		Title: "Tides",
		Slides: []content.LearningSlide{
			{Title: "The Moon", Content: "The [[moon]] pulls the oceans."},
			{Title: "Spring Tides", Content: "Sun and moon align for [[spring tides]]."},
		},
		Questions: []content.Question{{
			Text: "What mainly causes tides?",
			Kind: content.KindMultipleChoice,
			Options: []content.Option{
				{Text: "The moon"},
				{Text: "Wind"},
			},
			CorrectAnswer: "The moon",
			Explanation:   "Lunar gravity.",
			RelatedSlide:  0,
		}},
		TeachingPrompts: []content.TeachingPrompt{{Text: "Explain spring tides.", RelatedSlide: 1}},
	}
}

func lines(in ...string) *strings.Reader {
	return strings.NewReader(strings.Join(in, "\n") + "\n")
}

func play(t *testing.T, sec *content.Section, in ...string) (session.Result, string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(lines(in...), &out)
	res, err := c.PlayLesson(t.Context(), session.New(sec, session.WithShuffler(keepOrder)))
	return res, out.String(), err
}

func TestPlayLesson_Perfect(t *testing.T) {
	res, out, err := play(t, testSection(),
		"", "", // slides
		"1", "", // question
		"sun and moon together make spring tides", "", // prompt
	)
	if err != nil {
		t.Fatalf("PlayLesson() error = %v\n%s", err, out)
	}
	if !res.Passed || res.Correct != 1 || res.Hearts != session.InitialHearts {
		t.Errorf("result = %+v", res)
	}
	want := session.PointsPerQuestion + session.PointsPerPrompt + session.PerfectBonus
	if res.Points != want {
		t.Errorf("points = %d, want %d", res.Points, want)
	}
	for _, s := range []string{"Slide 1/2", "Slide 2/2", "Correct!", "Well explained!", "Lesson complete!"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
}

func TestPlayLesson_BackAndQuit(t *testing.T) {
	res, out, err := play(t, testSection(), "", "b", ":q")
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("error = %v, want ErrQuit", err)
	}
	if got := strings.Count(out, "Slide 1/2"); got != 2 {
		t.Errorf("first slide shown %d times, want 2", got)
	}
	if res.Passed {
		t.Error("quit lesson reported as passed")
	}
}

func TestPlayLesson_WrongAnswerThenRetry(t *testing.T) {
	sec := testSection()
	sec.TeachingPrompts = nil

	res, out, err := play(t, sec,
		"", "", "2", "", // wrong answer ends the lesson
		"y",
		"", "", "The moon", "",
	)
	if err != nil {
		t.Fatalf("PlayLesson() error = %v\n%s", err, out)
	}
	if !res.Passed {
		t.Errorf("retry should pass, got %+v", res)
	}
	for _, s := range []string{"Not quite.", "Correct answer: The moon", `Review "The Moon"`, "Not passed yet.", "Worth another look"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
}

func TestPlayLesson_DeclineRetry(t *testing.T) {
	sec := testSection()
	sec.TeachingPrompts = nil

	res, _, err := play(t, sec, "", "", "2", "", "n")
	if !errors.Is(err, ErrNotPassed) {
		t.Fatalf("PlayLesson() error = %v, want ErrNotPassed", err)
	}
	if res.Passed || res.Hearts != session.InitialHearts-1 {
		t.Errorf("result = %+v", res)
	}
}

func TestPlayLesson_EmptyAnswerAskedAgain(t *testing.T) {
	sec := testSection()
	sec.TeachingPrompts = nil

	res, out, err := play(t, sec, "", "", "", "1", "")
	if err != nil {
		t.Fatalf("PlayLesson() error = %v", err)
	}
	if !res.Passed {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(out, "Type an answer") {
		t.Error("empty answer not reprompted")
	}
}

func TestPlayLesson_ExampleAfterTwoFailures(t *testing.T) {
	res, out, err := play(t, testSection(),
		"", "", "1", "",
		":example",
		"no idea", "still no idea",
		":example", "",
	)
	if err != nil {
		t.Fatalf("PlayLesson() error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "The example unlocks after 2 attempts.") {
		t.Error("locked example not explained")
	}
	if !strings.Contains(out, "Example: Spring Tides") {
		t.Error("example not shown")
	}
	if res.Points != session.PointsPerQuestion+session.PerfectBonus {
		t.Errorf("skipped prompt earned points: %+v", res)
	}
}

func TestPlayLesson_InputClosed(t *testing.T) {
	_, _, err := play(t, testSection(), "")
	if !errors.Is(err, ErrInputClosed) {
		t.Errorf("error = %v, want ErrInputClosed", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y", true},
		{"YES", true},
		{"n", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := New(lines(tt.in), &bytes.Buffer{})
			got, err := c.Confirm("Continue?")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	c := New(lines("9", "x", "2"), &out)
	got, err := c.Choose("Menu", []string{"New lesson", "History", "Exit"})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Choose() = %d, want 1", got)
	}
	if strings.Count(out.String(), "Please enter a number from 1 to 3.") != 2 {
		t.Errorf("invalid replies not rejected:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "2) History") {
		t.Error("options not listed")
	}

	if _, err := New(lines(), &out).Choose("", nil); err == nil {
		t.Error("empty option list accepted")
	}
}
