package content

import (
	"errors"
	"testing"
)

func testSection() Section {
	return Section{
		Title: "Capitals",
		Slides: []LearningSlide{
			{Title: "France", Content: "The capital of France is [[Paris]]."},
			{Title: "Japan", Content: "The capital of Japan is [[Tokyo]]."},
		},
		TeachingPrompts: []TeachingPrompt{{Text: "Explain capitals", RelatedSlide: 1}},
		Questions: []Question{
			{Text: "Capital of France?", Kind: KindMultipleChoice, CorrectAnswer: "Paris", RelatedSlide: 0},
		},
	}
}

func TestSectionValidate(t *testing.T) {
	s := testSection()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	s.Questions[0].RelatedSlide = 2
	err := s.Validate()
	var ise *InvalidSectionError
	if !errors.As(err, &ise) {
		t.Fatalf("Validate() = %v, want InvalidSectionError", err)
	}
	if ise.Index != 2 || ise.Slides != 2 {
		t.Errorf("got index=%d slides=%d", ise.Index, ise.Slides)
	}

	s = testSection()
	s.TeachingPrompts[0].RelatedSlide = -1
	if err := s.Validate(); !errors.As(err, &ise) {
		t.Fatalf("Validate() = %v, want InvalidSectionError", err)
	}
}

func TestCurriculumValidate(t *testing.T) {
	c := Curriculum{Title: "Geo"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for curriculum without chapters")
	}

	c.Chapters = []Chapter{{Title: "One", Sections: []Section{testSection()}}}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if c.SectionCount() != 1 {
		t.Errorf("SectionCount() = %d, want 1", c.SectionCount())
	}

	c.Chapters[0].Sections[0].Questions[0].RelatedSlide = 9
	var ise *InvalidSectionError
	if err := c.Validate(); !errors.As(err, &ise) {
		t.Fatalf("Validate() = %v, want wrapped InvalidSectionError", err)
	}
}

func TestIsMathTopic(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Linear Algebra Basics", true},
		{"Intro to Derivatives", true},
		{"Graph Theory", true},
		{"The French Revolution", false},
		{"Photosynthesis", false},
	}
	for _, tt := range tests {
		if got := IsMathTopic(tt.title); got != tt.want {
			t.Errorf("IsMathTopic(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestRevealTerms(t *testing.T) {
	got := RevealTerms("A [[cell]] has a [[ nucleus ]] and membrane.")
	if len(got) != 2 || got[0] != "cell" || got[1] != "nucleus" {
		t.Errorf("RevealTerms = %v", got)
	}
	if s := StripReveal("A [[cell]] wall"); s != "A cell wall" {
		t.Errorf("StripReveal = %q", s)
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("College")
	if err != nil || d != College {
		t.Fatalf("ParseDifficulty(College) = %q, %v", d, err)
	}
	if d, _ := ParseDifficulty(""); d != HighSchool {
		t.Errorf("default difficulty = %q, want high school", d)
	}
	if _, err := ParseDifficulty("kindergarten"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	if Elementary.UsesSearch() {
		t.Error("elementary should not use search")
	}
	if !PostGraduate.UsesSearch() {
		t.Error("post-graduate should use search")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo", 2); got != "h" {
		t.Errorf("Truncate split a rune: %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate = %q", got)
	}
}
