package content

import (
	"errors"
	"fmt"
)

// InvalidSectionError reports a section whose items reference slides that
// do not exist.
type InvalidSectionError struct {
	Section string
	Item    string
	Index   int
	Slides  int
}

func (e *InvalidSectionError) Error() string {
	return fmt.Sprintf("section %q: %s references slide %d, have %d slides",
		e.Section, e.Item, e.Index, e.Slides)
}

// Validate checks that every question and teaching prompt points at a slide
// in the same section.
func (s *Section) Validate() error {
	if s.Title == "" {
		return errors.New("section has no title")
	}
	for i, q := range s.Questions {
		if q.RelatedSlide < 0 || q.RelatedSlide >= len(s.Slides) {
			return &InvalidSectionError{
				Section: s.Title,
				Item:    fmt.Sprintf("question %d", i),
				Index:   q.RelatedSlide,
				Slides:  len(s.Slides),
			}
		}
	}
	for i, p := range s.TeachingPrompts {
		if p.RelatedSlide < 0 || p.RelatedSlide >= len(s.Slides) {
			return &InvalidSectionError{
				Section: s.Title,
				Item:    fmt.Sprintf("teaching prompt %d", i),
				Index:   p.RelatedSlide,
				Slides:  len(s.Slides),
			}
		}
	}
	return nil
}

// Validate checks every section of the curriculum.
func (c *Curriculum) Validate() error {
	if len(c.Chapters) == 0 {
		return fmt.Errorf("curriculum %q has no chapters", c.Title)
	}
	for ci, ch := range c.Chapters {
		if len(ch.Sections) == 0 {
			return fmt.Errorf("curriculum %q: chapter %d has no sections", c.Title, ci)
		}
		for si := range ch.Sections {
			if err := ch.Sections[si].Validate(); err != nil {
				return fmt.Errorf("chapter %d section %d: %w", ci, si, err)
			}
		}
	}
	return nil
}
