// Package session runs one lesson: slides first, then an interleaved pass
// of questions and teaching prompts scored with hearts and points.
package session

import (
	"context"
	"strings"

	"github.com/abhisek/lumen/internal/assessment"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/metrics"
)

// Tracker receives concept outcomes. *knowledge.Tracker satisfies it.
type Tracker interface {
	Update(conceptID string, correct bool) knowledge.Item
}

// Option configures a Session.
type Option func(*Session)

// WithAnswerJudge sets the judge for fill-in-the-blank answers.
func WithAnswerJudge(j AnswerJudge) Option {
	return func(s *Session) { s.answers = j }
}

// WithExplanationJudge sets the judge for teaching prompts.
func WithExplanationJudge(j ExplanationJudge) Option {
	return func(s *Session) { s.explanations = j }
}

// WithTracker sets where concept outcomes are recorded.
func WithTracker(t Tracker) Option {
	return func(s *Session) { s.tracker = t }
}

// WithShuffler overrides the bucket shuffle used to order items.
func WithShuffler(fn assessment.Shuffler) Option {
	return func(s *Session) { s.shuffle = fn }
}

// WithLogger sets the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics records lesson outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// Session is the state of one lesson. It is not safe for concurrent use.
type Session struct {
	section *content.Section

	answers      AnswerJudge
	explanations ExplanationJudge
	tracker      Tracker
	shuffle      assessment.Shuffler
	log          *logger.Logger
	metrics      *metrics.Metrics

	phase Phase

	// slide is the cursor into section.Slides during learning.
	slide int

	// items is the assessment order, fixed when the session is built.
	items []assessment.Item
	item  int

	hearts  int
	correct int
	points  int
	bonus   int

	// Transient state of the current item, cleared by Continue.
	status   Status
	answer   string
	feedback string
	review   int
	attempts int
	example  bool

	missed []string
}

// New starts a lesson over section. A section without slides goes straight
// to assessment.
func New(section *content.Section, opts ...Option) *Session {
	s := &Session{
		section: section,
		log:     logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.items = assessment.Sequence(s.section.TeachingPrompts, s.section.Questions, s.shuffle)
	s.slide = 0
	s.item = 0
	s.hearts = InitialHearts
	s.correct = 0
	s.points = 0
	s.bonus = 0
	s.missed = nil
	s.clearItem()

	s.phase = PhaseLearning
	if len(s.section.Slides) == 0 {
		s.startAssessment()
	}
}

func (s *Session) clearItem() {
	s.status = StatusPending
	s.answer = ""
	s.feedback = ""
	s.review = -1
	s.attempts = 0
	s.example = false
}

func (s *Session) startAssessment() {
	s.phase = PhaseAssessment
	if len(s.items) == 0 {
		s.finish()
	}
}

// Section returns the lesson content.
func (s *Session) Section() *content.Section { return s.section }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// SlideIndex returns the learning cursor.
func (s *Session) SlideIndex() int { return s.slide }

// Slide returns the slide under the learning cursor.
func (s *Session) Slide() *content.LearningSlide { return s.section.Slide(s.slide) }

// Next moves to the next slide. Moving past the last slide starts the
// assessment.
func (s *Session) Next() error {
	if s.phase != PhaseLearning {
		return ErrWrongPhase
	}
	if s.slide+1 < len(s.section.Slides) {
		s.slide++
		return nil
	}
	s.startAssessment()
	return nil
}

// Back moves to the previous slide. It does nothing on the first slide.
func (s *Session) Back() error {
	if s.phase != PhaseLearning {
		return ErrWrongPhase
	}
	if s.slide > 0 {
		s.slide--
	}
	return nil
}

// Items returns the assessment order.
func (s *Session) Items() []assessment.Item { return s.items }

// ItemIndex returns the position within Items.
func (s *Session) ItemIndex() int { return s.item }

// Item returns the current assessment item. ok is false outside the
// assessment phase.
func (s *Session) Item() (assessment.Item, bool) {
	if s.phase != PhaseAssessment || s.item >= len(s.items) {
		return assessment.Item{}, false
	}
	return s.items[s.item], true
}

// Hearts returns the remaining hearts.
func (s *Session) Hearts() int { return s.hearts }

// Points returns points earned so far, excluding any bonus.
func (s *Session) Points() int { return s.points }

// Status returns the answer state of the current item.
func (s *Session) Status() Status { return s.status }

// Answer returns the last submitted answer for the current item.
func (s *Session) Answer() string { return s.answer }

// Feedback returns the judge's feedback on the last explanation.
func (s *Session) Feedback() string { return s.feedback }

// Attempts returns how many explanations were rejected for the current
// teaching prompt.
func (s *Session) Attempts() int { return s.attempts }

// ReviewSlide returns the slide to revisit after a wrong answer, or nil.
func (s *Session) ReviewSlide() *content.LearningSlide {
	if s.review < 0 {
		return nil
	}
	return s.section.Slide(s.review)
}

// Submit answers the current question. Multiple-choice and math answers
// are compared directly; fill-in-the-blank answers go to the answer judge,
// falling back to direct comparison when the judge fails.
func (s *Session) Submit(ctx context.Context, answer string) (bool, error) {
	it, ok := s.Item()
	if !ok {
		return false, ErrWrongPhase
	}
	if it.IsPrompt() {
		return false, ErrWrongItem
	}
	if s.status != StatusPending {
		return false, ErrAlreadyAnswered
	}
	if strings.TrimSpace(answer) == "" {
		return false, ErrEmptyAnswer
	}

	q := it.Question
	correct := s.check(ctx, q, answer)
	s.answer = answer
	concept := s.concept(q.RelatedSlide)

	if correct {
		s.status = StatusCorrect
		s.correct++
		s.points += PointsPerQuestion
	} else {
		s.status = StatusIncorrect
		s.hearts--
		if s.section.Slide(q.RelatedSlide) != nil {
			s.review = q.RelatedSlide
		}
		s.missed = append(s.missed, concept)
	}
	if s.tracker != nil {
		s.tracker.Update(concept, correct)
	}
	s.log.Debug("question answered", "section", s.section.Title, "item", s.item, "correct", correct, "hearts", s.hearts)

	if s.hearts <= 0 {
		s.finish()
	}
	return correct, nil
}

func (s *Session) check(ctx context.Context, q *content.Question, answer string) bool {
	if q.Kind != content.KindFillBlank || s.answers == nil {
		return MatchAnswer(answer, q.CorrectAnswer)
	}
	ok, err := s.answers.JudgeAnswer(ctx, q, answer)
	if err != nil {
		s.log.Warn("answer judge failed, comparing directly", "error", err)
		return MatchAnswer(answer, q.CorrectAnswer)
	}
	return ok
}

// concept names what an item tests: its slide title, or the section title
// when the slide is missing.
func (s *Session) concept(slide int) string {
	if sl := s.section.Slide(slide); sl != nil && sl.Title != "" {
		return sl.Title
	}
	return s.section.Title
}

// Explain submits an explanation for the current teaching prompt. A
// rejected explanation costs no heart; the learner may try again.
func (s *Session) Explain(ctx context.Context, text string) (Judgment, error) {
	it, ok := s.Item()
	if !ok {
		return Judgment{}, ErrWrongPhase
	}
	if !it.IsPrompt() {
		return Judgment{}, ErrWrongItem
	}
	if s.status == StatusCorrect || s.example {
		return Judgment{}, ErrAlreadyAnswered
	}
	if strings.TrimSpace(text) == "" {
		return Judgment{}, ErrEmptyAnswer
	}

	slide := s.section.Slide(it.Prompt.RelatedSlide)
	j := s.judgeExplanation(ctx, it.Prompt, slide, text)

	s.answer = text
	s.feedback = j.Feedback
	if j.Correct {
		s.status = StatusCorrect
		s.points += PointsPerPrompt
	} else {
		s.status = StatusIncorrect
		s.attempts++
		if slide != nil {
			s.review = it.Prompt.RelatedSlide
		}
	}
	s.log.Debug("explanation judged", "section", s.section.Title, "item", s.item, "correct", j.Correct, "attempts", s.attempts)
	return j, nil
}

func (s *Session) judgeExplanation(ctx context.Context, p *content.TeachingPrompt, slide *content.LearningSlide, text string) Judgment {
	if s.explanations == nil {
		return MatchExplanation(slide, text)
	}
	var hint string
	if slide != nil {
		hint = slide.Content
	}
	j, err := s.explanations.JudgeExplanation(ctx, p.Text, text, hint)
	if err != nil {
		s.log.Warn("explanation judge failed, matching key terms", "error", err)
		return MatchExplanation(slide, text)
	}
	return j
}

// ExampleAvailable reports whether the worked example can be revealed for
// the current teaching prompt.
func (s *Session) ExampleAvailable() bool {
	it, ok := s.Item()
	return ok && it.IsPrompt() && s.status != StatusCorrect && !s.example &&
		s.attempts >= ExampleAfterFailures
}

// ShowExample reveals the related slide as a worked example. Afterwards
// the prompt can only be skipped.
func (s *Session) ShowExample() (*content.LearningSlide, error) {
	if s.example {
		return s.Example(), nil
	}
	if !s.ExampleAvailable() {
		return nil, ErrExampleLocked
	}
	s.example = true
	it, _ := s.Item()
	s.review = it.Prompt.RelatedSlide
	return s.Example(), nil
}

// Example returns the revealed worked example, or nil.
func (s *Session) Example() *content.LearningSlide {
	if !s.example {
		return nil
	}
	it, ok := s.Item()
	if !ok {
		return nil
	}
	return s.section.Slide(it.Prompt.RelatedSlide)
}

// Continue moves past an answered item. A question is answered once it has
// been submitted; a teaching prompt once an explanation was accepted.
func (s *Session) Continue() error {
	it, ok := s.Item()
	if !ok {
		return ErrWrongPhase
	}
	if s.status == StatusPending || (it.IsPrompt() && s.status != StatusCorrect) {
		return ErrNotAnswered
	}
	s.advance()
	return nil
}

// Skip moves past a teaching prompt whose example was revealed. No points
// are awarded.
func (s *Session) Skip() error {
	if _, ok := s.Item(); !ok {
		return ErrWrongPhase
	}
	if !s.example {
		return ErrExampleLocked
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	s.clearItem()
	s.item++
	if s.item >= len(s.items) {
		s.finish()
	}
}

func (s *Session) finish() {
	if s.phase == PhaseFinished {
		return
	}
	s.phase = PhaseFinished
	passed := s.Passed()
	if passed && s.hearts == InitialHearts {
		s.bonus = PerfectBonus
	}
	s.metrics.LessonFinished(passed)
	s.log.Info("lesson finished",
		"section", s.section.Title,
		"correct", s.correct,
		"questions", len(s.section.Questions),
		"points", s.points+s.bonus,
		"passed", passed,
	)
}

// Finished reports whether the lesson is over.
func (s *Session) Finished() bool { return s.phase == PhaseFinished }

// Score returns the fraction of questions answered correctly. Teaching
// prompts do not count.
func (s *Session) Score() float64 {
	total := len(s.section.Questions)
	if total == 0 {
		return 0
	}
	return float64(s.correct) / float64(total)
}

// Passed reports whether the score meets the pass threshold.
func (s *Session) Passed() bool {
	return s.Score() >= PassThreshold
}

// Retry restarts a failed lesson from the first slide with a fresh item
// order.
func (s *Session) Retry() error {
	if s.phase != PhaseFinished || s.Passed() {
		return ErrRetryUnavailable
	}
	s.log.Info("retrying lesson", "section", s.section.Title)
	s.reset()
	return nil
}
