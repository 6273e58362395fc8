// Package lesson is the interactive lesson player: slides first, then the
// interleaved questions and teaching prompts.
package lesson

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumen/internal/assessment"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/metrics"
	"github.com/abhisek/lumen/internal/router"
	"github.com/abhisek/lumen/internal/screen"
	"github.com/abhisek/lumen/internal/screens/summary"
	"github.com/abhisek/lumen/internal/session"
	"github.com/abhisek/lumen/internal/ui/components"
	"github.com/abhisek/lumen/internal/ui/layout"
)

// Generator produces a lesson for a topic.
type Generator interface {
	GenerateLesson(ctx context.Context, topic string, d content.Difficulty) (*content.Section, error)
}

// Deps are the collaborators of the lesson screen. Generator is only
// needed when the lesson is generated from a topic; everything else may
// be nil.
type Deps struct {
	Generator    Generator
	Answers      session.AnswerJudge
	Explanations session.ExplanationJudge
	Tracker      *knowledge.Tracker
	History      *history.History
	Difficulty   content.Difficulty
	Shuffle      assessment.Shuffler
	Log          *logger.Logger
	Metrics      *metrics.Metrics
}

// LessonScreen implements screen.Screen for one lesson.
type LessonScreen struct {
	deps  Deps
	topic string
	sess  *session.Session

	choice components.MultiChoice
	input  components.TextInput
	// item is the assessment index the widgets were built for.
	item int

	// While judging, a command owns the session; Update and View leave it
	// alone until judgedMsg arrives.
	judging     bool
	confirmQuit bool
	finished    bool
	notice      string
	errMsg      string
	score       layout.Score
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.ScoreProvider = (*LessonScreen)(nil)

// New creates a screen that generates a lesson on topic.
func New(topic string, deps Deps) *LessonScreen {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &LessonScreen{deps: deps, topic: topic, item: -1}
}

// NewReplay creates a screen that plays an existing lesson.
func NewReplay(sec *content.Section, deps Deps) *LessonScreen {
	s := New(sec.Title, deps)
	s.start(sec)
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	if s.sess != nil {
		return s.input.Init()
	}
	return s.generate()
}

func (s *LessonScreen) Title() string {
	if s.sess != nil {
		return s.sess.Section().Title
	}
	return "Lesson"
}

// Score reports hearts and points once the lesson is loaded.
func (s *LessonScreen) Score() *layout.Score {
	if s.sess == nil {
		return nil
	}
	sc := s.score
	return &sc
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.sess == nil || s.judging || s.finished:
		return nil
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End lesson"},
			{Key: "N", Description: "Keep going"},
		}
	case s.sess.Phase() == session.PhaseLearning:
		return []layout.KeyHint{
			{Key: "→/Enter", Description: "Next"},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Quit"},
		}
	}

	it, ok := s.sess.Item()
	if !ok {
		return nil
	}
	if !it.IsPrompt() {
		if s.sess.Status() != session.StatusPending {
			return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	switch {
	case s.sess.Status() == session.StatusCorrect:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	case s.sess.Example() != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Skip"}}
	case s.sess.ExampleAvailable():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+E", Description: "Example"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		return s.handleReady(msg)

	case judgedMsg:
		return s.handleJudged(msg)

	case savedMsg:
		if msg.Err != nil {
			s.deps.Log.Warn("saving lesson progress failed", "error", msg.Err)
		}
		return s, nil

	case summary.ClosedMsg:
		return s.handleSummaryClosed(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptsText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) generate() tea.Cmd {
	gen, topic, d := s.deps.Generator, s.topic, s.deps.Difficulty
	return func() tea.Msg {
		if gen == nil {
			return lessonReadyMsg{Err: errors.New("no lesson generator configured")}
		}
		sec, err := gen.GenerateLesson(context.Background(), topic, d)
		return lessonReadyMsg{Section: sec, Err: err}
	}
}

func (s *LessonScreen) handleReady(msg lessonReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.start(msg.Section)
	return s, s.input.Init()
}

func (s *LessonScreen) start(sec *content.Section) {
	opts := []session.Option{
		session.WithLogger(s.deps.Log),
		session.WithMetrics(s.deps.Metrics),
	}
	if s.deps.Answers != nil {
		opts = append(opts, session.WithAnswerJudge(s.deps.Answers))
	}
	if s.deps.Explanations != nil {
		opts = append(opts, session.WithExplanationJudge(s.deps.Explanations))
	}
	if s.deps.Tracker != nil {
		opts = append(opts, session.WithTracker(s.deps.Tracker))
	}
	if s.deps.Shuffle != nil {
		opts = append(opts, session.WithShuffler(s.deps.Shuffle))
	}
	s.sess = session.New(sec, opts...)
	s.item = -1
	s.sync()
}

// sync refreshes the cached score and rebuilds the answer widgets when the
// session moved to a new item.
func (s *LessonScreen) sync() {
	s.score = layout.Score{Hearts: s.sess.Hearts(), Points: s.sess.Points()}
	if s.sess.Phase() != session.PhaseAssessment || s.sess.ItemIndex() == s.item {
		return
	}
	s.item = s.sess.ItemIndex()
	s.notice = ""

	it, ok := s.sess.Item()
	if !ok {
		return
	}
	switch {
	case it.IsPrompt():
		s.input = components.NewTextInput("Explain it in your own words...", 0, 60)
	case it.Question.Kind == content.KindMultipleChoice:
		opts := make([]string, len(it.Question.Options))
		details := make([]string, len(it.Question.Options))
		for i, o := range it.Question.Options {
			opts[i], details[i] = o.Text, o.Definition
		}
		s.choice = components.NewMultiChoice(opts, details)
	default:
		s.input = components.NewTextInput("Type your answer...", 200, 40)
	}
}

// acceptsText reports whether keys go to the text input.
func (s *LessonScreen) acceptsText() bool {
	if s.sess == nil || s.judging || s.confirmQuit || s.finished {
		return false
	}
	it, ok := s.sess.Item()
	if !ok {
		return false
	}
	if it.IsPrompt() {
		return s.sess.Status() != session.StatusCorrect && s.sess.Example() == nil
	}
	return it.Question.Kind != content.KindMultipleChoice && s.sess.Status() == session.StatusPending
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sess == nil || s.judging || s.finished {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, tea.Batch(s.save(false), func() tea.Msg { return router.PopScreenMsg{} })
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}
	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.sess.Phase() == session.PhaseLearning {
		switch key {
		case "right", "l", "n", "enter", "space":
			_ = s.sess.Next()
			s.sync()
			return s, s.input.Init()
		case "left", "h", "b":
			_ = s.sess.Back()
		}
		return s, nil
	}

	it, ok := s.sess.Item()
	if !ok {
		return s, nil
	}
	if it.IsPrompt() {
		return s.handlePromptKey(msg)
	}
	return s.handleQuestionKey(it, msg)
}

func (s *LessonScreen) handleQuestionKey(it assessment.Item, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.sess.Status() != session.StatusPending {
		_ = s.sess.Continue()
		return s, s.afterAdvance()
	}

	if it.Question.Kind == content.KindMultipleChoice {
		s.choice, _ = s.choice.Update(msg)
		if i, ok := s.choice.Chosen(); ok {
			return s, s.submit(it.Question.Options[i].Text)
		}
		return s, nil
	}

	if msg.String() == "enter" {
		return s, s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LessonScreen) handlePromptKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch {
	case s.sess.Status() == session.StatusCorrect:
		if key == "enter" {
			_ = s.sess.Continue()
			return s, s.afterAdvance()
		}
		return s, nil
	case s.sess.Example() != nil:
		if key == "enter" || key == "s" {
			_ = s.sess.Skip()
			return s, s.afterAdvance()
		}
		return s, nil
	case key == "ctrl+e":
		if _, err := s.sess.ShowExample(); err != nil {
			s.notice = "Keep trying. An example unlocks after two attempts."
		}
		return s, nil
	case key == "enter":
		return s, s.explain(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LessonScreen) submit(answer string) tea.Cmd {
	if strings.TrimSpace(answer) == "" {
		s.notice = "Type an answer first."
		return nil
	}
	s.judging = true
	sess := s.sess
	return func() tea.Msg {
		_, err := sess.Submit(context.Background(), answer)
		return judgedMsg{Err: err}
	}
}

func (s *LessonScreen) explain(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		s.notice = "Write an explanation first."
		return nil
	}
	s.judging = true
	sess := s.sess
	return func() tea.Msg {
		_, err := sess.Explain(context.Background(), text)
		return judgedMsg{Err: err}
	}
}

func (s *LessonScreen) handleJudged(msg judgedMsg) (screen.Screen, tea.Cmd) {
	s.judging = false
	s.notice = ""
	if msg.Err != nil {
		s.notice = msg.Err.Error()
	}
	s.sync()

	if it, ok := s.sess.Item(); ok {
		if it.IsPrompt() {
			s.input.Reset()
		} else if it.Question.Kind == content.KindMultipleChoice {
			s.choice.Reveal(correctOption(it.Question))
		}
	}
	if s.sess.Finished() {
		return s, s.finish()
	}
	return s, nil
}

// correctOption finds the option matching the correct answer, or -1.
func correctOption(q *content.Question) int {
	for i, o := range q.Options {
		if session.MatchAnswer(o.Text, q.CorrectAnswer) {
			return i
		}
	}
	return -1
}

func (s *LessonScreen) afterAdvance() tea.Cmd {
	if s.sess.Finished() {
		return s.finish()
	}
	s.sync()
	return s.input.Init()
}

// finish saves progress and shows the summary.
func (s *LessonScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true
	s.sync()
	sum := summary.New(s.sess.Summary(), s.sess.ReviewConcepts())
	return tea.Batch(
		s.save(s.sess.Passed()),
		func() tea.Msg { return router.PushScreenMsg{Screen: sum} },
	)
}

// save persists the knowledge graph and, for passed lessons, a history
// entry.
func (s *LessonScreen) save(passed bool) tea.Cmd {
	tracker, hist := s.deps.Tracker, s.deps.History
	sec, d := s.sess.Section(), s.deps.Difficulty
	return func() tea.Msg {
		ctx := context.Background()
		var errs []error
		if tracker != nil {
			errs = append(errs, tracker.Save(ctx))
		}
		if hist != nil && passed {
			hist.Insert(history.NewLesson(sec, d, time.Now()))
			errs = append(errs, hist.Save(ctx))
		}
		return savedMsg{Err: errors.Join(errs...)}
	}
}

func (s *LessonScreen) handleSummaryClosed(msg summary.ClosedMsg) (screen.Screen, tea.Cmd) {
	if !msg.Retry {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if err := s.sess.Retry(); err != nil {
		s.deps.Log.Warn("retry refused", "error", err)
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.finished = false
	s.item = -1
	s.sync()
	return s, s.input.Init()
}
