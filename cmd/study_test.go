package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lumen/internal/config"
	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/llm"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/metrics"
	"github.com/abhisek/lumen/internal/queue"
	"github.com/abhisek/lumen/internal/store"
	"github.com/abhisek/lumen/internal/tutor"
)

func testEnv(t *testing.T, tut *tutor.Service) *env {
	t.Helper()
	st := store.NewMemory()
	log := logger.Nop()
	return &env{
		cfg:     &config.Config{},
		log:     log,
		metrics: metrics.New(),
		store:   &store.Opened{Store: st, Events: store.NewMemoryEventRepo()},
		tutor:   tut,
		history: history.New(st, log),
		tracker: knowledge.NewTracker(st, knowledge.WithLogger(log)),
		queue:   queue.New(st, log),
	}
}

func capitalSection(title string) content.Section {
	return content.Section{
		Title:           title,
		Summary:         "Capitals of Europe.",
		KeyPoints:       []string{"Paris is in France."},
		BiasAnalysis:    "Objective.",
		Slides:          []content.LearningSlide{{Title: "France", Content: "The capital is [[Paris]]."}},
		TeachingPrompts: []content.TeachingPrompt{},
		Questions: []content.Question{{
			Text:          "What is the capital of France?",
			Kind:          content.KindMultipleChoice,
			Options:       []content.Option{{Text: "Paris", Definition: "A city"}, {Text: "London", Definition: "Another city"}},
			CorrectAnswer: "Paris",
			Explanation:   "It is [[Paris]].",
		}},
	}
}

func twoSectionCourse() content.Curriculum {
	return content.Curriculum{
		Title:   "Capitals",
		Summary: "European capitals.",
		Chapters: []content.Chapter{{
			Title:    "West",
			Sections: []content.Section{capitalSection("S1"), capitalSection("S2")},
		}},
	}
}

func input(in ...string) *strings.Reader {
	return strings.NewReader(strings.Join(in, "\n") + "\n")
}

func TestStudy_FailedSectionKeepsPosition(t *testing.T) {
	e := testEnv(t, nil)
	var out bytes.Buffer
	c := console.New(input(
		"", "London", "", // slide, wrong answer, continue
		"n", // no retry
	), &out)

	nav := e.navigator(nil)
	require.NoError(t, nav.Start([]content.Curriculum{twoSectionCourse()}, "Capitals"))
	err := e.study(t.Context(), c, nav)
	require.ErrorIs(t, err, console.ErrNotPassed)
	assert.NoError(t, ignoreClosed(err))

	assert.Contains(t, out.String(), "Your place is saved.")
	assert.NotContains(t, out.String(), "Continue to the next section?")
	assert.Equal(t, 0, e.history.Len(), "a failed section went into history")

	saved := e.navigator(nil)
	require.NoError(t, saved.Load(t.Context()))
	pos, ok := saved.Position()
	require.True(t, ok)
	assert.Equal(t, "S1", pos.Current.Title)
}

func TestStudy_CourseRecordedOnceCompleted(t *testing.T) {
	e := testEnv(t, nil)
	var out bytes.Buffer
	c := console.New(input(
		"", "Paris", "",
		"y",
		"", "Paris", "",
	), &out)

	nav := e.navigator(nil)
	require.NoError(t, nav.Start([]content.Curriculum{twoSectionCourse()}, "Capitals"))
	require.NoError(t, e.study(t.Context(), c, nav))

	assert.Contains(t, out.String(), "Curriculum complete!")
	items := e.history.List()
	require.Len(t, items, 1, "sections must not be recorded as lessons")
	assert.Equal(t, history.KindCurriculum, items[0].Kind)
	assert.Equal(t, "Capitals", items[0].Curriculum.Title)
	assert.False(t, nav.Active())
}

func TestStudy_MidCourseStopRecordsNothing(t *testing.T) {
	e := testEnv(t, nil)
	c := console.New(input("", "Paris", "", "n"), &bytes.Buffer{})

	nav := e.navigator(nil)
	require.NoError(t, nav.Start([]content.Curriculum{twoSectionCourse()}, "Capitals"))
	require.NoError(t, e.study(t.Context(), c, nav))

	assert.Equal(t, 0, e.history.Len())
	pos, ok := nav.Position()
	require.True(t, ok)
	assert.Equal(t, "S2", pos.Current.Title)
}

func TestOfferRelated_QueuesPick(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"topics":["Berlin","Madrid"]}`)})
	e := testEnv(t, tutor.New(mock, tutor.DefaultConfig(), nil))
	var out bytes.Buffer
	c := console.New(input("2"), &out)

	require.NoError(t, e.offerRelated(t.Context(), c, "Capitals"))
	assert.Contains(t, out.String(), "Explore next")
	assert.Contains(t, out.String(), `Queued "Madrid".`)

	pending, err := e.queue.Pending(t.Context())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Madrid", pending[0].Topic)
}

func TestOfferRelated_Skip(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"topics":["Berlin"]}`)})
	e := testEnv(t, tutor.New(mock, tutor.DefaultConfig(), nil))
	c := console.New(input("2"), &bytes.Buffer{})

	require.NoError(t, e.offerRelated(t.Context(), c, "Capitals"))
	pending, err := e.queue.Pending(t.Context())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLearn_AnotherLessonIsPrefetched(t *testing.T) {
	var responses []llm.MockResponse
	for i := range 3 {
		b, err := json.Marshal(capitalSection(fmt.Sprintf("Capitals %d", i+1)))
		require.NoError(t, err)
		responses = append(responses, llm.MockResponse{Content: b})
	}
	mock := llm.NewMockProvider(responses...)
	e := testEnv(t, tutor.New(mock, tutor.DefaultConfig(), nil))
	var out bytes.Buffer
	c := console.New(input(
		"", "Paris", "",
		"y",
		"", "Paris", "",
		"n",
	), &out)

	require.NoError(t, e.learn(t.Context(), c, "Capitals"))
	assert.Contains(t, out.String(), `Another lesson on "Capitals"?`)

	items := e.history.List()
	require.Len(t, items, 2)
	assert.Equal(t, "Capitals 2", items[0].Title)
	assert.Equal(t, "Capitals 1", items[1].Title)
}

func TestLearn_FailedLessonNotRecorded(t *testing.T) {
	b, err := json.Marshal(capitalSection("Capitals"))
	require.NoError(t, err)
	mock := llm.NewMockProvider(llm.MockResponse{Content: b}, llm.MockResponse{Content: b})
	e := testEnv(t, tutor.New(mock, tutor.DefaultConfig(), nil))
	c := console.New(input("", "London", "", "n"), &bytes.Buffer{})

	err = e.learn(t.Context(), c, "Capitals")
	require.ErrorIs(t, err, console.ErrNotPassed)
	assert.Equal(t, 0, e.history.Len())
}

func TestParseChapter(t *testing.T) {
	tests := []struct {
		in               string
		chapter, section int
		wantErr          bool
	}{
		{"2", 1, 0, false},
		{"2.3", 1, 2, false},
		{"1.1", 0, 0, false},
		{"0", 0, 0, true},
		{"x", 0, 0, true},
		{"2.", 0, 0, true},
		{"2.0", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ch, sec, err := parseChapter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.chapter, ch)
			assert.Equal(t, tt.section, sec)
		})
	}
}
