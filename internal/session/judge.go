package session

import (
	"context"
	"strings"

	"github.com/abhisek/lumen/internal/content"
)

// Judgment is the verdict on a learner's explanation.
type Judgment struct {
	Correct  bool   `json:"isCorrect"`
	Feedback string `json:"feedback"`
}

// AnswerJudge decides free-text fill-in-the-blank answers.
type AnswerJudge interface {
	JudgeAnswer(ctx context.Context, q *content.Question, answer string) (bool, error)
}

// ExplanationJudge decides whether an explanation shows understanding of
// the slide it is about. context is the slide content.
type ExplanationJudge interface {
	JudgeExplanation(ctx context.Context, prompt, answer, context string) (Judgment, error)
}

const (
	fallbackAccepted = "Nice, that covers the key idea!"
	fallbackRejected = "Not quite. Take another look at the hint and try again."
)

// MatchAnswer is the deterministic answer check: trimmed, case-insensitive
// equality.
func MatchAnswer(answer, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(correct))
}

// MatchExplanation is the deterministic explanation check used when no
// judge is available. The explanation must mention one of the slide's
// reveal terms or, failing that, one of the longer words of its title.
func MatchExplanation(slide *content.LearningSlide, answer string) Judgment {
	if slide == nil {
		return Judgment{Correct: strings.TrimSpace(answer) != "", Feedback: fallbackAccepted}
	}
	lower := strings.ToLower(answer)

	keys := content.RevealTerms(slide.Content)
	if len(keys) == 0 {
		for _, w := range strings.Fields(slide.Title) {
			w = strings.Trim(w, ".,:;!?()\"'")
			if len([]rune(w)) > 3 {
				keys = append(keys, w)
			}
		}
	}
	for _, k := range keys {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return Judgment{Correct: true, Feedback: fallbackAccepted}
		}
	}
	return Judgment{Correct: false, Feedback: fallbackRejected}
}
