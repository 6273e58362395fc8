package tutor

import (
	"context"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/llm"
	"github.com/abhisek/lumen/internal/session"
)

var (
	_ session.AnswerJudge      = (*Service)(nil)
	_ session.ExplanationJudge = (*Service)(nil)
)

type answerVerdict struct {
	IsCorrect bool `json:"isCorrect"`
}

// JudgeAnswer asks the model whether a fill-in-the-blank answer is an
// acceptable alternative to the expected one.
func (s *Service) JudgeAnswer(ctx context.Context, q *content.Question, answer string) (bool, error) {
	req := llm.Request{
		Messages:    userMessage(buildAnswerEvalMessage(q, answer)),
		Schema:      AnswerEvalSchema,
		MaxTokens:   s.cfg.JudgeMaxTokens,
		Temperature: 0,
	}
	v, _, err := generate[answerVerdict](ctx, s, llm.PurposeJudgeAnswer, req)
	if err != nil {
		return false, err
	}
	return v.IsCorrect, nil
}

// JudgeExplanation evaluates a teach-back explanation against the slide
// content it is about and returns in-character feedback.
func (s *Service) JudgeExplanation(ctx context.Context, prompt, answer, reference string) (session.Judgment, error) {
	req := llm.Request{
		System:      explanationSystemPrompt,
		Messages:    userMessage(buildExplanationMessage(prompt, answer, reference)),
		Schema:      ExplanationEvalSchema,
		MaxTokens:   s.cfg.JudgeMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	j, _, err := generate[session.Judgment](ctx, s, llm.PurposeJudgeExplanation, req)
	if err != nil {
		return session.Judgment{}, err
	}
	return j, nil
}
