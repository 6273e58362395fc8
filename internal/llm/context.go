package llm

import "context"

// Purposes label calls in the request log and in metrics.
const (
	PurposeLesson           = "lesson"
	PurposeCurriculum       = "curriculum"
	PurposeArticle          = "article"
	PurposeModules          = "modules"
	PurposeRelated          = "related"
	PurposeJudgeAnswer      = "judge_answer"
	PurposeJudgeExplanation = "judge_explanation"
	PurposeFeed             = "feed"
	PurposeFeedItem         = "feed_item"
	PurposeChat             = "chat"

	purposeUnlabelled = "unknown"
)

type purposeKey struct{}

// WithPurpose labels every call made with the returned context.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return purposeUnlabelled
}
