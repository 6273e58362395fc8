package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/decode"
	"github.com/abhisek/lumen/internal/llm"
)

// ErrNoMetadata is returned when a streamed article never reaches the
// separator. The prose already delivered is still valid.
var ErrNoMetadata = errors.New("article ended without metadata")

type articleMeta struct {
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"keyPoints"`
	BiasAnalysis string   `json:"biasAnalysis"`
}

// StreamArticle writes a grounded article about title. Markdown is passed
// to onProse as it arrives; the JSON metadata after ArticleSeparator is
// decoded once the stream ends. The returned article carries both.
func (s *Service) StreamArticle(ctx context.Context, title, summary string, onProse func(string)) (*content.Article, error) {
	split := decode.NewSplitter(ArticleSeparator)
	emit := func(text string) {
		if text != "" && onProse != nil {
			onProse(text)
		}
	}

	req := llm.Request{
		Messages:    userMessage(buildArticleMessage(title, summary)),
		Grounding:   true,
		MaxTokens:   s.cfg.ArticleMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	resp, err := llm.Stream(llm.WithPurpose(ctx, llm.PurposeArticle), s.provider, req, func(chunk string) error {
		emit(split.Write(chunk))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("article: %w", err)
	}
	emit(split.Flush())

	article := &content.Article{
		Title:   title,
		Content: strings.TrimSpace(split.Prose()),
		Sources: toSources(resp.Sources),
	}
	if !split.Found() {
		return article, ErrNoMetadata
	}
	meta, err := decode.DecodeWith[articleMeta](split.JSON(), ArticleMetaSchema.Name, ArticleMetaSchema.Definition)
	if err != nil {
		return article, fmt.Errorf("article metadata: %w", err)
	}
	article.Summary = meta.Summary
	article.KeyPoints = meta.KeyPoints
	article.BiasAnalysis = meta.BiasAnalysis
	s.log.Info("article streamed", "title", title, "chars", len(article.Content), "sources", len(article.Sources))
	return article, nil
}
