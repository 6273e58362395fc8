package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/llm"
)

// GenerateLesson creates one section about topic. Levels that use search
// are grounded and carry the pages consulted as sources.
func (s *Service) GenerateLesson(ctx context.Context, topic string, d content.Difficulty) (*content.Section, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("lesson topic is empty")
	}
	grounded := d.UsesSearch()
	req := llm.Request{
		System:      designerSystemPrompt,
		Messages:    userMessage(buildLessonMessage(topic, d, s.cfg.Questions, grounded)),
		Schema:      SectionSchema,
		Grounding:   grounded,
		MaxTokens:   s.cfg.LessonMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	sec, sources, err := generate[content.Section](ctx, s, llm.PurposeLesson, req)
	if err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		sec.Sources = sources
	}
	s.log.Info("lesson generated", "topic", topic, "difficulty", d.String(),
		"slides", len(sec.Slides), "questions", len(sec.Questions), "sources", len(sec.Sources))
	return &sec, nil
}

// GenerateCurriculum turns uploaded text into a curriculum module. Text
// beyond MaxCurriculumInput bytes is ignored.
func (s *Service) GenerateCurriculum(ctx context.Context, text, topic string, d content.Difficulty) (*content.Curriculum, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("curriculum source text is empty")
	}
	req := llm.Request{
		System:      designerSystemPrompt,
		Messages:    userMessage(buildCurriculumMessage(text, topic, d, s.cfg.Questions)),
		Schema:      CurriculumSchema,
		MaxTokens:   s.cfg.CurriculumMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	c, sources, err := generate[content.Curriculum](ctx, s, llm.PurposeCurriculum, req)
	if err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		c.Sources = sources
	}
	s.log.Info("curriculum generated", "topic", topic, "chapters", len(c.Chapters), "sections", c.SectionCount())
	return &c, nil
}

type modulesOutput struct {
	Modules []content.Curriculum `json:"modules"`
}

func (m *modulesOutput) Validate() error {
	if len(m.Modules) == 0 {
		return errors.New("no modules")
	}
	for i := range m.Modules {
		if err := m.Modules[i].Validate(); err != nil {
			return fmt.Errorf("module %d: %w", i+1, err)
		}
	}
	return nil
}

// ModulesFromArticle cuts an article into a learning path of curriculum
// modules. Article text beyond MaxArticleInput bytes is ignored.
func (s *Service) ModulesFromArticle(ctx context.Context, article *content.Article, topic string, d content.Difficulty) ([]content.Curriculum, error) {
	req := llm.Request{
		System:      designerSystemPrompt,
		Messages:    userMessage(buildModulesMessage(article.Content, topic, d, s.cfg.Questions)),
		Schema:      ModulesSchema,
		MaxTokens:   s.cfg.CurriculumMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	out, _, err := generate[modulesOutput](ctx, s, llm.PurposeModules, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("article modules generated", "topic", topic, "modules", len(out.Modules))
	return out.Modules, nil
}

// ModuleFetcher adapts a Service to fetch outline-only modules at a fixed
// difficulty.
type ModuleFetcher struct {
	Service    *Service
	Difficulty content.Difficulty
}

// FetchModule generates the full content for an outline module.
func (f ModuleFetcher) FetchModule(ctx context.Context, topic string, index int, outline content.Curriculum) (*content.Curriculum, error) {
	s := f.Service
	req := llm.Request{
		System:      designerSystemPrompt,
		Messages:    userMessage(buildModuleMessage(topic, index, outline, f.Difficulty, s.cfg.Questions)),
		Schema:      CurriculumSchema,
		MaxTokens:   s.cfg.CurriculumMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	c, _, err := generate[content.Curriculum](ctx, s, "module", req)
	if err != nil {
		return nil, err
	}
	if c.Title == "" {
		c.Title = outline.Title
	}
	return &c, nil
}

type relatedOutput struct {
	Topics []string `json:"topics"`
}

// RelatedTopics suggests follow-up topics.
func (s *Service) RelatedTopics(ctx context.Context, topic string) ([]string, error) {
	req := llm.Request{
		Messages:    userMessage(buildRelatedMessage(topic)),
		Schema:      RelatedTopicsSchema,
		MaxTokens:   s.cfg.JudgeMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	out, _, err := generate[relatedOutput](ctx, s, llm.PurposeRelated, req)
	if err != nil {
		return nil, err
	}
	topics := out.Topics[:0]
	for _, t := range out.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics, nil
}
