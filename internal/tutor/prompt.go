package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/llm"
)

// ArticleSeparator divides a streamed article's markdown from its JSON
// metadata.
const ArticleSeparator = "|||JSON_SEPARATOR|||"

// Input limits applied before text is embedded in a prompt.
const (
	MaxCurriculumInput = 20000
	MaxArticleInput    = 15000
)

const designerSystemPrompt = `You are an expert curriculum designer who writes accurate, engaging lessons pitched exactly at the learner's level.`

func mathGuideline(topic string) string {
	if content.IsMathTopic(topic) {
		return "- The questions should be a mix of 'multiple-choice', 'fill-in-the-blank', and 'math-interaction' types."
	}
	return "- This topic is NOT mathematical. You MUST NOT generate any questions with the 'math-interaction' type. Only use 'multiple-choice' and 'fill-in-the-blank' question types. This is a very strict rule."
}

func schemaJSON(s *llm.Schema) string {
	b, err := json.MarshalIndent(s.Definition, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

const sectionGuidelines = `- The lesson must have a clear title.
- Generate a 'summary', a list of 3-5 'keyPoints', and a 'biasAnalysis'.
- Create 3-5 engaging 'learningMaterial' slides. Each slide teaches one small, digestible concept. Mark key terms as [[highlighted words]].
- Create 1-2 'teachingPrompts' asking the learner to explain a concept back in their own words.
- Create exactly %d 'questions'. This is a hard requirement.
%s
- For 'multiple-choice', provide 4 distinct options, each with 'text' and a short 'definition'.
- For 'fill-in-the-blank', 'questionText' must be a complete sentence with '___' marking the blank, plus a short descriptive 'title'.
- Every question and teaching prompt needs a valid 'relatedSlideIndex' pointing into 'learningMaterial'.
- Explanations should be clear and also use [[highlighted words]].
- For 'math-interaction', provide 'interactionType' and 'initialState':
  - 'equation-balancer' needs 'leftSide' and 'rightSide'; the correctAnswer is 'x=VALUE'.
  - 'calculation-pad' needs 'expression'.
  - 'graphing-canvas' needs an 'equation' like 'y = 2x - 1' or a 'prompt' to plot a point.
  - 'geometric-sandbox' needs 'geometricTask' and 'initialObjects'.
  - 'calculus-visualizer' needs 'calculusTask' and 'functionString'.`

func buildLessonMessage(topic string, d content.Difficulty, questions int, grounded bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a single, self-contained lesson about %q for a student at the %q level.\n", topic, d)
	if grounded {
		b.WriteString("You MUST use Google Search to ground the lesson so it is factually accurate and up to date.\n\n")
		b.WriteString("Your response MUST be a single, valid JSON object that adheres strictly to this JSON schema. Do not include any other text.\n\n")
		b.WriteString("JSON Schema:\n")
		b.WriteString(schemaJSON(SectionSchema))
		b.WriteString("\n")
	}
	b.WriteString("\nGuidelines:\n")
	fmt.Fprintf(&b, sectionGuidelines, questions, mathGuideline(topic))
	b.WriteString("\n- The content must be factually accurate and appropriate for the difficulty level.")
	return b.String()
}

func buildCurriculumMessage(text, topic string, d content.Difficulty, questions int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following text about %q, create a single, comprehensive curriculum module for a student at the %q level.\n\n", topic, d)
	b.WriteString("Text content to analyze:\n---\n")
	b.WriteString(content.Truncate(text, MaxCurriculumInput))
	b.WriteString("\n---\n\nGuidelines:\n")
	b.WriteString("- Give the curriculum a clear title, an overall 'summary', 3-5 'keyPoints' and a 'biasAnalysis'.\n")
	b.WriteString("- Divide the content into a logical sequence of 2-4 'chapters', each with 2-4 'sections'.\n")
	b.WriteString("- Each section follows these rules:\n")
	fmt.Fprintf(&b, sectionGuidelines, questions, mathGuideline(topic))
	return b.String()
}

func buildModulesMessage(article, topic string, d content.Difficulty, questions int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following article about %q, create a learning path of 2-3 distinct curriculum modules for a student at the %q level. Each module builds on the last.\n\n", topic, d)
	b.WriteString("Article content:\n---\n")
	b.WriteString(content.Truncate(article, MaxArticleInput))
	b.WriteString("\n---\n\nGuidelines for each module:\n")
	fmt.Fprintf(&b, "- Title it as a continuation of the topic, like \"%s - Part 1: <focus>\".\n", topic)
	b.WriteString("- Each module has 2-3 chapters; each chapter has 2-4 sections.\n")
	b.WriteString("- Each section follows these rules:\n")
	fmt.Fprintf(&b, sectionGuidelines, questions, mathGuideline(topic))
	return b.String()
}

func buildModuleMessage(topic string, index int, outline content.Curriculum, d content.Difficulty, questions int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create part %d of a learning path about %q for a student at the %q level.\n", index+1, topic, d)
	fmt.Fprintf(&b, "The module is titled %q.\n", outline.Title)
	if outline.Summary != "" {
		fmt.Fprintf(&b, "It should cover: %s\n", outline.Summary)
	}
	for _, kp := range outline.KeyPoints {
		fmt.Fprintf(&b, "- %s\n", kp)
	}
	b.WriteString("\nGuidelines:\n- Use 2-3 chapters with 2-4 sections each.\n- Each section follows these rules:\n")
	fmt.Fprintf(&b, sectionGuidelines, questions, mathGuideline(topic))
	return b.String()
}

func buildRelatedMessage(topic string) string {
	return fmt.Sprintf("Based on the learning topic %q, suggest 3-5 related but distinct topics a curious student might want to explore next as separate lessons.", topic)
}

func buildAnswerEvalMessage(q *content.Question, answer string) string {
	return fmt.Sprintf(`You evaluate fill-in-the-blank answers. Be lenient with synonyms, capitalization and minor spelling errors.

The full sentence with the blank is: %q
The expected correct answer is: %q
The user's answer to fill the blank is: %q

Is the user's answer a correct and acceptable alternative to the expected answer in the context of the sentence?`, q.Text, q.CorrectAnswer, answer)
}

const explanationSystemPrompt = `You are playing a curious but smart young child in an educational app. The user is trying to teach you a concept.`

func buildExplanationMessage(prompt, answer, reference string) string {
	return fmt.Sprintf(`The concept you asked about: %q
The correct information (for your reference): %q
The user's explanation to you: %q

First decide whether the explanation is fundamentally correct, clear and easy to understand. Then write a short, in-character response.

Feedback guidelines:
- If correct: be happy and confirm understanding, e.g. "Oh, I get it now! So it's like..."
- If incorrect or confusing: be gentle and say what confuses you without being discouraging, e.g. "Hmm, I'm a little confused. You said ..., but I thought..."`, prompt, reference, answer)
}

func buildArticleMessage(title, summary string) string {
	return fmt.Sprintf(`Write a comprehensive, well-structured and engaging article about %q.
Use this summary as a starting point: %q
The article should be around 800-1000 words. Use Google Search to ground it so it is factually accurate and up to date.

First, write the full article in Markdown. Use headings (##, ###), lists and bold text.

After the article is COMPLETELY finished, output the delimiter %s on a new line.

Immediately after the delimiter, output a single valid JSON object that adheres strictly to this JSON schema, with no other text around it:
%s`, title, summary, ArticleSeparator, schemaJSON(ArticleMetaSchema))
}

func buildFeedMessage(existing, topics []string, count int, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "First, use Google Search to find the latest news and trends from the last 7 days (as of %s) in these categories: %s.\n\n",
		now.Format("2006-01-02"), strings.Join(topics, ", "))
	fmt.Fprintf(&b, "Based only on those results, generate %d fascinating and diverse topics. Titles should make the reader curious; summaries must be factual.\n", count)
	if len(existing) > 0 {
		b.WriteString("\nDo NOT generate topics with these titles:\n")
		for _, t := range existing {
			fmt.Fprintf(&b, "- %q\n", t)
		}
	}
	b.WriteString("\nYour response MUST be a single, valid JSON object that adheres strictly to this JSON schema. Do not include any other text.\n\nJSON Schema:\n")
	b.WriteString(schemaJSON(FeedSchema))
	return b.String()
}

func buildFeedItemMessage(query string) string {
	return fmt.Sprintf("A user searched for: %q. Generate a single compelling feed card for it. The title should spark curiosity and the summary give an engaging overview.", query)
}

const chatSystemPrompt = `You are a helpful, knowledgeable assistant discussing one topic with a learner. Be friendly and conversational, and give clear, concise explanations. Use Markdown when it helps.`

func buildChatSystem(topic string) string {
	return chatSystemPrompt + "\n\nMain topic context: " + topic
}
