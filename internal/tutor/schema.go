package tutor

import "github.com/abhisek/lumen/internal/llm"

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func strArray(desc string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": desc}
}

var slideSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":                str("A concise and engaging title for the learning slide."),
		"content":              str("The main educational content for the slide, written clearly and simply. Use [[highlighted words]] to emphasize key terms."),
		"visualAidDescription": str("Optional: a brief description of a helpful diagram or image for this slide."),
	},
	"required": []any{"title", "content"},
}

var teachingPromptSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"promptText":        str("A question asking the learner to explain a concept from one of the slides in their own words."),
		"relatedSlideIndex": map[string]any{"type": "integer", "description": "Index of the learning slide this prompt relates to."},
	},
	"required": []any{"promptText", "relatedSlideIndex"},
}

var geoObjectSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type":     map[string]any{"type": "string", "enum": []any{"point", "line", "polygon"}},
		"id":       str("A unique identifier for the object."),
		"x":        map[string]any{"type": "number"},
		"y":        map[string]any{"type": "number"},
		"label":    str("A visual label for a point, e.g. 'A'."),
		"p1Id":     str("For a line, the ID of the starting point."),
		"p2Id":     str("For a line, the ID of the ending point."),
		"pointIds": strArray("For a polygon, the ordered point IDs of its vertices."),
	},
	"required": []any{"type", "id"},
}

var mathStateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"expression":     str("Calculation pad: expression to evaluate, e.g. \"15 * 4\"."),
		"leftSide":       str("Equation balancer: left side, e.g. \"3x + 5\"."),
		"rightSide":      str("Equation balancer: right side, e.g. \"11\"."),
		"equation":       str("Graphing canvas: line to graph, e.g. \"y = 2x - 1\"."),
		"prompt":         str("Graphing canvas or others: an instruction, e.g. \"Plot the point (3, -2)\"."),
		"geometricTask":  map[string]any{"type": "string", "enum": []any{"MEASURE_ANGLE", "CONSTRUCT_SHAPE", "TRANSFORM_SHAPE"}},
		"initialObjects": map[string]any{"type": "array", "items": geoObjectSchema},
		"calculusTask":   map[string]any{"type": "string", "enum": []any{"DERIVATIVE", "INTEGRAL", "LIMIT"}},
		"functionString": str("Calculus visualizer: the function, e.g. \"Math.sin(x)\"."),
		"integralRange":  map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
		"limitPoint":     map[string]any{"type": "number"},
	},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":        str("For fill-in-the-blank: a short title summarizing the question's point."),
		"questionText": str("The question. For fill-in-the-blank use \"___\" for the blank."),
		"questionType": map[string]any{
			"type": "string",
			"enum": []any{"multiple-choice", "fill-in-the-blank", "math-interaction"},
		},
		"interactionType": map[string]any{
			"type": "string",
			"enum": []any{"calculation-pad", "equation-balancer", "graphing-canvas", "geometric-sandbox", "calculus-visualizer"},
		},
		"initialState": mathStateSchema,
		"options": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":       str("The selectable option text."),
					"definition": str("A brief definition or explanation of the option."),
				},
				"required": []any{"text", "definition"},
			},
			"description": "Four options for multiple-choice questions.",
		},
		"correctAnswer":     str("The correct answer. For multiple-choice it matches one option's text."),
		"explanation":       str("Why the answer is correct. Use [[highlighted words]] for key terms."),
		"relatedSlideIndex": map[string]any{"type": "integer"},
	},
	"required": []any{"questionText", "questionType", "correctAnswer", "explanation", "relatedSlideIndex"},
}

var sectionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":            str("A title for this lesson."),
		"summary":          str("A one-paragraph summary of the lesson."),
		"keyPoints":        strArray("3-5 key takeaways."),
		"biasAnalysis":     str("A neutral analysis of any political, ideological or cultural bias in the topic. If none, say the content is objective."),
		"learningMaterial": map[string]any{"type": "array", "items": slideSchema, "description": "3-5 learning slides."},
		"teachingPrompts":  map[string]any{"type": "array", "items": teachingPromptSchema, "description": "1-2 teaching prompts."},
		"questions":        map[string]any{"type": "array", "items": questionSchema},
	},
	"required": []any{"title", "summary", "keyPoints", "biasAnalysis", "learningMaterial", "teachingPrompts", "questions"},
}

var curriculumDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":        str("A title for this curriculum module."),
		"summary":      str("A one-paragraph summary of the module."),
		"keyPoints":    strArray("3-5 key takeaways for the module."),
		"biasAnalysis": str("A neutral analysis of any bias in the curriculum. If none, say it is objective."),
		"chapters": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":    str("Title of the chapter."),
					"sections": map[string]any{"type": "array", "items": sectionDefinition, "description": "2-4 sections."},
				},
				"required": []any{"title", "sections"},
			},
		},
	},
	"required": []any{"title", "summary", "keyPoints", "biasAnalysis", "chapters"},
}

var feedItemDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":   str("A compelling, curiosity-provoking title that hints at a surprising fact."),
		"summary": str("A factual 70-80 word summary that delivers on the title."),
		"emoji":   str("A single emoji representing the topic."),
		"color":   str("A background color class such as 'bg-blue-500'."),
	},
	"required": []any{"title", "summary", "emoji", "color"},
}

// SectionSchema is a single lesson.
var SectionSchema = &llm.Schema{
	Name:        "lesson_section",
	Description: "A self-contained lesson with slides, teaching prompts and questions",
	Definition:  sectionDefinition,
}

// CurriculumSchema is a curriculum module of chapters and sections.
var CurriculumSchema = &llm.Schema{
	Name:        "curriculum",
	Description: "A curriculum module of chapters, each with lesson sections",
	Definition:  curriculumDefinition,
}

// ModulesSchema is a learning path of 2-3 curriculum modules.
var ModulesSchema = &llm.Schema{
	Name:        "curriculum_modules",
	Description: "A learning path of curriculum modules cut from an article",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"modules": map[string]any{"type": "array", "items": curriculumDefinition, "description": "2-3 modules."},
		},
		"required": []any{"modules"},
	},
}

// RelatedTopicsSchema lists follow-up topics.
var RelatedTopicsSchema = &llm.Schema{
	Name:        "related_topics",
	Description: "Related but distinct topics to study next",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": strArray("3-5 related but distinct topics."),
		},
		"required": []any{"topics"},
	},
}

// AnswerEvalSchema is the verdict on a fill-in-the-blank answer.
var AnswerEvalSchema = &llm.Schema{
	Name:        "answer_evaluation",
	Description: "Whether a fill-in-the-blank answer is acceptable",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{"type": "boolean", "description": "True if the answer is semantically correct for the blank."},
		},
		"required": []any{"isCorrect"},
	},
}

// ExplanationEvalSchema is the verdict on a teach-back explanation.
var ExplanationEvalSchema = &llm.Schema{
	Name:        "explanation_evaluation",
	Description: "Whether an explanation shows understanding, with in-character feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{"type": "boolean", "description": "True if the explanation is correct and clear."},
			"feedback":  str("Short, friendly feedback from a curious child character."),
		},
		"required": []any{"isCorrect", "feedback"},
	},
}

// FeedSchema is a batch of feed cards.
var FeedSchema = &llm.Schema{
	Name:        "feed",
	Description: "Interesting and novel topics to explore",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedItems": map[string]any{"type": "array", "items": feedItemDefinition},
		},
		"required": []any{"feedItems"},
	},
}

// FeedItemSchema is a single feed card.
var FeedItemSchema = &llm.Schema{
	Name:        "feed_item",
	Description: "One topic card",
	Definition:  feedItemDefinition,
}

// ArticleMetaSchema is the JSON that follows an article's prose.
var ArticleMetaSchema = &llm.Schema{
	Name:        "article_metadata",
	Description: "Summary, key points and bias analysis of an article",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":      str("A detailed summary of the article, about 200 words."),
			"keyPoints":    strArray("5-7 key takeaways."),
			"biasAnalysis": str("A neutral analysis of any bias in the article. If none, say it is objective."),
		},
		"required": []any{"summary", "keyPoints", "biasAnalysis"},
	},
}
