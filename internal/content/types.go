package content

// QuestionKind is the assessment style of a question.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple-choice"
	KindFillBlank      QuestionKind = "fill-in-the-blank"
	KindMath           QuestionKind = "math-interaction"
)

// Interaction is the widget a math-interaction question is answered with.
type Interaction string

const (
	InteractionCalculationPad     Interaction = "calculation-pad"
	InteractionEquationBalancer   Interaction = "equation-balancer"
	InteractionGraphingCanvas     Interaction = "graphing-canvas"
	InteractionGeometricSandbox   Interaction = "geometric-sandbox"
	InteractionCalculusVisualizer Interaction = "calculus-visualizer"
)

// Source is a citation attached to a search-grounded response.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// LearningSlide is one unit of teaching material. Content may mark key
// terms with [[double brackets]].
type LearningSlide struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	VisualAid string `json:"visualAidDescription,omitempty"`
}

// Option is a selectable multiple-choice answer.
type Option struct {
	Text       string `json:"text"`
	Definition string `json:"definition"`
}

// GeoObject is a point, line or polygon placed in a geometric sandbox.
type GeoObject struct {
	Type     string   `json:"type"`
	ID       string   `json:"id"`
	X        float64  `json:"x,omitempty"`
	Y        float64  `json:"y,omitempty"`
	Label    string   `json:"label,omitempty"`
	P1ID     string   `json:"p1Id,omitempty"`
	P2ID     string   `json:"p2Id,omitempty"`
	PointIDs []string `json:"pointIds,omitempty"`
}

// MathState is the initial configuration of a math-interaction widget.
// Only the fields relevant to the question's Interaction are set.
type MathState struct {
	Expression     string      `json:"expression,omitempty"`
	LeftSide       string      `json:"leftSide,omitempty"`
	RightSide      string      `json:"rightSide,omitempty"`
	Equation       string      `json:"equation,omitempty"`
	Prompt         string      `json:"prompt,omitempty"`
	GeometricTask  string      `json:"geometricTask,omitempty"`
	InitialObjects []GeoObject `json:"initialObjects,omitempty"`
	CalculusTask   string      `json:"calculusTask,omitempty"`
	FunctionString string      `json:"functionString,omitempty"`
	IntegralRange  []float64   `json:"integralRange,omitempty"`
	LimitPoint     *float64    `json:"limitPoint,omitempty"`
}

// Question is a gradable assessment item.
type Question struct {
	Title         string       `json:"title,omitempty"`
	Text          string       `json:"questionText"`
	Kind          QuestionKind `json:"questionType"`
	Interaction   Interaction  `json:"interactionType,omitempty"`
	InitialState  *MathState   `json:"initialState,omitempty"`
	Options       []Option     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	RelatedSlide  int          `json:"relatedSlideIndex"`
}

// TeachingPrompt asks the learner to explain a slide back in their own words.
// It has no answer key; a judge compares the explanation to the slide.
type TeachingPrompt struct {
	Text         string `json:"promptText"`
	RelatedSlide int    `json:"relatedSlideIndex"`
}

// Section is one learning + quiz unit. Sections are immutable once
// generated and identified by title.
type Section struct {
	Title           string           `json:"title"`
	Summary         string           `json:"summary,omitempty"`
	KeyPoints       []string         `json:"keyPoints,omitempty"`
	BiasAnalysis    string           `json:"biasAnalysis,omitempty"`
	Slides          []LearningSlide  `json:"learningMaterial"`
	TeachingPrompts []TeachingPrompt `json:"teachingPrompts"`
	Questions       []Question       `json:"questions"`
	Sources         []Source         `json:"sources,omitempty"`
}

// Chapter is an ordered group of sections.
type Chapter struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Curriculum is a full course: ordered chapters of ordered sections.
type Curriculum struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	KeyPoints    []string  `json:"keyPoints,omitempty"`
	BiasAnalysis string    `json:"biasAnalysis,omitempty"`
	Chapters     []Chapter `json:"chapters"`
	Sources      []Source  `json:"sources,omitempty"`
}

// Article is a long-form markdown piece with trailing metadata.
type Article struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"keyPoints"`
	BiasAnalysis string   `json:"biasAnalysis"`
	Sources      []Source `json:"sources,omitempty"`
}

// FeedItem is a teaser card for a topic the learner might explore.
type FeedItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Emoji   string `json:"emoji"`
	Color   string `json:"color"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatUser  ChatRole = "user"
	ChatModel ChatRole = "model"
)

// ChatMessage is one turn in a topic chat.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// Slide returns the slide at i, or nil when i is out of range.
func (s *Section) Slide(i int) *LearningSlide {
	if i < 0 || i >= len(s.Slides) {
		return nil
	}
	return &s.Slides[i]
}

// SectionCount returns the total number of sections across all chapters.
func (c *Curriculum) SectionCount() int {
	n := 0
	for _, ch := range c.Chapters {
		n += len(ch.Sections)
	}
	return n
}
