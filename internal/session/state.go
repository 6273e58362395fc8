package session

import "errors"

// Phase is the coarse position of a lesson.
type Phase int

const (
	PhaseLearning   Phase = iota // Paging through slides
	PhaseAssessment              // Answering questions and teaching prompts
	PhaseFinished                // Summary available
)

func (p Phase) String() string {
	switch p {
	case PhaseLearning:
		return "learning"
	case PhaseAssessment:
		return "assessment"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Status is the answer state of the current assessment item.
type Status int

const (
	StatusPending   Status = iota // Waiting for an answer
	StatusCorrect                 // Answered correctly
	StatusIncorrect               // Answered incorrectly
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

const (
	// InitialHearts is the number of wrong answers a learner may give.
	InitialHearts = 5

	// PointsPerQuestion is awarded for each correct question.
	PointsPerQuestion = 10

	// PointsPerPrompt is awarded for each accepted explanation.
	PointsPerPrompt = 15

	// PerfectBonus is added to a passed lesson finished with full hearts.
	PerfectBonus = 50

	// PassThreshold is the minimum fraction of questions answered correctly.
	PassThreshold = 0.5

	// ExampleAfterFailures is how many rejected explanations unlock the
	// worked example.
	ExampleAfterFailures = 2
)

var (
	ErrWrongPhase       = errors.New("session: not allowed in this phase")
	ErrWrongItem        = errors.New("session: not allowed for this item")
	ErrAlreadyAnswered  = errors.New("session: item already answered")
	ErrNotAnswered      = errors.New("session: item not answered yet")
	ErrEmptyAnswer      = errors.New("session: empty answer")
	ErrExampleLocked    = errors.New("session: example not available yet")
	ErrRetryUnavailable = errors.New("session: retry is only offered after a failed lesson")
)
