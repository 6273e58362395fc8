package lesson

import "github.com/abhisek/lumen/internal/content"

// lessonReadyMsg carries a generated lesson.
type lessonReadyMsg struct {
	Section *content.Section
	Err     error
}

// judgedMsg is sent once an answer or explanation has been applied to the
// session.
type judgedMsg struct {
	Err error
}

// savedMsg reports that progress was persisted.
type savedMsg struct {
	Err error
}
