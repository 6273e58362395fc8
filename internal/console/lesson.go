package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/lumen/internal/assessment"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/session"
	"github.com/abhisek/lumen/internal/ui/theme"
)

var (
	// ErrQuit is returned when the learner leaves a lesson early.
	ErrQuit = errors.New("lesson ended early")
	// ErrNotPassed is returned when the learner fails a lesson and
	// declines to try again.
	ErrNotPassed = errors.New("lesson not passed")
)

const (
	quitCommand    = ":q"
	exampleCommand = ":example"
)

// highlight renders [[marked]] terms in the accent color.
func highlight(s string) string {
	for _, term := range content.RevealTerms(s) {
		s = strings.ReplaceAll(s, "[["+term+"]]", theme.Highlight.Render(term))
	}
	return s
}

// PlayLesson walks the learner through sess until it finishes. A failed
// lesson is offered again; declining returns ErrNotPassed. The returned
// result is from the last attempt, and with ErrQuit it reflects the
// progress made before quitting.
func (c *Console) PlayLesson(ctx context.Context, sess *session.Session) (session.Result, error) {
	c.Println()
	c.Title(sess.Section().Title)
	for {
		if err := c.play(ctx, sess); err != nil {
			return sess.Summary(), err
		}
		res := sess.Summary()
		c.printSummary(res, sess.ReviewConcepts())
		if res.Passed {
			return res, nil
		}
		again, err := c.Confirm("Try the lesson again?")
		if errors.Is(err, ErrInputClosed) || (err == nil && !again) {
			return res, ErrNotPassed
		}
		if err != nil {
			return res, err
		}
		if err := sess.Retry(); err != nil {
			return res, err
		}
	}
}

func (c *Console) play(ctx context.Context, sess *session.Session) error {
	for !sess.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if sess.Phase() == session.PhaseLearning {
			err = c.slide(sess)
		} else if it, ok := sess.Item(); ok && it.IsPrompt() {
			err = c.prompt(ctx, sess, it)
		} else if ok {
			err = c.question(ctx, sess, it)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) slide(sess *session.Session) error {
	sl := sess.Slide()
	if sl == nil {
		return sess.Next()
	}
	c.Println()
	c.Title(fmt.Sprintf("Slide %d/%d · %s", sess.SlideIndex()+1, len(sess.Section().Slides), sl.Title))
	c.Println(highlight(sl.Content))
	if sl.VisualAid != "" {
		c.Dim("Picture this: " + sl.VisualAid)
	}
	reply, err := c.Prompt(theme.Dim.Render("[Enter] next  [b] back  [:q] quit ") + " ")
	if err != nil {
		return err
	}
	switch strings.ToLower(reply) {
	case "b":
		return sess.Back()
	case quitCommand:
		return ErrQuit
	}
	return sess.Next()
}

func (c *Console) status(sess *session.Session, label string) {
	c.Println()
	c.Title(fmt.Sprintf("%s %d/%d", label, sess.ItemIndex()+1, len(sess.Items())))
	c.Dim(fmt.Sprintf("♥ %d  ★ %d pts", sess.Hearts(), sess.Points()))
}

func (c *Console) question(ctx context.Context, sess *session.Session, it assessment.Item) error {
	q := it.Question
	c.status(sess, "Question")
	c.Println(q.Text)
	if st := q.InitialState; st != nil {
		for _, line := range []string{st.Expression, st.Equation, st.FunctionString, st.Prompt} {
			if line != "" {
				c.Println("  " + line)
			}
		}
	}
	for i, o := range q.Options {
		c.Printf("  %d) %s\n", i+1, o.Text)
	}

	for {
		reply, err := c.Prompt("\nYour answer: ")
		if err != nil {
			return err
		}
		if reply == quitCommand {
			return ErrQuit
		}
		correct, err := sess.Submit(ctx, optionAnswer(q, reply))
		if errors.Is(err, session.ErrEmptyAnswer) {
			c.Dim("Type an answer, or :q to quit.")
			continue
		}
		if err != nil {
			return err
		}
		if correct {
			c.Success("Correct!")
		} else {
			c.Error("Not quite.")
			c.Println("Correct answer: " + q.CorrectAnswer)
		}
		break
	}

	if q.Explanation != "" {
		c.Println(q.Explanation)
	}
	if rs := sess.ReviewSlide(); rs != nil {
		c.Dim(fmt.Sprintf("Review %q: %s", rs.Title, content.StripReveal(rs.Content)))
	}
	if sess.Finished() {
		if sess.Hearts() <= 0 {
			c.Error("Out of hearts.")
		}
		return nil
	}
	if _, err := c.Prompt(theme.Dim.Render("Press Enter to continue...")); err != nil {
		return err
	}
	return sess.Continue()
}

// optionAnswer maps an option number to its text for multiple-choice
// questions. Other replies are returned unchanged.
func optionAnswer(q *content.Question, reply string) string {
	if q.Kind != content.KindMultipleChoice {
		return reply
	}
	n, err := strconv.Atoi(reply)
	if err != nil || n < 1 || n > len(q.Options) {
		return reply
	}
	return q.Options[n-1].Text
}

func (c *Console) prompt(ctx context.Context, sess *session.Session, it assessment.Item) error {
	c.status(sess, "Teach it back")
	c.Println(it.Prompt.Text)

	for {
		reply, err := c.Prompt("\nYour explanation: ")
		if err != nil {
			return err
		}
		switch {
		case reply == quitCommand:
			return ErrQuit
		case strings.EqualFold(reply, exampleCommand):
			if !sess.ExampleAvailable() {
				c.Dim(fmt.Sprintf("The example unlocks after %d attempts.", session.ExampleAfterFailures))
				continue
			}
			return c.example(sess)
		}

		j, err := sess.Explain(ctx, reply)
		if errors.Is(err, session.ErrEmptyAnswer) {
			c.Dim("Explain it in your own words, or :q to quit.")
			continue
		}
		if err != nil {
			return err
		}
		if j.Correct {
			c.Success(fmt.Sprintf("Well explained! +%d points", session.PointsPerPrompt))
			if j.Feedback != "" {
				c.Println(j.Feedback)
			}
			if _, err := c.Prompt(theme.Dim.Render("Press Enter to continue...")); err != nil {
				return err
			}
			return sess.Continue()
		}
		c.Error("Not there yet.")
		if j.Feedback != "" {
			c.Println(j.Feedback)
		}
		if sess.ExampleAvailable() {
			c.Dim("Stuck? Type " + exampleCommand + " to see a worked example.")
		}
	}
}

func (c *Console) example(sess *session.Session) error {
	ex, err := sess.ShowExample()
	if err != nil {
		return err
	}
	if ex != nil {
		c.Title("Example: " + ex.Title)
		c.Println(highlight(ex.Content))
	}
	if _, err := c.Prompt(theme.Dim.Render("Press Enter to move on...")); err != nil {
		return err
	}
	return sess.Skip()
}

func (c *Console) printSummary(res session.Result, review []string) {
	c.Println()
	if res.Passed {
		c.Success("Lesson complete!")
	} else {
		c.Error("Not passed yet.")
	}
	c.Printf("Score:  %d/%d (%d%%)\n", res.Correct, res.Total, res.Percent())
	if res.Bonus > 0 {
		c.Printf("Points: %d (+%d perfect bonus)\n", res.Points, res.Bonus)
	} else {
		c.Printf("Points: %d\n", res.Points)
	}
	c.Printf("Hearts: %d\n", res.Hearts)
	if len(review) > 0 {
		c.Println()
		c.Title("Worth another look")
		for _, r := range review {
			c.Printf("  - %s\n", r)
		}
	}
}
