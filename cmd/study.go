package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/navigator"
	"github.com/abhisek/lumen/internal/session"
	"github.com/abhisek/lumen/internal/tutor"
)

// learn generates a lesson on topic and plays it. After a passed lesson
// the learner may take another on the same topic, which is generated in
// the background while the current one is played.
func (e *env) learn(ctx context.Context, c *console.Console, topic string) error {
	c.Dim(fmt.Sprintf("Preparing your lesson on %q...", topic))
	sec, err := e.tutor.GenerateLesson(ctx, topic, e.difficulty())
	if err != nil {
		e.log.Error("lesson generation failed", "topic", topic, "error", err)
		c.Error(tutor.UserMessage(err))
		return err
	}

	next := tutor.NewPrefetcher(e.tutor)
	defer next.Cancel()
	for {
		next.Request(ctx, topic, e.difficulty())
		if err := e.playLesson(ctx, c, sec); err != nil {
			return err
		}
		more, err := c.Confirm(fmt.Sprintf("Another lesson on %q?", topic))
		if err != nil || !more {
			return ignoreClosed(err)
		}
		c.Dim("Preparing the next lesson...")
		if sec, err = next.Await(ctx, topic, e.difficulty()); err != nil {
			e.log.Error("lesson generation failed", "topic", topic, "error", err)
			c.Error(tutor.UserMessage(err))
			return err
		}
	}
}

// playLesson plays a standalone lesson and records it in history once
// passed.
func (e *env) playLesson(ctx context.Context, c *console.Console, sec *content.Section) error {
	if err := e.playSection(ctx, c, sec); err != nil {
		return err
	}
	e.history.Insert(history.NewLesson(sec, e.difficulty(), time.Now()))
	e.saveHistory(ctx)
	return nil
}

// playSection runs one lesson and saves knowledge however it ends. A
// lesson that is not passed returns console.ErrNotPassed, quitting early
// console.ErrQuit.
func (e *env) playSection(ctx context.Context, c *console.Console, sec *content.Section) error {
	opts := []session.Option{
		session.WithTracker(e.tracker),
		session.WithLogger(e.log),
		session.WithMetrics(e.metrics),
	}
	if e.tutor != nil {
		opts = append(opts, session.WithAnswerJudge(e.tutor), session.WithExplanationJudge(e.tutor))
	}

	_, err := c.PlayLesson(ctx, session.New(sec, opts...))
	if saveErr := e.tracker.Save(ctx); saveErr != nil {
		e.log.Warn("saving knowledge", "error", saveErr)
	}
	return err
}

// study walks the navigator's curriculum one section at a time, saving
// the position after each lesson so it can be resumed. A section that is
// not passed keeps the position. The course goes into history once its
// last section is passed.
func (e *env) study(ctx context.Context, c *console.Console, nav *navigator.Navigator) error {
	for {
		pos, ok := nav.Position()
		if !ok {
			return nil
		}
		c.Println()
		c.Dim(pos.Curriculum.Title + " · " + nav.Progress().String())

		if err := e.playSection(ctx, c, pos.Current); err != nil {
			if saveErr := nav.Save(ctx); saveErr != nil {
				e.log.Warn("saving curriculum position", "error", saveErr)
			}
			if errors.Is(err, console.ErrNotPassed) || errors.Is(err, console.ErrQuit) {
				c.Dim("Your place is saved. Resume with: lumen curriculum --resume")
			}
			return err
		}

		finished := *pos.Curriculum
		summary, _ := nav.ModuleSummary()
		lastInModule := nav.IsLastSection()
		if lastInModule && nav.HasNextModule() {
			c.Dim("Preparing the next module...")
		}
		adv, err := nav.AdvanceSection(ctx)
		if err != nil {
			e.log.Error("advancing curriculum", "error", err)
			c.Error(tutor.UserMessage(err))
			if saveErr := nav.Save(ctx); saveErr != nil {
				e.log.Warn("saving curriculum position", "error", saveErr)
			}
			return err
		}
		if lastInModule {
			printModuleSummary(c, summary)
			if err := e.offerRelated(ctx, c, pos.Topic); err != nil {
				return err
			}
		}

		switch adv {
		case navigator.Complete:
			c.Success("Curriculum complete!")
			e.history.Insert(history.NewCurriculum(&finished, time.Now()))
			e.saveHistory(ctx)
			return nav.Clear(ctx)
		case navigator.NextChapter:
			c.Success("Chapter complete!")
		}
		if err := nav.Save(ctx); err != nil {
			e.log.Warn("saving curriculum position", "error", err)
		}

		next, err := c.Confirm("Continue to the next section?")
		if err != nil || !next {
			c.Dim("Your place is saved. Resume with: lumen curriculum --resume")
			return ignoreClosed(err)
		}
	}
}

// offerRelated suggests follow-up topics after a module and queues the
// one the learner picks. Without a tutor it does nothing.
func (e *env) offerRelated(ctx context.Context, c *console.Console, topic string) error {
	if e.tutor == nil || topic == "" {
		return nil
	}
	related, err := e.tutor.RelatedTopics(ctx, topic)
	if err != nil {
		e.log.Warn("related topics", "topic", topic, "error", err)
		return nil
	}
	if len(related) == 0 {
		return nil
	}
	options := append(slices.Clone(related), "Skip")
	i, err := c.Choose("Explore next", options)
	if err != nil || i == len(related) {
		return err
	}
	if _, err := e.queue.Add(ctx, related[i]); err != nil {
		c.Error(err.Error())
		return nil
	}
	c.Success(fmt.Sprintf("Queued %q.", related[i]))
	return nil
}

func printModuleSummary(c *console.Console, s navigator.ModuleSummary) {
	if s.Title == "" {
		return
	}
	c.Println()
	if s.Total > 1 {
		c.Success(fmt.Sprintf("Module %d/%d complete: %s", s.Number, s.Total, s.Title))
	} else {
		c.Success("Completed: " + s.Title)
	}
	if s.Summary != "" {
		c.Println(s.Summary)
	}
	for _, p := range s.KeyPoints {
		c.Printf("  - %s\n", p)
	}
}

// ignoreClosed treats the end of input, an early quit and a declined
// retry as a normal stop.
func ignoreClosed(err error) error {
	if errors.Is(err, console.ErrInputClosed) || errors.Is(err, console.ErrQuit) ||
		errors.Is(err, console.ErrNotPassed) {
		return nil
	}
	return err
}

// readTopic asks for a topic until a non-empty one is given.
func readTopic(c *console.Console, label string) (string, error) {
	for {
		topic, err := c.Prompt(label)
		if err != nil {
			return "", err
		}
		if topic = strings.TrimSpace(topic); topic != "" {
			return topic, nil
		}
	}
}
