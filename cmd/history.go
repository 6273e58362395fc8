package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past lessons and courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListCmd.RunE(cmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past lessons and courses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		printHistory(console.New(cmd.InOrStdin(), cmd.OutOrStdout()), e.history.List())
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget past lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if err := e.history.Clear(ctx); err != nil {
			return err
		}
		if all, _ := cmd.Flags().GetBool("all"); all {
			if err := e.tracker.Reset(ctx); err != nil {
				return err
			}
			if err := e.navigator(nil).Clear(ctx); err != nil {
				return fmt.Errorf("clear course position: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History, knowledge map and saved course cleared.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func init() {
	historyClearCmd.Flags().Bool("all", false, "Also reset the knowledge map and the saved course")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func historyLabel(it history.Item) string {
	kind := "Lesson"
	if it.Kind == history.KindCurriculum {
		kind = "Course"
	}
	return fmt.Sprintf("%s  %-6s  %s", it.Time().Format("Jan 02, 2006"), kind, it.Title)
}

func printHistory(c *console.Console, items []history.Item) {
	if len(items) == 0 {
		c.Println("No lessons yet. Start learning!")
		return
	}
	c.Title("History")
	for i, it := range items {
		c.Printf("  %2d. %s\n", i+1, historyLabel(it))
	}
}

// historyMenu lets the learner replay a past lesson or restart a past
// course.
func (e *env) historyMenu(ctx context.Context, c *console.Console) error {
	items := e.history.List()
	if len(items) == 0 {
		c.Println("No lessons yet. Start learning!")
		return nil
	}
	options := make([]string, 0, len(items)+1)
	for _, it := range items {
		options = append(options, historyLabel(it))
	}
	options = append(options, "Back")

	i, err := c.Choose("History", options)
	if err != nil || i == len(items) {
		return err
	}
	it := items[i]
	switch {
	case it.Kind == history.KindLesson && it.Lesson != nil:
		return e.playLesson(ctx, c, it.Lesson)
	case it.Curriculum != nil:
		nav := e.navigator(nil)
		if err := nav.Start([]content.Curriculum{*it.Curriculum}, it.Curriculum.Title); err != nil {
			c.Error("This course has no lessons to study.")
			return nil
		}
		return e.study(ctx, c, nav)
	}
	return nil
}
