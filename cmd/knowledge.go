package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/knowledge"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Show how well you know each concept",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		e.printKnowledge(console.New(cmd.InOrStdin(), cmd.OutOrStdout()))
		return nil
	},
}

func (e *env) printKnowledge(c *console.Console) {
	g := e.tracker.ByStatus()
	if len(g.Struggling)+len(g.InProgress)+len(g.Mastered) == 0 {
		c.Println("Your knowledge map is empty. Finish a lesson to start it.")
		return
	}
	c.Title("Knowledge Map")
	if due := e.tracker.Due(); len(due) > 0 {
		c.Println()
		c.Printf("Due for review (%d)\n", len(due))
		for _, it := range due {
			c.Printf("  %s\n", it.ID)
		}
	}
	printConcepts(c, "Needs review", g.Struggling)
	printConcepts(c, "In progress", g.InProgress)
	printConcepts(c, "Mastered", g.Mastered)
}

func printConcepts(c *console.Console, heading string, items []knowledge.Item) {
	if len(items) == 0 {
		return
	}
	c.Println()
	c.Printf("%s (%d)\n", heading, len(items))
	for _, it := range items {
		line := fmt.Sprintf("  %-40s %3d%%", it.ID, it.Strength)
		if it.FailureCount > 0 {
			line += fmt.Sprintf("  %d missed", it.FailureCount)
		}
		c.Println(line)
	}
}
