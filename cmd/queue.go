package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/queue"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show topics waiting to be learned",
	RunE: func(cmd *cobra.Command, args []string) error {
		return queueListCmd.RunE(cmd, args)
	},
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the learning queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		entries, err := e.queue.List(cmd.Context())
		if err != nil {
			return err
		}
		printQueue(console.New(cmd.InOrStdin(), cmd.OutOrStdout()), entries)
		return nil
	},
}

var queueAddCmd = &cobra.Command{
	Use:   "add <topic>",
	Short: "Add a topic to the learning queue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		entry, err := e.queue.Add(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Queued %q.\n", entry.Topic)
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueAddCmd)
}

func printQueue(c *console.Console, entries []queue.Entry) {
	if len(entries) == 0 {
		c.Println("The learning queue is empty.")
		return
	}
	c.Title("Learning queue")
	for i, en := range entries {
		mark := " "
		if en.Status == queue.StatusDone {
			mark = "✓"
		}
		added := time.UnixMilli(en.AddedAt).Format("Jan 02")
		c.Printf("  %s %2d. %-40s %s\n", mark, i+1, en.Topic, added)
	}
}

// queueMenu starts the next queued topic or adds a new one.
func (e *env) queueMenu(ctx context.Context, c *console.Console) error {
	pending, err := e.queue.Pending(ctx)
	if err != nil {
		c.Error(err.Error())
		return err
	}
	printQueue(c, pending)

	options := []string{"Add a topic", "Back"}
	if len(pending) > 0 {
		options = append([]string{"Start: " + pending[0].Topic}, options...)
	}
	i, err := c.Choose("", options)
	if err != nil {
		return err
	}
	switch options[i] {
	case "Add a topic":
		topic, err := readTopic(c, "Topic: ")
		if err != nil {
			return err
		}
		if _, err := e.queue.Add(ctx, topic); err != nil {
			c.Error(err.Error())
			return err
		}
		c.Success(fmt.Sprintf("Queued %q.", topic))
	case "Back":
	default:
		next := pending[0]
		if err := e.queue.MarkDone(ctx, next.ID); err != nil {
			c.Error(err.Error())
			return err
		}
		return e.learn(ctx, c, next.Topic)
	}
	return nil
}
