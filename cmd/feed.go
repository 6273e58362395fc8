package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/tutor"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show topic ideas drawn from recent news",
	Long: `Show topic ideas drawn from recent news. The last feed is cached;
--refresh asks for a new one and --search adds one card per query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		refresh, _ := cmd.Flags().GetBool("refresh")
		topics, _ := cmd.Flags().GetStringSlice("topic")
		queries, _ := cmd.Flags().GetStringSlice("search")

		items := tutor.LoadFeed(ctx, e.store.Store)
		switch {
		case len(queries) > 0:
			c.Dim("Looking up your searches...")
			more, err := e.tutor.MoreFeed(ctx, queries)
			if err != nil {
				c.Error(tutor.UserMessage(err))
				return err
			}
			items = append(more, items...)
		case refresh || len(items) == 0:
			c.Dim("Gathering fresh topics...")
			existing := make([]string, len(items))
			for i, it := range items {
				existing[i] = it.Title
			}
			fresh, err := e.tutor.Feed(ctx, existing, topics)
			if err != nil {
				c.Error(tutor.UserMessage(err))
				return err
			}
			items = append(fresh, items...)
		}
		if err := tutor.SaveFeed(ctx, e.store.Store, items); err != nil {
			e.log.Warn("saving feed", "error", err)
		}

		printFeed(c, items)
		return nil
	},
}

func init() {
	feedCmd.Flags().Bool("refresh", false, "Generate a new feed")
	feedCmd.Flags().StringSlice("topic", nil, "Categories to draw from (default: "+strings.Join(tutor.ExploreTopics, ", ")+")")
	feedCmd.Flags().StringSlice("search", nil, "Add a card for each query")
}

func printFeed(c *console.Console, items []content.FeedItem) {
	if len(items) == 0 {
		c.Println("Nothing in your feed yet.")
		return
	}
	c.Title("Explore")
	for _, it := range items {
		c.Println()
		c.Printf("%s %s\n", it.Emoji, it.Title)
		if it.Summary != "" {
			c.Dim("   " + it.Summary)
		}
	}
	c.Println()
	c.Dim("Start one with: lumen learn <title>")
}
