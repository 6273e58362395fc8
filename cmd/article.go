package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/navigator"
	"github.com/abhisek/lumen/internal/tutor"
)

var articleCmd = &cobra.Command{
	Use:   "article <topic>",
	Short: "Read a researched article, then study it as a course",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		topic := strings.Join(args, " ")
		c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())

		c.Title(topic)
		c.Println()
		article, err := e.tutor.StreamArticle(ctx, topic, "", func(prose string) {
			c.Printf("%s", prose)
		})
		c.Println()
		switch {
		case errors.Is(err, tutor.ErrNoMetadata):
			e.log.Warn("article without metadata", "topic", topic)
		case err != nil:
			e.log.Error("article failed", "topic", topic, "error", err)
			c.Error(tutor.UserMessage(err))
			return err
		}
		printArticleMeta(c, article)

		study, err := c.Confirm("\nTurn this article into a course?")
		if err != nil || !study {
			return ignoreClosed(err)
		}

		c.Dim("Planning the modules...")
		modules, err := e.tutor.ModulesFromArticle(ctx, article, topic, e.difficulty())
		if err != nil {
			e.log.Error("article modules failed", "topic", topic, "error", err)
			c.Error(tutor.UserMessage(err))
			return err
		}
		nav := e.navigator(tutor.ModuleFetcher{Service: e.tutor, Difficulty: e.difficulty()})
		if err := nav.Start(modules, topic); err != nil {
			return fmt.Errorf("start course: %w", err)
		}
		if err := chooseModule(ctx, c, nav, modules); err != nil {
			return ignoreClosed(err)
		}
		return ignoreClosed(e.study(ctx, c, nav))
	},
}

// chooseModule lets the learner start the course at any module. Later
// modules are generated when picked.
func chooseModule(ctx context.Context, c *console.Console, nav *navigator.Navigator, modules []content.Curriculum) error {
	if len(modules) < 2 {
		return nil
	}
	options := make([]string, len(modules))
	for i, m := range modules {
		options[i] = m.Title
	}
	i, err := c.Choose("Start with which module?", options)
	if err != nil || i == 0 {
		return err
	}
	c.Dim("Preparing the module...")
	if err := nav.JumpToModule(ctx, i); err != nil {
		if ctx.Err() != nil {
			return err
		}
		c.Error(tutor.UserMessage(err))
		c.Dim("Starting with the first module instead.")
	}
	return nil
}

func printArticleMeta(c *console.Console, a *content.Article) {
	if a == nil {
		return
	}
	if len(a.KeyPoints) > 0 {
		c.Println()
		c.Title("Key points")
		for _, p := range a.KeyPoints {
			c.Printf("  - %s\n", p)
		}
	}
	if a.BiasAnalysis != "" {
		c.Println()
		c.Title("Perspective")
		c.Println(a.BiasAnalysis)
	}
	if len(a.Sources) > 0 {
		c.Println()
		c.Title("Sources")
		for _, s := range a.Sources {
			c.Printf("  - %s %s\n", s.Title, s.URI)
		}
	}
}
