package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/tutor"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum [file]",
	Short: "Build a course from a text file and study it section by section",
	Long: `Build a course from a notes or text file and study it section by section.

Long files are cut to the first ` + fmt.Sprint(tutor.MaxCurriculumInput) + ` characters. Your place is saved after
every lesson; use --resume to pick up where you left off.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCurriculum,
}

func init() {
	curriculumCmd.Flags().String("topic", "", "Topic name (default: the file name)")
	curriculumCmd.Flags().Bool("resume", false, "Continue the saved course")
	curriculumCmd.Flags().String("chapter", "", "Start at a chapter or section, e.g. 2 or 2.3")
}

func runCurriculum(cmd *cobra.Command, args []string) error {
	resume, _ := cmd.Flags().GetBool("resume")
	if !resume && len(args) == 0 {
		return fmt.Errorf("a file is required unless --resume is set")
	}

	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
	nav := e.navigator(tutor.ModuleFetcher{Service: e.tutor, Difficulty: e.difficulty()})

	if resume {
		if err := nav.Load(ctx); err != nil {
			return fmt.Errorf("load saved course: %w", err)
		}
		if !nav.Active() {
			c.Println("No saved course to resume.")
			return nil
		}
		return ignoreClosed(e.study(ctx, c, nav))
	}

	path, text, err := readSource(c, args[0])
	if err != nil {
		return ignoreClosed(err)
	}
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	cur, err := e.buildCurriculum(ctx, c, text, topic)
	if err != nil {
		return err
	}
	if err := nav.Start([]content.Curriculum{*cur}, cur.Title); err != nil {
		return fmt.Errorf("start course: %w", err)
	}
	if at, _ := cmd.Flags().GetString("chapter"); at != "" {
		chapter, section, err := parseChapter(at)
		if err == nil {
			err = nav.ResetToSection(chapter, section)
		}
		if err != nil {
			return fmt.Errorf("--chapter %s: %w", at, err)
		}
	}
	return ignoreClosed(e.study(ctx, c, nav))
}

// parseChapter reads a one-based "chapter" or "chapter.section" and
// returns zero-based indices.
func parseChapter(s string) (chapter, section int, err error) {
	ch, sec, hasSection := strings.Cut(s, ".")
	chapter, err = strconv.Atoi(ch)
	if err != nil || chapter < 1 {
		return 0, 0, fmt.Errorf("invalid chapter %q", ch)
	}
	section = 1
	if hasSection {
		section, err = strconv.Atoi(sec)
		if err != nil || section < 1 {
			return 0, 0, fmt.Errorf("invalid section %q", sec)
		}
	}
	return chapter - 1, section - 1, nil
}

// readSource reads path. When that fails the user may enter another path;
// a blank reply gives up.
func readSource(c *console.Console, path string) (string, string, error) {
	for {
		raw, err := os.ReadFile(path)
		if err == nil {
			return path, string(raw), nil
		}
		c.Error(fmt.Sprintf("Could not read %s: %v", path, err))
		path, err = c.Prompt("Enter a path to try again (blank to cancel): ")
		if err != nil {
			return "", "", err
		}
		if path == "" {
			return "", "", console.ErrQuit
		}
	}
}

func (e *env) buildCurriculum(ctx context.Context, c *console.Console, text, topic string) (*content.Curriculum, error) {
	if len(text) > tutor.MaxCurriculumInput {
		c.Dim(fmt.Sprintf("The file is long; using the first %d characters.", tutor.MaxCurriculumInput))
	}
	c.Dim(fmt.Sprintf("Designing a course on %q...", topic))
	cur, err := e.tutor.GenerateCurriculum(ctx, text, topic, e.difficulty())
	if err != nil {
		e.log.Error("curriculum generation failed", "topic", topic, "error", err)
		c.Error(tutor.UserMessage(err))
		return nil, err
	}

	c.Title(cur.Title)
	for i, ch := range cur.Chapters {
		c.Printf("  %d. %s (%d sections)\n", i+1, ch.Title, len(ch.Sections))
	}
	return cur, nil
}
