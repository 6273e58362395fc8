package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "AI tutor for any topic",
	Long: `Lumen generates short lessons on any topic, quizzes you on them and
keeps track of what you know.

Run without arguments for the interactive menu.`,
	SilenceUsage: true,
	RunE:         runMenu,
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./lumen.yaml or the user config dir)")
	pf.String("store", "", "Storage backend: "+store.BackendSQLite+", "+store.BackendFile+", "+store.BackendRedis+" or "+store.BackendMemory)
	pf.String("db", "", "Path to SQLite database file (overrides LUMEN_STORE_DB_PATH)")
	pf.String("data-dir", "", "Directory for the file store")
	pf.String("difficulty", "", "Lesson level: "+difficultyNames())
	pf.String("theme", "", "Color theme: dark or light (remembered for next time)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(knowledgeCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func difficultyNames() string {
	var s string
	for i, d := range content.Difficulties {
		if i > 0 {
			s += ", "
		}
		s += string(d)
	}
	return s
}

var menuOptions = []string{
	"New lesson",
	"Learning queue",
	"History",
	"Knowledge map",
	"Report scan",
	"Exit",
}

// runMenu is the interactive numbered menu.
func runMenu(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
	for {
		c.Println()
		choice, err := c.Choose("Lumen", menuOptions)
		if err != nil {
			return ignoreClosed(err)
		}

		switch choice {
		case 0:
			var topic string
			if topic, err = readTopic(c, "What do you want to learn? "); err == nil {
				err = e.learn(ctx, c, topic)
			}
		case 1:
			err = e.queueMenu(ctx, c)
		case 2:
			err = e.historyMenu(ctx, c)
		case 3:
			e.printKnowledge(c)
		case 4:
			err = e.reportScan(ctx, c)
		default:
			return nil
		}

		switch {
		case errors.Is(err, console.ErrInputClosed):
			return nil
		case errors.Is(err, context.Canceled):
			return err
		case err != nil && !errors.Is(err, console.ErrQuit):
			e.log.Debug("menu action failed", "choice", menuOptions[choice], "error", err)
		}
	}
}
