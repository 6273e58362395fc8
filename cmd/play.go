package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/app"
	"github.com/abhisek/lumen/internal/screens/home"
	"github.com/abhisek/lumen/internal/ui/theme"
)

var playCmd = &cobra.Command{
	Use:   "play [topic]",
	Short: "Open the full-screen lesson player",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		return app.Run(app.Options{
			Home: home.Deps{
				Lesson:  e.lessonDeps(),
				History: e.history,
				Tracker: e.tracker,
				Queue:   e.queue,
			},
			Topic: strings.Join(args, " "),
			SaveTheme: func(m theme.Mode) error {
				return e.saveTheme(context.Background(), m)
			},
		})
	},
}
