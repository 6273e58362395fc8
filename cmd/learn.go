package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
)

var learnCmd = &cobra.Command{
	Use:   "learn <topic>",
	Short: "Generate and take one lesson",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		return ignoreClosed(e.learn(cmd.Context(), c, strings.Join(args, " ")))
	},
}
