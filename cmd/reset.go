package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learner data",
	Long:  "Erase history, the knowledge map, the saved course, the feed and the learning queue.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			ok, err := c.Confirm("Erase all learner data?")
			if err != nil || !ok {
				return ignoreClosed(err)
			}
		}
		if err := e.store.Store.Delete(cmd.Context(), store.AllKeys...); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		e.log.Info("learner data reset", "keys", len(store.AllKeys))
		fmt.Fprintln(cmd.OutOrStdout(), "All learner data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
