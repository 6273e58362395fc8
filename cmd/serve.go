package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lessons, history and knowledge over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := e.cfg.Server
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		srv := server.New(cfg, server.Deps{
			Tutor:      e.tutor,
			History:    e.history,
			Knowledge:  e.tracker,
			Queue:      e.queue,
			Store:      e.store.Store,
			Metrics:    e.metrics,
			Log:        e.log,
			Difficulty: e.difficulty(),
		})
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr)")
}
