package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/config"
	"github.com/abhisek/edupath/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the learning path HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			v.Set("server.addr", addr)
		}

		e, err := setup(setupOptions{console: true})
		if err != nil {
			return err
		}
		defer e.Close()

		deps := server.Deps{
			Paths:    e.store.PathRepo(),
			Progress: e.store.ProgressRepo(),
			Logger:   e.logger,
		}
		orch, err := e.orchestrator(cmd.Context())
		switch {
		case err == nil:
			deps.Generator = orch
		case errors.Is(err, config.ErrNoProvider):
			e.logger.Warn("no LLM provider configured; POST /api/paths is disabled")
		default:
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e.logger.Info("starting server",
			zap.String("addr", e.cfg.Server.Addr),
			zap.String("mode", e.cfg.Server.Mode))
		return server.New(e.cfg.Server, deps).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
