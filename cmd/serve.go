package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/server"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the graceful drain after a signal.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve the docs site and the block gallery",
	Long: `Serve the docs site, the block gallery and the layout API.

In development the docs directory is watched and open pages reload when a
markdown file changes.

Examples:
  panelkit serve                      # Serve on localhost:8080
  panelkit serve -p 3000              # Serve on another port
  PANELKIT_SERVER_ENVIRONMENT=production panelkit serve`,
	RunE: runServe,
}

var serveFlags *StandardFlags

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags = AddStandardFlags(serveCmd, "server")
	if err := BindServerFlags(serveCmd); err != nil {
		panic(err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !serveFlags.ShouldOpenBrowser() {
		cfg.Server.Open = false
	}

	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	srv := server.New(cfg, server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			return perrors.NewEnhancedError(
				fmt.Sprintf("Failed to start server on %s", srv.Addr()),
				err,
				perrors.ServerStartError(err, cfg.Server.Port),
			)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}
