package handlers

import (
	"aineoo/internal/logger"
	"aineoo/internal/server"
	"aineoo/internal/store"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local asset browser",
		Long: `Serve generated articles over HTTP.

The server provides:
  • /api/articles and /api/articles/{slug} for stored articles
  • /api/articles/{slug}/quality to re-score an article
  • /articles/{slug}/preview for dry-run previews
  • /api/runs for run history
  • /health and /metrics

Examples:
  # Start server on default port 8080
  aineoo serve

  # Start on custom port
  aineoo serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 127.0.0.1)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	cfg := appConfig
	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	var history server.History
	st, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		logger.Warn("Run history unavailable, /api/runs disabled", "error", err.Error())
	} else {
		defer func() { _ = st.Close() }()
		history = st
	}

	srv := server.New(cfg.Publish.OutputDir, history, serverCfg)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on http://%s:%d", serverCfg.Host, serverCfg.Port))
		logger.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		logger.Info("Server shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("Server stopped successfully")
	}

	return nil
}
