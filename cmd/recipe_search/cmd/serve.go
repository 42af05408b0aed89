package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/recipe-search/api"
	"github.com/gcbaptista/recipe-search/config"
	"github.com/gcbaptista/recipe-search/internal/analytics"
	"github.com/gcbaptista/recipe-search/internal/engine"
	"github.com/gcbaptista/recipe-search/internal/metrics"
)

const (
	analyticsFile   = "analytics.json"
	shutdownTimeout = 10 * time.Second
)

func newServeCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP search API",
		Long: `Start the HTTP search API.

With corpus.watch enabled (or RECIPE_SEARCH_WATCH=true) the index is
rebuilt whenever the corpus file changes. Search analytics are kept in
the data directory across restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := global.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().String("port", "", "Port to listen on (overrides server.port)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	m := metrics.New()

	eng, err := engine.New(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer eng.Close()

	tracker := analytics.NewService(analytics.DefaultCapacity, filepath.Join(cfg.Index.DataDir, analyticsFile))
	defer func() {
		if err := tracker.Save(); err != nil {
			slog.Warn("failed to save analytics", "error", err)
		}
	}()

	router := gin.Default()
	api.SetupRoutes(router, eng, api.Options{
		Analytics:       tracker,
		Metrics:         m,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
	})

	if cfg.Corpus.Watch {
		go func() {
			if err := eng.Watch(ctx); err != nil {
				slog.Error("corpus watcher stopped", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port, "corpus", cfg.Corpus.Path)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
