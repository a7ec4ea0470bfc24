package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skillmatch/backend/config"
	httpDelivery "github.com/skillmatch/backend/internal/delivery/http"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/cache"
	"github.com/skillmatch/backend/internal/infrastructure/document"
	"github.com/skillmatch/backend/internal/infrastructure/jobsource"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/skillmatch/backend/internal/vocabulary"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			srv, cleanup := newServer(cfg, log)
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, srv, log)
		},
	}

	cmd.Flags().String("port", "", "Port to listen on (default from server.port)")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

// newServer wires the dependency graph behind the HTTP API.
// The returned cleanup stops background work owned by the server.
func newServer(cfg *config.Config, log *zap.Logger) (*http.Server, func()) {
	log.Info("starting skillmatch",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)

	var primary domain.JobSource
	if cfg.Jobs.SourceURL != "" {
		primary = jobsource.NewClient(jobsource.Config{
			SourceURL:         cfg.Jobs.SourceURL,
			Timeout:           cfg.Jobs.Timeout,
			RequestsPerSecond: cfg.Jobs.RequestsPerSecond,
			Burst:             cfg.Jobs.Burst,
			MaxRetries:        cfg.Jobs.MaxRetries,
			UserAgent:         cfg.Jobs.UserAgent,
		}, log)
		log.Info("job source configured", zap.String("url", cfg.Jobs.SourceURL))
	} else {
		log.Warn("no job source configured, recommendations use demo jobs")
	}
	jobs := jobsource.NewFallbackSource(primary, log)

	vocab := vocabulary.New()
	log.Info("vocabulary loaded", zap.Int("skills", vocab.Len()))

	// Initialize usecase layer
	service := usecase.NewMatchService(vocab, jobs, memoryCache, matchServiceConfig(cfg), log)

	httpDelivery.RegisterValidators()
	handler := httpDelivery.NewHandler(
		service,
		document.NewExtractor(log),
		memoryCache,
		httpDelivery.HandlerConfig{
			AdditionalLimit: cfg.Matching.AdditionalLimit,
			PreviewLength:   cfg.Matching.PreviewLength,
		},
		log,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           httpDelivery.SetupRouter(cfg, handler, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return srv, func() { _ = memoryCache.Close() }
}

// runServer serves until ctx is done, then shuts down gracefully
func runServer(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
