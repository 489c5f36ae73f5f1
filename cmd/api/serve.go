package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/vehicle-insurance-api/internal/clients"
	"github.com/tbourn/vehicle-insurance-api/internal/config"
	httpapi "github.com/tbourn/vehicle-insurance-api/internal/http"
	"github.com/tbourn/vehicle-insurance-api/internal/observability"
	"github.com/tbourn/vehicle-insurance-api/internal/repo"
	"github.com/tbourn/vehicle-insurance-api/internal/services"
	"github.com/tbourn/vehicle-insurance-api/internal/sysutil"
)

func serveCmd() *cobra.Command {
	var purgeEvery time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until SIGINT or SIGTERM.

Configuration comes from the environment, an optional .env file and an
optional YAML file named by CONFIG_FILE.

Examples:
  vehicle-insurance-api serve
  DB_DRIVER=postgres DATABASE_URL=postgres://... vehicle-insurance-api serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, purgeEvery)
		},
	}
	cmd.Flags().DurationVar(&purgeEvery, "purge-interval", time.Hour, "how often expired idempotency keys are purged (0 disables)")
	return cmd
}

// serve blocks until ctx is done, then drains in-flight requests for at
// most cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg config.Config, purgeEvery time.Duration) error {
	sysutil.ConfigureLogging(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	shutdownTracing, err := observability.Setup(ctx, cfg.OTEL, version())
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	hc := upstreamClient()
	history := services.NewHistoryService(
		clients.NewDrivingHistoryClient(cfg.DrivingHistoryBaseURL, hc),
		clients.NewClaimsHistoryClient(cfg.ClaimsHistoryURL, hc),
	)

	r := gin.New()
	httpapi.RegisterRoutes(r, db, history, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	if purgeEvery > 0 {
		go purgeLoop(ctx, db, purgeEvery)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("db_driver", cfg.DBDriver).
			Str("base_path", cfg.APIBasePath).
			Str("version", version()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// upstreamClient is shared by the history lookups. It sets no deadline of its
// own; only the transport defaults and the request context apply.
func upstreamClient() *http.Client {
	return &http.Client{Transport: http.DefaultTransport}
}

func openStore(cfg config.Config) (*gorm.DB, error) {
	db, err := repo.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func purgeLoop(ctx context.Context, db *gorm.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("expired idempotency keys removed")
			}
		}
	}
}
