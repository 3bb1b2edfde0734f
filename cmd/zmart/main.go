// Package main точка входа бинарника zmart.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zmart/internal/config"
	"zmart/internal/describe"
	"zmart/internal/events"
	httpapi "zmart/internal/http"
	"zmart/internal/metrics"
	"zmart/internal/repository"
	"zmart/internal/service"

	_ "zmart/docs"
)

const (
	Version = "0.1.0"
	appName = "zmart"
)

// @title zmart API
// @version 1.0
// @description Storefront state: catalog, cart, orders and seller inventory.
// @host localhost:9091
// @BasePath /api/v1
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	serve := func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(configPath, logLevel)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg, logger)
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Storefront state server",
		Long: `zmart keeps the storefront state (catalog, session, cart, orders, filters)
as one snapshot, applies intents to it and persists every change.`,
		SilenceUsage: true,
		RunE:         serve,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  serve,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Overwrite the stored snapshot with the default state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(configPath, logLevel)
			if err != nil {
				return err
			}
			return reset(cmd.Context(), cfg, logger)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func setup(configPath, logLevel string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.NewLoader(nil).Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blobs, closeBlobs, err := openBlobs(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeBlobs()

	var publisher events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		p, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			// уведомления необязательны
			logger.Warn("nats unavailable, state events disabled", slog.String("error", err.Error()))
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	var gen describe.Generator = describe.Static(describe.FallbackError)
	if cfg.LLM.APIKey != "" {
		gen = describe.NewClient(describe.Config{
			BaseURL: cfg.LLM.Endpoint,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Info("no llm api key, descriptions use the fallback text")
	}

	store := service.OpenStore(ctx, repository.NewSnapshots(blobs, cfg.Storage.Key, logger),
		service.WithEvents(publisher),
		service.WithMetrics(metrics.New()),
		service.WithLogger(logger),
	)

	srv := httpapi.NewServer(httpapi.Services{
		Store:    store,
		Sessions: service.NewSessionService(store),
		Products: service.NewProductService(store, gen),
		Cart:     service.NewCartService(store),
		Orders:   service.NewOrderService(store),
	}, cfg.HTTP.AllowedOrigins, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: srv.Engine(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr), slog.String("version", Version))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	return nil
}

func reset(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	blobs, closeBlobs, err := openBlobs(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeBlobs()

	store := service.OpenStore(ctx, repository.NewSnapshots(blobs, cfg.Storage.Key, logger), service.WithLogger(logger))
	if _, err := store.Reset(ctx); err != nil {
		return err
	}
	logger.Info("state reset to defaults", slog.String("driver", cfg.Storage.Driver), slog.String("key", cfg.Storage.Key))
	return nil
}

// openBlobs открывает хранилище по драйверу из конфига
func openBlobs(ctx context.Context, cfg config.StorageConfig) (repository.BlobStore, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewMemoryBlobStore(), noop, nil
	case config.DriverFile:
		fs, err := repository.NewFileBlobStore(cfg.Dir)
		if err != nil {
			return nil, noop, fmt.Errorf("open file storage: %w", err)
		}
		return fs, noop, nil
	case config.DriverPostgres:
		pg, err := repository.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		return pg, closer(pg), nil
	case config.DriverMongo:
		m, err := repository.OpenMongo(ctx, cfg.DSN, cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("open mongo: %w", err)
		}
		return m, closer(m), nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func closer(c repository.Closer) func() {
	return func() {
		if err := c.Close(context.Background()); err != nil {
			slog.Warn("storage close failed", slog.String("error", err.Error()))
		}
	}
}
