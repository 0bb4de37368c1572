// Command ledgerd serves the step rewards ledger over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/api"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell/config"
)

const instrumentationName = "github.com/AntonStoeckl/steps-rewards-ledger-go"

func main() {
	if err := run(); err != nil {
		log.Fatalf("ledgerd failed: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the YAML config file")
	observabilityEnabled := flag.Bool("observability-enabled", false, "export traces and metrics via OTLP")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *observabilityEnabled {
		cfg.Observability.Enabled = true
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observers := api.Observers{Logger: logger}
	var storeLogger eventstore.ContextualLogger
	if cfg.Observability.Enabled {
		providers, providerErr := config.NewObservabilityProviders(ctx, cfg.Observability)
		if providerErr != nil {
			return providerErr
		}
		defer func() {
			if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
				logger.Warn("shutting down observability providers failed", "error", shutdownErr)
			}
		}()

		observers = api.Observers{
			Metrics:          oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName)),
			Tracing:          oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName)),
			ContextualLogger: oteladapters.NewSlogBridgeLogger(instrumentationName),
		}
		storeLogger = oteladapters.NewOTelLogger(providers.LoggerProvider.Logger(instrumentationName + "/eventstore"))
	}

	eventStore, closeStore, err := openEventStore(ctx, cfg, logger, observers, storeLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	handlers, err := api.NewHandlers(eventStore, api.Settings{
		DailyGoal:          cfg.Ledger.DailyGoal,
		MinimumStepDelta:   cfg.Ledger.MinimumStepDelta,
		CommandTimeout:     cfg.Ledger.CommandTimeout,
		MaxRetryAttempts:   cfg.Ledger.MaxRetryAttempts,
		RedemptionValidity: cfg.Ledger.RedemptionValidity,
		Logger:             logger,
	}).Observed(observers)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewServer(handlers, api.WithLogger(logger)).Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("ledgerd listening", "addr", cfg.HTTP.Addr, "postgres", cfg.UsesPostgres())
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil

	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// openEventStore builds the postgres engine with the configured driver, or the memory engine without a DSN.
func openEventStore(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	observers api.Observers,
	storeLogger eventstore.ContextualLogger,
) (api.EventStore, func(), error) {

	if !cfg.UsesPostgres() {
		logger.Warn("no postgres dsn configured, events are kept in memory")

		return memoryengine.NewEventStore(memoryengine.WithLogger(logger)), func() {}, nil
	}

	options := []postgresengine.Option{
		postgresengine.WithLogger(logger),
		postgresengine.WithMetrics(observers.Metrics),
		postgresengine.WithTracing(observers.Tracing),
	}
	if cfg.Postgres.TableName != "" {
		options = append(options, postgresengine.WithTableName(cfg.Postgres.TableName))
	}
	if storeLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(storeLogger))
	}

	var eventStore *postgresengine.EventStore
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	switch cfg.Postgres.Driver {
	case config.DriverSQLDB:
		db, err := config.OpenSQLDB(ctx, cfg.Postgres, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close() })

		eventStore, err = postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			closeAll()
			return nil, nil, err
		}

	case config.DriverSQLX:
		db, err := config.OpenSQLX(ctx, cfg.Postgres, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close() })

		eventStore, err = postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			closeAll()
			return nil, nil, err
		}

	default:
		pool, err := config.NewPGXPool(ctx, cfg.Postgres, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pool.Close)

		if cfg.Postgres.ReplicaDSN == "" {
			eventStore, err = postgresengine.NewEventStoreFromPGXPool(pool, options...)
		} else {
			replica, replicaErr := config.NewPGXPool(ctx, cfg.Postgres, cfg.Postgres.ReplicaDSN)
			if replicaErr != nil {
				closeAll()
				return nil, nil, replicaErr
			}
			closers = append(closers, replica.Close)

			eventStore, err = postgresengine.NewEventStoreFromPGXPoolAndReplica(pool, replica, options...)
		}
		if err != nil {
			closeAll()
			return nil, nil, err
		}
	}

	if cfg.Postgres.CreateSchema {
		if err := eventStore.CreateSchema(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("preparing the events table: %w", err)
		}
	}

	return eventStore, closeAll, nil
}
