package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/config"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/domain/seed"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
	"github.com/mamadbah2/herdbook/internal/repository/postgres"
	"github.com/mamadbah2/herdbook/internal/repository/sheets"
	"github.com/mamadbah2/herdbook/internal/repository/sqlite"
	"github.com/mamadbah2/herdbook/internal/scheduler"
	"github.com/mamadbah2/herdbook/internal/server/handlers"
	"github.com/mamadbah2/herdbook/internal/server/router"
	animalsvc "github.com/mamadbah2/herdbook/internal/service/animals"
	commandsvc "github.com/mamadbah2/herdbook/internal/service/commands"
	financesvc "github.com/mamadbah2/herdbook/internal/service/finance"
	healthsvc "github.com/mamadbah2/herdbook/internal/service/health"
	pasturesvc "github.com/mamadbah2/herdbook/internal/service/pastures"
	reportingsvc "github.com/mamadbah2/herdbook/internal/service/reporting"
	"github.com/mamadbah2/herdbook/pkg/clients/anthropic"
	"github.com/mamadbah2/herdbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewWithLevel(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg, baseLogger.Named("repo.store"))
	if err != nil {
		baseLogger.Fatal("failed to init store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeBackend()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	backend = kv.Instrument(kv.WithLatency(backend, cfg.Store.Latency), kv.NewMetrics(registry))

	var (
		animalSeed  []models.Animal
		ledgerSeed  []models.FinancialRecord
		pastureSeed []models.Pasture
	)
	if cfg.Store.SeedDemo {
		animalSeed, ledgerSeed, pastureSeed = seed.Animals(), seed.Finance(), seed.Pastures()
	}

	var mirror financesvc.Mirror
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		mirror = sheets.NewLedgerMirror(sheetsRepo)
		baseLogger.Info("ledger mirror enabled")
	}

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey, cfg.AI.BaseURL)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, assistant endpoints disabled")
	}

	animalService := animalsvc.NewService(backend, animalSeed, baseLogger.Named("svc.animals"))
	healthService := healthsvc.NewService(backend, nil, baseLogger.Named("svc.health"))
	financeService := financesvc.NewService(backend, ledgerSeed, mirror, baseLogger.Named("svc.finance"))
	pastureService := pasturesvc.NewService(backend, pastureSeed, baseLogger.Named("svc.pastures"))
	reportingService := reportingsvc.NewService(animalService, pastureService, healthService, financeService, baseLogger.Named("svc.reporting"))
	commandDispatcher := commandsvc.NewService(animalService, pastureService, financeService, reportingService, baseLogger.Named("svc.commands"))

	engine := router.New(router.Handlers{
		Animals:  handlers.NewAnimalHandler(animalService, aiClient, baseLogger.Named("handlers.animals")),
		Health:   handlers.NewHealthHandler(healthService, baseLogger.Named("handlers.health")),
		Finance:  handlers.NewFinanceHandler(financeService, baseLogger.Named("handlers.finance")),
		Pastures: handlers.NewPastureHandler(pastureService, baseLogger.Named("handlers.pastures")),
		Insights: handlers.NewInsightsHandler(reportingService, aiClient, baseLogger.Named("handlers.insights")),
		Commands: handlers.NewCommandHandler(commandDispatcher, baseLogger.Named("handlers.commands")),
	}, registry, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingService, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openBackend returns the configured store and a func releasing it.
func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (kv.Backend, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return kv.NewMemoryBackend(), noop, nil
	case config.DriverFile:
		b, err := kv.NewFileBackend(cfg.Store.Path)
		if err != nil {
			return nil, noop, err
		}
		log.Info("file store ready", zap.String("root", b.Root()))
		return b, noop, nil
	case config.DriverSQLite:
		b, err := sqlite.NewBackend(ctx, filepath.Join(cfg.Store.Path, "herdbook.db"), log)
		if err != nil {
			return nil, noop, err
		}
		return b, func() {
			if err := b.Close(); err != nil {
				log.Error("failed to close sqlite store", zap.Error(err))
			}
		}, nil
	case config.DriverPostgres:
		b, err := postgres.NewBackend(ctx, cfg.Store.PostgresDSN, log)
		if err != nil {
			return nil, noop, err
		}
		return b, func() {
			if err := b.Close(); err != nil {
				log.Error("failed to close postgres store", zap.Error(err))
			}
		}, nil
	case config.DriverMongoDB:
		b, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, noop, err
		}
		return b, func() {
			if err := b.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
