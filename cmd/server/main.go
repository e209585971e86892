package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/config"
	"github.com/mamadbah2/salesboard/internal/ingest"
	"github.com/mamadbah2/salesboard/internal/repository"
	"github.com/mamadbah2/salesboard/internal/scheduler"
	"github.com/mamadbah2/salesboard/internal/server/handlers"
	"github.com/mamadbah2/salesboard/internal/server/router"
	salessvc "github.com/mamadbah2/salesboard/internal/service/sales"
	"github.com/mamadbah2/salesboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := repository.Open(startupCtx, cfg, logger.Named(baseLogger, "repo.sales"))
	cancelStartup()
	if err != nil {
		baseLogger.Fatal("failed to init sales store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close sales store", zap.Error(err))
		}
	}()

	if cfg.Import.CronSchedule != "" {
		source, err := ingest.NewSource(context.Background(), cfg.Import, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init import source", zap.Error(err))
		}
		importer := ingest.NewImporter(source, store, cfg.Import.BatchSize, loc, logger.Named(baseLogger, "ingest"))

		sched, err := scheduler.NewScheduler(cfg.Import.CronSchedule, loc, importer, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	salesService := salessvc.NewService(store, loc, logger.Named(baseLogger, "svc.sales"))
	salesHandler := handlers.NewSalesHandler(salesService, logger.Named(baseLogger, "handlers.sales"))
	engine := router.New(salesHandler, cfg.Server.CORSOrigin, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		baseLogger.Info("shutdown signal received")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http server stopped", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	baseLogger.Info("server stopped")
}
