package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/config"
	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/repository/mongodb"
	"github.com/linsamsir/pro-erp/internal/repository/sheets"
	"github.com/linsamsir/pro-erp/internal/scheduler"
	"github.com/linsamsir/pro-erp/internal/server/handlers"
	"github.com/linsamsir/pro-erp/internal/server/router"
	"github.com/linsamsir/pro-erp/internal/service/audit"
	"github.com/linsamsir/pro-erp/internal/service/costing"
	reportingsvc "github.com/linsamsir/pro-erp/internal/service/reporting"
	"github.com/linsamsir/pro-erp/pkg/clients/routing"
	"github.com/linsamsir/pro-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter reportingsvc.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheet backup enabled")
	} else {
		baseLogger.Warn("sheet export id missing, report backup disabled")
	}

	var routeClient routing.Client
	if cfg.Routing.BaseURL != "" {
		routeClient = routing.NewClient(cfg.Routing)
		baseLogger.Info("travel-time estimation enabled")
	} else {
		baseLogger.Warn("routing base url missing, travel-time estimation disabled")
	}

	defaults := reportingsvc.Defaults{
		UnitCosts: costing.Defaults{
			CitricAcid: cfg.Engine.DefaultCitricUnitCost,
			Chemical:   cfg.Engine.DefaultChemicalUnitCost,
		},
		TrafficFallbackRate: cfg.Engine.TrafficFallbackRate,
	}

	recorder := audit.NewRecorder(repo, cfg.Engine.AuditLogCap, baseLogger.Named("svc.audit"))
	reportingSvc := reportingsvc.NewService(repo, repo, exporter, defaults, baseLogger.Named("svc.reporting"))

	depot := models.GeoPoint{Lat: cfg.Routing.BaseLat, Lng: cfg.Routing.BaseLng}
	handler := handlers.New(repo, reportingSvc, recorder, routeClient, depot, baseLogger.Named("handlers"))
	engine := router.New(handler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
