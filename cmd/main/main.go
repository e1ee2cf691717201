package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"holdings-observer/src/analysis"
	"holdings-observer/src/config"
	"holdings-observer/src/ingest"
	"holdings-observer/src/interfaces"
	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/series"
	"holdings-observer/src/server"
	"holdings-observer/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// 1. Snapshot archive (optional)
	var archive interfaces.IArchive
	if cfg.Storage.Enabled {
		db, err := storage.NewSQLiteArchive(cfg.MConfig, appLogger)
		if err != nil {
			appLogger.Critical("Failed to init archive: %v", err)
		}
		if err := db.Initialize(); err != nil {
			appLogger.Critical("Failed to migrate archive: %v", err)
		}
		archive = db
		defer archive.Close()
	}

	// 2. In-memory series, one per dataset
	settlementStore := series.NewStore[models.MSettlementHolding]()
	accumulatedStore := series.NewStore[models.MAccumulatedHolding]()

	// 3. Closing-price book (optional fallback for the cross-dataset join)
	var prices analysis.PriceLookup
	if cfg.Data.PricesFile != "" {
		book, err := ingest.LoadPriceBook(cfg.Data.PricesFile)
		if err != nil {
			appLogger.Warning("Price book unavailable: %v", err)
		} else {
			appLogger.Info("Price book loaded: %d entries", book.Len())
			prices = book
		}
	}

	// 4. Analytics
	momentum := analysis.NewMomentumAnalyzer(cfg.MConfig, settlementStore, appLogger)
	accAnalyzer := analysis.NewAccumulatedAnalyzer(accumulatedStore)
	enricher := analysis.NewEnricher(accumulatedStore, settlementStore, prices)

	// 5. Serving layer
	srv := server.NewAPIServer(cfg.MConfig, appLogger, settlementStore, accumulatedStore, momentum, accAnalyzer, enricher)

	// 6. Dataset loaders
	var archiveSettlement func([]models.MSettlementDay) error
	var archiveAccumulated func([]models.MAccumulatedDay) error
	if archive != nil {
		archiveSettlement = archive.SaveSettlementDays
		archiveAccumulated = archive.SaveAccumulatedDays
	}

	settlementLoader := ingest.NewLoader(
		ingest.NewSettlementSource(cfg.MConfig, appLogger),
		settlementStore, archiveSettlement, srv, appLogger,
	)
	accumulatedLoader := ingest.NewLoader(
		ingest.NewAccumulatedSource(cfg.MConfig, appLogger),
		accumulatedStore, archiveAccumulated, srv, appLogger,
	)

	// The two datasets load independently; a reload request arriving while a
	// loader is busy is a per-dataset no-op.
	srv.ReloadFunc = func() {
		settlementLoader.Reload()
		accumulatedLoader.Reload()
	}

	// 7. Initial load, to completion, before serving
	appLogger.Info("Loading datasets...")
	settlementLoader.Reload()
	accumulatedLoader.Reload()

	// 8. Serve until signalled
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	srv.Stop()
}
