package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"numcmp/adapters/postgres"
	"numcmp/adapters/rng"
	"numcmp/app"
	"numcmp/domain/sample"
	"numcmp/internal"
	"numcmp/internal/api"
	"numcmp/internal/config"
	"numcmp/internal/simulation"
	"numcmp/internal/testkit"
	"numcmp/ports"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	sample.SetStrictChecks(cfg.Simulation.StrictChecks)

	logger := internal.DefaultLogger

	var ledger ports.RunLedgerPort
	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to migrate ledger schema: %v", err)
		}
		ledger = postgres.NewRunRepository(db)
		logger.Info("run ledger: postgres")
	} else {
		ledger = testkit.NewInMemoryRunLedger()
		logger.Warn("DATABASE_URL not set, runs are kept in memory only")
	}

	engine := simulation.NewEngine(rng.New())
	engine.SetWorkers(cfg.Simulation.Workers)

	service := app.NewCompareService(engine, ledger, logger)
	server := api.NewServer(service, cfg.Simulation.Iterations, cfg.Simulation.Seed, logger)

	if err := server.Run(":" + cfg.Server.Port); err != nil {
		logger.Error("api server stopped: %v", err)
		os.Exit(1)
	}
}
