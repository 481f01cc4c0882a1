package main

import (
	"log"
	"time"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/wire"
	"cinema-reservation/internal/worker"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, config, logger)

	// Background sweeps for lapsed holds and ended screenings.
	reconciler := worker.NewReconciler(
		repos,
		time.Duration(config.Job.IntervalSeconds)*time.Second,
		logger,
	)
	reconciler.Start()
	defer reconciler.Stop()

	cmd.APIServer(app.Router, config.App.Port, logger)
}
