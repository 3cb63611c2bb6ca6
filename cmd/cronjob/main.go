package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"ecorent-backend/internal/config"
	"ecorent-backend/internal/jobs"
	"ecorent-backend/internal/logger"
	"ecorent-backend/internal/repository/postgres"
	"ecorent-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'overdue-rental-sweep', 'all-nightly')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EcoRent Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories and jobs
	store := postgres.NewStore(db)
	jobRunner := jobs.NewJobRunner(store, cfg)

	// One-shot mode for manual runs
	if *runOnce != "" {
		switch *runOnce {
		case "overdue-rental-sweep":
			jobRunner.OverdueRentalSweep()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}
