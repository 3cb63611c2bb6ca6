package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "ecorent-backend/internal/api/http"
	"ecorent-backend/internal/config"
	"ecorent-backend/internal/logger"
	"ecorent-backend/internal/repository/postgres"
	"ecorent-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EcoRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	clientSvc := service.NewClientService(store.ClientRepository, store.RentalRepository)
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository, store.RentalRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.EquipmentRepository, store.ClientRepository)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.RentalRepository)
	reportSvc := service.NewReportService(store.PaymentRepository, store.EquipmentRepository, store.ClientRepository)

	// Initialize HTTP handlers and router
	router := api.NewRouter(api.Handlers{
		Client:    api.NewClientHandler(clientSvc, rentalSvc),
		Equipment: api.NewEquipmentHandler(equipmentSvc),
		Rental:    api.NewRentalHandler(rentalSvc),
		Payment:   api.NewPaymentHandler(paymentSvc),
		Report:    api.NewReportHandler(reportSvc),
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      corsMiddleware.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
