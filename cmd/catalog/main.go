package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/velmar/catalog-sync/internal/catalog"
	"github.com/velmar/catalog-sync/internal/catalog/repository"
	"github.com/velmar/catalog-sync/internal/catalog/usecase/command"
	"github.com/velmar/catalog-sync/kafka"
	"github.com/velmar/catalog-sync/pkg/database"
	"github.com/velmar/catalog-sync/pkg/logger"
	"github.com/velmar/catalog-sync/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "catalog-sync")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting catalog sync service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "catalogdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations (extensions, schema, identity triggers, vector index)
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 60*time.Second)
	if err := repository.NewGormStockRepository(db).Migrate(migrateCtx); err != nil {
		cancelMigrate()
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	cancelMigrate()

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher for sync completion events
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	var notifier command.CompletionNotifier
	publisher, err := kafka.NewPublisher(brokers)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, sync results will not be published")
	} else {
		defer publisher.Close()
		notifier = publisher
	}

	// Initialize sync handler with Wire DI
	syncHandler, err := catalog.InitializeSyncBatchHandler(db, notifier)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize sync handler")
	}

	// Kafka consumer for sync requests
	groupID := getEnv("KAFKA_GROUP_ID", "catalog-sync")
	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicStockSyncRequests})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeStockSyncRequested, func(ctx context.Context, event kafka.StockSyncRequestedEvent) error {
		records := make([]any, len(event.Records))
		for i, r := range event.Records {
			records[i] = r
		}
		result, err := syncHandler.Handle(ctx, command.SyncBatchCommand{Batch: records})
		if err != nil {
			return err
		}
		logger.Logger.Info().
			Str("run_id", result.RunID).
			Str("source", event.Source).
			Int("received", result.Received).
			Int("upserted", result.Upserted).
			Int("failed", result.Failed).
			Msg("Sync request processed")
		return nil
	})

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if err := consumer.Start(consumerCtx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8084")
	startHTTPServer(sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	cancelConsumer()
}

func startHTTPServer(db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
