package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cartstream/analytics-sync/internal/config"
	"github.com/cartstream/analytics-sync/internal/consumer"
	"github.com/cartstream/analytics-sync/internal/handler"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/database"
	"github.com/cartstream/analytics-sync/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.L().Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Init(cfg.Log)
	log.L().Info().Msg("starting analytics sync service")

	// Connect to the replica database and bootstrap the schema
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.L().Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := repository.Bootstrap(db); err != nil {
		log.L().Fatal().Err(err).Msg("failed to bootstrap schema")
	}
	log.L().Info().
		Str("driver", cfg.Database.Driver).
		Str("dbname", cfg.Database.DBName).
		Msg("database ready")

	// Assemble repositories and the dispatch table
	registry, err := handler.NewRegistry(
		repository.NewGormUserRepository(db),
		repository.NewGormSupplierRepository(db),
		repository.NewGormProductRepository(db),
		repository.NewGormOrderRepository(db),
		repository.NewGormPostRepository(db),
	)
	if err != nil {
		log.L().Fatal().Err(err).Msg("failed to build handler registry")
	}

	// Initialize Kafka consumer
	cons, err := consumer.New(cfg.Kafka, registry)
	if err != nil {
		log.L().Fatal().Err(err).Msg("failed to create kafka consumer")
	}
	log.L().Info().
		Str("brokers", cfg.Kafka.Brokers).
		Str("group", cfg.Kafka.GroupID).
		Msg("kafka consumer created")

	// Start health HTTP server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.L().Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L().Fatal().Err(err).Msg("health server error")
		}
	}()

	// Start consumer in background
	ctx, cancel := context.WithCancel(context.Background())

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- cons.Run(ctx)
	}()

	// Wait for interrupt signal or fatal consumer error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	consumerStopped := false
	select {
	case <-quit:
		log.L().Info().Msg("received shutdown signal")
	case err := <-consumerDone:
		consumerStopped = true
		if err != nil {
			log.L().Error().Err(err).Msg("consumer exited with error")
		}
	}

	// Graceful shutdown
	log.L().Info().Msg("shutting down analytics sync service")
	cancel()

	if !awaitConsumerStop(consumerDone, consumerStopped, 10*time.Second) {
		log.L().Warn().Msg("consumer shutdown timed out")
	}

	cons.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.L().Info().Msg("analytics sync service stopped")
}

// awaitConsumerStop waits for the consumer goroutine to finish. The result
// channel delivers exactly once; a result received before shutdown began
// must not be waited for a second time.
func awaitConsumerStop(done <-chan error, alreadyStopped bool, timeout time.Duration) bool {
	if alreadyStopped {
		return true
	}
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
