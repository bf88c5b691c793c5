package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meli-backend-challenge/product-catalog/internal/events"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"github.com/meli-backend-challenge/product-catalog/internal/seed"
	"github.com/meli-backend-challenge/product-catalog/internal/server"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
	"github.com/meli-backend-challenge/product-catalog/pkg/config"
	"github.com/meli-backend-challenge/product-catalog/pkg/ratelimit"
	pkgtls "github.com/meli-backend-challenge/product-catalog/pkg/tls"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	var store repository.ProductStore
	if cfg.LocalMode {
		logger.Info("Running with in-memory store")
		store = repository.NewMemoryStore()
	} else {
		dynamoClient, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			logger.Fatal("Failed to create DynamoDB client", zap.Error(err))
		}
		store = repository.NewDynamoStore(dynamoClient, cfg.ProductTableName)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		tlsConfig, tlsCloser, err := pkgtls.LoadClientConfig(context.Background(), &cfg.TLS, logger)
		if err != nil {
			logger.Fatal("Failed to load TLS config", zap.Error(err))
		}
		defer tlsCloser()

		producer := events.NewKafkaProducer(cfg.KafkaBrokers, tlsConfig, logger)
		defer producer.Close()
		publisher = producer

		logger.Info("Kafka producer enabled", zap.String("brokers", cfg.KafkaBrokers))
	}

	if cfg.SeedData {
		productService := service.NewProductService(store, publisher, logger)
		if err := seed.Run(context.Background(), productService, logger); err != nil {
			logger.Error("Seeding failed", zap.Error(err))
		}
	}

	limiter := ratelimit.NewStore(cfg.RateLimitCapacity, cfg.RateLimitTokens)
	router := server.New(cfg, logger, store, publisher, limiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return zapCfg.Build()
}
