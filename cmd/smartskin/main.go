package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tair/smartskin/internal/catalog/domain"
	catalogrepo "github.com/tair/smartskin/internal/catalog/repository"
	"github.com/tair/smartskin/internal/config"
	"github.com/tair/smartskin/internal/pipeline"
	profilerepo "github.com/tair/smartskin/internal/profile/repository"
	"github.com/tair/smartskin/internal/server"
	"github.com/tair/smartskin/internal/suitability"
	"github.com/tair/smartskin/kafka"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/database"
	"github.com/tair/smartskin/pkg/logger"
	"github.com/tair/smartskin/pkg/middleware"
	"github.com/tair/smartskin/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.Tracing.ServiceName, cfg.Development())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.Tracing.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting smartskin service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.Tracing)
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

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := profilerepo.NewGormProfileRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	var source domain.Source
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		repo := catalogrepo.NewGormCatalogRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to migrate catalog table")
		}
		source = catalogrepo.NewTracingSource(repo, config.CatalogPostgres)
	default:
		source = catalogrepo.NewTracingSource(catalogrepo.NewCSVSource(cfg.CatalogPath), config.CatalogCSV)
	}

	redisClient := connectRedis(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var ocr pipeline.OCR
	if cfg.VisionEnabled {
		vision, err := pipeline.NewVisionOCR(ctx, cfg.VisionCredentials)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Vision OCR unavailable, image analysis disabled")
		} else {
			defer vision.Close()
			ocr = pipeline.NewBreakerOCR(vision, 30*time.Second)
		}
	}

	engine, err := pipeline.Bootstrap(ctx, pipeline.Options{
		Source:     source,
		ModelsDir:  cfg.ModelsDir,
		Vectorizer: suitability.DefaultConfig(),
		OCR:        ocr,
		Cache:      pipeline.NewCache(redisClient, cfg.CacheTTL),
		Metrics:    pipeline.NewMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize pipeline")
	}

	events := startEvents(ctx, cfg, engine)
	if events != nil {
		defer events.Close()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	limiter := middleware.NewRateLimiter(redisClient, "analyze", cfg.RateLimitRequests, cfg.RateLimitWindow)

	var publisher server.EventPublisher
	if events != nil {
		publisher = events.publisher
	}

	// Initialize handlers with Wire DI
	handlers, err := server.InitializeHandlers(db, engine, tokens, limiter, publisher, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           server.NewRouter(handlers, sqlDB, prometheus.DefaultGatherer, middleware.DefaultConfig(), cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// connectRedis returns nil when Redis is not configured or not reachable.
func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, caching and rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, caching and rate limiting disabled")
		client.Close()
		return nil
	}
	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return client
}

type eventBus struct {
	publisher *kafka.Publisher
	consumer  *kafka.Consumer
}

func (b *eventBus) Close() {
	if b.consumer != nil {
		if err := b.consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}
	if err := b.publisher.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
	}
}

// startEvents returns nil when Kafka is not configured or not reachable.
func startEvents(ctx context.Context, cfg config.Config, engine *pipeline.Engine) *eventBus {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, feedback events disabled")
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable, feedback events disabled")
		return nil
	}
	bus := &eventBus{publisher: publisher}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{kafka.TopicFeedbackRecorded})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable, cache invalidation is local only")
		return bus
	}
	consumer.RegisterHandler(kafka.EventTypeFeedbackRecorded, func(ctx context.Context, event kafka.FeedbackRecordedEvent) error {
		return engine.Cache().InvalidateUser(ctx, event.UserID)
	})
	consumer.Start(ctx)
	bus.consumer = consumer
	return bus
}
