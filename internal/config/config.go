package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tair/smartskin/pkg/database"
	"github.com/tair/smartskin/pkg/tracing"
)

// Catalog sources.
const (
	CatalogCSV      = "csv"
	CatalogPostgres = "postgres"
)

// Config is the process configuration, read once at startup.
type Config struct {
	HTTPPort    string
	Environment string
	LogLevel    string
	CORSOrigins []string

	Tracing tracing.Config

	CatalogSource string
	CatalogPath   string
	ModelsDir     string

	Database database.Config

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	KafkaBrokers []string
	KafkaGroupID string

	JWTSecret string
	JWTTTL    time.Duration

	VisionEnabled     bool
	VisionCredentials string
}

// Development reports whether console logging should be used.
func (c Config) Development() bool {
	return c.Environment == "development"
}

// Load reads the configuration from environment variables.
func Load() Config {
	serviceName := getEnv("OTEL_SERVICE_NAME", "smartskin")
	environment := getEnv("ENVIRONMENT", "development")

	return Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Environment: environment,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		Tracing: tracing.Config{
			ServiceName:    serviceName,
			ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
			SampleRatio:    getFloat("OTEL_SAMPLE_RATIO", 1),
		},

		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogCSV)),
		CatalogPath:   getEnv("CATALOG_PATH", "data/cosmetics.csv"),
		ModelsDir:     getEnv("MODELS_DIR", "models"),

		Database: database.Config{
			Driver:     getEnv("DB_DRIVER", database.DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "smartskin"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "data/smartskin.db"),
		},

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getDuration("CACHE_TTL", 10*time.Minute),

		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 20),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "smartskin"),

		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		VisionEnabled:     getBool("VISION_ENABLED", false),
		VisionCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
