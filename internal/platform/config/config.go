package config

import (
	"os"
	"strconv"
	"time"

	pkgstrings "healthgateway/pkg/platform/strings"
)

// Config aggregates every setting the server needs. FromEnv fills it with defaults
// suitable for local development.
type Config struct {
	Server         Server
	Redis          RedisConfig
	Database       DatabaseConfig
	Kafka          KafkaConfig
	ClientRegistry ClientRegistryConfig
	Empi           EmpiConfig
	PatientService PatientServiceConfig
	TimeZone       string
	Auth           AuthConfig
	LogLevel       string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type KafkaConfig struct {
	Brokers            []string
	BlockedAccessTopic string
	RelayInterval      time.Duration
	RelayBatchSize     int
}

type ClientRegistryConfig struct {
	Endpoint         string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

type EmpiConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PatientServiceConfig mirrors the PatientService section. A CacheTTL of 0 disables patient caching.
type PatientServiceConfig struct {
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
}

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getEnv("HG_ADDR", ":8080"),
			RequestTimeout:  getEnvAsDuration("HG_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("HG_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			AutoMigrate:  os.Getenv("DATABASE_AUTO_MIGRATE") == "true",
		},
		Kafka: KafkaConfig{
			Brokers:            pkgstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			BlockedAccessTopic: getEnv("KAFKA_BLOCKED_ACCESS_TOPIC", "patient.access.blocked"),
			RelayInterval:      getEnvAsDuration("OUTBOX_RELAY_INTERVAL", 2*time.Second),
			RelayBatchSize:     getEnvAsInt("OUTBOX_RELAY_BATCH_SIZE", 50),
		},
		ClientRegistry: ClientRegistryConfig{
			Endpoint:         os.Getenv("CLIENT_REGISTRY_ENDPOINT"),
			Timeout:          getEnvAsDuration("CLIENT_REGISTRY_TIMEOUT", 10*time.Second),
			FailureThreshold: getEnvAsInt("CLIENT_REGISTRY_FAILURE_THRESHOLD", 5),
			Cooldown:         getEnvAsDuration("CLIENT_REGISTRY_COOLDOWN", 30*time.Second),
		},
		Empi: EmpiConfig{
			BaseURL: os.Getenv("EMPI_BASE_URL"),
			APIKey:  os.Getenv("EMPI_API_KEY"),
			Timeout: getEnvAsDuration("EMPI_TIMEOUT", 10*time.Second),
		},
		PatientService: PatientServiceConfig{
			CacheTTL: time.Duration(getEnvAsInt("PATIENT_CACHE_TTL_MINUTES", 0)) * time.Minute,
		},
		TimeZone: getEnv("TIMEZONE", "America/Vancouver"),
		Auth: AuthConfig{
			// Use a default for development; override in every deployed environment.
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:        getEnv("JWT_ISSUER", "healthgateway-admin"),
			Audience:      getEnv("JWT_AUDIENCE", "healthgateway-support"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Location resolves the configured local time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
