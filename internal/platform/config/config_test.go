package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PATIENT_CACHE_TTL_MINUTES", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Zero(t, cfg.PatientService.CacheTTL, "patient caching is off unless configured")
	assert.Equal(t, "patient.access.blocked", cfg.Kafka.BlockedAccessTopic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "America/Vancouver", cfg.TimeZone)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PATIENT_CACHE_TTL_MINUTES", "90")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("CLIENT_REGISTRY_TIMEOUT", "2s")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")

	cfg := FromEnv()

	assert.Equal(t, 90*time.Minute, cfg.PatientService.CacheTTL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Second, cfg.ClientRegistry.Timeout)
	assert.Equal(t, 10, cfg.Redis.PoolSize, "invalid ints fall back to the default")
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLocation(t *testing.T) {
	cfg := Config{TimeZone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}
