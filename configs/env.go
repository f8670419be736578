package configs

import (
	"errors"
	"strings"
	"time"

	"kanban-api/pkg/resource"
)

type EnvConfig struct {
	ApplicationName string
	Port            string
	ContextPath     string
	LogLevel        string

	JWTSecret string
	TokenTTL  time.Duration

	RedisEnabled  bool
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDatabase int
	TreeCacheTTL  time.Duration
	LockTTL       time.Duration

	EventsEnabled   bool
	EventsQueueName string
	EventsPoolSize  int

	ReconcileCron string
}

// ErrMissingJWTSecret is returned by Load when app.auth.jwt-secret resolves to a blank value.
var ErrMissingJWTSecret = errors.New("app.auth.jwt-secret is required: set JWT_SECRET")

// Load reads the typed application settings. resource.Init must have run first.
func Load() (*EnvConfig, error) {
	env := &EnvConfig{
		ApplicationName: resource.GetStringOrDefault("app.name", "kanban-api"),
		Port:            resource.GetStringOrDefault("app.server.port", "3000"),
		ContextPath:     resource.GetString("app.server.context-path"),
		LogLevel:        resource.GetStringOrDefault("app.log.level", "info"),

		JWTSecret: resource.GetString("app.auth.jwt-secret"),
		TokenTTL:  durationOrDefault("app.auth.token-ttl", 24*time.Hour),

		RedisEnabled:  resource.GetBool("app.redis.enabled"),
		RedisHost:     resource.GetStringOrDefault("app.redis.host", "localhost"),
		RedisPort:     intOrDefault("app.redis.port", 6379),
		RedisPassword: resource.GetString("app.redis.password"),
		RedisDatabase: resource.GetInt("app.redis.database"),
		TreeCacheTTL:  durationOrDefault("app.redis.tree-cache-ttl", 5*time.Minute),
		LockTTL:       durationOrDefault("app.redis.lock-ttl", 30*time.Second),

		EventsEnabled:   resource.GetBool("app.events.enabled"),
		EventsQueueName: resource.GetStringOrDefault("app.events.queue-name", "kanban-aggregate-events"),
		EventsPoolSize:  intOrDefault("app.events.pool-size", 1),

		ReconcileCron: resource.GetStringOrDefault("app.reconcile.cron", "*/15 * * * *"),
	}
	if strings.TrimSpace(env.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}
	return env, nil
}

func durationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := resource.GetDuration(key)
	if value <= 0 {
		return defaultValue
	}
	return value
}

func intOrDefault(key string, defaultValue int) int {
	value := resource.GetInt(key)
	if value <= 0 {
		return defaultValue
	}
	return value
}
