package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/pkg/resource"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	require.NoError(t, resource.Load("application.yml"))

	env, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kanban-api", env.ApplicationName)
	assert.Equal(t, "s3cret", env.JWTSecret)
	assert.Equal(t, "3000", env.Port)
	assert.Equal(t, 24*time.Hour, env.TokenTTL)
	assert.False(t, env.RedisEnabled)
	assert.Equal(t, 6379, env.RedisPort)
	assert.Equal(t, 5*time.Minute, env.TreeCacheTTL)
	assert.Equal(t, 30*time.Second, env.LockTTL)
	assert.False(t, env.EventsEnabled)
	assert.Equal(t, "kanban-aggregate-events", env.EventsQueueName)
	assert.Equal(t, 2, env.EventsPoolSize)
	assert.Equal(t, "*/15 * * * *", env.ReconcileCron)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("RECONCILE_CRON", "@hourly")
	t.Setenv("JWT_SECRET", "s3cret")
	require.NoError(t, resource.Load("application.yml"))

	env, err := Load()
	require.NoError(t, err)

	assert.True(t, env.RedisEnabled)
	assert.Equal(t, 2*time.Hour, env.TokenTTL)
	assert.Equal(t, "@hourly", env.ReconcileCron)
}

func TestLoadRejectsBlankJWTSecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		t.Setenv("JWT_SECRET", secret)
		require.NoError(t, resource.Load("application.yml"))

		env, err := Load()

		assert.ErrorIs(t, err, ErrMissingJWTSecret)
		assert.Nil(t, env)
	}
}
