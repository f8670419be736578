package board

import (
	"context"
	"strconv"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kanban-api/internal/domain/gateway/cache"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/gateway/lock"
	"kanban-api/internal/domain/model"
	gormdb "kanban-api/internal/infra/database/gorm"
	"kanban-api/internal/metrics"
	"kanban-api/pkg/redis"
)

// racingBoardGateway runs afterTreeRead once the tree has been read from the store
// and before the use case can fill the cache with it.
type racingBoardGateway struct {
	db.BoardGateway
	afterTreeRead func()
}

func (g *racingBoardGateway) FindTreeByIDAndOwner(ctx context.Context, id, ownerID string) (*model.BoardTree, error) {
	tree, err := g.BoardGateway.FindTreeByIDAndOwner(ctx, id, ownerID)
	if hook := g.afterTreeRead; hook != nil {
		g.afterTreeRead = nil
		hook()
	}
	return tree, err
}

func newRedisTreeCache(t *testing.T) *cache.RedisBoardTreeCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := redis.NewClient(redis.DefaultConfig().WithHost(mr.Host()).WithPort(port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisBoardTreeCache(client, 5*time.Minute)
}

func TestFindTreeDoesNotRecacheBoardDeletedDuringRead(t *testing.T) {
	database, err := gormdb.Open(gormdb.Config{Driver: gormdb.DriverSqlite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	ctx := context.Background()
	gateway := &racingBoardGateway{BoardGateway: db.NewGormBoardGateway(database)}
	treeCache := newRedisTreeCache(t)
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	uc := NewBoardUseCase(gateway, treeCache, lock.NoopBoardLocker{}, publisher, metrics.NewWithRegistry(prometheus.NewRegistry()))

	created, err := uc.Create(ctx, "u1", model.CreateBoardDTO{Name: "Sprint1"})
	require.NoError(t, err)
	id := created.ID

	_, err = uc.FindTree(ctx, "u1", id)
	require.NoError(t, err)
	cached, err := treeCache.Get(ctx, "u1", id)
	require.NoError(t, err)
	require.NotNil(t, cached)

	name := "Sprint2"
	_, err = uc.Update(ctx, "u1", id, model.UpdateBoardDTO{Name: &name})
	require.NoError(t, err)

	gateway.afterTreeRead = func() {
		_, err := uc.Delete(ctx, "u1", id)
		require.NoError(t, err)
	}
	raced, err := uc.FindTree(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, "Sprint2", raced.Name)

	stale, err := treeCache.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Nil(t, stale)

	_, err = uc.FindTree(ctx, "u1", id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
