package subtask

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/gateway/lock"
	"kanban-api/internal/domain/model"
	gormdb "kanban-api/internal/infra/database/gorm"
)

type MockTreeCache struct {
	mock.Mock
}

func (m *MockTreeCache) Get(ctx context.Context, ownerID, boardID string) (*model.BoardTree, error) {
	args := m.Called(ctx, ownerID, boardID)
	tree, _ := args.Get(0).(*model.BoardTree)
	return tree, args.Error(1)
}

func (m *MockTreeCache) Version(ctx context.Context, ownerID, boardID string) (int64, error) {
	args := m.Called(ctx, ownerID, boardID)
	version, _ := args.Get(0).(int64)
	return version, args.Error(1)
}

func (m *MockTreeCache) Set(ctx context.Context, tree model.BoardTree, version int64) error {
	return m.Called(ctx, tree, version).Error(0)
}

func (m *MockTreeCache) Evict(ctx context.Context, ownerID, boardID string) error {
	return m.Called(ctx, ownerID, boardID).Error(0)
}

type testEnv struct {
	useCase   UseCase
	treeCache *MockTreeCache
	board     *entity.Board
	task      *entity.Task
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database, err := gormdb.Open(gormdb.Config{Driver: gormdb.DriverSqlite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.Background()
	boards := db.NewGormBoardGateway(database)
	tasks := db.NewGormTaskGateway(database)
	board, err := boards.Create(ctx, entity.Board{Name: "Sprint1", OwnerID: "u1"})
	require.NoError(t, err)
	task, err := tasks.CreateInBoard(ctx, "u1", entity.Task{BoardID: board.ID, Name: "T1"})
	require.NoError(t, err)

	treeCache := &MockTreeCache{}
	treeCache.On("Evict", mock.Anything, "u1", board.ID).Return(nil)
	return &testEnv{
		useCase:   NewSubtaskUseCase(tasks, db.NewGormSubtaskGateway(database), treeCache, lock.NoopBoardLocker{}),
		treeCache: treeCache,
		board:     board,
		task:      task,
	}
}

func TestSubtaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.useCase.Create(ctx, "u1", env.task.ID, model.CreateSubtaskDTO{Name: "S1"})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	listed, err := env.useCase.FindAllByTask(ctx, "u1", env.task.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	done := true
	updated, err := env.useCase.Update(ctx, "u1", created.ID, model.UpdateSubtaskDTO{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	found, err := env.useCase.FindByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.True(t, found.Completed)

	require.NoError(t, env.useCase.Delete(ctx, "u1", created.ID))
	_, err = env.useCase.FindByID(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	env.treeCache.AssertNumberOfCalls(t, "Evict", 3)
}

func TestSubtaskOfForeignTaskIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.useCase.Create(ctx, "u1", env.task.ID, model.CreateSubtaskDTO{Name: "S1"})
	require.NoError(t, err)

	_, err = env.useCase.Create(ctx, "u2", env.task.ID, model.CreateSubtaskDTO{Name: "S2"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = env.useCase.FindAllByTask(ctx, "u2", env.task.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = env.useCase.FindByID(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, env.useCase.Delete(ctx, "u2", created.ID), model.ErrNotFound)
}

func TestSubtaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.useCase.Create(ctx, "", env.task.ID, model.CreateSubtaskDTO{Name: "S1"})
	assert.ErrorIs(t, err, model.ErrMissingIdentity)

	_, err = env.useCase.Create(ctx, "u1", env.task.ID, model.CreateSubtaskDTO{Name: ""})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = env.useCase.FindByID(ctx, "u1", "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
