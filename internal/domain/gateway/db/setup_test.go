package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kanban-api/internal/domain/entity"
	gormdb "kanban-api/internal/infra/database/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gormdb.Open(gormdb.Config{Driver: gormdb.DriverSqlite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

type fixture struct {
	db       *gorm.DB
	boards   *GormBoardGateway
	tasks    *GormTaskGateway
	subtasks *GormSubtaskGateway
}

func newFixture(t *testing.T) *fixture {
	database := setupTestDB(t)
	return &fixture{
		db:       database,
		boards:   NewGormBoardGateway(database),
		tasks:    NewGormTaskGateway(database),
		subtasks: NewGormSubtaskGateway(database),
	}
}

func (f *fixture) board(t *testing.T, owner, name string) *entity.Board {
	t.Helper()
	board, err := f.boards.Create(context.Background(), entity.Board{Name: name, OwnerID: owner})
	require.NoError(t, err)
	return board
}

func (f *fixture) task(t *testing.T, owner, boardID, name string) *entity.Task {
	t.Helper()
	task, err := f.tasks.CreateInBoard(context.Background(), owner, entity.Task{BoardID: boardID, Name: name})
	require.NoError(t, err)
	require.NotNil(t, task)
	return task
}

func (f *fixture) subtask(t *testing.T, owner, taskID, name string) *entity.Subtask {
	t.Helper()
	subtask, err := f.subtasks.CreateInTask(context.Background(), owner, entity.Subtask{TaskID: taskID, Name: name})
	require.NoError(t, err)
	require.NotNil(t, subtask)
	return subtask
}

func (f *fixture) count(t *testing.T, table any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(table).Where(where, args...).Count(&n).Error)
	return n
}
