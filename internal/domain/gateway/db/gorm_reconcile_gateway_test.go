package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

func TestSweepOrphansRemovesChildrenOfMissingParents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Live")
	live := f.task(t, "u1", board.ID, "T1")
	f.subtask(t, "u1", live.ID, "S1")

	// rows left behind by a cascade that never ran
	orphanTask := entity.Task{BoardID: "gone", Name: "orphan"}
	require.NoError(t, f.db.Create(&orphanTask).Error)
	require.NoError(t, f.db.Create(&entity.Subtask{TaskID: orphanTask.ID, Name: "orphan-child"}).Error)
	require.NoError(t, f.db.Create(&entity.Subtask{TaskID: "also-gone", Name: "stray"}).Error)

	gateway := NewGormReconcileGateway(f.db)
	result, err := gateway.SweepOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SweepResult{TasksDeleted: 1, SubtasksDeleted: 2}, result)

	assert.EqualValues(t, 1, f.count(t, &entity.Task{}, "1 = 1"))
	assert.EqualValues(t, 1, f.count(t, &entity.Subtask{}, "1 = 1"))

	again, err := gateway.SweepOrphans(ctx)
	require.NoError(t, err)
	assert.True(t, again.Empty())
}

func TestSweepBoardOnlyAfterBoardIsGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Sprint1")
	task := f.task(t, "u1", board.ID, "T1")
	f.subtask(t, "u1", task.ID, "S1")
	gateway := NewGormReconcileGateway(f.db)

	untouched, err := gateway.SweepBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Empty())
	assert.EqualValues(t, 1, f.count(t, &entity.Task{}, "board_id = ?", board.ID))

	// simulate a board row removed without its children
	require.NoError(t, f.db.Where("id = ?", board.ID).Delete(&entity.Board{}).Error)

	swept, err := gateway.SweepBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SweepResult{TasksDeleted: 1, SubtasksDeleted: 1}, swept)
}

func TestSweepTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.Create(&entity.Subtask{TaskID: "gone", Name: "S1"}).Error)
	gateway := NewGormReconcileGateway(f.db)

	result, err := gateway.SweepTask(ctx, "gone")
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.SubtasksDeleted)

	result, err = gateway.SweepTask(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}
