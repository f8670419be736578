package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

func TestBoardCreateStampsOwnerAndID(t *testing.T) {
	f := newFixture(t)

	board := f.board(t, "u1", "Sprint1")

	assert.NotEmpty(t, board.ID)
	assert.Equal(t, "u1", board.OwnerID)
	assert.False(t, board.CreatedAt.IsZero())
}

func TestBoardListingIsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.board(t, "u1", "A")
	f.board(t, "u2", "B")
	also := f.board(t, "u1", "A")

	boards, err := f.boards.FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	ids := []string{}
	for _, board := range boards {
		ids = append(ids, board.ID)
	}
	assert.ElementsMatch(t, []string{mine.ID, also.ID}, ids)

	none, err := f.boards.FindAllByOwner(ctx, "u3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBoardFindIgnoresOtherOwners(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Sprint1")

	found, err := f.boards.FindByIDAndOwner(ctx, board.ID, "u2")
	require.NoError(t, err)
	assert.Nil(t, found)

	tree, err := f.boards.FindTreeByIDAndOwner(ctx, board.ID, "u2")
	require.NoError(t, err)
	assert.Nil(t, tree)

	missing, err := f.boards.FindTreeByIDAndOwner(ctx, "does-not-exist", "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBoardTreeExpandsTasksAndSubtasks(t *testing.T) {
	f := newFixture(t)
	board := f.board(t, "u1", "Sprint1")
	t1 := f.task(t, "u1", board.ID, "T1")
	t2 := f.task(t, "u1", board.ID, "T2")
	s1 := f.subtask(t, "u1", t1.ID, "S1")
	s2 := f.subtask(t, "u1", t1.ID, "S2")

	tree, err := f.boards.FindTreeByIDAndOwner(context.Background(), board.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, tree)

	assert.Equal(t, "Sprint1", tree.Name)
	require.Len(t, tree.Tasks, 2)
	byID := map[string]model.TaskTree{}
	for _, task := range tree.Tasks {
		byID[task.ID] = task
	}
	assert.ElementsMatch(t, []string{s1.ID, s2.ID}, subtaskIDs(byID[t1.ID].Subtasks))
	assert.NotNil(t, byID[t2.ID].Subtasks)
	assert.Empty(t, byID[t2.ID].Subtasks)
}

func TestBoardTreeOfEmptyBoard(t *testing.T) {
	f := newFixture(t)
	board := f.board(t, "u1", "Empty")

	tree, err := f.boards.FindTreeByIDAndOwner(context.Background(), board.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.NotNil(t, tree.Tasks)
	assert.Empty(t, tree.Tasks)
}

func TestBoardUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Old")
	name := "New"

	updated, err := f.boards.UpdateByIDAndOwner(ctx, board.ID, "u1", model.UpdateBoardDTO{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "u1", updated.OwnerID)

	foreign, err := f.boards.UpdateByIDAndOwner(ctx, board.ID, "u2", model.UpdateBoardDTO{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, foreign)

	unchanged, err := f.boards.UpdateByIDAndOwner(ctx, board.ID, "u1", model.UpdateBoardDTO{})
	require.NoError(t, err)
	require.NotNil(t, unchanged)
	assert.Equal(t, "New", unchanged.Name)

	emptyForeign, err := f.boards.UpdateByIDAndOwner(ctx, board.ID, "u2", model.UpdateBoardDTO{})
	require.NoError(t, err)
	assert.Nil(t, emptyForeign)
}

func TestBoardDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Sprint1")
	t1 := f.task(t, "u1", board.ID, "T1")
	t2 := f.task(t, "u1", board.ID, "T2")
	f.subtask(t, "u1", t1.ID, "S1")
	f.subtask(t, "u1", t2.ID, "S2")
	f.subtask(t, "u1", t2.ID, "S3")

	other := f.board(t, "u1", "Keep")
	kept := f.task(t, "u1", other.ID, "K1")
	f.subtask(t, "u1", kept.ID, "KS1")

	result, err := f.boards.DeleteCascadeByIDAndOwner(ctx, board.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, board.ID, result.BoardID)
	assert.ElementsMatch(t, []string{t1.ID, t2.ID}, result.TaskIDs)
	assert.EqualValues(t, 2, result.TasksDeleted)
	assert.EqualValues(t, 3, result.SubtasksDeleted)

	assert.Zero(t, f.count(t, &entity.Board{}, "id = ?", board.ID))
	assert.Zero(t, f.count(t, &entity.Task{}, "board_id = ?", board.ID))
	assert.Zero(t, f.count(t, &entity.Subtask{}, "task_id IN ?", []string{t1.ID, t2.ID}))

	assert.EqualValues(t, 1, f.count(t, &entity.Task{}, "board_id = ?", other.ID))
	assert.EqualValues(t, 1, f.count(t, &entity.Subtask{}, "task_id = ?", kept.ID))
}

func TestBoardDeleteOfForeignOrMissingBoardTouchesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Sprint1")
	task := f.task(t, "u1", board.ID, "T1")
	f.subtask(t, "u1", task.ID, "S1")

	foreign, err := f.boards.DeleteCascadeByIDAndOwner(ctx, board.ID, "u2")
	require.NoError(t, err)
	assert.Nil(t, foreign)

	missing, err := f.boards.DeleteCascadeByIDAndOwner(ctx, "missing", "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.EqualValues(t, 1, f.count(t, &entity.Board{}, "id = ?", board.ID))
	assert.EqualValues(t, 1, f.count(t, &entity.Task{}, "board_id = ?", board.ID))
	assert.EqualValues(t, 1, f.count(t, &entity.Subtask{}, "task_id = ?", task.ID))
}

func TestBoardDeleteTwiceIsNotFoundTheSecondTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t, "u1", "Sprint1")

	first, err := f.boards.DeleteCascadeByIDAndOwner(ctx, board.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Empty(t, first.TaskIDs)

	second, err := f.boards.DeleteCascadeByIDAndOwner(ctx, board.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, second)
}

func subtaskIDs(subtasks []entity.Subtask) []string {
	ids := make([]string, len(subtasks))
	for i, subtask := range subtasks {
		ids[i] = subtask.ID
	}
	return ids
}
