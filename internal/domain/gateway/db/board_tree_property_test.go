package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"kanban-api/internal/domain/entity"
)

// For any board with N tasks of M subtasks each, the tree read returns N tasks each holding exactly M subtasks,
// and a cascade delete leaves no task or subtask of that board behind.
func TestProperty_BoardTreeAndCascade(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)
	f := newFixture(t)
	ctx := context.Background()

	properties.Property("tree mirrors stored children and cascade removes them", prop.ForAll(
		func(taskCount int, subtaskCount int) bool {
			board, err := f.boards.Create(ctx, entity.Board{Name: "P", OwnerID: "owner"})
			if err != nil {
				return false
			}
			for i := 0; i < taskCount; i++ {
				task, err := f.tasks.CreateInBoard(ctx, "owner", entity.Task{BoardID: board.ID, Name: fmt.Sprintf("T%d", i)})
				if err != nil || task == nil {
					return false
				}
				for j := 0; j < subtaskCount; j++ {
					subtask, err := f.subtasks.CreateInTask(ctx, "owner", entity.Subtask{TaskID: task.ID, Name: fmt.Sprintf("S%d", j)})
					if err != nil || subtask == nil {
						return false
					}
				}
			}

			tree, err := f.boards.FindTreeByIDAndOwner(ctx, board.ID, "owner")
			if err != nil || tree == nil || len(tree.Tasks) != taskCount {
				return false
			}
			for _, task := range tree.Tasks {
				if len(task.Subtasks) != subtaskCount {
					return false
				}
				for _, subtask := range task.Subtasks {
					if subtask.TaskID != task.ID {
						return false
					}
				}
			}

			result, err := f.boards.DeleteCascadeByIDAndOwner(ctx, board.ID, "owner")
			if err != nil || result == nil {
				return false
			}
			if result.TasksDeleted != int64(taskCount) || result.SubtasksDeleted != int64(taskCount*subtaskCount) {
				return false
			}

			var left int64
			f.db.Model(&entity.Task{}).Where("board_id = ?", board.ID).Count(&left)
			return left == 0
		},
		gen.IntRange(0, 4),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
