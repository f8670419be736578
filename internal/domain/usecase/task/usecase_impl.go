package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/gateway/cache"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/gateway/lock"
	"kanban-api/internal/domain/gateway/queue"
	"kanban-api/internal/domain/model"
	"kanban-api/internal/metrics"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
)

type taskUseCase struct {
	boards    db.BoardGateway
	gateway   db.TaskGateway
	treeCache cache.BoardTreeCache
	locker    lock.BoardLocker
	publisher queue.EventPublisher
	metrics   *metrics.Metrics
}

func NewTaskUseCase(boards db.BoardGateway, gateway db.TaskGateway, treeCache cache.BoardTreeCache, locker lock.BoardLocker, publisher queue.EventPublisher, m *metrics.Metrics) UseCase {
	return &taskUseCase{
		boards:    boards,
		gateway:   gateway,
		treeCache: treeCache,
		locker:    locker,
		publisher: publisher,
		metrics:   m,
	}
}

func (uc *taskUseCase) Create(ctx context.Context, ownerID string, boardID string, dto model.CreateTaskDTO) (*entity.Task, error) {
	if ownerID == "" {
		return nil, model.ErrMissingIdentity
	}
	if boardID == "" {
		return nil, model.InvalidInput(msg.GetMessage("board.error.missing-id"))
	}
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, model.InvalidInput(msg.GetMessage("task.error.empty-name"))
	}

	var created *entity.Task
	err := uc.locker.WithBoardLock(ctx, boardID, func() error {
		task, err := uc.gateway.CreateInBoard(ctx, ownerID, entity.Task{
			BoardID:     boardID,
			Name:        name,
			Description: dto.Description,
		})
		created = task
		return err
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, model.NotFound(msg.GetMessage("board.error.not-found"))
	}
	uc.evict(ctx, ownerID, boardID)
	return created, nil
}

func (uc *taskUseCase) FindAllByBoard(ctx context.Context, ownerID string, boardID string) ([]entity.Task, error) {
	if ownerID == "" {
		return nil, model.ErrMissingIdentity
	}
	if boardID == "" {
		return nil, model.InvalidInput(msg.GetMessage("board.error.missing-id"))
	}

	board, err := uc.boards.FindByIDAndOwner(ctx, boardID, ownerID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, model.NotFound(msg.GetMessage("board.error.not-found"))
	}
	return uc.gateway.FindAllByBoard(ctx, board.ID)
}

func (uc *taskUseCase) FindTree(ctx context.Context, ownerID string, taskID string) (*model.TaskTree, error) {
	if err := validateRef(ownerID, taskID); err != nil {
		return nil, err
	}
	tree, err := uc.gateway.FindTreeByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, model.NotFound(msg.GetMessage("task.error.not-found"))
	}
	return tree, nil
}

func (uc *taskUseCase) Update(ctx context.Context, ownerID string, taskID string, dto model.UpdateTaskDTO) (*entity.Task, error) {
	if err := validateRef(ownerID, taskID); err != nil {
		return nil, err
	}
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, model.InvalidInput(msg.GetMessage("task.error.empty-name"))
		}
		dto.Name = &name
	}

	updated, err := uc.gateway.UpdateByIDAndOwner(ctx, taskID, ownerID, dto)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NotFound(msg.GetMessage("task.error.not-found"))
	}
	uc.evict(ctx, ownerID, updated.BoardID)
	return updated, nil
}

// Delete resolves the parent board first so the cascade runs under that board's lock.
func (uc *taskUseCase) Delete(ctx context.Context, ownerID string, taskID string) (*model.CascadeResult, error) {
	if err := validateRef(ownerID, taskID); err != nil {
		return nil, err
	}

	task, err := uc.gateway.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, model.NotFound(msg.GetMessage("task.error.not-found"))
	}

	var result *model.CascadeResult
	err = uc.locker.WithBoardLock(ctx, task.BoardID, func() error {
		deleted, err := uc.gateway.DeleteCascadeByIDAndOwner(ctx, taskID, ownerID)
		result = deleted
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, model.NotFound(msg.GetMessage("task.error.not-found"))
	}

	uc.evict(ctx, ownerID, result.BoardID)
	uc.metrics.RecordCascade("task", result.TasksDeleted, result.SubtasksDeleted)

	event := model.NewTaskDeletedEvent(ownerID, result.BoardID, taskID)
	err = uc.publisher.Publish(ctx, event)
	uc.metrics.RecordEventPublished(string(event.Type), err)
	if err != nil {
		log.Error(msg.GetMessage("app.error.publish", event.Type, result.BoardID, err), zap.Error(err))
	}
	return result, nil
}

func (uc *taskUseCase) evict(ctx context.Context, ownerID string, boardID string) {
	if err := uc.treeCache.Evict(ctx, ownerID, boardID); err != nil {
		log.Warn(msg.GetMessage("app.error.cache", boardID, err), zap.Error(err))
	}
}

func validateRef(ownerID string, taskID string) error {
	if ownerID == "" {
		return model.ErrMissingIdentity
	}
	if taskID == "" {
		return model.InvalidInput(msg.GetMessage("task.error.missing-id"))
	}
	return nil
}
