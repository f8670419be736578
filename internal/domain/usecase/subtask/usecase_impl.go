package subtask

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/gateway/cache"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/gateway/lock"
	"kanban-api/internal/domain/model"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
)

type subtaskUseCase struct {
	tasks     db.TaskGateway
	gateway   db.SubtaskGateway
	treeCache cache.BoardTreeCache
	locker    lock.BoardLocker
}

func NewSubtaskUseCase(tasks db.TaskGateway, gateway db.SubtaskGateway, treeCache cache.BoardTreeCache, locker lock.BoardLocker) UseCase {
	return &subtaskUseCase{
		tasks:     tasks,
		gateway:   gateway,
		treeCache: treeCache,
		locker:    locker,
	}
}

func (uc *subtaskUseCase) Create(ctx context.Context, ownerID string, taskID string, dto model.CreateSubtaskDTO) (*entity.Subtask, error) {
	if ownerID == "" {
		return nil, model.ErrMissingIdentity
	}
	if taskID == "" {
		return nil, model.InvalidInput(msg.GetMessage("task.error.missing-id"))
	}
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, model.InvalidInput(msg.GetMessage("subtask.error.empty-name"))
	}

	task, err := uc.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	var created *entity.Subtask
	err = uc.locker.WithBoardLock(ctx, task.BoardID, func() error {
		subtask, err := uc.gateway.CreateInTask(ctx, ownerID, entity.Subtask{
			TaskID:      task.ID,
			Name:        name,
			Description: dto.Description,
			Completed:   dto.Completed,
		})
		created = subtask
		return err
	})
	if err != nil {
		return nil, err
	}
	// the task was removed while waiting for the lock
	if created == nil {
		return nil, model.NotFound(msg.GetMessage("task.error.not-found"))
	}
	uc.evict(ctx, ownerID, task.BoardID)
	return created, nil
}

func (uc *subtaskUseCase) FindAllByTask(ctx context.Context, ownerID string, taskID string) ([]entity.Subtask, error) {
	if ownerID == "" {
		return nil, model.ErrMissingIdentity
	}
	if taskID == "" {
		return nil, model.InvalidInput(msg.GetMessage("task.error.missing-id"))
	}
	task, err := uc.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	return uc.gateway.FindAllByTask(ctx, task.ID)
}

func (uc *subtaskUseCase) FindByID(ctx context.Context, ownerID string, subtaskID string) (*entity.Subtask, error) {
	if err := validateRef(ownerID, subtaskID); err != nil {
		return nil, err
	}
	subtask, err := uc.gateway.FindByIDAndOwner(ctx, subtaskID, ownerID)
	if err != nil {
		return nil, err
	}
	if subtask == nil {
		return nil, model.NotFound(msg.GetMessage("subtask.error.not-found"))
	}
	return subtask, nil
}

func (uc *subtaskUseCase) Update(ctx context.Context, ownerID string, subtaskID string, dto model.UpdateSubtaskDTO) (*entity.Subtask, error) {
	if err := validateRef(ownerID, subtaskID); err != nil {
		return nil, err
	}
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, model.InvalidInput(msg.GetMessage("subtask.error.empty-name"))
		}
		dto.Name = &name
	}

	updated, err := uc.gateway.UpdateByIDAndOwner(ctx, subtaskID, ownerID, dto)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NotFound(msg.GetMessage("subtask.error.not-found"))
	}
	uc.evictForTask(ctx, ownerID, updated.TaskID)
	return updated, nil
}

func (uc *subtaskUseCase) Delete(ctx context.Context, ownerID string, subtaskID string) error {
	if err := validateRef(ownerID, subtaskID); err != nil {
		return err
	}
	deleted, err := uc.gateway.DeleteByIDAndOwner(ctx, subtaskID, ownerID)
	if err != nil {
		return err
	}
	if deleted == nil {
		return model.NotFound(msg.GetMessage("subtask.error.not-found"))
	}
	uc.evictForTask(ctx, ownerID, deleted.TaskID)
	return nil
}

func (uc *subtaskUseCase) ownedTask(ctx context.Context, ownerID string, taskID string) (*entity.Task, error) {
	task, err := uc.tasks.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, model.NotFound(msg.GetMessage("task.error.not-found"))
	}
	return task, nil
}

func (uc *subtaskUseCase) evictForTask(ctx context.Context, ownerID string, taskID string) {
	task, err := uc.tasks.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil || task == nil {
		return
	}
	uc.evict(ctx, ownerID, task.BoardID)
}

func (uc *subtaskUseCase) evict(ctx context.Context, ownerID string, boardID string) {
	if err := uc.treeCache.Evict(ctx, ownerID, boardID); err != nil {
		log.Warn(msg.GetMessage("app.error.cache", boardID, err), zap.Error(err))
	}
}

func validateRef(ownerID string, subtaskID string) error {
	if ownerID == "" {
		return model.ErrMissingIdentity
	}
	if subtaskID == "" {
		return model.InvalidInput(msg.GetMessage("subtask.error.missing-id"))
	}
	return nil
}
