package board

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

type boardUseCase struct {
	gateway   db.BoardGateway
	treeCache cache.BoardTreeCache
	locker    lock.BoardLocker
	publisher queue.EventPublisher
	metrics   *metrics.Metrics
}

func NewBoardUseCase(gateway db.BoardGateway, treeCache cache.BoardTreeCache, locker lock.BoardLocker, publisher queue.EventPublisher, m *metrics.Metrics) UseCase {
	return &boardUseCase{
		gateway:   gateway,
		treeCache: treeCache,
		locker:    locker,
		publisher: publisher,
		metrics:   m,
	}
}

func (uc *boardUseCase) Create(ctx context.Context, ownerID string, dto model.CreateBoardDTO) (*entity.Board, error) {
	if ownerID == "" {
		return nil, model.ErrMissingIdentity
	}
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, model.InvalidInput(msg.GetMessage("board.error.empty-name"))
	}

	created, err := uc.gateway.Create(ctx, entity.Board{Name: name, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncrementBoardCreated()
	return created, nil
}

func (uc *boardUseCase) FindAll(ctx context.Context, ownerID string) ([]entity.Board, error) {
	if ownerID == "" {
		return nil, model.ErrMissingIdentity
	}
	return uc.gateway.FindAllByOwner(ctx, ownerID)
}

func (uc *boardUseCase) FindTree(ctx context.Context, ownerID string, boardID string) (*model.BoardTree, error) {
	if err := validateRef(ownerID, boardID); err != nil {
		return nil, err
	}

	cached, err := uc.treeCache.Get(ctx, ownerID, boardID)
	if err != nil {
		log.Warn(msg.GetMessage("app.error.cache", boardID, err), zap.Error(err))
	}
	if cached != nil {
		uc.metrics.RecordTreeCache(true)
		return cached, nil
	}
	uc.metrics.RecordTreeCache(false)

	// The version is read before the store so an eviction during the read rejects the fill.
	version, versionErr := uc.treeCache.Version(ctx, ownerID, boardID)
	if versionErr != nil {
		log.Warn(msg.GetMessage("app.error.cache", boardID, versionErr), zap.Error(versionErr))
	}

	tree, err := uc.gateway.FindTreeByIDAndOwner(ctx, boardID, ownerID)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, model.NotFound(msg.GetMessage("board.error.not-found"))
	}

	if versionErr == nil {
		if err := uc.treeCache.Set(ctx, *tree, version); err != nil {
			log.Warn(msg.GetMessage("app.error.cache", boardID, err), zap.Error(err))
		}
	}
	return tree, nil
}

func (uc *boardUseCase) Update(ctx context.Context, ownerID string, boardID string, dto model.UpdateBoardDTO) (*entity.Board, error) {
	if err := validateRef(ownerID, boardID); err != nil {
		return nil, err
	}
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, model.InvalidInput(msg.GetMessage("board.error.empty-name"))
		}
		dto.Name = &name
	}

	updated, err := uc.gateway.UpdateByIDAndOwner(ctx, boardID, ownerID, dto)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NotFound(msg.GetMessage("board.error.not-found"))
	}
	uc.evict(ctx, ownerID, boardID)
	return updated, nil
}

// Delete runs the cascade under the board lock. The deletion event is published after commit
// and a publish failure does not undo the delete.
func (uc *boardUseCase) Delete(ctx context.Context, ownerID string, boardID string) (*model.CascadeResult, error) {
	if err := validateRef(ownerID, boardID); err != nil {
		return nil, err
	}

	var result *model.CascadeResult
	err := uc.locker.WithBoardLock(ctx, boardID, func() error {
		deleted, err := uc.gateway.DeleteCascadeByIDAndOwner(ctx, boardID, ownerID)
		result = deleted
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, model.NotFound(msg.GetMessage("board.error.not-found"))
	}

	uc.evict(ctx, ownerID, boardID)
	uc.metrics.RecordCascade("board", result.TasksDeleted, result.SubtasksDeleted)

	event := model.NewBoardDeletedEvent(ownerID, *result)
	err = uc.publisher.Publish(ctx, event)
	uc.metrics.RecordEventPublished(string(event.Type), err)
	if err != nil {
		log.Error(msg.GetMessage("app.error.publish", event.Type, boardID, err), zap.Error(err))
	}
	return result, nil
}

func (uc *boardUseCase) evict(ctx context.Context, ownerID string, boardID string) {
	if err := uc.treeCache.Evict(ctx, ownerID, boardID); err != nil {
		log.Warn(msg.GetMessage("app.error.cache", boardID, err), zap.Error(err))
	}
}

func validateRef(ownerID string, boardID string) error {
	if ownerID == "" {
		return model.ErrMissingIdentity
	}
	if boardID == "" {
		return model.InvalidInput(msg.GetMessage("board.error.missing-id"))
	}
	return nil
}
