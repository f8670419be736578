package model

import (
	"time"

	"github.com/google/uuid"
)

type AggregateEventType string

const (
	EventBoardDeleted AggregateEventType = "board.deleted"
	EventTaskDeleted  AggregateEventType = "task.deleted"
)

// AggregateEvent announces a structural change so consumers can sweep leftovers.
type AggregateEvent struct {
	ID         string             `json:"id"`
	Type       AggregateEventType `json:"type"`
	OwnerID    string             `json:"ownerId"`
	BoardID    string             `json:"boardId"`
	TaskID     string             `json:"taskId,omitempty"`
	TaskIDs    []string           `json:"taskIds,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}

func NewBoardDeletedEvent(ownerID string, result CascadeResult) AggregateEvent {
	return AggregateEvent{
		ID:         uuid.NewString(),
		Type:       EventBoardDeleted,
		OwnerID:    ownerID,
		BoardID:    result.BoardID,
		TaskIDs:    result.TaskIDs,
		OccurredAt: time.Now().UTC(),
	}
}

func NewTaskDeletedEvent(ownerID, boardID, taskID string) AggregateEvent {
	return AggregateEvent{
		ID:         uuid.NewString(),
		Type:       EventTaskDeleted,
		OwnerID:    ownerID,
		BoardID:    boardID,
		TaskID:     taskID,
		OccurredAt: time.Now().UTC(),
	}
}

// CascadeResult reports what a cascading delete removed.
type CascadeResult struct {
	BoardID         string   `json:"boardId"`
	TaskIDs         []string `json:"taskIds"`
	TasksDeleted    int64    `json:"tasksDeleted"`
	SubtasksDeleted int64    `json:"subtasksDeleted"`
}

// SweepResult reports the orphans removed by a reconciliation pass.
type SweepResult struct {
	TasksDeleted    int64 `json:"tasksDeleted"`
	SubtasksDeleted int64 `json:"subtasksDeleted"`
}

func (r SweepResult) Empty() bool {
	return r.TasksDeleted == 0 && r.SubtasksDeleted == 0
}
