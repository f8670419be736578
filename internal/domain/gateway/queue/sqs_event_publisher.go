package queue

import (
	"context"
	"fmt"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/sqs"
)

type SqsEventPublisher struct {
	sender    *sqs.Sender
	queueName string
}

var _ EventPublisher = (*SqsEventPublisher)(nil)

func NewSqsEventPublisher(sender *sqs.Sender, queueName string) *SqsEventPublisher {
	return &SqsEventPublisher{sender: sender, queueName: queueName}
}

func (publisher *SqsEventPublisher) Publish(ctx context.Context, event model.AggregateEvent) error {
	if err := publisher.sender.SendMessage(ctx, publisher.queueName, event); err != nil {
		return fmt.Errorf("publish %s for board %s: %w", event.Type, event.BoardID, err)
	}
	return nil
}

// NoopEventPublisher drops every event. Used when events are disabled.
type NoopEventPublisher struct{}

var _ EventPublisher = NoopEventPublisher{}

func (NoopEventPublisher) Publish(context.Context, model.AggregateEvent) error {
	return nil
}
