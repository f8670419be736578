package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"kanban-api/internal/domain/model"
	"kanban-api/internal/domain/usecase/reconcile"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
)

type AggregateEventProcessor struct {
	reconcileUseCase reconcile.UseCase
}

func NewAggregateEventProcessor(reconcileUseCase reconcile.UseCase) *AggregateEventProcessor {
	return &AggregateEventProcessor{
		reconcileUseCase: reconcileUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface.
// Messages that can never succeed are acknowledged and logged; store failures are returned so the message is redelivered.
func (p *AggregateEventProcessor) HandleMessage(ctx context.Context, message *types.Message) error {
	if message == nil || message.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	var event model.AggregateEvent
	if err := json.Unmarshal([]byte(*message.Body), &event); err != nil {
		log.Error(msg.GetMessage("event.error.decode", aws.ToString(message.MessageId), err))
		return nil
	}

	log.Info(msg.GetMessage("event.received", event.Type, event.BoardID))

	result, err := p.reconcileUseCase.HandleEvent(ctx, event)
	if errors.Is(err, model.ErrInvalidInput) {
		log.Warn(msg.GetMessage("event.error.unknown-type", event.Type))
		return nil
	}
	if err != nil {
		return fmt.Errorf("reconcile %s for board %s: %w", event.Type, event.BoardID, err)
	}

	log.Info(msg.GetMessage("event.swept", event.Type, result.TasksDeleted, result.SubtasksDeleted))
	return nil
}
