package sqs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"kanban-api/pkg/log"
)

type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg *types.Message) error

func (f HandlerFunc) HandleMessage(ctx context.Context, msg *types.Message) error {
	return f(ctx, msg)
}

// Handler processes one message. A nil error deletes the message from the queue.
type Handler interface {
	HandleMessage(ctx context.Context, msg *types.Message) error
}

// WorkerAPI is the subset of the SQS client used by Worker.
type WorkerAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// WorkerConfig tunes polling. Zero fields take the defaults of NewWorker.
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	// ErrorBackoff is the pause after a failed receive.
	ErrorBackoff time.Duration
}

// WorkerHealth is the health snapshot of a worker.
type WorkerHealth struct {
	Status  HealthStatus
	Details map[string]string
}

// Worker long-polls a queue and hands each message to a Handler.
type Worker struct {
	client              WorkerAPI
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	errorBackoff        time.Duration
	handler             Handler

	running   atomic.Bool
	processed atomic.Int64
	failed    atomic.Int64
	mu        sync.RWMutex
	lastPoll  time.Time
	lastError string
}

// NewWorker resolves the queue URL and validates config.
//
// Defaults: MaxNumberOfMessages 10, WaitTimeSeconds 20, PoolSize 1, ErrorBackoff 1s.
// MaxNumberOfMessages must be within 1..10 and WaitTimeSeconds within 1..20.
func NewWorker(ctx context.Context, client WorkerAPI, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	w := &Worker{
		client:              client,
		queueName:           queueName,
		maxNumberOfMessages: 10,
		waitTimeSeconds:     20,
		poolSize:            1,
		errorBackoff:        time.Second,
		handler:             handler,
	}
	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			w.maxNumberOfMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			w.waitTimeSeconds = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			w.poolSize = config.PoolSize
		}
		if config.ErrorBackoff != 0 {
			w.errorBackoff = config.ErrorBackoff
		}
	}

	if w.maxNumberOfMessages < 1 || w.maxNumberOfMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if w.waitTimeSeconds < 1 || w.waitTimeSeconds > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if w.poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}
	if handler == nil {
		return nil, errors.New("handler is required")
	}

	url, err := getQueueURL(ctx, client, queueName)
	if err != nil {
		return nil, err
	}
	w.queueURL = url
	return w, nil
}

// Start runs PoolSize pollers and blocks until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.running.Store(true)
	defer w.running.Store(false)

	log.Info("sqs worker started", zap.String("queue", w.queueName), zap.Int("pool_size", w.poolSize))

	var wg sync.WaitGroup
	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.poll(ctx)
		}()
	}
	wg.Wait()

	log.Info("sqs worker stopped", zap.String("queue", w.queueName))
}

func (w *Worker) poll(ctx context.Context) {
	for ctx.Err() == nil {
		output, err := w.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(w.queueURL),
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		w.recordPoll(err)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("failed to receive messages", zap.String("queue", w.queueName), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.errorBackoff):
			}
			continue
		}

		for i := range output.Messages {
			w.handleMessage(ctx, &output.Messages[i])
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg *types.Message) {
	messageID := aws.ToString(msg.MessageId)

	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.failed.Add(1)
		log.Error("error processing message", zap.String("queue", w.queueName),
			zap.String("message_id", messageID), zap.Error(err))
		return
	}
	w.processed.Add(1)

	_, err := w.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(w.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Error("failed to delete message", zap.String("queue", w.queueName),
			zap.String("message_id", messageID), zap.Error(err))
		return
	}
	log.Debug("message processed", zap.String("queue", w.queueName), zap.String("message_id", messageID))
}

func (w *Worker) recordPoll(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastPoll = time.Now()
	if err != nil {
		w.lastError = err.Error()
	} else {
		w.lastError = ""
	}
}

// HealthCheck reports DOWN when the worker is not running or its last receive failed.
func (w *Worker) HealthCheck() WorkerHealth {
	w.mu.RLock()
	lastPoll, lastError := w.lastPoll, w.lastError
	w.mu.RUnlock()

	details := map[string]string{
		"queue":     w.queueName,
		"running":   strconv.FormatBool(w.running.Load()),
		"processed": strconv.FormatInt(w.processed.Load(), 10),
		"failed":    strconv.FormatInt(w.failed.Load(), 10),
	}
	if !lastPoll.IsZero() {
		details["last_poll"] = lastPoll.Format(time.RFC3339)
	}

	status := StatusUp
	if !w.running.Load() || lastError != "" {
		status = StatusDown
	}
	if lastError != "" {
		details["last_error"] = lastError
	}
	return WorkerHealth{Status: status, Details: details}
}
