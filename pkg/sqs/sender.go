package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const maxBatchSize = 10

// BatchMessage is one entry of a batch send.
type BatchMessage struct {
	MessageID string `json:"messageId"`
	Body      any    `json:"body"`
}

// BatchResult lists the message ids accepted and rejected by a batch send.
type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

// SenderAPI is the subset of the SQS client used by Sender.
type SenderAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

// Sender publishes JSON messages to SQS queues by name.
type Sender struct {
	client    SenderAPI
	queueURLs sync.Map
}

func NewSender(client SenderAPI) *Sender {
	return &Sender{client: client}
}

// SendMessage serializes body to JSON and sends it to queueName.
func (s *Sender) SendMessage(ctx context.Context, queueName string, body any) error {
	queueURL, err := s.queueURL(ctx, queueName)
	if err != nil {
		return err
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body: %w", err)
	}

	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(jsonBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}
	return nil
}

// SendMessageBatch sends messages in chunks of ten, one goroutine per chunk.
// A chunk that fails as a whole marks all of its ids as failed.
func (s *Sender) SendMessageBatch(ctx context.Context, queueName string, messages []BatchMessage) (*BatchResult, error) {
	result := &BatchResult{Successful: []string{}, Failed: []string{}}
	if len(messages) == 0 {
		return result, nil
	}

	queueURL, err := s.queueURL(ctx, queueName)
	if err != nil {
		return nil, err
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for start := 0; start < len(messages); start += maxBatchSize {
		end := min(start+maxBatchSize, len(messages))
		chunk := messages[start:end]

		wg.Add(1)
		go func() {
			defer wg.Done()
			chunkResult, err := s.sendBatch(ctx, queueURL, chunk)
			if err != nil {
				chunkResult = &BatchResult{Failed: messageIDs(chunk)}
			}
			mu.Lock()
			result.Successful = append(result.Successful, chunkResult.Successful...)
			result.Failed = append(result.Failed, chunkResult.Failed...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return result, nil
}

func (s *Sender) sendBatch(ctx context.Context, queueURL string, messages []BatchMessage) (*BatchResult, error) {
	result := &BatchResult{}
	entries := make([]types.SendMessageBatchRequestEntry, 0, len(messages))
	for _, message := range messages {
		jsonBody, err := json.Marshal(message.Body)
		if err != nil {
			result.Failed = append(result.Failed, message.MessageID)
			continue
		}
		entries = append(entries, types.SendMessageBatchRequestEntry{
			Id:          aws.String(message.MessageID),
			MessageBody: aws.String(string(jsonBody)),
		})
	}
	if len(entries) == 0 {
		return result, nil
	}

	output, err := s.client.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
		QueueUrl: aws.String(queueURL),
		Entries:  entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message batch: %w", err)
	}

	for _, ok := range output.Successful {
		result.Successful = append(result.Successful, aws.ToString(ok.Id))
	}
	for _, failed := range output.Failed {
		result.Failed = append(result.Failed, aws.ToString(failed.Id))
	}
	return result, nil
}

func (s *Sender) queueURL(ctx context.Context, queueName string) (string, error) {
	if cached, ok := s.queueURLs.Load(queueName); ok {
		return cached.(string), nil
	}
	url, err := getQueueURL(ctx, s.client, queueName)
	if err != nil {
		return "", err
	}
	s.queueURLs.Store(queueName, url)
	return url, nil
}

type queueURLResolver interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
}

func getQueueURL(ctx context.Context, client queueURLResolver, queueName string) (string, error) {
	output, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(queueName)})
	if err != nil {
		return "", fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}
	if output.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}
	return *output.QueueUrl, nil
}

func messageIDs(messages []BatchMessage) []string {
	ids := make([]string, len(messages))
	for i, message := range messages {
		ids[i] = message.MessageID
	}
	return ids
}
