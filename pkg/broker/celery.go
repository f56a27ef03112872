package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// TaskStatus represents the lifecycle status of a queued task
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusStarted TaskStatus = "STARTED"
	TaskStatusSuccess TaskStatus = "SUCCESS"
	TaskStatusFailure TaskStatus = "FAILURE"
)

// TaskResult records the broker-side outcome of a task
type TaskResult struct {
	ID        string          `json:"id"`
	Status    TaskStatus      `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	StartedAt *time.Time      `json:"started_at,omitempty"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
}

// taskMessage is the Celery-compatible wire format pushed onto the queue
type taskMessage struct {
	ID      string                 `json:"id"`
	Task    string                 `json:"task"`
	Args    []interface{}          `json:"args"`
	Kwargs  map[string]interface{} `json:"kwargs"`
	Retries int                    `json:"retries"`
	ETA     interface{}            `json:"eta"`
}

// TaskBroker handles task queue operations against Redis
type TaskBroker struct {
	redis      *redis.Client
	queueName  string
	resultsTTL time.Duration
	log        *logger.Logger
}

// NewTaskBroker creates a new task broker
func NewTaskBroker(redisURL, queueName string, resultsTTL time.Duration, log *logger.Logger) (*TaskBroker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &TaskBroker{
		redis:      client,
		queueName:  queueName,
		resultsTTL: resultsTTL,
		log:        log,
	}, nil
}

// Enqueue adds a task to the queue and records its initial PENDING result
func (b *TaskBroker) Enqueue(ctx context.Context, taskName string, args ...interface{}) (string, error) {
	taskID := uuid.New().String()

	msg := taskMessage{
		ID:     taskID,
		Task:   taskName,
		Args:   args,
		Kwargs: map[string]interface{}{},
	}

	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to serialize task message: %w", err)
	}

	initialResult := TaskResult{
		ID:        taskID,
		Status:    TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.storeResult(ctx, &initialResult); err != nil {
		return "", err
	}

	if err := b.redis.LPush(ctx, b.queueName, messageBytes).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	b.log.Info("Task enqueued",
		zap.String("task_id", taskID),
		zap.String("task_name", taskName),
		zap.String("queue", b.queueName))

	return taskID, nil
}

// GetTaskResult retrieves the broker-side result of a task
func (b *TaskBroker) GetTaskResult(ctx context.Context, taskID string) (*TaskResult, error) {
	resultBytes, err := b.redis.Get(ctx, resultKey(taskID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("task result not found")
		}
		return nil, fmt.Errorf("failed to get task result: %w", err)
	}

	var result TaskResult
	if err := json.Unmarshal(resultBytes, &result); err != nil {
		return nil, fmt.Errorf("failed to deserialize task result: %w", err)
	}

	return &result, nil
}

func (b *TaskBroker) storeResult(ctx context.Context, result *TaskResult) error {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize task result: %w", err)
	}
	if err := b.redis.Set(ctx, resultKey(result.ID), resultBytes, b.resultsTTL).Err(); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}
	return nil
}

func resultKey(taskID string) string {
	return fmt.Sprintf("celery-task-meta-%s", taskID)
}

// Close closes the broker connection
func (b *TaskBroker) Close() error {
	return b.redis.Close()
}
