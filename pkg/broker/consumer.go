package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// FailureHook is invoked after a handler returns an error, with the
// task name and its decoded arguments. Used by the worker to mark the
// affected record as failed; the error itself still propagates to the
// broker result.
type FailureHook func(ctx context.Context, taskName string, args []interface{}, err error)

// Consumer pulls task messages off the broker queue and dispatches them
// to registered handlers, updating the Celery-style result meta as the
// task moves through PENDING, STARTED and SUCCESS/FAILURE.
type Consumer struct {
	broker    *TaskBroker
	handlers  map[string]Handler
	onFailure FailureHook
	log       *logger.Logger
}

// NewConsumer creates a consumer bound to the broker's queue
func NewConsumer(b *TaskBroker, log *logger.Logger) *Consumer {
	return &Consumer{
		broker:   b,
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register binds a handler to a task name
func (c *Consumer) Register(taskName string, handler Handler) {
	c.handlers[taskName] = handler
}

// OnFailure sets the failure hook
func (c *Consumer) OnFailure(hook FailureHook) {
	c.onFailure = hook
}

// Run blocks consuming the queue until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("Worker consuming queue", zap.String("queue", c.broker.queueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry, err := c.broker.redis.BRPop(ctx, 5*time.Second, c.broker.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("Failed to pop task from queue", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [queue, payload]
		if len(entry) != 2 {
			continue
		}
		c.process(ctx, []byte(entry[1]))
	}
}

func (c *Consumer) process(ctx context.Context, payload []byte) {
	var msg taskMessage
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&msg); err != nil {
		c.log.Error("Discarding undecodable task message", zap.Error(err))
		return
	}

	taskLog := c.log.With(
		zap.String("task_id", msg.ID),
		zap.String("task_name", msg.Task),
	)

	handler, ok := c.handlers[msg.Task]
	if !ok {
		taskLog.Error("No handler registered for task")
		c.finish(ctx, msg.ID, TaskStatusFailure, ErrUnknownTask.Error())
		return
	}

	started := time.Now().UTC()
	c.markStarted(ctx, msg.ID, started)
	taskLog.Info("Task started")

	if err := handler(ctx, msg.Args); err != nil {
		taskLog.Error("Task failed", zap.Error(err))
		c.finish(ctx, msg.ID, TaskStatusFailure, err.Error())
		if c.onFailure != nil {
			c.onFailure(ctx, msg.Task, msg.Args, err)
		}
		return
	}

	taskLog.Info("Task succeeded", zap.Duration("duration", time.Since(started)))
	c.finish(ctx, msg.ID, TaskStatusSuccess, "")
}

func (c *Consumer) markStarted(ctx context.Context, taskID string, startedAt time.Time) {
	result, err := c.broker.GetTaskResult(ctx, taskID)
	if err != nil {
		result = &TaskResult{ID: taskID, CreatedAt: startedAt}
	}
	result.Status = TaskStatusStarted
	result.StartedAt = &startedAt
	if err := c.broker.storeResult(ctx, result); err != nil {
		c.log.Error("Failed to mark task started", zap.Error(err))
	}
}

func (c *Consumer) finish(ctx context.Context, taskID string, status TaskStatus, errMsg string) {
	result, err := c.broker.GetTaskResult(ctx, taskID)
	if err != nil {
		result = &TaskResult{ID: taskID, CreatedAt: time.Now().UTC()}
	}
	now := time.Now().UTC()
	result.Status = status
	result.Error = errMsg
	result.EndedAt = &now
	if err := c.broker.storeResult(ctx, result); err != nil {
		c.log.Error("Failed to store task result", zap.Error(err))
	}
}
