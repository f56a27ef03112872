package broker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InMemoryQueue is a synchronous, in-process Queue implementation.
// Handlers run inline on Enqueue. Used by tests and local development
// where no Redis instance is available.
type InMemoryQueue struct {
	handlers map[string]Handler
	mu       sync.RWMutex
	logger   *logrus.Logger
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue
func NewInMemoryQueue(logger *logrus.Logger) *InMemoryQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &InMemoryQueue{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register binds a handler to a task name
func (q *InMemoryQueue) Register(taskName string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[taskName] = handler
}

// Enqueue dispatches the task to its handler immediately. Handler
// errors are logged, not returned, matching the fire-and-forget
// contract of the Redis broker.
func (q *InMemoryQueue) Enqueue(ctx context.Context, taskName string, args ...interface{}) (string, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return "", ErrBrokerClosed
	}

	taskID := uuid.New().String()
	handler, ok := q.handlers[taskName]
	if !ok {
		q.logger.WithField("task_name", taskName).Warn("No handler registered for task")
		return taskID, nil
	}

	if err := handler(ctx, args); err != nil {
		q.logger.WithError(err).WithFields(logrus.Fields{
			"task_id":   taskID,
			"task_name": taskName,
		}).Error("Task handler failed")
	}

	return taskID, nil
}

// Close closes the queue
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	return nil
}
