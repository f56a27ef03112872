package broker

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrUnknownTask  = errors.New("no handler registered for task")
	ErrBrokerClosed = errors.New("broker is closed")
)

// Queue enqueues background jobs identified by a task name. The caller
// gets back a message id and nothing else; results are observable only
// through whatever the job itself persists.
type Queue interface {
	Enqueue(ctx context.Context, taskName string, args ...interface{}) (string, error)
}

// Handler processes one dequeued job. Args carry the positional
// arguments the enqueuer supplied, decoded as json.Number for numeric
// values.
type Handler func(ctx context.Context, args []interface{}) error
