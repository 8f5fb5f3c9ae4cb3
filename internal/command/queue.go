package command

import (
	"context"
	"errors"
	"slices"
)

// ErrQueueDraining is returned when Drain is called on a queue that is
// already draining.
var ErrQueueDraining = errors.New("command queue is already draining")

// Queue is an ordered, append-only list of commands owned by one task run.
// It is not safe for concurrent use.
type Queue struct {
	commands []Command
	draining bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends commands in order. Enqueueing while the queue drains is a
// programming error and panics.
func (q *Queue) Enqueue(cmds ...Command) {
	if q.draining {
		panic("command: enqueue while queue is draining")
	}
	q.commands = append(q.commands, cmds...)
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.commands)
}

// Commands returns a copy of the pending commands in order.
func (q *Queue) Commands() []Command {
	return slices.Clone(q.commands)
}

// Drain executes every pending command strictly in insertion order and then
// clears the queue. It stops at the first command that fails or is declined
// and returns that command's result; later commands never run. On success
// the result of the last command is returned.
func (q *Queue) Drain(ctx context.Context, exec CommandExecutor) (Result, error) {
	if q.draining {
		return Result{}, ErrQueueDraining
	}
	q.draining = true
	defer func() {
		q.commands = nil
		q.draining = false
	}()

	var last Result
	for _, cmd := range q.commands {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		result, err := exec.Execute(ctx, cmd)
		if err != nil {
			return result, err
		}
		last = result

		if result.Outcome != OutcomeCompleted {
			return result, nil
		}
	}

	return last, nil
}
