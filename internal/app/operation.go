package app

import (
	"time"

	"blog-go/internal/blog"
)

// Operation describes one CLI invocation. Its ID tags every log line the
// invocation writes, and its status is logged when the app closes.
type Operation struct {
	ID      string
	Name    string
	Args    string
	Status  string // "success" or "error"
	Started time.Time
}

// NewOperation starts an operation at the clock's current time.
func NewOperation(name, args string, clock blog.Clock) *Operation {
	now := clock.Now().UTC()
	return &Operation{
		ID:      now.Format("20060102T150405Z"),
		Name:    name,
		Args:    args,
		Status:  "success",
		Started: now,
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed(clock blog.Clock) time.Duration {
	return clock.Now().Sub(op.Started)
}
