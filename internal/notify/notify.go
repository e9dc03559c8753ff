// Package notify is the transient user-facing notification surface.
// Notifications are the only propagation path for action outcomes: they
// are never retried, logged durably or escalated.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier surfaces transient success and error messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes notifications to a terminal.
type Console struct {
	Out io.Writer
	Err io.Writer
}

// Success prints a success notification.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.Out, "✓ %s\n", msg)
}

// Error prints an error notification.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.Err, "✗ %s\n", msg)
}

// Recorder collects notifications for inspection in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// Success records a success notification.
func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

// Error records an error notification.
func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

// Last returns the most recent notification of either kind recorded, or
// empty strings when nothing has been recorded.
func (r *Recorder) Last() (success, failure string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.Successes); n > 0 {
		success = r.Successes[n-1]
	}
	if n := len(r.Errors); n > 0 {
		failure = r.Errors[n-1]
	}
	return success, failure
}
