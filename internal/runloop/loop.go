package runloop

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrStopped is returned by Do once the loop has been stopped.
var ErrStopped = errors.New("run loop stopped")

// Loop executes queued funcs one at a time on a single goroutine.
// It is the event queue a calculator session runs on: commands and deferred
// callbacks never overlap.
type Loop struct {
	name  string
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop with the given queue depth. Call Start to run it.
func New(name string, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Loop{
		name:  name,
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Start launches the loop goroutine.
func (l *Loop) Start() {
	go l.run()
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.tasks:
			if l.stopped() {
				return
			}
			fn()
		case <-l.done:
			log.Printf("Run loop %s shutting down", l.name)
			return
		}
	}
}

// Do runs fn on the loop and waits for it to finish. If ctx is done before
// fn starts, fn is skipped and ctx.Err() is returned. Once fn has started Do
// waits for it, so a nil error means fn ran to completion.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if l.stopped() {
		return ErrStopped
	}
	finished := make(chan struct{})
	var skipped error
	task := func() {
		defer close(finished)
		if skipped = ctx.Err(); skipped != nil {
			return
		}
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return skipped
	case <-l.done:
		return ErrStopped
	}
}

// After schedules fn to run on the loop once d has elapsed. The callback
// cannot be cancelled; it is dropped if the loop stops first.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		select {
		case l.tasks <- fn:
		case <-l.done:
		}
	})
}

// Stop ends the loop. It is safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) stopped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
