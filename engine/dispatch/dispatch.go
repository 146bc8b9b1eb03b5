// Package dispatch marshals work from background goroutines onto the frame thread.
package dispatch

import (
	"log"
	"sync"
)

// Queue is a FIFO of functions posted from any goroutine and run by the frame thread.
type Queue struct {
	mu      *sync.Mutex
	pending []func()
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{mu: &sync.Mutex{}}
}

// Post enqueues fn to run on the next Drain. Nil functions are ignored.
//
// Parameters:
//   - fn: the function to run on the frame thread
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Len returns the number of functions waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every function posted before the call, in order.
// Functions posted while draining run on the next Drain. A panicking function is logged
// and does not stop the rest of the batch.
//
// Returns:
//   - int: the number of functions run
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		run(fn)
	}
	return len(batch)
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatch: recovered from panic: %v", r)
		}
	}()
	fn()
}
