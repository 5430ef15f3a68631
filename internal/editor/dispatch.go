package editor

import "sync"

// Dispatcher defers a callback to the host's next UI tick.
type Dispatcher interface {
	Dispatch(fn func())
}

// ImmediateDispatcher runs callbacks inline. Useful headless and in tests.
type ImmediateDispatcher struct{}

func (ImmediateDispatcher) Dispatch(fn func()) { fn() }

// QueueDispatcher collects callbacks until Flush. Dispatch is safe to call
// from other goroutines; Flush must run on the UI loop.
type QueueDispatcher struct {
	mu      sync.Mutex
	pending []func()
}

func (q *QueueDispatcher) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Flush runs the callbacks queued so far. Callbacks queued while flushing
// wait for the next call.
func (q *QueueDispatcher) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (q *QueueDispatcher) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
