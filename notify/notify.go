// Package notify runs one-shot delayed tasks and keeps a handle on
// every outstanding one so shutdown can cancel them instead of leaking
// timers into a closing process.
package notify

import (
	"sync"
	"time"
)

// Notifier owns the registry of pending tasks. The zero value is not
// usable; call New.
type Notifier struct {
	mu     sync.Mutex
	tasks  map[uint64]*time.Timer
	nextID uint64
	wg     sync.WaitGroup
	closed bool
}

// New ...
func New() *Notifier {
	return &Notifier{tasks: make(map[uint64]*time.Timer)}
}

// AfterFunc runs fn exactly once after d has elapsed. A zero or
// negative d fires fn immediately rather than skipping it. The returned
// cancel stops the task and reports whether it was cancelled before fn
// ran; cancelling a fired task is a no-op.
func (n *Notifier) AfterFunc(d time.Duration, fn func()) (cancel func() bool) {
	if d < 0 {
		d = 0
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return func() bool { return false }
	}

	id := n.nextID
	n.nextID++
	n.wg.Add(1)

	timer := time.AfterFunc(d, func() {
		n.mu.Lock()
		_, pending := n.tasks[id]
		delete(n.tasks, id)
		n.mu.Unlock()
		defer n.wg.Done()
		// pending is false when cancel won the race after the timer
		// already fired; fn must not run in that case.
		if pending {
			fn()
		}
	})
	n.tasks[id] = timer

	return func() bool {
		n.mu.Lock()
		defer n.mu.Unlock()
		t, ok := n.tasks[id]
		if !ok {
			return false
		}
		delete(n.tasks, id)
		if t.Stop() {
			n.wg.Done()
		}
		return true
	}
}

// Outstanding reports how many tasks have not yet fired or been cancelled.
func (n *Notifier) Outstanding() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.tasks)
}

// Close cancels every pending task, waits for callbacks already running
// to finish, and rejects further scheduling.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	for id, t := range n.tasks {
		delete(n.tasks, id)
		if t.Stop() {
			n.wg.Done()
		}
	}
	n.mu.Unlock()
	n.wg.Wait()
}
