// ABOUTME: Fixed-size worker pool executing marking and sweeping tasks
// ABOUTME: Workers sleep until signaled, pull one task at a time from a FIFO queue

package gc

import (
	"runtime"
	"sync"
)

// Task is the future-style handle returned by Pool.Submit. Wait blocks
// until the task has been executed by some worker.
type Task struct {
	fn   func()
	done chan struct{}
}

// Wait blocks until the task has completed.
func (t *Task) Wait() {
	<-t.done
}

// Pool is a fixed set of background workers that execute submitted tasks.
// Workers sleep while the pool is idle; SignalWork wakes them for the
// duration of a collection cycle and SignalWait puts them back to sleep.
// A task that panics crashes the process; there is no recovery path for a
// failed unit of collection work.
type Pool struct {
	mu    sync.Mutex
	cond  *sync.Cond
	work  bool
	done  bool
	queue []*Task
}

// NewPool creates a pool and starts workers goroutines in the idle state.
func NewPool(workers int) *Pool {
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < workers; i++ {
		go p.runPendingWork()
	}
	return p
}

// runPendingWork is the worker loop: sleep until work is signaled, then
// repeatedly poll the queue for one task at a time. The poll is
// non-blocking; an awake worker with an empty queue yields and checks
// again, matching producer availability rather than parking on the queue.
func (p *Pool) runPendingWork() {
	for {
		p.mu.Lock()
		for !p.work {
			p.cond.Wait()
		}
		if p.done {
			p.mu.Unlock()
			return
		}
		var t *Task
		if len(p.queue) > 0 {
			t = p.queue[0]
			p.queue = p.queue[1:]
		}
		p.mu.Unlock()

		if t != nil {
			t.fn()
			close(t.done)
		} else {
			runtime.Gosched()
		}
	}
}

// Submit enqueues a unit of work and returns its handle. The task runs on
// whichever worker dequeues it; dequeue order is FIFO but execution order
// across workers carries no further guarantee.
func (p *Pool) Submit(fn func()) *Task {
	t := &Task{fn: fn, done: make(chan struct{})}
	p.mu.Lock()
	p.queue = append(p.queue, t)
	p.mu.Unlock()
	return t
}

// SignalWork wakes all workers for a collection cycle.
func (p *Pool) SignalWork() {
	p.mu.Lock()
	p.work = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// SignalWait puts the pool back into its idle state once a cycle finishes.
// Workers go back to sleep after their current queue poll.
func (p *Pool) SignalWait() {
	p.mu.Lock()
	p.work = false
	p.mu.Unlock()
}

// Finalize marks the pool permanently done and wakes all workers so they
// can observe the done flag and exit. Tasks still queued are abandoned.
func (p *Pool) Finalize() {
	p.mu.Lock()
	p.work = true
	p.done = true
	p.mu.Unlock()
	p.cond.Broadcast()
}
