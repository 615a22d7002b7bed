// ABOUTME: Reference ThreadSet implementation tracking mutator frame chains
// ABOUTME: Runtimes with their own scheduler can provide ThreadSet directly

package gc

import (
	"sync"

	"github.com/prateek/marksweep/heap"
)

// ThreadRegistry is an in-memory ThreadSet for runtimes without their own
// thread accounting. Each mutator attaches once, keeps its chain head up
// to date as frames push and pop, and detaches when it exits.
type ThreadRegistry struct {
	mu     sync.RWMutex
	nextID int
	chains map[int]*heap.Frame
}

// NewThreadRegistry creates an empty registry.
func NewThreadRegistry() *ThreadRegistry {
	return &ThreadRegistry{
		chains: make(map[int]*heap.Frame),
	}
}

// Attach registers a mutator thread with its current frame chain head and
// returns the thread's id.
func (r *ThreadRegistry) Attach(chain *heap.Frame) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.chains[r.nextID] = chain
	return r.nextID
}

// SetChain updates a thread's frame chain head. Must not be called while a
// collection cycle is scanning the chain; threads update chains only from
// outside a safepoint pause.
func (r *ThreadRegistry) SetChain(id int, chain *heap.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chains[id]; ok {
		r.chains[id] = chain
	}
}

// Detach removes an exited thread from the registry.
func (r *ThreadRegistry) Detach(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chains, id)
}

// Count returns the number of attached threads.
func (r *ThreadRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chains)
}

// ForEachChain invokes fn with each attached thread's chain head.
func (r *ThreadRegistry) ForEachChain(fn func(*heap.Frame)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, chain := range r.chains {
		fn(chain)
	}
}
