// ABOUTME: Collection coordinator orchestrating safepoint, marking, and sweep
// ABOUTME: Threshold-gated entry point serializing cycles under one mutex

package gc

import (
	"sync"
	"time"

	"github.com/prateek/marksweep/heap"
)

// defaultWorkers is the pool size used when the caller does not choose one.
const defaultWorkers = 4

// ThreadSet is the scheduler collaborator: it reports how many mutator
// threads are active (the safepoint party count includes the coordinating
// thread) and exposes each thread's current frame chain head for root
// scanning.
type ThreadSet interface {
	// Count returns the total number of active mutator threads
	Count() int

	// ForEachChain invokes fn with each thread's frame chain head
	ForEachChain(fn func(*heap.Frame))
}

// Stats are the collector's cycle counters.
type Stats struct {
	Cycles             int64         // completed collection cycles
	ObjectsSwept       int           // objects evicted in the last cycle
	ArraysSwept        int           // arrays evicted in the last cycle
	MonitorsSwept      int           // monitors evicted in the last cycle
	TotalObjectsSwept  int64         // objects evicted across all cycles
	TotalArraysSwept   int64         // arrays evicted across all cycles
	TotalMonitorsSwept int64         // monitors evicted across all cycles
	LastPause          time.Duration // wall time of the last cycle
}

// cycleCounts collects sweep eviction counts for one cycle. Each field is
// written by exactly one sweep task and read only after that task's handle
// resolves.
type cycleCounts struct {
	ObjectsSwept  int
	ArraysSwept   int
	MonitorsSwept int
}

// Collector owns all collection state: the two mark sets, the safepoint
// barrier, the worker pool, and the memory-pressure flag. One instance is
// constructed at runtime startup and shared by reference; there is no
// package-level collector.
type Collector struct {
	heap    *heap.Heap
	area    *heap.MethodArea
	threads ThreadSet

	// mu guards the threshold flag and serializes cycles: at most one
	// collection is in flight, and a concurrent Collect blocks until the
	// current cycle has fully reset the mark sets and the flag.
	mu            sync.Mutex
	overThreshold bool
	frames        *heap.Frame // frame-chain snapshot, valid for one cycle

	objectMarks *MarkSet
	arrayMarks  *MarkSet
	pool        *Pool
	safepoint   *Safepoint

	pending cycleCounts
	stats   Stats
}

// New creates a collector for the given heap and method area. threads may
// be nil, in which case the coordinating thread is the only safepoint
// party and the only frame chain scanned is the one passed to Collect.
// workers chooses the pool size; values below one select the default.
func New(h *heap.Heap, area *heap.MethodArea, threads ThreadSet, workers int) *Collector {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Collector{
		heap:        h,
		area:        area,
		threads:     threads,
		objectMarks: NewMarkSet(),
		arrayMarks:  NewMarkSet(),
		pool:        NewPool(workers),
		safepoint:   NewSafepoint(),
	}
}

// SetOverThreshold records that the allocator judged memory pressure
// excessive. The next Collect call will run a cycle.
func (c *Collector) SetOverThreshold() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overThreshold = true
}

// OverThreshold reports whether the memory-pressure flag is currently set.
func (c *Collector) OverThreshold() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overThreshold
}

// Safepoint returns the rendezvous barrier. Mutator threads other than the
// coordinator pause by calling Rendezvous on it with the same party count
// the coordinator uses.
func (c *Collector) Safepoint() *Safepoint {
	return c.safepoint
}

// Stats returns a copy of the cycle counters. Blocks while a cycle is in
// flight.
func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Close shuts the worker pool down. The collector must not be used after
// Close; call it at runtime shutdown.
func (c *Collector) Close() {
	c.pool.Finalize()
}

// Collect runs one collection cycle if the memory-pressure flag is set,
// and is a no-op otherwise. frames is the coordinating thread's frame
// chain; chains of other threads come from the ThreadSet. The call blocks
// until the cycle completes: marking fans out across the worker pool,
// sweep evicts the unmarked remainder, then the mark sets and the flag are
// reset for the next cycle.
func (c *Collector) Collect(frames *heap.Frame, policy Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.overThreshold {
		return
	}

	start := time.Now()
	c.frames = frames
	c.pending = cycleCounts{}

	c.pool.SignalWork()
	c.stopTheWorld()

	alg, err := algorithmFor(policy)
	if err != nil {
		// Only possible if the built-in registration was removed; a
		// collector with no algorithm cannot make progress.
		panic(err)
	}
	alg.Run(c)

	c.objectMarks.Clear()
	c.arrayMarks.Clear()
	c.overThreshold = false
	c.frames = nil

	c.stats.Cycles++
	c.stats.ObjectsSwept = c.pending.ObjectsSwept
	c.stats.ArraysSwept = c.pending.ArraysSwept
	c.stats.MonitorsSwept = c.pending.MonitorsSwept
	c.stats.TotalObjectsSwept += int64(c.pending.ObjectsSwept)
	c.stats.TotalArraysSwept += int64(c.pending.ArraysSwept)
	c.stats.TotalMonitorsSwept += int64(c.pending.MonitorsSwept)
	c.stats.LastPause = time.Since(start)

	c.pool.SignalWait()
}

// stopTheWorld rendezvouses with every active mutator thread before the
// mark phase. The coordinator counts as one party; a wrong thread count
// blocks forever, so thread accounting must be accurate before a cycle.
func (c *Collector) stopTheWorld() {
	parties := 1
	if c.threads != nil {
		parties = c.threads.Count()
	}
	c.safepoint.Rendezvous(parties)
}

// markAndSweep marks the closure of every root, waits for all marking to
// finish, then sweeps. Roots are the static reference fields of every
// loaded class plus every stack and local slot of every frame in every
// thread's chain. Sweep is strictly ordered after all mark tasks resolve.
func (c *Collector) markAndSweep() {
	staticTask := c.markStatics()

	var stackTasks, localTasks []*Task
	markChain := func(chain *heap.Frame) {
		chain.Walk(func(f *heap.Frame) {
			stack, locals := c.markFrame(f)
			stackTasks = append(stackTasks, stack)
			localTasks = append(localTasks, locals)
		})
	}

	if c.frames != nil {
		markChain(c.frames)
	}
	if c.threads != nil {
		c.threads.ForEachChain(func(chain *heap.Frame) {
			// The coordinator's own chain was already queued; marking is
			// idempotent, so skipping it is only an economy.
			if chain != nil && chain != c.frames {
				markChain(chain)
			}
		})
	}

	staticTask.Wait()
	for _, t := range stackTasks {
		t.Wait()
	}
	for _, t := range localTasks {
		t.Wait()
	}

	c.sweep()
}
