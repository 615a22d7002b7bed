// ABOUTME: Parallel sweep phase evicting unmarked heap entries
// ABOUTME: Objects, arrays, and monitors are swept by three independent tasks

package gc

import "github.com/prateek/marksweep/heap"

// sweep evicts every heap entry whose offset was not marked this cycle.
// It dispatches one task per container to the worker pool and blocks until
// all three complete. The tasks touch disjoint containers and the mark
// sets are no longer mutated once marking has finished, so the three
// sweeps run fully in parallel. Eviction counts land in the collector's
// pending stats for this cycle.
func (c *Collector) sweep() {
	objectTask := c.pool.Submit(func() {
		n := c.heap.Objects.Evict(c.objectMarks.Contains)
		c.pending.ObjectsSwept = n
	})

	arrayTask := c.pool.Submit(func() {
		n := c.heap.Arrays.Evict(c.arrayMarks.Contains, releaseArray)
		c.pending.ArraysSwept = n
	})

	monitorTask := c.pool.Submit(func() {
		// A monitor guards either an object or an array, so it survives
		// if its offset appears in either mark set. Eviction requires
		// absence from both.
		n := c.heap.Monitors.Evict(func(off heap.Offset) bool {
			return c.objectMarks.Contains(off) || c.arrayMarks.Contains(off)
		})
		c.pending.MonitorsSwept = n
	})

	objectTask.Wait()
	arrayTask.Wait()
	monitorTask.Wait()
}

// releaseArray drops an evicted array's element slots and its backing
// buffer. Arrays own a separately allocated store distinct from their
// container entry, so container removal alone is not enough.
func releaseArray(a *heap.Array) {
	for i := range a.Elements {
		a.Elements[i] = nil
	}
	a.Elements = nil
}
