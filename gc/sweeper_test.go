// ABOUTME: Tests for the parallel sweep phase
// ABOUTME: Validates eviction of unmarked entries and the monitor predicate

package gc

import (
	"testing"

	"github.com/prateek/marksweep/heap"
)

func TestSweepEvictsUnmarked(t *testing.T) {
	h := heap.New()
	live := h.NewObject(0)
	h.NewObject(0) // garbage
	liveArr := h.NewArray(1)
	h.NewArray(1) // garbage

	c := newTestCollector(h)
	defer c.Close()

	c.objectMarks.Insert(live.Offset)
	c.arrayMarks.Insert(liveArr.Offset)

	c.pool.SignalWork()
	c.sweep()
	c.pool.SignalWait()

	if h.Objects.Len() != 1 || h.Objects.Get(live.Offset) == nil {
		t.Errorf("Expected only the marked object to survive, have %d objects", h.Objects.Len())
	}
	if h.Arrays.Len() != 1 || h.Arrays.Get(liveArr.Offset) == nil {
		t.Errorf("Expected only the marked array to survive, have %d arrays", h.Arrays.Len())
	}
	if c.pending.ObjectsSwept != 1 || c.pending.ArraysSwept != 1 {
		t.Errorf("Expected 1 object and 1 array swept, got %d and %d",
			c.pending.ObjectsSwept, c.pending.ArraysSwept)
	}
}

func TestSweepReleasesArrayStorage(t *testing.T) {
	h := heap.New()
	garbage := h.NewArray(3)
	other := h.NewArray(1)
	garbage.Elements[0] = other.Ref()

	c := newTestCollector(h)
	defer c.Close()

	c.arrayMarks.Insert(other.Offset)

	c.pool.SignalWork()
	c.sweep()
	c.pool.SignalWait()

	if garbage.Elements != nil {
		t.Error("Evicted array should have its element buffer released")
	}
	if other.Elements == nil {
		t.Error("Surviving array must keep its element buffer")
	}
}

func TestMonitorSweepKeepsReachable(t *testing.T) {
	// A monitor survives when its offset is in either mark set; eviction
	// requires absence from both.
	h := heap.New()
	obj := h.NewObject(0)
	arr := h.NewArray(0)
	deadArr := h.NewArray(0)
	h.NewMonitor(obj.Offset, heap.KindObject)
	h.NewMonitor(arr.Offset, heap.KindArray)
	h.NewMonitor(deadArr.Offset, heap.KindArray)

	c := newTestCollector(h)
	defer c.Close()

	// obj is in the object set only, arr in the array set only.
	c.objectMarks.Insert(obj.Offset)
	c.arrayMarks.Insert(arr.Offset)

	c.pool.SignalWork()
	c.sweep()
	c.pool.SignalWait()

	if h.Monitors.Get(obj.Offset) == nil {
		t.Error("Monitor for marked object must survive sweep")
	}
	if h.Monitors.Get(arr.Offset) == nil {
		t.Error("Monitor for marked array must survive sweep")
	}
	if h.Monitors.Get(deadArr.Offset) != nil {
		t.Error("Monitor for unmarked value must be evicted")
	}
	if c.pending.MonitorsSwept != 1 {
		t.Errorf("Expected 1 monitor swept, got %d", c.pending.MonitorsSwept)
	}
}
