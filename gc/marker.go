// ABOUTME: Worklist-based mark traversal over the heap reference graph
// ABOUTME: Records reachable offsets in the mark sets without recursion

package gc

import (
	"fmt"

	"github.com/prateek/marksweep/heap"
)

// mark records ref and everything reachable from it in the mark sets.
// A nil ref is a no-op since stack and local slots may legitimately be
// empty. Traversal uses an explicit worklist with a mark-set membership
// check before a value's children are expanded, so each live value is
// expanded at most once and deep or cyclic graphs cannot overflow the
// goroutine stack.
//
// A reference whose offset is absent from its container, or whose kind is
// not a known variant, indicates a corrupted heap or a collaborator
// contract breach; both panic and are never recoverable mid-cycle.
func (c *Collector) mark(ref *heap.Ref) {
	if ref == nil {
		return
	}

	work := []*heap.Ref{ref}
	for len(work) > 0 {
		r := work[len(work)-1]
		work = work[:len(work)-1]

		switch r.Kind {
		case heap.KindObject:
			fields, ok := c.heap.Fields(r.Offset)
			if !ok {
				panic(fmt.Sprintf("gc: dangling object reference at offset %d", r.Offset))
			}
			if !c.objectMarks.TryInsert(r.Offset) {
				continue
			}
			for _, f := range fields {
				if f != nil {
					work = append(work, f)
				}
			}
		case heap.KindArray:
			length, elems, ok := c.heap.Elements(r.Offset)
			if !ok {
				panic(fmt.Sprintf("gc: dangling array reference at offset %d", r.Offset))
			}
			if !c.arrayMarks.TryInsert(r.Offset) {
				continue
			}
			for i := 0; i < length; i++ {
				if elems[i] != nil {
					work = append(work, elems[i])
				}
			}
		default:
			panic(fmt.Sprintf("gc: heap value at offset %d has unknown kind %d", r.Offset, r.Kind))
		}
	}
}

// markFrame submits one task marking a frame's operand stack slots and one
// marking its local slots, returning both handles. The two tasks touch
// disjoint slot arrays and the mark sets are independently locked, so they
// are safe to run concurrently, even for the same frame.
func (c *Collector) markFrame(f *heap.Frame) (stack, locals *Task) {
	stack = c.pool.Submit(func() {
		for _, slot := range f.Stack {
			c.mark(slot)
		}
	})
	locals = c.pool.Submit(func() {
		for _, slot := range f.Locals {
			c.mark(slot)
		}
	})
	return stack, locals
}

// markStatics submits one task feeding every static reference field of
// every loaded class through the marker. Statics are roots like any other:
// the full closure of each statically rooted subgraph is marked, not just
// the root itself.
func (c *Collector) markStatics() *Task {
	return c.pool.Submit(func() {
		c.area.ForEachClass(func(cls *heap.Class) {
			for _, ref := range cls.Statics {
				c.mark(ref)
			}
		})
	})
}
