// ABOUTME: Call frame chain structures scanned by the collector for roots
// ABOUTME: Each frame owns fixed-size operand stack and local variable slots

package heap

// Frame is one active method invocation. A thread's frames form a singly
// linked stack, innermost first, with Next pointing toward the caller and
// nil at the base. The interpreter creates and destroys frames; the
// collector only reads them during a cycle.
type Frame struct {
	Stack  []*Ref // operand stack slots, nil means empty
	Locals []*Ref // local variable slots, nil means empty
	Next   *Frame // caller's frame, nil at the base of the chain
}

// NewFrame creates a frame with the given operand stack and local variable
// capacities, all slots initially null, pushed on top of next.
func NewFrame(maxStack, maxLocals int, next *Frame) *Frame {
	return &Frame{
		Stack:  make([]*Ref, maxStack),
		Locals: make([]*Ref, maxLocals),
		Next:   next,
	}
}

// Walk invokes fn for each frame in the chain, innermost first.
func (f *Frame) Walk(fn func(*Frame)) {
	for cur := f; cur != nil; cur = cur.Next {
		fn(cur)
	}
}

// Depth returns the number of frames in the chain.
func (f *Frame) Depth() int {
	n := 0
	for cur := f; cur != nil; cur = cur.Next {
		n++
	}
	return n
}
