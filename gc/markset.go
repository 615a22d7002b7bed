// ABOUTME: Spinlock-guarded set of heap offsets proven reachable in a cycle
// ABOUTME: Insertion is idempotent; the set is cleared at the end of every cycle

package gc

import "github.com/prateek/marksweep/heap"

// MarkSet records which heap offsets were proven reachable in the current
// collection cycle. The object set and the array set are independent
// instances with independent locks so unrelated root traversals do not
// contend with each other.
type MarkSet struct {
	lock    SpinLock
	offsets map[heap.Offset]struct{}
}

// NewMarkSet creates an empty mark set.
func NewMarkSet() *MarkSet {
	return &MarkSet{
		offsets: make(map[heap.Offset]struct{}),
	}
}

// Insert records off as reachable. Inserting an already-present offset is
// a no-op.
func (s *MarkSet) Insert(off heap.Offset) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.offsets[off] = struct{}{}
}

// TryInsert records off as reachable and reports whether it was newly
// inserted. The marker uses the false return as its "already expanded"
// check so shared subgraphs are traversed at most once.
func (s *MarkSet) TryInsert(off heap.Offset) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.offsets[off]; ok {
		return false
	}
	s.offsets[off] = struct{}{}
	return true
}

// Contains reports whether off was marked reachable this cycle.
func (s *MarkSet) Contains(off heap.Offset) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.offsets[off]
	return ok
}

// Len returns the number of marked offsets.
func (s *MarkSet) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.offsets)
}

// Clear empties the set for the next cycle.
func (s *MarkSet) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.offsets = make(map[heap.Offset]struct{})
}
