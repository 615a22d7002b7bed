// ABOUTME: Reusable safepoint rendezvous barrier for stopping the world
// ABOUTME: Generation-tagged so the barrier resets atomically between cycles

package gc

import "sync"

// Safepoint is the rendezvous barrier that pauses mutator threads for a
// collection cycle. Each participant calls Rendezvous with the total
// number of parties; all callers block until the last one arrives, then
// every waiter is released together and the barrier resets for the next
// cycle. Arrivals are scoped to a generation counter, so a thread released
// from one rendezvous cannot satisfy the arrival count of the next.
type Safepoint struct {
	mu         sync.Mutex
	cond       *sync.Cond
	arrived    int
	generation uint64
}

// NewSafepoint creates a barrier ready for its first rendezvous.
func NewSafepoint() *Safepoint {
	s := &Safepoint{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Rendezvous blocks the caller until parties callers of the current
// generation have arrived, then releases them all. If parties is larger
// than the number of threads that will ever arrive, every caller blocks
// forever; thread count accounting must be accurate before a cycle starts.
func (s *Safepoint) Rendezvous(parties int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.generation
	s.arrived++
	if s.arrived >= parties {
		s.arrived = 0
		s.generation++
		s.cond.Broadcast()
		return
	}
	for gen == s.generation {
		s.cond.Wait()
	}
}
