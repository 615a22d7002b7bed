// ABOUTME: Tests for the safepoint rendezvous barrier
// ABOUTME: Validates release, reuse across generations, and blocking on mismatch

package gc

import (
	"sync"
	"testing"
	"time"
)

func TestSafepointSingleParty(t *testing.T) {
	s := NewSafepoint()
	// With one party the rendezvous is immediate
	s.Rendezvous(1)
}

func TestSafepointReleasesAllParties(t *testing.T) {
	s := NewSafepoint()
	const parties = 4

	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Rendezvous(parties)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Rendezvous did not release all parties")
	}
}

func TestSafepointReusableAcrossCycles(t *testing.T) {
	s := NewSafepoint()
	const parties = 3
	const cycles = 5

	for cycle := 0; cycle < cycles; cycle++ {
		var wg sync.WaitGroup
		for i := 0; i < parties; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Rendezvous(parties)
			}()
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("Rendezvous stalled in cycle %d", cycle)
		}
	}
}

func TestSafepointMismatchBlocks(t *testing.T) {
	s := NewSafepoint()

	released := make(chan struct{})
	go func() {
		s.Rendezvous(2)
		close(released)
	}()

	// A lone arrival with a party count of 2 must block, not fail fast.
	select {
	case <-released:
		t.Fatal("Rendezvous returned despite missing party")
	case <-time.After(100 * time.Millisecond):
	}

	// Supply the missing party so the goroutine can finish.
	s.Rendezvous(2)
	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("Rendezvous did not release after the missing party arrived")
	}
}
