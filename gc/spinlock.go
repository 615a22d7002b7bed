// ABOUTME: Lightweight spinlock for the mark sets' hot insertion path
// ABOUTME: CAS-based with a scheduler yield while contended

package gc

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a busy-wait mutual exclusion lock. Marking inserts into the
// mark sets at very high frequency with critical sections of a single map
// write, so spinning is cheaper than parking on a mutex. The zero value
// is an unlocked SpinLock.
type SpinLock struct {
	held atomic.Bool
}

// Lock acquires the lock, yielding the processor between failed attempts.
func (l *SpinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Calling Unlock on an unheld lock corrupts it.
func (l *SpinLock) Unlock() {
	l.held.Store(false)
}
