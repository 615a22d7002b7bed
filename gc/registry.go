// ABOUTME: Registry for collection algorithms keyed by policy
// ABOUTME: Unknown policies fall back to the mark-and-sweep algorithm

package gc

import (
	"errors"
	"sync"
)

// Policy selects the collection algorithm for a cycle. The enumeration
// admits future strategies; every currently defined value converges on
// mark-and-sweep.
type Policy int

const (
	// PolicyMarkAndSweep is the concurrent stop-the-world mark-and-sweep
	// algorithm, and the fallback for any unrecognized policy value.
	PolicyMarkAndSweep Policy = iota
)

// String returns the policy name for diagnostics.
func (p Policy) String() string {
	switch p {
	case PolicyMarkAndSweep:
		return "mark-and-sweep"
	default:
		return "unknown"
	}
}

// ErrNoAlgorithm is returned when no algorithm is registered for a policy
// and no fallback exists.
var ErrNoAlgorithm = errors.New("no algorithm registered for policy")

// Algorithm is a collection strategy executed by the coordinator while it
// holds the cycle lock.
type Algorithm interface {
	// Name returns a short human-readable algorithm name
	Name() string

	// Run executes one full collection cycle on the collector
	Run(c *Collector)
}

// algorithmRegistry holds registered algorithms
type algorithmRegistry struct {
	mu         sync.RWMutex
	algorithms map[Policy]Algorithm
}

// Global registry instance
var registry = &algorithmRegistry{
	algorithms: make(map[Policy]Algorithm),
}

// RegisterAlgorithm adds an algorithm to the registry for the given policy,
// replacing any previous registration.
func RegisterAlgorithm(p Policy, a Algorithm) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.algorithms[p] = a
}

// algorithmFor selects the algorithm for a policy. An unknown policy falls
// back to mark-and-sweep.
func algorithmFor(p Policy) (Algorithm, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	if a, ok := registry.algorithms[p]; ok {
		return a, nil
	}
	if a, ok := registry.algorithms[PolicyMarkAndSweep]; ok {
		return a, nil
	}
	return nil, ErrNoAlgorithm
}

// markAndSweep is the built-in Algorithm.
type markAndSweep struct{}

// Name returns the algorithm name.
func (markAndSweep) Name() string { return "mark-and-sweep" }

// Run marks every root's closure and sweeps the unmarked remainder.
func (markAndSweep) Run(c *Collector) { c.markAndSweep() }

func init() {
	RegisterAlgorithm(PolicyMarkAndSweep, markAndSweep{})
}
