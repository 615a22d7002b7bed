// ABOUTME: Heap containers keyed by offset with iteration-with-erase support
// ABOUTME: Provides the authoritative owner of all objects, arrays, and monitors

package heap

import "sync"

// ObjectContainer owns all live objects, keyed by offset.
type ObjectContainer struct {
	mu   sync.RWMutex
	data map[Offset]*Object
}

// Add inserts an object, replacing any entry with the same offset.
func (c *ObjectContainer) Add(o *Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[o.Offset] = o
}

// Get retrieves an object by offset, or nil if absent.
func (c *ObjectContainer) Get(off Offset) *Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[off]
}

// Len returns the number of live objects.
func (c *ObjectContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// ForEach iterates over all objects.
func (c *ObjectContainer) ForEach(fn func(*Object)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.data {
		fn(o)
	}
}

// Evict removes every entry for which keep returns false and reports how
// many entries were removed. The container is the sole owner of objects,
// so removal is the release.
func (c *ObjectContainer) Evict(keep func(Offset) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for off := range c.data {
		if !keep(off) {
			delete(c.data, off)
			evicted++
		}
	}
	return evicted
}

// ArrayContainer owns all live arrays, keyed by offset.
type ArrayContainer struct {
	mu   sync.RWMutex
	data map[Offset]*Array
}

// Add inserts an array, replacing any entry with the same offset.
func (c *ArrayContainer) Add(a *Array) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[a.Offset] = a
}

// Get retrieves an array by offset, or nil if absent.
func (c *ArrayContainer) Get(off Offset) *Array {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[off]
}

// Len returns the number of live arrays.
func (c *ArrayContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// ForEach iterates over all arrays.
func (c *ArrayContainer) ForEach(fn func(*Array)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.data {
		fn(a)
	}
}

// Evict removes every entry for which keep returns false, invoking release
// on each evicted array before erasure so its element buffer can be freed.
// Returns the number of entries removed.
func (c *ArrayContainer) Evict(keep func(Offset) bool, release func(*Array)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for off, a := range c.data {
		if !keep(off) {
			if release != nil {
				release(a)
			}
			delete(c.data, off)
			evicted++
		}
	}
	return evicted
}

// MonitorContainer owns all live monitors, keyed by the offset of the heap
// value each monitor guards.
type MonitorContainer struct {
	mu   sync.RWMutex
	data map[Offset]*Monitor
}

// Add inserts a monitor, replacing any entry with the same offset.
func (c *MonitorContainer) Add(m *Monitor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[m.Offset] = m
}

// Get retrieves a monitor by offset, or nil if absent.
func (c *MonitorContainer) Get(off Offset) *Monitor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[off]
}

// Len returns the number of live monitors.
func (c *MonitorContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Evict removes every entry for which keep returns false and reports how
// many entries were removed.
func (c *MonitorContainer) Evict(keep func(Offset) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for off := range c.data {
		if !keep(off) {
			delete(c.data, off)
			evicted++
		}
	}
	return evicted
}

// Heap is the authoritative owner of all heap values. The collector never
// constructs or destroys a value except through sweep eviction.
type Heap struct {
	Objects  *ObjectContainer
	Arrays   *ArrayContainer
	Monitors *MonitorContainer

	mu         sync.Mutex
	nextOffset Offset
}

// New creates an empty heap.
func New() *Heap {
	return &Heap{
		Objects:  &ObjectContainer{data: make(map[Offset]*Object)},
		Arrays:   &ArrayContainer{data: make(map[Offset]*Array)},
		Monitors: &MonitorContainer{data: make(map[Offset]*Monitor)},
	}
}

// allocOffset hands out the next unused offset.
func (h *Heap) allocOffset() Offset {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextOffset++
	return h.nextOffset
}

// NewObject allocates an object with the given number of reference field
// slots, all initially null, and adds it to the object container.
func (h *Heap) NewObject(numFields int) *Object {
	o := &Object{
		Offset: h.allocOffset(),
		Fields: make([]*Ref, numFields),
	}
	h.Objects.Add(o)
	return o
}

// NewArray allocates an array of the given length with all-null elements
// and adds it to the array container.
func (h *Heap) NewArray(length int) *Array {
	a := &Array{
		Offset:   h.allocOffset(),
		Length:   length,
		Elements: make([]*Ref, length),
	}
	h.Arrays.Add(a)
	return a
}

// NewMonitor creates a monitor guarding the heap value at the given offset
// and adds it to the monitor container.
func (h *Heap) NewMonitor(off Offset, kind Kind) *Monitor {
	m := &Monitor{Offset: off, Kind: kind}
	h.Monitors.Add(m)
	return m
}

// Fields returns the reference field slots of the object at off, or nil
// and false if no such object exists.
func (h *Heap) Fields(off Offset) ([]*Ref, bool) {
	o := h.Objects.Get(off)
	if o == nil {
		return nil, false
	}
	return o.Fields, true
}

// Elements returns the length and element slots of the array at off, or
// zero values and false if no such array exists.
func (h *Heap) Elements(off Offset) (int, []*Ref, bool) {
	a := h.Arrays.Get(off)
	if a == nil {
		return 0, nil, false
	}
	return a.Length, a.Elements, true
}
