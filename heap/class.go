// ABOUTME: Method area holding loaded classes and their static reference fields
// ABOUTME: Static fields are collection roots; primitives are invisible here

package heap

import "sync"

// Class is a loaded class's static storage as seen by the collector: a
// mapping from field offset to reference. Primitive statics are not
// represented since the collector ignores them.
type Class struct {
	Name    string
	Statics map[uint32]*Ref
}

// SetStatic stores a static reference field at the given field offset.
func (c *Class) SetStatic(fieldOffset uint32, ref *Ref) {
	if c.Statics == nil {
		c.Statics = make(map[uint32]*Ref)
	}
	c.Statics[fieldOffset] = ref
}

// MethodArea holds all currently loaded classes. The collector reads it
// during the mark phase and never mutates it.
type MethodArea struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewMethodArea creates an empty method area.
func NewMethodArea() *MethodArea {
	return &MethodArea{
		classes: make(map[string]*Class),
	}
}

// AddClass registers a loaded class, replacing any class with the same name.
func (ma *MethodArea) AddClass(c *Class) {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	ma.classes[c.Name] = c
}

// GetClass retrieves a class by name, or nil if not loaded.
func (ma *MethodArea) GetClass(name string) *Class {
	ma.mu.RLock()
	defer ma.mu.RUnlock()
	return ma.classes[name]
}

// NumClasses returns the number of loaded classes.
func (ma *MethodArea) NumClasses() int {
	ma.mu.RLock()
	defer ma.mu.RUnlock()
	return len(ma.classes)
}

// ForEachClass iterates over all loaded classes.
func (ma *MethodArea) ForEachClass(fn func(*Class)) {
	ma.mu.RLock()
	defer ma.mu.RUnlock()
	for _, c := range ma.classes {
		fn(c)
	}
}
