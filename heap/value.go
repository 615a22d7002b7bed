// ABOUTME: Core data types for managed heap values
// ABOUTME: Defines Kind, Offset, Ref, Object, Array, and Monitor structures

package heap

// Offset is the stable identifier of a heap value, used as its container key.
type Offset uint64

// Kind is the closed tag distinguishing heap value variants.
type Kind int

const (
	// KindObject tags a heap value with reference-typed field slots
	KindObject Kind = iota
	// KindArray tags a heap value with a contiguous sequence of element slots
	KindArray
)

// String returns the tag name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Ref is a non-owning reference to a heap value. A nil *Ref in a slot is
// the null reference. Refs are pure lookups into the heap's containers;
// holding one confers no ownership.
type Ref struct {
	Kind   Kind
	Offset Offset
}

// Object is a heap value with a fixed set of reference-typed field slots.
// Primitive fields are invisible to the collector and not represented.
type Object struct {
	Offset Offset
	Fields []*Ref // each slot holds nil or a reference to another heap value
}

// Ref returns a reference to this object.
func (o *Object) Ref() *Ref {
	return &Ref{Kind: KindObject, Offset: o.Offset}
}

// Array is a heap value with a length and a separately owned element buffer.
type Array struct {
	Offset   Offset
	Length   int
	Elements []*Ref // backing store owned by the array, released on sweep
}

// Ref returns a reference to this array.
func (a *Array) Ref() *Ref {
	return &Ref{Kind: KindArray, Offset: a.Offset}
}

// Monitor is a lock record associated with a heap value. It shares the
// offset of the object or array it guards and records that value's kind.
type Monitor struct {
	Offset Offset
	Kind   Kind
}
