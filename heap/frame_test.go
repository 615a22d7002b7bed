// ABOUTME: Tests for call frame chains
// ABOUTME: Validates chain construction, walking, and slot layout

package heap

import (
	"testing"
)

func TestFrameChain(t *testing.T) {
	base := NewFrame(2, 3, nil)
	middle := NewFrame(1, 1, base)
	top := NewFrame(4, 0, middle)

	if top.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", top.Depth())
	}
	if base.Depth() != 1 {
		t.Errorf("Expected depth 1 at base, got %d", base.Depth())
	}

	// Walk visits innermost first
	var visited []*Frame
	top.Walk(func(f *Frame) {
		visited = append(visited, f)
	})
	if len(visited) != 3 {
		t.Fatalf("Expected to walk 3 frames, got %d", len(visited))
	}
	if visited[0] != top || visited[1] != middle || visited[2] != base {
		t.Error("Walk order should be innermost to base")
	}
}

func TestFrameSlotLayout(t *testing.T) {
	f := NewFrame(2, 3, nil)

	if len(f.Stack) != 2 {
		t.Errorf("Expected 2 stack slots, got %d", len(f.Stack))
	}
	if len(f.Locals) != 3 {
		t.Errorf("Expected 3 local slots, got %d", len(f.Locals))
	}
	for i, s := range f.Stack {
		if s != nil {
			t.Errorf("Stack slot %d should start null", i)
		}
	}
	for i, l := range f.Locals {
		if l != nil {
			t.Errorf("Local slot %d should start null", i)
		}
	}
}
