package ecs

import "testing"

func TestZeroHandleNeverLive(t *testing.T) {
	a := NewHandleAllocator()
	if a.Live(EntityID(0)) {
		t.Fatalf("zero handle must never be live")
	}
	if !EntityID(0).IsZero() {
		t.Fatalf("EntityID(0).IsZero() = false")
	}
}

func TestInvalidateMakesHandleStale(t *testing.T) {
	a := NewHandleAllocator()
	id := a.Allocate()
	if !a.Live(id) {
		t.Fatalf("fresh handle not live")
	}
	a.Invalidate(id)
	if a.Live(id) {
		t.Fatalf("invalidated handle still live")
	}
	// Idempotent: a second invalidate must not corrupt the slot.
	a.Invalidate(id)

	reused := a.Allocate()
	if reused.Index() != id.Index() {
		t.Fatalf("expected slot reuse, got index %d want %d", reused.Index(), id.Index())
	}
	if reused.Generation() == id.Generation() {
		t.Fatalf("reused slot kept the old generation")
	}
	if a.Live(id) {
		t.Fatalf("old handle live after slot reuse")
	}
	if !a.Live(reused) {
		t.Fatalf("reused handle not live")
	}
}

func TestHandleEncoding(t *testing.T) {
	id := NewEntityID(42, 7)
	if id.Index() != 42 {
		t.Errorf("Index() = %d, want 42", id.Index())
	}
	if id.Generation() != 7 {
		t.Errorf("Generation() = %d, want 7", id.Generation())
	}
}
