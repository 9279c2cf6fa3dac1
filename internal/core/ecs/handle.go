package ecs

// EntityID is the opaque handle identifying a live combat entity. It encodes
// a 32-bit slot index in the lower bits and a 32-bit generation in the upper
// bits. The generation increments when the entity returns to its pool, so a
// handle captured before pool-return can never resolve to the reused slot.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// HandleAllocator issues generational handles with a free list. Slot 0 is
// burned at construction so the zero EntityID always means "no entity".
type HandleAllocator struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewHandleAllocator() *HandleAllocator {
	a := &HandleAllocator{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
	// Slot 0 starts at generation 1 so EntityID(0) is permanently stale.
	a.generations = append(a.generations, 1)
	a.freeList = append(a.freeList, 0)
	a.nextIndex = 1
	return a
}

func (a *HandleAllocator) Allocate() EntityID {
	if len(a.freeList) > 0 {
		idx := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		return NewEntityID(idx, a.generations[idx])
	}
	idx := a.nextIndex
	a.nextIndex++
	if int(idx) >= len(a.generations) {
		a.generations = append(a.generations, 0)
	}
	return NewEntityID(idx, a.generations[idx])
}

// Live reports whether the handle still refers to its entity's current
// activation. Stale handles (captured before a pool-return) return false.
func (a *HandleAllocator) Live(id EntityID) bool {
	idx := id.Index()
	if idx >= a.nextIndex {
		return false
	}
	return a.generations[idx] == id.Generation()
}

// Invalidate retires a handle. The slot's generation bumps and the index goes
// back on the free list. Invalidating an already-stale handle is a no-op.
func (a *HandleAllocator) Invalidate(id EntityID) {
	idx := id.Index()
	if idx >= a.nextIndex {
		return
	}
	if a.generations[idx] != id.Generation() {
		return // already invalidated
	}
	a.generations[idx]++
	a.freeList = append(a.freeList, idx)
}
