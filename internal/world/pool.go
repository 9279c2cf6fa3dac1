package world

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrPoolExhausted means the tag's inactive queue is empty. Recoverable:
	// the caller skips the spawn, it is not retried automatically.
	ErrPoolExhausted = errors.New("pool exhausted")
	// ErrUnknownTag means the tag was never pre-warmed.
	ErrUnknownTag = errors.New("unknown pool tag")
)

// Pool owns the reusable enemy instances, grouped by template tag. All
// backing storage is allocated during AddTag; Acquire and Release only move
// instances between the inactive queue and the active set.
type Pool struct {
	log     *zap.Logger
	queues  map[string][]*Enemy
	active  map[*Enemy]string // tag each active instance was acquired under
	prewarm map[string]int
}

func NewPool(log *zap.Logger) *Pool {
	return &Pool{
		log:     log,
		queues:  make(map[string][]*Enemy),
		active:  make(map[*Enemy]string),
		prewarm: make(map[string]int),
	}
}

// AddTag pre-allocates size inactive instances for the tag.
func (p *Pool) AddTag(tag string, size int, factory func() *Enemy) {
	q := make([]*Enemy, 0, size)
	for i := 0; i < size; i++ {
		q = append(q, factory())
	}
	p.queues[tag] = q
	p.prewarm[tag] = size
}

// Acquire pops one inactive instance and marks it active. The caller is
// responsible for Initialize, which repositions the instance and registers it.
// The queue is a stack: popping from the tail keeps the release append inside
// the prewarmed capacity, so acquire/release never touch the allocator.
func (p *Pool) Acquire(tag string) (*Enemy, error) {
	q, ok := p.queues[tag]
	if !ok {
		return nil, ErrUnknownTag
	}
	if len(q) == 0 {
		return nil, ErrPoolExhausted
	}
	e := q[len(q)-1]
	p.queues[tag] = q[:len(q)-1]
	p.active[e] = tag
	return e, nil
}

// Release resets the instance to its canonical clean state and re-enqueues
// it. Releasing an already-inactive instance is a no-op. An unknown tag is
// logged and the instance discarded rather than crashing the simulation.
func (p *Pool) Release(tag string, e *Enemy) error {
	if e == nil {
		return nil
	}
	if _, ok := p.queues[tag]; !ok {
		p.log.Warn("release with unknown pool tag, discarding instance",
			zap.String("tag", tag))
		delete(p.active, e)
		return ErrUnknownTag
	}
	if p.active[e] != tag {
		return nil // already inactive (or active under another tag)
	}
	delete(p.active, e)
	e.Reset()
	p.queues[tag] = append(p.queues[tag], e)
	return nil
}

// IsActive reports whether the instance is currently checked out.
func (p *Pool) IsActive(e *Enemy) bool {
	_, ok := p.active[e]
	return ok
}

// InactiveCount returns the number of instances waiting in the tag's queue.
func (p *Pool) InactiveCount(tag string) int {
	return len(p.queues[tag])
}

// ActiveCount returns the number of checked-out instances across all tags.
func (p *Pool) ActiveCount() int {
	return len(p.active)
}
