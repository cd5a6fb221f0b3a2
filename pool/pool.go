// Package pool recycles entity instances so the per-frame loop does not
// allocate decorations and bubbles over and over.
//
// Pools are keyed by string tags, each bound to a zero-argument factory.
// Neither InstancePool nor Manager is safe for concurrent use; the game loop
// is single-threaded.
package pool

import "fmt"

// InstancePool keeps released instances of one type for reuse.
type InstancePool[T comparable] struct {
	newFn func() T
	free  []T
}

// NewInstancePool creates a pool that builds new instances with newFn.
func NewInstancePool[T comparable](newFn func() T) *InstancePool[T] {
	if newFn == nil {
		panic("pool: nil factory")
	}
	return &InstancePool[T]{newFn: newFn}
}

// Get returns the most recently returned instance, or a new one when the
// free list is empty.
func (p *InstancePool[T]) Get() T {
	n := len(p.free)
	if n == 0 {
		return p.newFn()
	}
	v := p.free[n-1]
	var zero T
	p.free[n-1] = zero
	p.free = p.free[:n-1]
	return v
}

// Return puts v back on the free list. Returning an instance that is already
// free is a no-op; the result reports whether v was added.
func (p *InstancePool[T]) Return(v T) bool {
	for _, f := range p.free {
		if f == v {
			return false
		}
	}
	p.free = append(p.free, v)
	return true
}

// Len returns the number of free instances.
func (p *InstancePool[T]) Len() int {
	return len(p.free)
}

// Tagged is implemented by pooled values that know which pool they belong to.
type Tagged interface {
	comparable
	PoolTag() string
}

// Manager holds one InstancePool per tag for the lifetime of the manager.
type Manager struct {
	pools map[string]any
}

// NewManager creates an empty pool manager.
func NewManager() *Manager {
	return &Manager{pools: make(map[string]any)}
}

// Register binds tag to newFn and returns the pool for it. Registering a tag
// again with the same type returns the existing pool and keeps its factory.
// Panics if tag is already bound to a different type.
func Register[T comparable](m *Manager, tag string, newFn func() T) *InstancePool[T] {
	if existing, ok := m.pools[tag]; ok {
		p, ok := existing.(*InstancePool[T])
		if !ok {
			panic(fmt.Sprintf("pool: tag %q already registered with type %T", tag, existing))
		}
		return p
	}
	p := NewInstancePool(newFn)
	m.pools[tag] = p
	return p
}

// Of returns the pool registered for tag. Panics if the tag is unknown or
// bound to a different type.
func Of[T comparable](m *Manager, tag string) *InstancePool[T] {
	existing, ok := m.pools[tag]
	if !ok {
		panic(fmt.Sprintf("pool: unknown tag %q", tag))
	}
	p, ok := existing.(*InstancePool[T])
	if !ok {
		panic(fmt.Sprintf("pool: tag %q holds %T", tag, existing))
	}
	return p
}

// Get takes an instance from the pool registered for tag.
func Get[T comparable](m *Manager, tag string) T {
	return Of[T](m, tag).Get()
}

// Return puts v back into the pool named by its tag. Values whose tag has no
// pool are dropped.
func Return[T Tagged](m *Manager, v T) {
	existing, ok := m.pools[v.PoolTag()]
	if !ok {
		return
	}
	if p, ok := existing.(*InstancePool[T]); ok {
		p.Return(v)
	}
}

// Tags returns the number of registered pools.
func (m *Manager) Tags() int {
	return len(m.pools)
}
