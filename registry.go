package osd

import "sync"

// registry maps handles to resources of one kind.
//
// The map itself is guarded by an RWMutex so lookups from concurrent
// callers never block each other; structural changes (insert, remove) take
// the write lock. Each slot carries its own mutex guarding the resource,
// taken after the map lock is released, so two operations on different
// live handles of the same kind run fully in parallel while operations on
// the same handle serialize.
type registry[T any] struct {
	mu    sync.RWMutex
	next  Handle
	slots map[Handle]*slot[T]
}

type slot[T any] struct {
	mu  sync.Mutex
	res *T
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{
		next:  1,
		slots: make(map[Handle]*slot[T]),
	}
}

// add inserts a resource and returns its new handle.
func (r *registry[T]) add(res *T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.next
	r.next++
	r.slots[h] = &slot[T]{res: res}
	return h
}

// with runs f with exclusive access to the resource behind h.
// Returns false (without calling f) if the handle is not live.
func (r *registry[T]) with(h Handle, f func(*T)) bool {
	r.mu.RLock()
	s, ok := r.slots[h]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.res)
	return true
}

// get returns the resource behind h without taking the slot lock.
// Used for resources that are immutable after creation (fonts, transforms)
// and therefore safe to share between concurrent readers.
func (r *registry[T]) get(h Handle) (*T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[h]
	if !ok {
		return nil, false
	}
	return s.res, true
}

// remove drops the handle from the registry. Returns whether it was live.
// Callers already inside the slot keep their reference; the resource is
// reclaimed once they return.
func (r *registry[T]) remove(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[h]; !ok {
		return false
	}
	delete(r.slots, h)
	return true
}

// contains reports whether h is live.
func (r *registry[T]) contains(h Handle) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.slots[h]
	return ok
}

// count returns the number of live handles.
func (r *registry[T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// handles returns all live handles in ascending order.
func (r *registry[T]) handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handle, 0, len(r.slots))
	for h := range r.slots {
		out = append(out, h)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
