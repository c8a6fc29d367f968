package cache

import (
	"sync"
	"sync/atomic"
)

// Shared holds a value that is built on first use and never replaced.
//
// The first Get builds the value under a mutex; later calls load a
// published pointer without locking. The value must be treated as read-only
// by every holder.
type Shared[T any] struct {
	mu sync.Mutex
	v  atomic.Pointer[T]
}

// Get returns the value, calling build exactly once across all callers.
func (s *Shared[T]) Get(build func() T) T {
	if p := s.v.Load(); p != nil {
		return *p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.v.Load(); p != nil {
		return *p
	}
	v := build()
	s.v.Store(&v)
	return v
}

// Peek returns the value and true if it has been built.
func (s *Shared[T]) Peek() (T, bool) {
	if p := s.v.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Built reports whether the value has been built.
func (s *Shared[T]) Built() bool { return s.v.Load() != nil }
