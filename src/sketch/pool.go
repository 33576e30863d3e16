package sketch

import "sync"

// Pool hands out reusable, zero-length slices of T so repeated encode/decode passes over a
// sketch don't pay an allocation per call. Every exported method on Table and Sketch that
// returns a variable-size collection returns a pooled slice; callers hand it back with
// Release when done.
type Pool[T any] struct {
	pool sync.Pool
}

// NewPool returns a Pool whose backing slices are pre-sized to hint elements.
func NewPool[T any](hint int) *Pool[T] {
	if hint < 0 {
		hint = 0
	}
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, hint)
				return &s
			},
		},
	}
}

// Get returns a zero-length slice drawn from the pool.
func (p *Pool[T]) Get() []T {
	s := p.pool.Get().(*[]T)
	return (*s)[:0]
}

// Put returns s to the pool for reuse. Callers must not touch s after calling Put.
func (p *Pool[T]) Put(s []T) {
	s = s[:0]
	p.pool.Put(&s)
}
