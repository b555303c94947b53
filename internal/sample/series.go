package sample

import "iter"

// Series is an ordered, append-only sequence of measurement values.
//
// Insertion order equals arrival order and is preserved by traversal.
// Values are never deduplicated and never removed. The zero value is
// an empty Series ready for use.
//
// Series is not safe for concurrent use; the owning record serialises
// access.
type Series[T any] struct {
	values []T
}

// New creates an empty Series.
func New[T any]() *Series[T] {
	return &Series[T]{}
}

// Append adds a value to the end of the series.
func (s *Series[T]) Append(v T) {
	s.values = append(s.values, v)
}

// Len returns the number of values in the series.
func (s *Series[T]) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the series contains no values.
func (s *Series[T]) IsEmpty() bool {
	return len(s.values) == 0
}

// All returns an insertion-order iterator over the values.
//
// The traversal is lazy and restartable: ranging over the result again
// starts from the first value. The caller must not append to the series
// while a traversal is in progress.
func (s *Series[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone creates a fully independent copy of the series.
//
// The copy shares no backing storage with the original: appending to
// one never affects the other. This is what allows device records to
// be duplicated without aliasing their histories.
func (s *Series[T]) Clone() *Series[T] {
	if s == nil {
		return nil
	}
	cpy := &Series[T]{}
	if s.values != nil {
		cpy.values = make([]T, len(s.values))
		copy(cpy.values, s.values)
	}
	return cpy
}
