package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Memo caches the result of a selector for the last *State it was called
// with. States are immutable, so pointer equality implies equal results.
// Safe for concurrent use.
type Memo[T any] struct {
	fn func(*State) T

	mu    sync.Mutex
	last  *State
	value T
	valid bool
}

// Memoize wraps fn with a single-entry cache keyed on the state pointer.
func Memoize[T any](fn func(*State) T) *Memo[T] {
	return &Memo[T]{fn: fn}
}

// Get returns fn(s), reusing the cached value when s is the same pointer
// as on the previous call.
func (m *Memo[T]) Get(s *State) T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.last == s {
		return m.value
	}
	m.value = m.fn(s)
	m.last = s
	m.valid = true
	return m.value
}

// MemoTotal returns a memoized Total.
func MemoTotal() *Memo[decimal.Decimal] {
	return Memoize(Total)
}

// MemoIsEmpty returns a memoized IsEmpty.
func MemoIsEmpty() *Memo[bool] {
	return Memoize(IsEmpty)
}

// MemoSummary returns a memoized Summary.
func MemoSummary() *Memo[string] {
	return Memoize(Summary)
}
