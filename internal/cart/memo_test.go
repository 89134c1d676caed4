package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoize_CachesOnPointer(t *testing.T) {
	calls := 0
	m := Memoize(func(s *State) int {
		calls++
		return s.Len()
	})

	s := mustAdd(t, New(), redCase, caseEntry(1))
	assert.Equal(t, 1, m.Get(s))
	assert.Equal(t, 1, m.Get(s))
	assert.Equal(t, 1, calls)

	// No-op transitions return the same pointer, so the cache still hits.
	assert.Equal(t, 1, m.Get(Remove(s, "missing/")))
	assert.Equal(t, 1, calls)

	s2 := mustAdd(t, s, "b/", Entry{ID: "b", Quantity: 1})
	assert.Equal(t, 2, m.Get(s2))
	assert.Equal(t, 2, calls)
}

func TestMemoTotal(t *testing.T) {
	m := MemoTotal()
	s := mustAdd(t, New(), redCase, caseEntry(10))
	assert.Equal(t, "700", m.Get(s).String())

	assert.True(t, MemoIsEmpty().Get(New()))
	assert.Equal(t, "iPad case: 10 red", MemoSummary().Get(s))
}

func TestMemoize_ConcurrentGet(t *testing.T) {
	m := MemoTotal()
	s := mustAdd(t, New(), redCase, caseEntry(2))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "140", m.Get(s).String())
		}()
	}
	wg.Wait()
}
