package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("a", 1)
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestStore_SetIfAbsent(t *testing.T) {
	s := New[string, int]()

	assert.True(t, s.SetIfAbsent("a", 1))
	assert.False(t, s.SetIfAbsent("a", 2))

	v, _ := s.Get("a")
	assert.Equal(t, 1, v)
}

func TestStore_Replace(t *testing.T) {
	s := New[string, int]()

	assert.False(t, s.Replace("a", 1))
	assert.Zero(t, s.Len())

	s.Set("a", 1)
	assert.True(t, s.Replace("a", 2))
	v, _ := s.Get("a")
	assert.Equal(t, 2, v)
}

func TestStore_DeleteAndClear(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	s.Delete("a")
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestStore_KeysAndValues(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())
	assert.ElementsMatch(t, []int{1, 2}, s.Values())
}

func TestStore_ConcurrentSetIfAbsent(t *testing.T) {
	s := New[int, int]()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.SetIfAbsent(0, i) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, s.Len())
}
