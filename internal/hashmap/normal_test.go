package hashmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalMapBasics(t *testing.T) {
	m := NewNormal[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	val, ok := m.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)
	assert.Equal(t, 2, m.Size())

	m.Unset("a")
	_, ok = m.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Size())
}

func TestNormalMapUpdateIsAtomic(t *testing.T) {
	m := NewNormal[string, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Update("counter", func(current int, _ bool) int {
					return current + 1
				})
			}
		}()
	}
	wg.Wait()

	val, _ := m.Lookup("counter")
	assert.Equal(t, 5000, val)
}

func TestNormalMapSweep(t *testing.T) {
	m := NewNormal[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i)
	}
	n := m.Sweep(func(_ int, value int) bool {
		return value%2 == 0
	})
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, m.Size())
}

func TestNormalMapDrain(t *testing.T) {
	m := NewNormal[string, int]()
	m.Set("a", 1)
	drained := m.Drain()
	assert.Equal(t, map[string]int{"a": 1}, drained)
	assert.Zero(t, m.Size())

	m.Set("b", 2)
	assert.NotContains(t, drained, "b")
}
