package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainRunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	for i := 0; i < 3; i++ {
		q.Post(func() { got = append(got, i) })
	}
	q.Post(nil)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, q.Drain())
}

func TestPostDuringDrainDeferred(t *testing.T) {
	q := NewQueue()
	ran := 0
	q.Post(func() {
		ran++
		q.Post(func() { ran++ })
	})

	q.Drain()
	assert.Equal(t, 1, ran)
	q.Drain()
	assert.Equal(t, 2, ran)
}

func TestPanicContained(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Post(func() { panic("bad decoration") })
	q.Post(func() { ran = true })

	assert.NotPanics(t, func() { q.Drain() })
	assert.True(t, ran)
}

func TestConcurrentPost(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Post(func() {})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, q.Drain())
}
