package trigger_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/nodeshift/pkg/core/trigger"
)

func TestQueueRunsInOrder(t *testing.T) {
	q := trigger.NewQueue()
	defer q.Close()

	var got []int
	for i := range 5 {
		require.True(t, q.Post(func() { got = append(got, i) }))
	}
	q.Flush()
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestQueueDeferCancel(t *testing.T) {
	q := trigger.NewQueue()
	defer q.Close()

	gate := make(chan struct{})
	q.Post(func() { <-gate })

	ran := map[string]bool{}
	keep := q.Defer(func() { ran["keep"] = true })
	drop := q.Defer(func() { ran["drop"] = true })

	require.True(t, drop.Cancel())
	require.True(t, drop.Cancelled())
	require.False(t, drop.Cancel(), "second cancel is a no-op")

	close(gate)
	q.Flush()

	require.True(t, ran["keep"])
	require.False(t, ran["drop"])
	require.True(t, keep.Fired())
	require.False(t, keep.Cancel(), "a fired task cannot be cancelled")
	require.False(t, keep.Cancelled())
}

func TestQueueCloseDrains(t *testing.T) {
	q := trigger.NewQueue()

	var mu sync.Mutex
	count := 0
	for range 10 {
		q.Post(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	q.Close()
	require.Equal(t, 10, count)

	require.False(t, q.Post(func() {}))
	tok := q.Defer(func() { t.Error("deferred on a closed queue must not run") })
	require.True(t, tok.Cancelled())

	// Flush and Close on a closed queue return immediately.
	q.Flush()
	q.Close()
}

func TestQueueConcurrentPost(t *testing.T) {
	q := trigger.NewQueue()
	defer q.Close()

	var wg sync.WaitGroup
	count := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				q.Post(func() { count++ })
			}
		}()
	}
	wg.Wait()
	q.Flush()
	require.Equal(t, 400, count)
}
