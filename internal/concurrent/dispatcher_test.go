package concurrent

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type squarer struct {
	sum atomic.Int64
	got atomic.Int32
	n   int32
}

func (s *squarer) Worker(ctx context.Context, _ int, taskCh chan int, resCh chan int) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-taskCh:
			if !ok {
				return
			}
			resCh <- t * t
		}
	}
}

func (s *squarer) Eval(result int) bool {
	s.sum.Add(int64(result))
	return s.got.Add(1) >= s.n
}

// TestDispatcherSumsSquares checks that every submitted task's result
// reaches Eval exactly once, regardless of worker count.
func TestDispatcherSumsSquares(t *testing.T) {
	const n = 20
	sq := &squarer{n: n}
	d := NewDispatcher[int, int](context.Background(), 4, sq)

	for i := 1; i <= n; i++ {
		if !d.Process(i) {
			t.Fatalf("Process(%d) rejected before dispatcher stopped", i)
		}
	}

	want := int64(0)
	for i := 1; i <= n; i++ {
		want += int64(i * i)
	}
	// Eval runs asynchronously in the dispatch loop, so the last couple of
	// results may still be in flight once Process returns.
	deadline := time.Now().Add(2 * time.Second)
	for sq.got.Load() < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := sq.sum.Load(); got != want {
		t.Fatalf("sum of squares = %d, want %d", got, want)
	}
}
