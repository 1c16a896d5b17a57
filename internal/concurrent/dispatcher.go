package concurrent

import (
	"context"
	"sync"
	"sync/atomic"
)

// Dispatchable is implemented by callers of Dispatcher.
type Dispatchable[T, R any] interface {
	// Worker reads tasks from taskCh and writes results to resCh until ctx
	// is cancelled or taskCh closes.
	Worker(ctx context.Context, n int, taskCh chan T, resCh chan R)

	// Eval receives a result from a worker and returns true once every
	// expected result has been collected, telling the dispatcher to stop.
	Eval(result R) bool
}

// Dispatcher manages a pool of worker goroutines pulling tasks from a
// shared channel, used by internal/fixedprime to fan the fixed-prime
// enumeration out across available parallelism. internal/fixedprime always
// knows in advance how many results to expect (one per admissible
// exponent) and lets Eval signal completion, so unlike a general-purpose
// task queue this has no separate early-stop control path — the only way
// to end a run is for Eval to say so.
type Dispatcher[T, R any] struct {
	taskCh  chan T
	resCh   chan R
	running atomic.Bool
}

// NewDispatcher starts numWorker goroutines running disp.Worker, plus the
// dispatch loop that calls disp.Eval for every result received.
func NewDispatcher[T, R any](ctx context.Context, numWorker int, disp Dispatchable[T, R]) *Dispatcher[T, R] {
	d := new(Dispatcher[T, R])
	d.taskCh = make(chan T)
	d.resCh = make(chan R)

	ctxD, cancel := context.WithCancel(ctx)
	wg := new(sync.WaitGroup)
	for n := 0; n < numWorker; n++ {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			disp.Worker(ctxD, num, d.taskCh, d.resCh)
		}(n)
	}

	d.running.Store(true)
	go func() {
		defer func() {
			d.running.Store(false)
			cancel()
			wg.Wait()
			close(d.taskCh)
			close(d.resCh)
		}()

		for {
			select {
			case <-ctxD.Done():
				return
			case x := <-d.resCh:
				if disp.Eval(x) {
					return
				}
			}
		}
	}()
	return d
}

// Process submits a task. Returns false if the dispatcher has already
// stopped.
func (d *Dispatcher[T, R]) Process(task T) bool {
	if !d.running.Load() {
		return false
	}
	d.taskCh <- task
	return true
}
