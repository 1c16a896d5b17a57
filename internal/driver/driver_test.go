package driver

import (
	"testing"
	"time"

	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/primetable"
	"github.com/bfix/gensmooth/internal/width"
)

// TestRunReachesDone checks that Run terminates, reports a final cursor
// value at or below the bound, and emits a Completed event.
func TestRunReachesDone(t *testing.T) {
	table := primetable.Build[numeric.U64](numeric.U64Ring{}, 2000)
	w := width.New(width.ModePow, 0.5)
	d := New[numeric.U64](table, numeric.U64Ring{}, numeric.U64(1000), w, 16, 2)

	listener, err := d.Events()
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	sawCompleted := make(chan Completed[numeric.U64], 1)
	go func() {
		for sig := range listener.Signal() {
			if c, ok := sig.(Completed[numeric.U64]); ok {
				sawCompleted <- c
				return
			}
		}
	}()

	result, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.FinalCursorValue.Cmp(numeric.U64(1000)) > 0 {
		t.Fatalf("final cursor value %d exceeds bound 1000", result.FinalCursorValue)
	}

	select {
	case c := <-sawCompleted:
		if c.FinalC != result.FinalC {
			t.Fatalf("Completed event FinalC %v != Result FinalC %v", c.FinalC, result.FinalC)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Completed event")
	}
}

// TestShapeBoundMonotonic checks that shapeBound grows with both x and c.
func TestShapeBoundMonotonic(t *testing.T) {
	if shapeBound(16, 1.0) >= shapeBound(256, 1.0) {
		t.Fatalf("shapeBound not increasing in x")
	}
	if shapeBound(256, 1.0) >= shapeBound(256, 2.0) {
		t.Fatalf("shapeBound not increasing in c")
	}
	if shapeBound(1, 1.0) != 0 {
		t.Fatalf("shapeBound(1, *) = %d, want 0 (log2(1) = 0)", shapeBound(1, 1.0))
	}
}
