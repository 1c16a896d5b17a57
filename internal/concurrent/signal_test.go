package concurrent

import (
	"testing"
	"time"
)

// TestSignallerNoListener checks that Send succeeds even before a listener
// is attached, and that a retired Signaller refuses further sends.
func TestSignallerNoListener(t *testing.T) {
	s := NewSignaller()
	if err := s.Send("hello"); err != nil {
		t.Fatalf("Send on active signaller with no listener failed: %v", err)
	}
	s.Retire()
	if err := s.Send("world"); err != ErrSigInactive {
		t.Fatalf("Send on retired signaller returned %v, want ErrSigInactive", err)
	}
}

// TestSignallerDeliversInOrder checks that the listener receives signals in
// the order they were sent.
func TestSignallerDeliversInOrder(t *testing.T) {
	s := NewSignaller()
	l, err := s.Listener()
	if err != nil {
		t.Fatalf("Listener: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := s.Send(i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	s.Retire()

	got := 0
	for sig := range l.Signal() {
		if sig != got {
			t.Fatalf("got signal %v, want %d", sig, got)
		}
		got++
	}
	if got != 5 {
		t.Fatalf("received %d signals, want 5", got)
	}
}

// TestSignallerListenerAfterRetire checks that requesting a listener from a
// retired Signaller fails.
func TestSignallerListenerAfterRetire(t *testing.T) {
	s := NewSignaller()
	s.Retire()
	if _, err := s.Listener(); err != ErrSigInactive {
		t.Fatalf("Listener on retired signaller returned %v, want ErrSigInactive", err)
	}
}

// TestSignallerBlockingSendUnblocksOnReceive checks that a Send exceeding
// the internal buffer still completes once the listener drains it.
func TestSignallerBlockingSendUnblocksOnReceive(t *testing.T) {
	s := NewSignaller()
	l, err := s.Listener()
	if err != nil {
		t.Fatalf("Listener: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ { // more than the internal buffer
			if err := s.Send(i); err != nil {
				t.Errorf("Send(%d): %v", i, err)
				return
			}
		}
		close(done)
	}()

	count := 0
	for count < 32 {
		select {
		case <-l.Signal():
			count++
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after receiving %d/32 signals", count)
		}
	}
	<-done
}
