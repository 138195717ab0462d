package window

import (
	"context"
	"testing"
	"time"
)

func TestLoopRunsOpsInOrder(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	var got []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		loop.Do(func() { got = append(got, i) })
	}
	loop.Do(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain ops")
	}

	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestLoopCallWaitsForCompletion(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	ran := false
	if !loop.Call(func() { ran = true }) {
		t.Fatal("Call returned false on a running loop")
	}
	if !ran {
		t.Fatal("Call returned before fn ran")
	}
}

func TestLoopCallAfterShutdown(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	cancel()

	// Shutdown is asynchronous. Wait for the loop to exit before
	// asserting Call behaviour.
	deadline := time.After(2 * time.Second)
	for {
		if !loop.Call(func() {}) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("Call kept succeeding after shutdown")
		case <-time.After(time.Millisecond):
		}
	}
}
