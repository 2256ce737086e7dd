package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingTicker struct {
	ticks atomic.Int64
}

func (c *countingTicker) TickActiveSessions() int {
	c.ticks.Add(1)
	return 0
}

func TestTimerWorkerTicksUntilCancelled(t *testing.T) {
	ct := &countingTicker{}
	w := NewTimerWorker(ct, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for ct.ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("worker produced %d ticks before deadline", ct.ticks.Load())
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
