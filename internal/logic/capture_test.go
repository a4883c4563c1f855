package logic

import (
	"sync"
	"testing"
	"time"
)

func testBase() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func TestNewEdgeCaptureArmsFalling(t *testing.T) {
	c := NewEdgeCapture(testBase())
	if c.Mode() != WatchFalling {
		t.Errorf("mode: got %s, want FALLING", c.Mode())
	}
}

func TestFallingEdgesAccumulate(t *testing.T) {
	base := testBase()
	c := NewEdgeCapture(base)

	c.FallingEdge(base)
	c.FallingEdge(base.Add(2 * time.Millisecond))
	c.FallingEdge(base.Add(5 * time.Millisecond))

	n, ok := c.TakeSettled(base.Add(100*time.Millisecond), 50*time.Millisecond)
	if !ok {
		t.Fatal("expected a settled burst")
	}
	if n != 3 {
		t.Errorf("edges: got %d, want 3", n)
	}
}

func TestUnarmedDirectionDropped(t *testing.T) {
	base := testBase()
	c := NewEdgeCapture(base)

	// Rising edges while armed for falling must not be recorded.
	c.RisingEdge(base)
	c.RisingEdge(base.Add(time.Millisecond))

	c.SetMode(WatchRising)
	if _, ok := c.TakeSettled(base.Add(time.Second), 50*time.Millisecond); ok {
		t.Error("rising edges recorded while falling watch was armed")
	}

	// And vice versa.
	c.FallingEdge(base.Add(2 * time.Second))
	c.SetMode(WatchFalling)
	if _, ok := c.TakeSettled(base.Add(3*time.Second), 50*time.Millisecond); ok {
		t.Error("falling edges recorded while rising watch was armed")
	}
}

func TestTakeSettledWaitsForQuiet(t *testing.T) {
	base := testBase()
	c := NewEdgeCapture(base)

	c.FallingEdge(base.Add(10 * time.Millisecond))

	if _, ok := c.TakeSettled(base.Add(30*time.Millisecond), 50*time.Millisecond); ok {
		t.Error("burst taken before the settle threshold elapsed")
	}

	// Exactly at the threshold counts as settled.
	n, ok := c.TakeSettled(base.Add(60*time.Millisecond), 50*time.Millisecond)
	if !ok {
		t.Fatal("burst not taken at the settle threshold")
	}
	if n != 1 {
		t.Errorf("edges: got %d, want 1", n)
	}
}

func TestTakeSettledEmptyBurst(t *testing.T) {
	c := NewEdgeCapture(testBase())
	if _, ok := c.TakeSettled(testBase().Add(time.Second), 50*time.Millisecond); ok {
		t.Error("settled burst reported with no edges recorded")
	}
}

func TestTakeSettledConsumesOnce(t *testing.T) {
	base := testBase()
	c := NewEdgeCapture(base)

	c.FallingEdge(base)
	now := base.Add(100 * time.Millisecond)

	if _, ok := c.TakeSettled(now, 50*time.Millisecond); !ok {
		t.Fatal("expected a settled burst")
	}
	if _, ok := c.TakeSettled(now, 50*time.Millisecond); ok {
		t.Error("burst consumed twice")
	}
}

func TestNewBurstRestartsSettleTimer(t *testing.T) {
	base := testBase()
	c := NewEdgeCapture(base)

	c.FallingEdge(base)
	// A fresh edge just before the threshold restarts the quiet window.
	c.FallingEdge(base.Add(49 * time.Millisecond))

	if _, ok := c.TakeSettled(base.Add(60*time.Millisecond), 50*time.Millisecond); ok {
		t.Error("burst taken while still bouncing")
	}

	n, ok := c.TakeSettled(base.Add(99*time.Millisecond), 50*time.Millisecond)
	if !ok {
		t.Fatal("burst not taken after bouncing stopped")
	}
	if n != 2 {
		t.Errorf("edges: got %d, want 2", n)
	}
}

// TestNoEdgeLostToConcurrentTake exercises the read-and-reset race: a
// writer goroutine records edges while the consumer repeatedly takes
// settled bursts. Every recorded edge must be counted exactly once.
func TestNoEdgeLostToConcurrentTake(t *testing.T) {
	const edges = 10000

	base := testBase()
	c := NewEdgeCapture(base)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < edges; i++ {
			c.FallingEdge(base)
		}
	}()

	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	now := base.Add(time.Second)
	for {
		if n, ok := c.TakeSettled(now, 0); ok {
			total += n
		}
		select {
		case <-done:
			// Final sweep for edges recorded after the last take.
			if n, ok := c.TakeSettled(now, 0); ok {
				total += n
			}
			if total != edges {
				t.Fatalf("edges counted: got %d, want %d", total, edges)
			}
			return
		default:
		}
	}
}
