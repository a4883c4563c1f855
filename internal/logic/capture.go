package logic

import (
	"sync/atomic"
	"time"
)

// edgeSample records the edges of one direction: how many arrived and
// when the most recent one arrived. Written by the edge callback
// goroutine, read-and-reset by the poll loop.
type edgeSample struct {
	count    atomic.Uint32
	lastNano atomic.Int64 // nanoseconds since the capture base time
}

// EdgeCapture accumulates raw switch edges delivered asynchronously by
// the hardware event callback. Only the armed direction records edges;
// arming is a watch mode consulted on every callback rather than a
// handler reattachment, so switching direction never races with event
// delivery.
//
// The consumer's read-and-reset of a burst uses an atomic swap: an edge
// recorded between the settle check and the reset is included in the
// taken count instead of being lost.
type EdgeCapture struct {
	base    time.Time
	mode    atomic.Int32
	falling edgeSample
	rising  edgeSample
}

// NewEdgeCapture creates a capture armed for falling edges. With
// pull-up biasing the line idles high, so a press begins with a
// falling edge.
func NewEdgeCapture(base time.Time) *EdgeCapture {
	c := &EdgeCapture{base: base}
	c.mode.Store(int32(WatchFalling))
	return c
}

// FallingEdge records a high-to-low transition. Called from the edge
// callback goroutine; it is two atomic stores and must never grow to
// block or produce output.
func (c *EdgeCapture) FallingEdge(now time.Time) {
	if c.Mode() != WatchFalling {
		return
	}
	c.falling.lastNano.Store(int64(now.Sub(c.base)))
	c.falling.count.Add(1)
}

// RisingEdge records a low-to-high transition.
func (c *EdgeCapture) RisingEdge(now time.Time) {
	if c.Mode() != WatchRising {
		return
	}
	c.rising.lastNano.Store(int64(now.Sub(c.base)))
	c.rising.count.Add(1)
}

// Mode returns the currently armed edge direction.
func (c *EdgeCapture) Mode() WatchMode {
	return WatchMode(c.mode.Load())
}

// SetMode arms the given edge direction. Edges of the other direction
// are dropped until the mode is switched back.
func (c *EdgeCapture) SetMode(m WatchMode) {
	c.mode.Store(int32(m))
}

// TakeSettled consumes the armed direction's burst once it has been
// quiet for at least threshold. Returns the number of edges taken and
// whether a settled burst was consumed. A burst that keeps bouncing
// faster than the threshold is never taken; the capture simply keeps
// counting until the line quiesces.
func (c *EdgeCapture) TakeSettled(now time.Time, threshold time.Duration) (int, bool) {
	s := &c.falling
	if c.Mode() == WatchRising {
		s = &c.rising
	}
	if s.count.Load() == 0 {
		return 0, false
	}
	quiet := now.Sub(c.base) - time.Duration(s.lastNano.Load())
	if quiet < threshold {
		return 0, false
	}
	n := s.count.Swap(0)
	return int(n), n > 0
}
