package logic

import "time"

// Debouncer converts bursts of raw switch edges into single Pressed and
// Released events once the line has been quiet for the settle
// threshold. The edge count of the burst is carried on the event for
// diagnostics; it never multiplies the emitted events.
type Debouncer struct {
	capture   *EdgeCapture
	threshold time.Duration
}

// NewDebouncer creates a debouncer over the given capture. The
// threshold trades bounce rejection against input latency.
func NewDebouncer(capture *EdgeCapture, threshold time.Duration) *Debouncer {
	return &Debouncer{capture: capture, threshold: threshold}
}

// Threshold returns the settle threshold.
func (d *Debouncer) Threshold() time.Duration {
	return d.threshold
}

// Poll checks the armed edge direction for a settled burst and emits at
// most one event. Safe to call at any frequency; no maximum gap between
// calls is assumed.
//
// level is the instantaneous line level (true = high). It guards the
// re-arm: after a settled press the rising watch is armed only if the
// line still reads low. If the level has already changed again the
// current direction stays armed and the renewed bouncing goes through
// the settle timer once more.
func (d *Debouncer) Poll(now time.Time, level bool) *SwitchEvent {
	edges, ok := d.capture.TakeSettled(now, d.threshold)
	if !ok {
		return nil
	}

	if d.capture.Mode() == WatchFalling {
		// Pull-up input: pressed reads low.
		if !level {
			d.capture.SetMode(WatchRising)
		}
		return &SwitchEvent{Timestamp: now, Type: EventPressed, Edges: edges}
	}

	if level {
		d.capture.SetMode(WatchFalling)
	}
	return &SwitchEvent{Timestamp: now, Type: EventReleased, Edges: edges}
}
