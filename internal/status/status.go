// Package status provides a thread-safe status tracker for the panel-button
// daemon. It is read by the HTTP handlers and rendered into MQTT system
// event payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/panel-button/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs       int64
	DebounceMs   int64
	SlowMs       int64
	FastMs       int64
	ButtonPin    int
	PressedPin   int
	IndicatorPin int
	Broker       string
	HTTPAddr     string
}

// Snapshot is a point-in-time view of daemon state. It is a value
// type, safe to use after the lock is released.
type Snapshot struct {
	Pressed       bool
	Known         bool // false until the first debounced event
	Indicator     logic.IndicatorState
	Flash         logic.FlashTimer
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// ButtonState renders the debounced switch state for display.
func (s Snapshot) ButtonState() string {
	if !s.Known {
		return "UNKNOWN"
	}
	if s.Pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Indicator: logic.IndicatorOff,
			Config:    cfg,
		},
	}
}

// Update sets switch state, indicator state, flash timer, and event
// counts. Called from the poll loop on every tick.
func (t *Tracker) Update(pressed, known bool, indicator logic.IndicatorState, flash logic.FlashTimer, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Pressed = pressed
	t.snap.Known = known
	t.snap.Indicator = indicator
	t.snap.Flash = flash
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
