// Package logic contains the debounce and indicator state machines.
// This package has NO hardware dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// WatchMode selects which edge direction the capture is armed for.
// Only one direction is armed at a time: a settled press switches the
// watch from falling to rising, a settled release switches it back.
type WatchMode int32

const (
	WatchFalling WatchMode = iota
	WatchRising
)

func (m WatchMode) String() string {
	if m == WatchRising {
		return "RISING"
	}
	return "FALLING"
}

// SwitchEventType represents a debounced switch transition.
type SwitchEventType string

const (
	EventPressed  SwitchEventType = "PRESSED"
	EventReleased SwitchEventType = "RELEASED"
)

// SwitchEvent is a single debounced press or release. Edges carries the
// exact number of raw edges recorded during the bounce burst that
// produced the event.
type SwitchEvent struct {
	Timestamp time.Time
	Type      SwitchEventType
	Edges     int
}

// IndicatorState is one of the four mode indicator states.
type IndicatorState string

const (
	IndicatorOff       IndicatorState = "OFF"
	IndicatorOn        IndicatorState = "ON"
	IndicatorSlowFlash IndicatorState = "SLOW_FLASH"
	IndicatorFastFlash IndicatorState = "FAST_FLASH"
)

// Next returns the successor state in the fixed cycle
// Off -> On -> SlowFlash -> FastFlash -> Off.
func (s IndicatorState) Next() IndicatorState {
	switch s {
	case IndicatorOff:
		return IndicatorOn
	case IndicatorOn:
		return IndicatorSlowFlash
	case IndicatorSlowFlash:
		return IndicatorFastFlash
	default:
		return IndicatorOff
	}
}

// Transition records a single indicator state machine step.
type Transition struct {
	Timestamp time.Time
	From      IndicatorState
	To        IndicatorState
}

// FlashTimer toggles an output level at a fixed interval while enabled.
// Owned solely by the Indicator; active only in the flashing states.
type FlashTimer struct {
	Enabled    bool
	Interval   time.Duration
	LastToggle time.Time
	Level      bool
}

// EventCounts tracks debounced events and raw bounce edges since startup.
type EventCounts struct {
	Presses     int
	Releases    int
	BounceEdges int
}
