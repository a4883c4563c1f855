package logic

import "time"

// Indicator is the four-state mode indicator advanced by debounced
// presses: Off -> On -> SlowFlash -> FastFlash -> Off. It owns the
// flash timer; no other component reads or writes it. All methods are
// called from the single poll goroutine.
type Indicator struct {
	state IndicatorState
	slow  time.Duration
	fast  time.Duration
	flash FlashTimer
}

// NewIndicator creates an indicator in the Off state with the given
// flash cadences for the two flashing states.
func NewIndicator(slow, fast time.Duration) *Indicator {
	return &Indicator{state: IndicatorOff, slow: slow, fast: fast}
}

// State returns the current indicator state.
func (ind *Indicator) State() IndicatorState {
	return ind.state
}

// Flash returns a copy of the flash timer for status reporting.
func (ind *Indicator) Flash() FlashTimer {
	return ind.flash
}

// Output returns the level the indicator LED should show right now.
func (ind *Indicator) Output() bool {
	switch ind.state {
	case IndicatorOn:
		return true
	case IndicatorSlowFlash, IndicatorFastFlash:
		return ind.flash.Level
	default:
		return false
	}
}

// OnPressed advances the state machine exactly one step and applies the
// entry side effects of the new state:
//
//	Off       -> On        steady output on, flash disabled
//	On        -> SlowFlash flash enabled at the slow cadence
//	SlowFlash -> FastFlash flash enabled at the fast cadence
//	FastFlash -> Off       steady output off, flash disabled
func (ind *Indicator) OnPressed(now time.Time) Transition {
	from := ind.state
	ind.state = from.Next()

	switch ind.state {
	case IndicatorSlowFlash:
		ind.flash = FlashTimer{Enabled: true, Interval: ind.slow, LastToggle: now, Level: true}
	case IndicatorFastFlash:
		ind.flash = FlashTimer{Enabled: true, Interval: ind.fast, LastToggle: now, Level: true}
	default:
		ind.flash = FlashTimer{}
	}

	return Transition{Timestamp: now, From: from, To: ind.state}
}

// TickFlash toggles the flash level when the interval has elapsed.
// It runs every poll cycle and does nothing unless flash is enabled.
// Returns true when the level toggled.
func (ind *Indicator) TickFlash(now time.Time) bool {
	if !ind.flash.Enabled {
		return false
	}
	if now.Sub(ind.flash.LastToggle) < ind.flash.Interval {
		return false
	}
	ind.flash.Level = !ind.flash.Level
	ind.flash.LastToggle = now
	return true
}
