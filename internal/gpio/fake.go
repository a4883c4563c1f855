package gpio

import (
	"sync"
	"time"
)

// FakeButton is a test double. The line level is scripted by the test
// and edges are injected directly into the registered EdgeFunc.
// Level and InjectEdge are safe to call from different goroutines,
// mirroring the real line where events arrive asynchronously.
type FakeButton struct {
	// LevelValue is the raw level Level() returns (true = high).
	// Use InjectEdge or SetLevel when the button is shared with a
	// running loop.
	LevelValue bool

	// LevelError, if set, will be returned by Level().
	LevelError error

	// Closed tracks if Close was called.
	Closed bool

	mu     sync.Mutex
	onEdge EdgeFunc
}

// NewFakeButton creates a FakeButton idling high (pull-up, not pressed)
// that delivers injected edges to onEdge.
func NewFakeButton(onEdge EdgeFunc) *FakeButton {
	return &FakeButton{LevelValue: true, onEdge: onEdge}
}

// Level returns the scripted level.
func (f *FakeButton) Level() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LevelError != nil {
		return false, f.LevelError
	}
	return f.LevelValue, nil
}

// SetLevel scripts the level without delivering an edge.
func (f *FakeButton) SetLevel(high bool) {
	f.mu.Lock()
	f.LevelValue = high
	f.mu.Unlock()
}

// Close marks the button as closed.
func (f *FakeButton) Close() error {
	f.Closed = true
	return nil
}

// InjectEdge simulates one hardware transition at the given time and
// updates the scripted level to the post-edge value.
func (f *FakeButton) InjectEdge(rising bool, now time.Time) {
	f.mu.Lock()
	f.LevelValue = rising
	onEdge := f.onEdge
	f.mu.Unlock()
	if onEdge != nil {
		onEdge(rising, now)
	}
}

// FakeLED records every level written to it.
type FakeLED struct {
	// Levels contains all values passed to Set, in order.
	Levels []bool

	// SetError, if set, will be returned by Set().
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeLED creates a FakeLED.
func NewFakeLED() *FakeLED {
	return &FakeLED{}
}

// Set records the level.
func (f *FakeLED) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Levels = append(f.Levels, on)
	return nil
}

// Close marks the LED as closed.
func (f *FakeLED) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recent level written, or false if none.
func (f *FakeLED) Last() bool {
	if len(f.Levels) == 0 {
		return false
	}
	return f.Levels[len(f.Levels)-1]
}

// Toggles counts level changes across the recorded writes.
func (f *FakeLED) Toggles() int {
	n := 0
	for i := 1; i < len(f.Levels); i++ {
		if f.Levels[i] != f.Levels[i-1] {
			n++
		}
	}
	return n
}
