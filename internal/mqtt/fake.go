package mqtt

import (
	"github.com/sweeney/panel-button/internal/logic"
)

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	// Events contains all switch events that were published.
	Events []logic.SwitchEvent

	// Transitions contains all indicator transitions that were published.
	Transitions []logic.Transition

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// Payloads contains the JSON payloads for switch events.
	Payloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// PublishTransitionError, if set, will be returned by PublishTransition.
	PublishTransitionError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the switch event.
func (f *FakePublisher) Publish(event logic.SwitchEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Events = append(f.Events, event)

	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// PublishTransition records the indicator transition.
func (f *FakePublisher) PublishTransition(tr logic.Transition) error {
	if f.PublishTransitionError != nil {
		return f.PublishTransitionError
	}
	f.Transitions = append(f.Transitions, tr)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	f.SystemEvents = append(f.SystemEvents, event)
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded messages.
func (f *FakePublisher) Reset() {
	f.Events = nil
	f.Transitions = nil
	f.SystemEvents = nil
	f.Payloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishTransitionError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
