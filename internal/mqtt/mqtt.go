// Package mqtt publishes panel-button diagnostics with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/panel-button/internal/logic"
)

// TopicEvents is the MQTT topic for debounced switch events.
const TopicEvents = "panel/button/events"

// TopicIndicator is the MQTT topic for indicator state transitions.
const TopicIndicator = "panel/button/indicator"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "panel/button/system"

// Publisher publishes diagnostics to MQTT.
type Publisher interface {
	// Publish sends a debounced switch event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.SwitchEvent) error

	// PublishTransition sends an indicator state transition to the broker.
	PublishTransition(tr logic.Transition) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the message envelope for switch events.
type Payload struct {
	Button ButtonPayload `json:"button"`
}

// ButtonPayload contains the switch event details. Edges is the raw
// bounce edge count captured during the settle window.
type ButtonPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Edges     int    `json:"edges"`
}

// FormatPayload creates the JSON payload for a switch event.
func FormatPayload(event logic.SwitchEvent) ([]byte, error) {
	payload := Payload{
		Button: ButtonPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
			Event:     string(event.Type),
			Edges:     event.Edges,
		},
	}
	return json.Marshal(payload)
}

// IndicatorPayload is the message envelope for indicator transitions.
type IndicatorPayload struct {
	Indicator IndicatorPayloadInner `json:"indicator"`
}

// IndicatorPayloadInner contains the transition details.
type IndicatorPayloadInner struct {
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// FormatIndicatorPayload creates the JSON payload for an indicator transition.
func FormatIndicatorPayload(tr logic.Transition) ([]byte, error) {
	payload := IndicatorPayload{
		Indicator: IndicatorPayloadInner{
			Timestamp: tr.Timestamp.UTC().Format(time.RFC3339Nano),
			From:      string(tr.From),
			To:        string(tr.To),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the message envelope for simple system events that
// don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
