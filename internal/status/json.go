package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Button        string     `json:"button"`
	Indicator     string     `json:"indicator"`
	Flash         FlashJSON  `json:"flash"`
	Ready         bool       `json:"ready"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// FlashJSON is the JSON representation of the flash timer.
type FlashJSON struct {
	Enabled    bool  `json:"enabled"`
	IntervalMs int64 `json:"interval_ms,omitempty"`
	Level      bool  `json:"level"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Presses     int `json:"presses"`
	Releases    int `json:"releases"`
	BounceEdges int `json:"bounce_edges"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs       int64  `json:"poll_ms"`
	DebounceMs   int64  `json:"debounce_ms"`
	SlowMs       int64  `json:"slow_ms"`
	FastMs       int64  `json:"fast_ms"`
	ButtonPin    int    `json:"button_pin"`
	PressedPin   int    `json:"pressed_pin"`
	IndicatorPin int    `json:"indicator_pin"`
	Broker       string `json:"broker"`
	HTTPAddr     string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Button:    snap.ButtonState(),
		Indicator: string(snap.Indicator),
		Flash: FlashJSON{
			Enabled:    snap.Flash.Enabled,
			IntervalMs: snap.Flash.Interval.Milliseconds(),
			Level:      snap.Flash.Level,
		},
		Ready:         snap.Known,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Presses:     snap.Counts.Presses,
			Releases:    snap.Counts.Releases,
			BounceEdges: snap.Counts.BounceEdges,
		},
		Config: ConfigJSON{
			PollMs:       snap.Config.PollMs,
			DebounceMs:   snap.Config.DebounceMs,
			SlowMs:       snap.Config.SlowMs,
			FastMs:       snap.Config.FastMs,
			ButtonPin:    snap.Config.ButtonPin,
			PressedPin:   snap.Config.PressedPin,
			IndicatorPin: snap.Config.IndicatorPin,
			Broker:       snap.Config.Broker,
			HTTPAddr:     snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
