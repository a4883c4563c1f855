package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/panel-button/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	event := logic.SwitchEvent{
		Timestamp: time.Date(2026, 3, 2, 22, 18, 12, 0, time.UTC),
		Type:      logic.EventPressed,
		Edges:     4,
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Button.Timestamp != "2026-03-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Button.Timestamp)
	}
	if parsed.Button.Event != "PRESSED" {
		t.Errorf("unexpected event: %s", parsed.Button.Event)
	}
	if parsed.Button.Edges != 4 {
		t.Errorf("unexpected edges: %d", parsed.Button.Edges)
	}
}

func TestFormatIndicatorPayload(t *testing.T) {
	tr := logic.Transition{
		Timestamp: time.Date(2026, 3, 2, 22, 18, 12, 0, time.UTC),
		From:      logic.IndicatorOn,
		To:        logic.IndicatorSlowFlash,
	}

	payload, err := FormatIndicatorPayload(tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed IndicatorPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Indicator.From != "ON" {
		t.Errorf("unexpected from: %s", parsed.Indicator.From)
	}
	if parsed.Indicator.To != "SLOW_FLASH" {
		t.Errorf("unexpected to: %s", parsed.Indicator.To)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 2, 22, 18, 12, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.System.Event != "SHUTDOWN" {
		t.Errorf("unexpected event: %s", parsed.System.Event)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("unexpected reason: %s", parsed.System.Reason)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	event := SystemEvent{Event: "STARTUP", RawPayload: raw}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload not passed through: %s", payload)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	ev := logic.SwitchEvent{Type: logic.EventPressed, Edges: 3}
	if err := f.Publish(ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr := logic.Transition{From: logic.IndicatorOff, To: logic.IndicatorOn}
	if err := f.PublishTransition(tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Events) != 1 || f.Events[0].Edges != 3 {
		t.Errorf("events: got %v", f.Events)
	}
	if len(f.Transitions) != 1 || f.Transitions[0].To != logic.IndicatorOn {
		t.Errorf("transitions: got %v", f.Transitions)
	}
	if len(f.SystemEvents) != 1 || f.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("system events: got %v", f.SystemEvents)
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("simulated error")

	if err := f.Publish(logic.SwitchEvent{}); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish should not record an event")
	}
}
