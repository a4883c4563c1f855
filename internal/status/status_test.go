package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/panel-button/internal/logic"
)

func testConfig() Config {
	return Config{
		PollMs:       5,
		DebounceMs:   50,
		SlowMs:       500,
		FastMs:       125,
		ButtonPin:    17,
		PressedPin:   27,
		IndicatorPin: 22,
		Broker:       "tcp://192.168.1.200:1883",
		HTTPAddr:     ":8080",
	}
}

func TestNewTrackerDefaults(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if snap.Known {
		t.Error("state should be unknown before the first event")
	}
	if snap.ButtonState() != "UNKNOWN" {
		t.Errorf("button state: got %q, want UNKNOWN", snap.ButtonState())
	}
	if snap.Indicator != logic.IndicatorOff {
		t.Errorf("indicator: got %s, want OFF", snap.Indicator)
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v, want %v", snap.StartTime, start)
	}
}

func TestTrackerUpdate(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	flash := logic.FlashTimer{Enabled: true, Interval: 500 * time.Millisecond, Level: true}
	counts := logic.EventCounts{Presses: 2, Releases: 1, BounceEdges: 11}
	tr.Update(true, true, logic.IndicatorSlowFlash, flash, counts)

	snap := tr.Snapshot()
	if snap.ButtonState() != "PRESSED" {
		t.Errorf("button state: got %q, want PRESSED", snap.ButtonState())
	}
	if snap.Indicator != logic.IndicatorSlowFlash {
		t.Errorf("indicator: got %s, want SLOW_FLASH", snap.Indicator)
	}
	if !snap.Flash.Enabled || snap.Flash.Interval != 500*time.Millisecond {
		t.Errorf("flash: got %+v", snap.Flash)
	}
	if snap.Counts != counts {
		t.Errorf("counts: got %+v, want %+v", snap.Counts, counts)
	}

	tr.Update(false, true, logic.IndicatorSlowFlash, flash, counts)
	if tr.Snapshot().ButtonState() != "RELEASED" {
		t.Errorf("button state after release: got %q, want RELEASED", tr.Snapshot().ButtonState())
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	if tr.Snapshot().MQTTConnected {
		t.Error("should start disconnected")
	}
	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("should be connected after SetMQTTConnected(true)")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.Update(true, true, logic.IndicatorFastFlash,
		logic.FlashTimer{Enabled: true, Interval: 125 * time.Millisecond, Level: true},
		logic.EventCounts{Presses: 3, Releases: 2, BounceEdges: 17})
	tr.SetMQTTConnected(true)

	var sj StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if sj.Status.Button != "PRESSED" {
		t.Errorf("button: got %q, want PRESSED", sj.Status.Button)
	}
	if sj.Status.Indicator != "FAST_FLASH" {
		t.Errorf("indicator: got %q, want FAST_FLASH", sj.Status.Indicator)
	}
	if !sj.Status.Flash.Enabled || sj.Status.Flash.IntervalMs != 125 {
		t.Errorf("flash: got %+v", sj.Status.Flash)
	}
	if !sj.Status.Ready {
		t.Error("expected ready=true")
	}
	if sj.Status.Counts.Presses != 3 || sj.Status.Counts.Releases != 2 || sj.Status.Counts.BounceEdges != 17 {
		t.Errorf("counts: got %+v", sj.Status.Counts)
	}
	if !sj.Status.MQTT.Connected || sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("mqtt: got %+v", sj.Status.MQTT)
	}
	if sj.Status.Config.DebounceMs != 50 || sj.Status.Config.ButtonPin != 17 {
		t.Errorf("config: got %+v", sj.Status.Config)
	}
	if sj.Status.Event != "" {
		t.Errorf("web JSON should carry no event, got %q", sj.Status.Event)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	var sj StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM"), &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sj.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", sj.Status.Event)
	}
	if sj.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", sj.Status.Reason)
	}
	if sj.Status.Button != "UNKNOWN" {
		t.Errorf("button before first event: got %q, want UNKNOWN", sj.Status.Button)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	tr := NewTracker(start, testConfig())

	up := tr.Snapshot().Uptime()
	if up < 89*time.Second || up > 92*time.Second {
		t.Errorf("uptime: got %v, want about 90s", up)
	}
}
