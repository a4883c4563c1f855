//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealButton is a push button on actual hardware, requested as an input
// with pull-up biasing and both-edge event reporting.
type RealButton struct {
	line *gpiocdev.Line
}

// NewRealButton requests the button line and registers onEdge for edge
// events. Events are stamped with the process clock rather than the
// kernel event timestamp so all debounce arithmetic shares one clock
// with the poll loop.
func NewRealButton(chip string, offset int, onEdge EdgeFunc) (*RealButton, error) {
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(ev gpiocdev.LineEvent) {
			onEdge(ev.Type == gpiocdev.LineEventRisingEdge, time.Now())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("request button pin %d: %w", offset, err)
	}
	return &RealButton{line: line}, nil
}

// Level returns the raw line level: true = high.
func (b *RealButton) Level() (bool, error) {
	v, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button: %w", err)
	}
	return v != 0, nil
}

// Close releases the button line.
func (b *RealButton) Close() error {
	if err := b.line.Close(); err != nil {
		return fmt.Errorf("close button: %w", err)
	}
	return nil
}

// RealLED is an output line on actual hardware.
type RealLED struct {
	line *gpiocdev.Line
}

// NewRealLED requests the LED line as an output, initially off.
func NewRealLED(chip string, offset int) (*RealLED, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request led pin %d: %w", offset, err)
	}
	return &RealLED{line: line}, nil
}

// Set drives the LED level.
func (l *RealLED) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := l.line.SetValue(v); err != nil {
		return fmt.Errorf("set led: %w", err)
	}
	return nil
}

// Close turns the LED off and releases the line, so shutdown leaves the
// panel dark rather than frozen mid-state.
func (l *RealLED) Close() error {
	if err := l.line.SetValue(0); err != nil {
		l.line.Close()
		return fmt.Errorf("clear led: %w", err)
	}
	if err := l.line.Close(); err != nil {
		return fmt.Errorf("close led: %w", err)
	}
	return nil
}
