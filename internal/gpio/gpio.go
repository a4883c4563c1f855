// Package gpio provides button and LED access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

import "time"

// EdgeFunc receives one raw edge notification. rising is true for a
// low-to-high transition. It is invoked from the event goroutine and
// must return quickly without blocking.
type EdgeFunc func(rising bool, now time.Time)

// Button is a single switch input. Edges are reported asynchronously
// through the EdgeFunc registered at construction; Level samples the
// instantaneous line state.
type Button interface {
	// Level returns the raw line level: true = high. With pull-up
	// biasing the line idles high and reads low while pressed.
	Level() (bool, error)

	// Close releases the line.
	Close() error
}

// LED drives a single boolean output.
type LED interface {
	Set(on bool) error
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinButton    = 17
	DefaultPinPressed   = 27 // steady pressed/released indicator
	DefaultPinIndicator = 22 // four-state mode indicator
)

// DefaultChip is the GPIO character device the lines belong to.
const DefaultChip = "gpiochip0"
