// Package gpio reads the two chart scrub buttons.
// The real implementation uses the Linux GPIO character device; the fake
// implementation scripts button states for tests.
package gpio

// Reader reads the scrub button states.
type Reader interface {
	// Read returns whether the PREV and NEXT buttons are held down.
	// Buttons pull their line to ground, so raw 0 = pressed.
	Read() (prev, next bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	PinPrev = 17
	PinNext = 27
)
