//go:build !linux

package gpio

import "fmt"

// RealReader is not available on non-Linux platforms. Run with -no-gpio to
// use the chart without scrub buttons.
type RealReader struct{}

// NewRealReader always fails off Linux.
func NewRealReader(pinPrev, pinNext int) (*RealReader, error) {
	return nil, fmt.Errorf("gpio: scrub buttons on pins %d/%d need the Linux GPIO character device", pinPrev, pinNext)
}

func (r *RealReader) Read() (bool, bool, error) {
	return false, false, fmt.Errorf("gpio: not supported")
}

func (r *RealReader) Close() error {
	return nil
}
