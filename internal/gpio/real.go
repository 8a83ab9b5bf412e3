//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the buttons from the Linux GPIO character device.
type RealReader struct {
	chip *gpiocdev.Chip
	prev *gpiocdev.Line
	next *gpiocdev.Line
}

// NewRealReader requests both button lines as pulled-up inputs.
func NewRealReader(pinPrev, pinNext int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	prev, err := chip.RequestLine(pinPrev, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request PREV pin %d: %w", pinPrev, err)
	}

	next, err := chip.RequestLine(pinNext, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		prev.Close()
		chip.Close()
		return nil, fmt.Errorf("request NEXT pin %d: %w", pinNext, err)
	}

	return &RealReader{chip: chip, prev: prev, next: next}, nil
}

// Read returns the pressed state of both buttons (raw 0 = pressed).
func (r *RealReader) Read() (bool, bool, error) {
	prevRaw, err := r.prev.Value()
	if err != nil {
		return false, false, fmt.Errorf("read PREV pin: %w", err)
	}
	nextRaw, err := r.next.Value()
	if err != nil {
		return false, false, fmt.Errorf("read NEXT pin: %w", err)
	}
	return prevRaw == 0, nextRaw == 0, nil
}

// Close returns both lines to pulled-down inputs, the Pi boot default, and
// releases the chip.
func (r *RealReader) Close() error {
	var errs []error

	lines := []struct {
		name string
		line *gpiocdev.Line
	}{{"PREV", r.prev}, {"NEXT", r.next}}
	for _, l := range lines {
		if l.line == nil {
			continue
		}
		if err := l.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", l.name, err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", l.name, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
