package input

import "time"

// Detector debounces both buttons and emits a step on every debounced press.
// Releases are tracked but emit nothing.
type Detector struct {
	debounceDuration time.Duration
	prev             buttonState
	next             buttonState
	baselined        bool
	startTime        time.Time
	counts           StepCounts
	lastHeartbeat    time.Time
}

// NewDetector creates a detector with the given debounce duration.
// The startTime is used for calculating uptime in heartbeat events.
func NewDetector(debounceDuration time.Duration, startTime time.Time) *Detector {
	return &Detector{
		debounceDuration: debounceDuration,
		startTime:        startTime,
		lastHeartbeat:    startTime,
	}
}

// Process takes a new sample and returns the steps it completes.
// A button held down at startup becomes the baseline and is not a press.
func (d *Detector) Process(s Sample) []Step {
	prevPressed := d.processButton(&d.prev, s.Prev, s.Time)
	nextPressed := d.processButton(&d.next, s.Next, s.Time)

	if !d.baselined {
		if d.prev.Baselined && d.next.Baselined {
			d.baselined = true
		}
		return nil
	}

	// PREV before NEXT when both complete on the same sample
	var steps []Step
	if prevPressed {
		steps = append(steps, Step{Timestamp: s.Time, Action: StepBack})
		d.counts.Back++
	}
	if nextPressed {
		steps = append(steps, Step{Timestamp: s.Time, Action: StepForward})
		d.counts.Forward++
	}
	return steps
}

// processButton handles debounce logic for one button. It reports true when
// the stable state has just changed from released to pressed.
func (d *Detector) processButton(b *buttonState, pressed bool, now time.Time) bool {
	if !b.Baselined {
		if !b.HasPending || b.Pending != pressed {
			b.Pending = pressed
			b.HasPending = true
			b.PendingSince = now
			return false
		}
		if now.Sub(b.PendingSince) >= d.debounceDuration {
			b.Stable = pressed
			b.Baselined = true
			b.HasPending = false
		}
		return false
	}

	if pressed == b.Stable {
		b.HasPending = false
		return false
	}

	if !b.HasPending || b.Pending != pressed {
		b.Pending = pressed
		b.HasPending = true
		b.PendingSince = now
		return false
	}

	if now.Sub(b.PendingSince) >= d.debounceDuration {
		b.Stable = pressed
		b.HasPending = false
		return pressed
	}
	return false
}

// IsBaselined returns whether the detector has established a baseline.
func (d *Detector) IsBaselined() bool {
	return d.baselined
}

// Pressed returns the current stable state of both buttons.
func (d *Detector) Pressed() (prev, next bool) {
	return d.prev.Stable, d.next.Stable
}

// Counts returns the steps emitted since startup.
func (d *Detector) Counts() StepCounts {
	return d.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (d *Detector) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 || !d.baselined {
		return nil
	}
	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.counts,
	}
}
