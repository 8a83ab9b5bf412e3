package mqtt

import (
	"time"

	"github.com/sweeney/intake-chart/internal/chart"
)

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	// Highlights contains all highlight summaries that were published,
	// with the step time of each in Stamps.
	Highlights []chart.Summary
	Stamps     []time.Time

	// Payloads contains the JSON payloads of the highlights.
	Payloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by PublishHighlight.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishHighlight records the summary.
func (f *FakePublisher) PublishHighlight(sum chart.Summary, at time.Time) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatPayload(sum, at)
	if err != nil {
		return err
	}
	f.Highlights = append(f.Highlights, sum)
	f.Stamps = append(f.Stamps, at)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Latest returns the most recent highlight summary.
func (f *FakePublisher) Latest() (chart.Summary, bool) {
	if len(f.Highlights) == 0 {
		return chart.Summary{}, false
	}
	return f.Highlights[len(f.Highlights)-1], true
}

// Events lists the recorded system event names in publish order.
func (f *FakePublisher) Events() []string {
	names := make([]string, len(f.SystemEvents))
	for i, e := range f.SystemEvents {
		names[i] = e.Event
	}
	return names
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded messages and injected errors.
func (f *FakePublisher) Reset() {
	f.Highlights = nil
	f.Stamps = nil
	f.Payloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
