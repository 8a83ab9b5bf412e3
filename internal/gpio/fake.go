package gpio

import "errors"

// Sample is a single reading of both buttons, true = pressed.
type Sample struct {
	Prev bool
	Next bool
}

// FakeReader replays a scripted sequence of button states. Once the script
// runs out the last sample is held, like a button left alone.
type FakeReader struct {
	Samples []Sample

	// ReadError, if set, is returned by every Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	index int
	reads int
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Idle appends n samples with neither button pressed.
func (f *FakeReader) Idle(n int) *FakeReader {
	return f.hold(Sample{}, n)
}

// PressPrev appends n samples with PREV held down.
func (f *FakeReader) PressPrev(n int) *FakeReader {
	return f.hold(Sample{Prev: true}, n)
}

// PressNext appends n samples with NEXT held down.
func (f *FakeReader) PressNext(n int) *FakeReader {
	return f.hold(Sample{Next: true}, n)
}

func (f *FakeReader) hold(s Sample, n int) *FakeReader {
	for i := 0; i < n; i++ {
		f.Samples = append(f.Samples, s)
	}
	return f
}

// Read returns the next scripted sample.
func (f *FakeReader) Read() (bool, bool, error) {
	f.reads++
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Prev, s.Next, nil
}

// Reads returns how many times Read was called, failed reads included.
func (f *FakeReader) Reads() int { return f.reads }

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeReader) Reset() {
	f.index = 0
	f.reads = 0
	f.Closed = false
}
