// Package status provides a thread-safe status tracker for the intake-chart daemon.
// The run loop writes it; HTTP handlers read snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/intake-chart/internal/chart"
	"github.com/sweeney/intake-chart/internal/input"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	WindowMin   int64
	Width       int
	Height      int
	Broker      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Summary          chart.Summary
	IntakeSamples    int
	ConditionSamples int
	Frames           int64
	ButtonsReady     bool
	Steps            input.StepCounts
	StartTime        time.Time
	Now              time.Time
	MQTTConnected    bool
	MQTTPending      int
	MQTTDropped      int
	Config           Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// UpdateChart sets the highlight summary and the number of stored samples.
func (t *Tracker) UpdateChart(sum chart.Summary, intake, condition int) {
	t.mu.Lock()
	t.snap.Summary = sum
	t.snap.IntakeSamples = intake
	t.snap.ConditionSamples = condition
	t.mu.Unlock()
}

// AddFrame counts one rendered frame.
func (t *Tracker) AddFrame() {
	t.mu.Lock()
	t.snap.Frames++
	t.mu.Unlock()
}

// UpdateInput sets the scrub button baseline state and step counts.
func (t *Tracker) UpdateInput(ready bool, steps input.StepCounts) {
	t.mu.Lock()
	t.snap.ButtonsReady = ready
	t.snap.Steps = steps
	t.mu.Unlock()
}

// SetMQTT sets the MQTT connection status and offline buffer counters.
func (t *Tracker) SetMQTT(connected bool, pending, dropped int) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.snap.MQTTPending = pending
	t.snap.MQTTDropped = dropped
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
