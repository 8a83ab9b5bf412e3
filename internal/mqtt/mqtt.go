// Package mqtt publishes the chart highlight and daemon lifecycle events,
// with an abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/intake-chart/internal/chart"
)

// Topic is the MQTT topic for highlight summaries.
const Topic = "health/water/chart/highlight"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "health/water/chart/system"

// Publisher publishes chart events to MQTT.
type Publisher interface {
	// PublishHighlight sends what the markers show for the current highlight.
	// Returns error if publishing fails (should not crash the process).
	PublishHighlight(sum chart.Summary, at time.Time) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp time.Time
	Event     string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "RECONNECTED"
	Reason    string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	Config    *SystemConfig
	Heartbeat *HeartbeatInfo
	Retained  bool // Whether the message should be retained by the broker
}

// SystemConfig is the daemon configuration reported at startup.
type SystemConfig struct {
	TickMs      int64  `json:"tick_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	WindowMin   int64  `json:"window_min"`
	Broker      string `json:"broker"`
}

// HeartbeatInfo is the periodic liveness report.
type HeartbeatInfo struct {
	UptimeSec   int64 `json:"uptime_sec"`
	StepBack    int   `json:"step_back"`
	StepForward int   `json:"step_forward"`
	Frames      int64 `json:"frames"`
	Intake      int   `json:"intake_samples"`
	Condition   int   `json:"condition_samples"`
}

// Payload represents the highlight message payload structure.
type Payload struct {
	Highlight HighlightPayload `json:"highlight"`
}

// HighlightPayload contains the highlighted marker values. Condition is
// omitted when no condition line covers the highlighted time, RunningML when
// nothing is highlighted.
type HighlightPayload struct {
	Timestamp string   `json:"timestamp"`
	Active    bool     `json:"active"`
	At        string   `json:"at,omitempty"`
	Header    string   `json:"header,omitempty"`
	TotalML   float64  `json:"total_ml"`
	RunningML *float64 `json:"running_total_ml,omitempty"`
	Condition *float64 `json:"condition,omitempty"`
}

// FormatPayload creates the JSON payload for a highlight summary published at
// the given time.
func FormatPayload(sum chart.Summary, at time.Time) ([]byte, error) {
	p := HighlightPayload{
		Timestamp: at.UTC().Format(time.RFC3339),
		Active:    sum.Highlighted,
	}
	if sum.Highlighted {
		p.At = sum.Time.UTC().Format(time.RFC3339)
		p.Header = sum.Header
		p.TotalML = sum.Total
		running := sum.RunningTotal
		p.RunningML = &running
		if sum.HasCondition {
			c := sum.Condition
			p.Condition = &c
		}
	}
	return json.Marshal(Payload{Highlight: p})
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Reason    string         `json:"reason,omitempty"`
	Config    *SystemConfig  `json:"config,omitempty"`
	Heartbeat *HeartbeatInfo `json:"heartbeat,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
			Config:    event.Config,
			Heartbeat: event.Heartbeat,
		},
	}
	return json.Marshal(payload)
}
