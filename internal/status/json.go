package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Ready         bool          `json:"ready"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	Highlight     HighlightJSON `json:"highlight"`
	Samples       SamplesJSON   `json:"samples"`
	Frames        int64         `json:"frames"`
	Steps         StepsJSON     `json:"steps"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Config        ConfigJSON    `json:"config"`
}

// HighlightJSON is what the markers currently show.
type HighlightJSON struct {
	Active    bool     `json:"active"`
	At        string   `json:"at,omitempty"`
	Header    string   `json:"header,omitempty"`
	TotalML   float64  `json:"total_ml"`
	RunningML float64  `json:"running_total_ml"`
	Condition *float64 `json:"condition,omitempty"`
}

// SamplesJSON counts the samples inside the chart window.
type SamplesJSON struct {
	Intake    int `json:"intake"`
	Condition int `json:"condition"`
}

// StepsJSON counts scrub button steps.
type StepsJSON struct {
	Back    int `json:"back"`
	Forward int `json:"forward"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
	Pending   int    `json:"pending"`
	Dropped   int    `json:"dropped"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	WindowMin   int64  `json:"window_min"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

func buildHighlight(snap Snapshot) HighlightJSON {
	sum := snap.Summary
	if !sum.Highlighted {
		return HighlightJSON{}
	}
	h := HighlightJSON{
		Active:    true,
		At:        sum.Time.UTC().Format(time.RFC3339),
		Header:    sum.Header,
		TotalML:   sum.Total,
		RunningML: sum.RunningTotal,
	}
	if sum.HasCondition {
		c := sum.Condition
		h.Condition = &c
	}
	return h
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Ready:         snap.ButtonsReady,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Highlight:     buildHighlight(snap),
		Samples:       SamplesJSON{Intake: snap.IntakeSamples, Condition: snap.ConditionSamples},
		Frames:        snap.Frames,
		Steps:         StepsJSON{Back: snap.Steps.Back, Forward: snap.Steps.Forward},
		MQTT: MQTTStatus{
			Connected: snap.MQTTConnected,
			Broker:    snap.Config.Broker,
			Pending:   snap.MQTTPending,
			Dropped:   snap.MQTTDropped,
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			WindowMin:   snap.Config.WindowMin,
			Width:       snap.Config.Width,
			Height:      snap.Config.Height,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the indented JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
