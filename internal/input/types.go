// Package input turns raw scrub-button samples into debounced step actions.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package input

import "time"

// Button identifies one of the two scrub buttons.
type Button string

const (
	ButtonPrev Button = "PREV"
	ButtonNext Button = "NEXT"
)

// Action is a step requested by a debounced button press.
type Action string

const (
	StepBack    Action = "STEP_BACK"
	StepForward Action = "STEP_FORWARD"
)

// Dir is the highlight step direction of the action: -1 or +1.
func (a Action) Dir() int {
	if a == StepBack {
		return -1
	}
	return 1
}

// Button is the scrub button that requests the action.
func (a Action) Button() Button {
	if a == StepBack {
		return ButtonPrev
	}
	return ButtonNext
}

// Step is an action emitted by the detector.
type Step struct {
	Timestamp time.Time
	Action    Action
}

// buttonState tracks debounce state for a single button.
type buttonState struct {
	// Current stable (debounced) pressed state
	Stable bool
	// Pending state during debounce
	Pending bool
	// Whether a pending state is being observed
	HasPending bool
	// Time when pending state was first observed
	PendingSince time.Time
	// Whether we have established a baseline
	Baselined bool
}

// Sample is a single reading of both buttons, true = pressed.
type Sample struct {
	Prev bool
	Next bool
	Time time.Time
}

// StepCounts tracks the number of each action since startup.
type StepCounts struct {
	Back    int
	Forward int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    StepCounts
}
