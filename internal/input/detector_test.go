package input

import (
	"testing"
	"time"
)

const debounce = 50 * time.Millisecond

var start = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// baselined returns a detector with both buttons released and stable.
func baselined(t *testing.T) *Detector {
	t.Helper()
	d := NewDetector(debounce, start)
	d.Process(Sample{Time: start})
	d.Process(Sample{Time: start.Add(debounce)})
	if !d.IsBaselined() {
		t.Fatal("expected baseline after debounce period")
	}
	return d
}

func TestNewDetector(t *testing.T) {
	d := NewDetector(debounce, start)
	if d == nil {
		t.Fatal("NewDetector returned nil")
	}
	if d.debounceDuration != debounce {
		t.Errorf("expected debounce duration %v, got %v", debounce, d.debounceDuration)
	}
	if d.IsBaselined() {
		t.Error("new detector should not be baselined")
	}
}

func TestActionDir(t *testing.T) {
	if StepBack.Dir() != -1 {
		t.Errorf("expected -1, got %d", StepBack.Dir())
	}
	if StepForward.Dir() != 1 {
		t.Errorf("expected 1, got %d", StepForward.Dir())
	}
}

func TestActionButton(t *testing.T) {
	if got := StepBack.Button(); got != ButtonPrev {
		t.Errorf("StepBack: got %s, want %s", got, ButtonPrev)
	}
	if got := StepForward.Button(); got != ButtonNext {
		t.Errorf("StepForward: got %s, want %s", got, ButtonNext)
	}
}

func TestBaselineResetOnChange(t *testing.T) {
	d := NewDetector(debounce, start)
	d.Process(Sample{Prev: true, Time: start})
	d.Process(Sample{Prev: false, Time: start.Add(20 * time.Millisecond)})
	d.Process(Sample{Prev: false, Time: start.Add(debounce)})
	if d.IsBaselined() {
		t.Error("should not be baselined, state changed during observation")
	}
	d.Process(Sample{Prev: false, Time: start.Add(20*time.Millisecond + debounce)})
	if !d.IsBaselined() {
		t.Error("should be baselined once the new state held for the debounce period")
	}
}

func TestHeldAtStartupIsNotAPress(t *testing.T) {
	d := NewDetector(debounce, start)
	d.Process(Sample{Next: true, Time: start})
	steps := d.Process(Sample{Next: true, Time: start.Add(debounce)})
	if len(steps) != 0 {
		t.Errorf("expected no steps at baseline, got %d", len(steps))
	}
	_, next := d.Pressed()
	if !next {
		t.Error("expected NEXT to be baselined as pressed")
	}

	// release then press again
	d.Process(Sample{Time: start.Add(100 * time.Millisecond)})
	d.Process(Sample{Time: start.Add(150 * time.Millisecond)})
	d.Process(Sample{Next: true, Time: start.Add(200 * time.Millisecond)})
	steps = d.Process(Sample{Next: true, Time: start.Add(250 * time.Millisecond)})
	if len(steps) != 1 || steps[0].Action != StepForward {
		t.Fatalf("expected one STEP_FORWARD, got %+v", steps)
	}
}

func TestPressEmitsStep(t *testing.T) {
	d := baselined(t)
	at := start.Add(time.Second)

	if steps := d.Process(Sample{Prev: true, Time: at}); len(steps) != 0 {
		t.Errorf("expected no step before debounce, got %d", len(steps))
	}
	steps := d.Process(Sample{Prev: true, Time: at.Add(debounce)})
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].Action != StepBack {
		t.Errorf("expected STEP_BACK, got %s", steps[0].Action)
	}
	if !steps[0].Timestamp.Equal(at.Add(debounce)) {
		t.Errorf("unexpected timestamp %v", steps[0].Timestamp)
	}

	// holding does not repeat
	if steps := d.Process(Sample{Prev: true, Time: at.Add(time.Second)}); len(steps) != 0 {
		t.Errorf("expected no repeat while held, got %d", len(steps))
	}
}

func TestReleaseEmitsNothing(t *testing.T) {
	d := baselined(t)
	at := start.Add(time.Second)
	d.Process(Sample{Next: true, Time: at})
	d.Process(Sample{Next: true, Time: at.Add(debounce)})

	d.Process(Sample{Time: at.Add(200 * time.Millisecond)})
	steps := d.Process(Sample{Time: at.Add(200*time.Millisecond + debounce)})
	if len(steps) != 0 {
		t.Errorf("expected no step on release, got %d", len(steps))
	}
	if _, next := d.Pressed(); next {
		t.Error("expected NEXT released")
	}
}

func TestBounceShorterThanDebounce(t *testing.T) {
	d := baselined(t)
	at := start.Add(time.Second)

	d.Process(Sample{Next: true, Time: at})
	d.Process(Sample{Next: false, Time: at.Add(10 * time.Millisecond)})
	d.Process(Sample{Next: true, Time: at.Add(20 * time.Millisecond)})
	steps := d.Process(Sample{Next: true, Time: at.Add(60 * time.Millisecond)})
	if len(steps) != 0 {
		t.Errorf("expected no step, pending restarted at 20ms, got %d", len(steps))
	}
	steps = d.Process(Sample{Next: true, Time: at.Add(70 * time.Millisecond)})
	if len(steps) != 1 {
		t.Errorf("expected step after 50ms of stable press, got %d", len(steps))
	}
}

func TestSimultaneousPresses(t *testing.T) {
	d := baselined(t)
	at := start.Add(time.Second)
	d.Process(Sample{Prev: true, Next: true, Time: at})
	steps := d.Process(Sample{Prev: true, Next: true, Time: at.Add(debounce)})
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Action != StepBack || steps[1].Action != StepForward {
		t.Errorf("expected BACK then FORWARD, got %s, %s", steps[0].Action, steps[1].Action)
	}

	c := d.Counts()
	if c.Back != 1 || c.Forward != 1 {
		t.Errorf("unexpected counts %+v", c)
	}
}

func TestCheckHeartbeat(t *testing.T) {
	d := NewDetector(debounce, start)
	if hb := d.CheckHeartbeat(start.Add(time.Hour), time.Minute); hb != nil {
		t.Error("expected no heartbeat before baseline")
	}

	d.Process(Sample{Time: start})
	d.Process(Sample{Time: start.Add(debounce)})

	if hb := d.CheckHeartbeat(start.Add(30*time.Second), time.Minute); hb != nil {
		t.Error("expected no heartbeat before interval")
	}
	hb := d.CheckHeartbeat(start.Add(time.Minute), time.Minute)
	if hb == nil {
		t.Fatal("expected heartbeat after interval")
	}
	if hb.Uptime != time.Minute {
		t.Errorf("expected uptime 1m, got %v", hb.Uptime)
	}
	if hb := d.CheckHeartbeat(start.Add(90*time.Second), time.Minute); hb != nil {
		t.Error("expected interval to restart from last heartbeat")
	}
	if hb := d.CheckHeartbeat(start.Add(time.Hour), 0); hb != nil {
		t.Error("expected heartbeat disabled for zero interval")
	}
}
