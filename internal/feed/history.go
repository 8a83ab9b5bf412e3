package feed

import (
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sweeney/intake-chart/internal/chart"
)

// ConditionGradient colours the condition line from red (dehydrated) through
// amber to green.
func ConditionGradient() []chart.GradientStop {
	return []chart.GradientStop{
		{Offset: 0, Color: drawing.Color{R: 211, G: 47, B: 47, A: 255}},
		{Offset: 50, Color: drawing.Color{R: 255, G: 179, B: 0, A: 255}},
		{Offset: 100, Color: drawing.Color{R: 56, G: 142, B: 60, A: 255}},
	}
}

// History keeps the samples of the last Window, measured back from the newest
// sample seen. It is owned by a single goroutine.
type History struct {
	Window time.Duration

	intake    []Sample
	condition []Sample
	newest    time.Time
}

// NewHistory returns an empty History.
func NewHistory(window time.Duration) *History {
	return &History{Window: window}
}

// Add stores samples and prunes the ones that fell out of the window. It
// returns how many samples of each kind were added.
func (h *History) Add(samples []Sample) (intake, condition int) {
	for _, s := range samples {
		switch s.Kind {
		case KindIntake:
			h.intake = append(h.intake, s)
			intake++
		case KindCondition:
			h.condition = append(h.condition, s)
			condition++
		default:
			continue
		}
		if s.Time.After(h.newest) {
			h.newest = s.Time
		}
	}
	if intake > 0 {
		sortByTime(h.intake)
	}
	if condition > 0 {
		sortByTime(h.condition)
	}
	h.prune()
	return intake, condition
}

// Len returns the number of stored samples per kind.
func (h *History) Len() (intake, condition int) {
	return len(h.intake), len(h.condition)
}

// Newest returns the time of the newest sample, or the zero time.
func (h *History) Newest() time.Time { return h.newest }

func (h *History) prune() {
	if h.Window <= 0 || h.newest.IsZero() {
		return
	}
	cutoff := h.newest.Add(-h.Window)
	h.intake = dropBefore(h.intake, cutoff)
	h.condition = dropBefore(h.condition, cutoff)
}

// EventDataset builds a new dataset from the stored intake samples. Each
// bubble sits at its volume on the left axis and is sized by it.
func (h *History) EventDataset() *chart.EventDataset {
	entries := make([]chart.EventEntry, 0, len(h.intake))
	for _, s := range h.intake {
		entries = append(entries, chart.EventEntry{X: chart.XFromTime(s.Time), Y: s.Value, Size: s.Value})
	}
	return chart.NewEventDataset("intake", entries)
}

// LineDataset builds a new condition dataset on the right axis.
func (h *History) LineDataset(stops []chart.GradientStop) *chart.LineDataset {
	entries := make([]chart.LineEntry, 0, len(h.condition))
	for _, s := range h.condition {
		entries = append(entries, chart.LineEntry{X: chart.XFromTime(s.Time), Y: s.Value})
	}
	return chart.NewLineDataset("condition", entries, stops, chart.AxisRight)
}

func sortByTime(s []Sample) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}

func dropBefore(s []Sample, cutoff time.Time) []Sample {
	i := sort.Search(len(s), func(i int) bool { return !s[i].Time.Before(cutoff) })
	if i == 0 {
		return s
	}
	return append(s[:0:0], s[i:]...)
}
