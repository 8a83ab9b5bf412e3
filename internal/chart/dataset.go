package chart

import (
	"sort"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// EventBandOffset is added to the axis minimum to get the bottom of the band
// in which intake bubbles are drawn. The strip below it holds the total marker.
const EventBandOffset = 110

// Entry is anything a marker can be refreshed with.
type Entry interface {
	XValue() float64
	YValue() float64
}

// EventEntry is one discrete water-intake event.
type EventEntry struct {
	X     float64 // minutes since the Unix epoch
	Y     float64 // position in data space
	Size  float64 // quantity, ml
	Count float64 // total so far, derived by NewEventDataset
}

func (e EventEntry) XValue() float64 { return e.X }
func (e EventEntry) YValue() float64 { return e.Y }

// LineEntry is one sample of the condition signal.
type LineEntry struct {
	X float64
	Y float64
}

func (e LineEntry) XValue() float64 { return e.X }
func (e LineEntry) YValue() float64 { return e.Y }

// EventDataset is an immutable, x-ordered sequence of intake events.
type EventDataset struct {
	Label   string
	Entries []EventEntry
}

// NewEventDataset copies entries, orders them by X and fills the running
// Count of each entry. Entries sharing an X keep their input order.
func NewEventDataset(label string, entries []EventEntry) *EventDataset {
	sorted := make([]EventEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var total float64
	for i := range sorted {
		total += sorted[i].Size
		sorted[i].Count = total
	}
	return &EventDataset{Label: label, Entries: sorted}
}

// MaxSize returns the largest Size in the dataset, or 0 when empty.
func (d *EventDataset) MaxSize() float64 {
	var m float64
	for _, e := range d.Entries {
		if e.Size > m {
			m = e.Size
		}
	}
	return m
}

// GradientStop maps a data value to a colour.
type GradientStop struct {
	Offset float64
	Color  drawing.Color
}

// LineDataset is an immutable sequence of condition samples, ascending in X.
type LineDataset struct {
	Label    string
	Entries  []LineEntry
	Gradient []GradientStop
	Axis     AxisSide
}

// NewLineDataset copies entries and orders them by X ascending.
// Interpolation relies on the ordering, so unsorted input is fixed here
// rather than rejected.
func NewLineDataset(label string, entries []LineEntry, gradient []GradientStop, axis AxisSide) *LineDataset {
	sorted := make([]LineEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	stops := make([]GradientStop, len(gradient))
	copy(stops, gradient)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })

	return &LineDataset{Label: label, Entries: sorted, Gradient: stops, Axis: axis}
}

// MinX returns the first sample's X.
func (d *LineDataset) MinX() (float64, bool) {
	if d == nil || len(d.Entries) == 0 {
		return 0, false
	}
	return d.Entries[0].X, true
}

// MaxX returns the last sample's X.
func (d *LineDataset) MaxX() (float64, bool) {
	if d == nil || len(d.Entries) == 0 {
		return 0, false
	}
	return d.Entries[len(d.Entries)-1].X, true
}

// EventLayer holds the bubble layer and the vertical band it is drawn in.
// The band is derived from the axis range on every SetEventDataset.
type EventLayer struct {
	ContentTop     float64
	ContentBottom  float64
	NormalizedYMin float64
	Sets           []*EventDataset
}

// First returns the layer's single sub-dataset.
func (l *EventLayer) First() (*EventDataset, bool) {
	if l == nil || len(l.Sets) == 0 || l.Sets[0] == nil {
		return nil, false
	}
	return l.Sets[0], true
}

// ClampY keeps y inside the event band.
func (l *EventLayer) ClampY(y float64) float64 {
	if y > l.ContentTop {
		return l.ContentTop
	}
	if y < l.ContentBottom {
		return l.ContentBottom
	}
	return y
}

// LineLayer holds the condition line datasets.
type LineLayer struct {
	Sets []*LineDataset
}

// TotalAt sums Size over the entries whose X equals x exactly.
func TotalAt(entries []EventEntry, x float64) float64 {
	var total float64
	for _, e := range entries {
		if e.X == x {
			total += e.Size
		}
	}
	return total
}

// TotalThrough sums Size over every entry up to and including x.
func TotalThrough(entries []EventEntry, x float64) float64 {
	var total float64
	for _, e := range entries {
		if e.X <= x {
			total += e.Size
		}
	}
	return total
}

// ColorAt blends the gradient at value. Values outside the stops take the
// colour of the nearest end; an empty gradient yields the zero colour.
func ColorAt(stops []GradientStop, value float64) drawing.Color {
	if len(stops) == 0 {
		return drawing.Color{}
	}
	if value <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if value >= last.Offset {
		return last.Color
	}
	i := sort.Search(len(stops), func(i int) bool { return stops[i].Offset >= value })
	lo, hi := stops[i-1], stops[i]
	span := hi.Offset - lo.Offset
	if span <= 0 {
		return hi.Color
	}
	f := (value - lo.Offset) / span
	return drawing.Color{
		R: blend(lo.Color.R, hi.Color.R, f),
		G: blend(lo.Color.G, hi.Color.G, f),
		B: blend(lo.Color.B, hi.Color.B, f),
		A: blend(lo.Color.A, hi.Color.A, f),
	}
}

func blend(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}
