package chart

import (
	"fmt"
	"math"
	"sort"
)

// Layer indices in registration order.
const (
	EventLayerIndex = 0
	LineLayerIndex  = 1
)

// DefaultMaxHighlightDistance is how far, in pixels, the pointer may be from
// the nearest entry and still highlight it.
const DefaultMaxHighlightDistance = 40

// HighlightSource tells whether a highlight points at a stored entry of a
// real layer, or was built by a marker and has no entry behind it.
type HighlightSource struct {
	synthetic bool
	layer     int
}

// RealLayer is the source of a highlight that resolved to a stored entry.
func RealLayer(index int) HighlightSource {
	return HighlightSource{layer: index}
}

// Synthetic is the source of a marker-built highlight.
func Synthetic() HighlightSource {
	return HighlightSource{synthetic: true}
}

func (s HighlightSource) IsSynthetic() bool { return s.synthetic }

// LayerIndex returns the layer of a real highlight.
func (s HighlightSource) LayerIndex() (int, bool) {
	if s.synthetic {
		return 0, false
	}
	return s.layer, true
}

func (s HighlightSource) String() string {
	if s.synthetic {
		return "synthetic"
	}
	return fmt.Sprintf("layer(%d)", s.layer)
}

// Highlight is the selected point in time.
type Highlight struct {
	X      float64
	Y      float64
	Source HighlightSource
	// Draw is the pixel position the highlight was last drawn at.
	Draw Point
}

// SetDraw records where the highlight was drawn.
func (h *Highlight) SetDraw(p Point) { h.Draw = p }

// Data is the combined content of both layers. Either layer may be nil.
type Data struct {
	Events *EventLayer
	Lines  *LineLayer
}

// EntryForHighlight returns the stored entry a real highlight points at.
func (d *Data) EntryForHighlight(h Highlight) (Entry, bool) {
	layer, ok := h.Source.LayerIndex()
	if !ok || d == nil {
		return nil, false
	}
	switch layer {
	case EventLayerIndex:
		ds, ok := d.Events.First()
		if !ok {
			return nil, false
		}
		for _, e := range ds.Entries {
			if e.X == h.X {
				return e, true
			}
		}
	case LineLayerIndex:
		if d.Lines == nil {
			return nil, false
		}
		for _, ds := range d.Lines.Sets {
			if ds == nil {
				continue
			}
			for _, e := range ds.Entries {
				if e.X == h.X {
					return e, true
				}
			}
		}
	}
	return nil, false
}

// candidate is an entry considered for highlighting.
type candidate struct {
	point Point
	side  AxisSide
	layer int
}

func (d *Data) candidates() []candidate {
	if d == nil {
		return nil
	}
	var out []candidate
	if ds, ok := d.Events.First(); ok {
		for _, e := range ds.Entries {
			out = append(out, candidate{point: Point{X: e.X, Y: e.Y}, side: AxisLeft, layer: EventLayerIndex})
		}
	}
	if d.Lines != nil {
		for _, ds := range d.Lines.Sets {
			if ds == nil {
				continue
			}
			for _, e := range ds.Entries {
				out = append(out, candidate{point: Point{X: e.X, Y: e.Y}, side: ds.Axis, layer: LineLayerIndex})
			}
		}
	}
	return out
}

// Highlighter resolves pointer positions into one highlighted X shared by
// every layer, so the two layers never show markers at different times.
type Highlighter struct {
	// MaxDistance is the largest horizontal pixel distance between the
	// pointer and the entry it highlights.
	MaxDistance float64
}

// NewHighlighter returns a Highlighter with the default distance.
func NewHighlighter() *Highlighter {
	return &Highlighter{MaxDistance: DefaultMaxHighlightDistance}
}

// HighlightAtPixel returns the highlight for a pointer position. The entry
// nearest in X across both layers wins; ties go to the layer registered first.
func (hl *Highlighter) HighlightAtPixel(t Transformer, data *Data, px Point) (Highlight, bool) {
	x := t.ToValue(AxisLeft, px).X

	var best *candidate
	bestD := math.Inf(1)
	cands := data.candidates()
	for i := range cands {
		d := math.Abs(cands[i].point.X - x)
		if d < bestD || (d == bestD && best != nil && cands[i].layer < best.layer) {
			bestD = d
			best = &cands[i]
		}
	}
	if best == nil {
		return Highlight{}, false
	}

	at := t.ToPixel(best.side, best.point)
	if math.Abs(at.X-px.X) > hl.MaxDistance {
		return Highlight{}, false
	}
	return Highlight{
		X:      best.point.X,
		Y:      best.point.Y,
		Source: RealLayer(best.layer),
		Draw:   at,
	}, true
}

// HighlightAtX returns the highlight for an exact X, looking at the event
// layer first and the line layer second.
func (hl *Highlighter) HighlightAtX(data *Data, x float64) (Highlight, bool) {
	for _, c := range data.candidates() {
		if c.point.X == x {
			return Highlight{X: c.point.X, Y: c.point.Y, Source: RealLayer(c.layer)}, true
		}
	}
	return Highlight{}, false
}

// Step moves a highlight to the previous (dir < 0) or next (dir > 0) distinct
// X present in any layer. Without a current highlight the latest X is taken.
func (hl *Highlighter) Step(data *Data, current *Highlight, dir int) (Highlight, bool) {
	xs := distinctXs(data.candidates())
	if len(xs) == 0 {
		return Highlight{}, false
	}
	if current == nil {
		return hl.HighlightAtX(data, xs[len(xs)-1])
	}

	i := sort.SearchFloat64s(xs, current.X)
	switch {
	case dir < 0:
		i--
	case dir > 0:
		if i < len(xs) && xs[i] == current.X {
			i++
		}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(xs) {
		i = len(xs) - 1
	}
	return hl.HighlightAtX(data, xs[i])
}

func distinctXs(cands []candidate) []float64 {
	xs := make([]float64, 0, len(cands))
	for _, c := range cands {
		xs = append(xs, c.point.X)
	}
	sort.Float64s(xs)
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}
