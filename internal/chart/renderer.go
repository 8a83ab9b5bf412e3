package chart

import (
	"math"
	"sort"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// SubRenderer draws one data layer.
type SubRenderer interface {
	Draw(s Surface, t Transformer, data *Data)
	DrawHighlighted(s Surface, t Transformer, data *Data, h Highlight)
}

// BaseDrawer draws everything under the data layers (background, grid, axes).
type BaseDrawer interface {
	DrawBase(s Surface)
}

// LineLookup gives the overlay access to line interpolation without knowing
// the rest of the renderer.
type LineLookup interface {
	LineRenderer() (*LineRenderer, bool)
}

// Bubble sizes in pixels.
const (
	MinBubbleRadius = 4
	MaxBubbleRadius = 18
)

// EventRenderer draws intake events as bubbles sized by quantity.
type EventRenderer struct {
	Fill      drawing.Color
	Stroke    drawing.Color
	Highlight drawing.Color
}

// NewEventRenderer returns an EventRenderer with the default palette.
func NewEventRenderer() *EventRenderer {
	return &EventRenderer{
		Fill:      drawing.Color{R: 66, G: 165, B: 245, A: 170},
		Stroke:    drawing.Color{R: 25, G: 118, B: 210, A: 255},
		Highlight: drawing.Color{R: 255, G: 255, B: 255, A: 255},
	}
}

func (r *EventRenderer) radius(size, maxSize float64) float64 {
	if maxSize <= 0 || size <= 0 {
		return MinBubbleRadius
	}
	return MinBubbleRadius + (MaxBubbleRadius-MinBubbleRadius)*math.Min(size/maxSize, 1)
}

// Draw paints every bubble whose centre is inside the content rect.
func (r *EventRenderer) Draw(s Surface, t Transformer, data *Data) {
	if data == nil {
		return
	}
	ds, ok := data.Events.First()
	if !ok {
		return
	}
	maxSize := ds.MaxSize()
	st := Style{FillColor: r.Fill, StrokeColor: r.Stroke, StrokeWidth: 1}

	s.Clip(t.ContentRect())
	defer s.ResetClip()
	for _, e := range ds.Entries {
		p := t.ToPixel(AxisLeft, Point{X: e.X, Y: data.Events.ClampY(e.Y)})
		if !t.InBounds(p) {
			continue
		}
		s.Circle(p, r.radius(e.Size, maxSize), st)
	}
}

// DrawHighlighted rings the bubbles at the highlighted X.
func (r *EventRenderer) DrawHighlighted(s Surface, t Transformer, data *Data, h Highlight) {
	if data == nil {
		return
	}
	ds, ok := data.Events.First()
	if !ok {
		return
	}
	maxSize := ds.MaxSize()
	st := Style{StrokeColor: r.Highlight, StrokeWidth: 2}

	s.Clip(t.ContentRect())
	defer s.ResetClip()
	for _, e := range ds.Entries {
		if e.X != h.X {
			continue
		}
		p := t.ToPixel(AxisLeft, Point{X: e.X, Y: data.Events.ClampY(e.Y)})
		if !t.InBounds(p) {
			continue
		}
		s.Circle(p, r.radius(e.Size, maxSize)+2, st)
	}
}

// LineRenderer draws the condition signal as a gradient-coloured line.
type LineRenderer struct {
	Width          float64
	Fallback       drawing.Color
	HighlightColor drawing.Color
}

// NewLineRenderer returns a LineRenderer with the default style.
func NewLineRenderer() *LineRenderer {
	return &LineRenderer{
		Width:          3,
		Fallback:       drawing.Color{R: 255, G: 255, B: 255, A: 255},
		HighlightColor: drawing.Color{R: 200, G: 200, B: 200, A: 220},
	}
}

// Interpolate returns the line value at x. It is exact at sample points,
// linear between them, and reports false outside [MinX, MaxX].
func (r *LineRenderer) Interpolate(x float64, ds *LineDataset) (float64, bool) {
	if ds == nil || len(ds.Entries) == 0 || math.IsNaN(x) {
		return 0, false
	}
	entries := ds.Entries
	if x < entries[0].X || x > entries[len(entries)-1].X {
		return 0, false
	}
	i := sort.Search(len(entries), func(i int) bool { return entries[i].X >= x })
	hi := entries[i]
	if hi.X == x {
		return hi.Y, true
	}
	lo := entries[i-1]
	f := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + (hi.Y-lo.Y)*f, true
}

// Draw paints each segment of each dataset in the gradient colour of its
// midpoint value.
func (r *LineRenderer) Draw(s Surface, t Transformer, data *Data) {
	if data == nil || data.Lines == nil {
		return
	}
	s.Clip(t.ContentRect())
	defer s.ResetClip()
	for _, ds := range data.Lines.Sets {
		if ds == nil || len(ds.Entries) < 2 {
			continue
		}
		prev := t.ToPixel(ds.Axis, Point{X: ds.Entries[0].X, Y: ds.Entries[0].Y})
		for i := 1; i < len(ds.Entries); i++ {
			e := ds.Entries[i]
			cur := t.ToPixel(ds.Axis, Point{X: e.X, Y: e.Y})
			col := r.Fallback
			if len(ds.Gradient) > 0 {
				col = ColorAt(ds.Gradient, (ds.Entries[i-1].Y+e.Y)/2)
			}
			s.Line(prev, cur, Style{StrokeColor: col, StrokeWidth: r.Width})
			prev = cur
		}
	}
}

// DrawHighlighted draws a vertical line through the content rect at h.X.
func (r *LineRenderer) DrawHighlighted(s Surface, t Transformer, data *Data, h Highlight) {
	if data == nil || data.Lines == nil || len(data.Lines.Sets) == 0 {
		return
	}
	rect := t.ContentRect()
	p := t.ToPixel(AxisLeft, Point{X: h.X})
	if p.X < rect.Left || p.X > rect.Right {
		return
	}
	s.Clip(rect)
	defer s.ResetClip()
	s.Line(Point{X: p.X, Y: rect.Top}, Point{X: p.X, Y: rect.Bottom}, Style{StrokeColor: r.HighlightColor, StrokeWidth: 1})
}

// CompositeRenderer draws the base layer, then every sub-renderer in
// registration order, then the marker overlay.
type CompositeRenderer struct {
	base    BaseDrawer
	subs    []SubRenderer
	overlay *Overlay
}

// NewCompositeRenderer registers subs in the order they must be drawn.
func NewCompositeRenderer(base BaseDrawer, overlay *Overlay, subs ...SubRenderer) *CompositeRenderer {
	return &CompositeRenderer{
		base:    base,
		subs:    append([]SubRenderer(nil), subs...),
		overlay: overlay,
	}
}

// SubRenderers returns the registered sub-renderers in draw order.
func (c *CompositeRenderer) SubRenderers() []SubRenderer {
	return append([]SubRenderer(nil), c.subs...)
}

// LineRenderer returns the first registered line sub-renderer.
func (c *CompositeRenderer) LineRenderer() (*LineRenderer, bool) {
	for _, sub := range c.subs {
		if lr, ok := sub.(*LineRenderer); ok {
			return lr, true
		}
	}
	return nil, false
}

// Draw runs one draw pass. h may be nil when nothing is highlighted.
func (c *CompositeRenderer) Draw(s Surface, t Transformer, data *Data, h *Highlight) DrawReport {
	if c.base != nil {
		c.base.DrawBase(s)
	}
	for _, sub := range c.subs {
		sub.Draw(s, t, data)
	}
	if h != nil {
		for _, sub := range c.subs {
			sub.DrawHighlighted(s, t, data, *h)
		}
	}
	if c.overlay == nil {
		return DrawReport{}
	}
	return c.overlay.Draw(s, t, data, c, h)
}
