package chart

import (
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Engine is the base chart engine a View draws through: coordinate
// transforms, axis ranges, the scrollable window and the grid.
type Engine interface {
	Transformer
	BaseDrawer

	// Bounds is the whole view, margins included.
	Bounds() Rect
	// AxisRange returns the current range of a vertical axis.
	AxisRange(side AxisSide) (min, max float64)
	// MoveViewTo scrolls so that x is the newest visible value.
	MoveViewTo(x float64)
	// NotifyDataChanged rescales the axes from data.
	NotifyDataChanged(data *Data)
	// NotifyDataSetChanged recomputes layout without rescaling.
	NotifyDataSetChanged()
}

// Options configures a View. Zero values select the defaults.
type Options struct {
	Now                  func() time.Time
	TotalMarker          Marker
	ConditionMarker      Marker
	MaxHighlightDistance float64
}

// Summary is what the markers show for the current highlight.
type Summary struct {
	Highlighted  bool
	X            float64
	Time         time.Time
	Header       string
	Total        float64
	// RunningTotal is the intake summed over every loaded entry up to and
	// including the highlighted time.
	RunningTotal float64
	Condition    float64
	HasCondition bool
}

// View is the composite intake chart. A View is not safe for concurrent
// use: one goroutine replaces datasets, moves the highlight and draws.
type View struct {
	engine      Engine
	highlighter *Highlighter
	renderer    *CompositeRenderer
	data        Data
	highlight   *Highlight
	header      Header
	now         func() time.Time
}

// NewView builds a view with an empty event layer and the event and line
// sub-renderers registered, in that order.
func NewView(engine Engine, opts Options) *View {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	hl := NewHighlighter()
	if opts.MaxHighlightDistance > 0 {
		hl.MaxDistance = opts.MaxHighlightDistance
	}
	overlay := NewOverlay(opts.TotalMarker, opts.ConditionMarker)
	return &View{
		engine:      engine,
		highlighter: hl,
		renderer:    NewCompositeRenderer(engine, overlay, NewEventRenderer(), NewLineRenderer()),
		data:        Data{Events: &EventLayer{}},
		now:         now,
	}
}

// Renderer returns the composite renderer.
func (v *View) Renderer() *CompositeRenderer { return v.renderer }

// Data returns the layers currently displayed.
func (v *View) Data() *Data { return &v.data }

// SetLineDataset replaces the condition line. The view is moved to the new
// dataset's last X before the dataset is attached.
func (v *View) SetLineDataset(ds *LineDataset) {
	if ds == nil {
		return
	}
	maxX, hasMax := ds.MaxX()
	if v.data.Lines != nil && len(v.data.Lines.Sets) > 0 {
		v.data.Lines.Sets[0] = ds
		if hasMax {
			v.engine.MoveViewTo(maxX)
		}
		v.engine.NotifyDataChanged(&v.data)
		v.engine.NotifyDataSetChanged()
		return
	}
	if hasMax {
		v.engine.MoveViewTo(maxX)
	}
	v.data.Lines = &LineLayer{Sets: []*LineDataset{ds}}
	v.engine.NotifyDataChanged(&v.data)
}

// SetEventDataset replaces the intake events and recomputes the event band
// from the left axis range.
func (v *View) SetEventDataset(ds *EventDataset) {
	min, max := v.engine.AxisRange(AxisLeft)
	layer := v.data.Events
	layer.ContentTop = max
	layer.ContentBottom = min + EventBandOffset
	layer.NormalizedYMin = min
	if ds == nil {
		layer.Sets = nil
	} else {
		layer.Sets = []*EventDataset{ds}
	}
	v.engine.NotifyDataSetChanged()
}

// HighlightAtPixel highlights the entry nearest to a pointer position, or
// clears the highlight when nothing is close enough.
func (v *View) HighlightAtPixel(px Point) (Highlight, bool) {
	h, ok := v.highlighter.HighlightAtPixel(v.engine, &v.data, px)
	if !ok {
		v.HighlightValue(nil)
		return Highlight{}, false
	}
	v.HighlightValue(&h)
	return h, true
}

// HighlightX highlights the entry stored at exactly x.
func (v *View) HighlightX(x float64) (Highlight, bool) {
	h, ok := v.highlighter.HighlightAtX(&v.data, x)
	if !ok {
		v.HighlightValue(nil)
		return Highlight{}, false
	}
	v.HighlightValue(&h)
	return h, true
}

// Step moves the highlight to the previous or next X.
func (v *View) Step(dir int) (Highlight, bool) {
	h, ok := v.highlighter.Step(&v.data, v.highlight, dir)
	if !ok {
		return Highlight{}, false
	}
	v.HighlightValue(&h)
	return h, true
}

// HighlightValue sets or clears (nil) the highlight and refreshes the header.
func (v *View) HighlightValue(h *Highlight) {
	if h == nil {
		v.highlight = nil
	} else {
		cp := *h
		v.highlight = &cp
	}
	v.updateHeader()
}

// Highlighted returns the current highlight.
func (v *View) Highlighted() (Highlight, bool) {
	if v.highlight == nil {
		return Highlight{}, false
	}
	return *v.highlight, true
}

// Header returns the header label state.
func (v *View) Header() Header { return v.header }

func (v *View) updateHeader() {
	if v.highlight == nil {
		v.header.Update(nil, false, v.now(), 0, 0)
		return
	}
	entry, ok := v.data.EntryForHighlight(*v.highlight)
	bounds := v.engine.Bounds()
	v.header.Update(entry, ok, v.now(), bounds.Width(), v.engine.ContentRect().Top)
}

// Draw runs a full draw pass: base, event layer, line layer, markers, header.
func (v *View) Draw(s Surface) DrawReport {
	report := v.renderer.Draw(s, v.engine, &v.data, v.highlight)
	if v.header.Visible {
		v.drawHeader(s)
	}
	return report
}

var headerStyle = Style{
	FillColor: drawing.Color{R: 25, G: 118, B: 210, A: 255},
	FontColor: drawing.Color{R: 255, G: 255, B: 255, A: 255},
	FontSize:  11,
}

func (v *View) drawHeader(s Surface) {
	s.Rect(v.header.Frame, headerStyle)
	w, h := s.MeasureText(v.header.Text, headerStyle)
	f := v.header.Frame
	s.Text(v.header.Text, Point{X: f.Left + (f.Width()-w)/2, Y: f.Top + (f.Height()+h)/2}, headerStyle)
}

// Summary reports the marker values for the current highlight.
func (v *View) Summary() Summary {
	if v.highlight == nil {
		return Summary{}
	}
	h := *v.highlight
	sum := Summary{
		Highlighted: true,
		X:           h.X,
		Time:        TimeFromX(h.X),
	}
	if v.header.Visible {
		sum.Header = v.header.Text
	}
	if ds, ok := v.data.Events.First(); ok {
		sum.Total = TotalAt(ds.Entries, h.X)
		sum.RunningTotal = TotalThrough(ds.Entries, h.X)
	}
	if lr, ok := v.renderer.LineRenderer(); ok && v.data.Lines != nil {
		for _, ds := range v.data.Lines.Sets {
			if y, ok := lr.Interpolate(h.X, ds); ok {
				sum.Condition = y
				sum.HasCondition = true
				break
			}
		}
	}
	return sum
}
