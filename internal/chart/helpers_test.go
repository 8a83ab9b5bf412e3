package chart

import (
	"fmt"
)

// fakeEngine maps a data window linearly onto a fixed content rect.
// Both axes share the x mapping; each side has its own y range.
type fakeEngine struct {
	content Rect
	bounds  Rect
	xMin    float64
	xMax    float64
	yRange  map[AxisSide][2]float64

	view  *View
	calls []string
	// linesAtMove records, for every MoveViewTo, whether the view already
	// had a line layer attached.
	linesAtMove []bool
	baseDraws   int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		content: Rect{Left: 10, Top: 10, Right: 110, Bottom: 110},
		bounds:  Rect{Right: 120, Bottom: 120},
		xMin:    0,
		xMax:    100,
		yRange: map[AxisSide][2]float64{
			AxisLeft:  {0, 700},
			AxisRight: {0, 100},
		},
	}
}

func (e *fakeEngine) ToPixel(side AxisSide, p Point) Point {
	r := e.yRange[side]
	fx := (p.X - e.xMin) / (e.xMax - e.xMin)
	fy := (p.Y - r[0]) / (r[1] - r[0])
	return Point{
		X: e.content.Left + fx*e.content.Width(),
		Y: e.content.Bottom - fy*e.content.Height(),
	}
}

func (e *fakeEngine) ToValue(side AxisSide, px Point) Point {
	r := e.yRange[side]
	fx := (px.X - e.content.Left) / e.content.Width()
	fy := (e.content.Bottom - px.Y) / e.content.Height()
	return Point{
		X: e.xMin + fx*(e.xMax-e.xMin),
		Y: r[0] + fy*(r[1]-r[0]),
	}
}

func (e *fakeEngine) ContentRect() Rect       { return e.content }
func (e *fakeEngine) InBounds(px Point) bool  { return e.content.Contains(px) }
func (e *fakeEngine) Bounds() Rect            { return e.bounds }
func (e *fakeEngine) DrawBase(s Surface)      { e.baseDraws++; e.calls = append(e.calls, "base") }
func (e *fakeEngine) NotifyDataSetChanged()   { e.calls = append(e.calls, "dataSetChanged") }
func (e *fakeEngine) NotifyDataChanged(*Data) { e.calls = append(e.calls, "dataChanged") }
func (e *fakeEngine) AxisRange(side AxisSide) (float64, float64) {
	r := e.yRange[side]
	return r[0], r[1]
}

func (e *fakeEngine) MoveViewTo(x float64) {
	e.calls = append(e.calls, fmt.Sprintf("move:%g", x))
	e.linesAtMove = append(e.linesAtMove, e.view != nil && e.view.Data().Lines != nil)
	width := e.xMax - e.xMin
	e.xMax = x
	e.xMin = x - width
}

// spySurface records every primitive drawn on it.
type spySurface struct {
	ops   []string
	clips []Rect
}

func (s *spySurface) Clip(r Rect) { s.clips = append(s.clips, r) }
func (s *spySurface) ResetClip()  {}

func (s *spySurface) Line(from, to Point, st Style) {
	s.ops = append(s.ops, fmt.Sprintf("line %v-%v", from, to))
}

func (s *spySurface) Circle(c Point, r float64, st Style) {
	s.ops = append(s.ops, fmt.Sprintf("circle %v r=%g", c, r))
}

func (s *spySurface) Rect(r Rect, st Style) {
	s.ops = append(s.ops, fmt.Sprintf("rect %v", r))
}

func (s *spySurface) Text(body string, at Point, st Style) {
	s.ops = append(s.ops, "text "+body)
}

func (s *spySurface) MeasureText(body string, st Style) (float64, float64) {
	return float64(len(body)) * 6, 10
}

// spyMarker records refreshes and draws.
type spyMarker struct {
	name       string
	log        *[]string
	entries    []Entry
	highlights []Highlight
	points     []Point
}

func (m *spyMarker) RefreshContent(e Entry, h Highlight) {
	m.entries = append(m.entries, e)
	m.highlights = append(m.highlights, h)
}

func (m *spyMarker) Draw(s Surface, p Point) {
	m.points = append(m.points, p)
	if m.log != nil {
		*m.log = append(*m.log, "marker:"+m.name)
	}
}

// recordingSub logs the passes it is asked to draw.
type recordingSub struct {
	name string
	log  *[]string
}

func (r *recordingSub) Draw(s Surface, t Transformer, data *Data) {
	*r.log = append(*r.log, "draw:"+r.name)
}

func (r *recordingSub) DrawHighlighted(s Surface, t Transformer, data *Data, h Highlight) {
	*r.log = append(*r.log, "highlight:"+r.name)
}

type recordingBase struct {
	log *[]string
}

func (b recordingBase) DrawBase(s Surface) { *b.log = append(*b.log, "base") }

func scenarioEvents() *EventDataset {
	return NewEventDataset("intake", []EventEntry{
		{X: 0, Y: 400, Size: 8},
		{X: 0, Y: 400, Size: 4},
		{X: 60, Y: 400, Size: 12},
	})
}

func scenarioLine() *LineDataset {
	return NewLineDataset("condition", []LineEntry{
		{X: 0, Y: 10},
		{X: 60, Y: 20},
	}, nil, AxisRight)
}

// scenarioData builds both layers with the event band of a 0..700 axis.
func scenarioData() *Data {
	return &Data{
		Events: &EventLayer{
			ContentTop:     700,
			ContentBottom:  EventBandOffset,
			NormalizedYMin: 0,
			Sets:           []*EventDataset{scenarioEvents()},
		},
		Lines: &LineLayer{Sets: []*LineDataset{scenarioLine()}},
	}
}
