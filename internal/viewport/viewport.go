// Package viewport is the concrete base engine behind a chart.View: it owns
// the pixel geometry, the visible time window and the two vertical axes, and
// paints the grid underneath the chart layers.
package viewport

import (
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sweeney/intake-chart/internal/chart"
)

// Margins is the space between the view bounds and the content rect.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Config describes the geometry and fixed ranges of a Viewport.
type Config struct {
	Width, Height float64
	Margins       Margins
	// Window is the visible time span.
	Window time.Duration
	// LeftMin and LeftMax fix the intake (left) axis.
	LeftMin, LeftMax float64
	// RightMin and RightMax are the condition axis range used until data
	// arrives to autoscale it.
	RightMin, RightMax float64
	// Location is used for time tick labels.
	Location *time.Location
}

// DefaultConfig returns an 800x400 view showing six hours.
func DefaultConfig() Config {
	return Config{
		Width:    800,
		Height:   400,
		Margins:  Margins{Left: 48, Top: 32, Right: 48, Bottom: 28},
		Window:   6 * time.Hour,
		LeftMax:  700,
		RightMax: 100,
		Location: time.Local,
	}
}

type axisRange struct {
	min, max float64
}

func (a axisRange) span() float64 {
	if s := a.max - a.min; s != 0 {
		return s
	}
	return 1
}

// Viewport implements chart.Engine.
//
// A Viewport is not safe for concurrent use; it belongs to the goroutine that
// owns the View drawing through it.
type Viewport struct {
	cfg     Config
	content chart.Rect
	visible float64

	xMin, xMax float64
	positioned bool
	axes       [2]axisRange

	dataMin, dataMax float64
	hasData          bool

	generation int
}

var _ chart.Engine = (*Viewport)(nil)

// New returns a Viewport for cfg. Zero fields take their DefaultConfig value.
func New(cfg Config) *Viewport {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Margins == (Margins{}) {
		cfg.Margins = def.Margins
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.LeftMax <= cfg.LeftMin {
		cfg.LeftMax = cfg.LeftMin + def.LeftMax
	}
	if cfg.RightMax <= cfg.RightMin {
		cfg.RightMax = cfg.RightMin + def.RightMax
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}

	v := &Viewport{
		cfg: cfg,
		content: chart.Rect{
			Left:   cfg.Margins.Left,
			Top:    cfg.Margins.Top,
			Right:  cfg.Width - cfg.Margins.Right,
			Bottom: cfg.Height - cfg.Margins.Bottom,
		},
		visible: cfg.Window.Minutes(),
	}
	v.xMin, v.xMax = -v.visible, 0
	v.axes[chart.AxisLeft] = axisRange{cfg.LeftMin, cfg.LeftMax}
	v.axes[chart.AxisRight] = axisRange{cfg.RightMin, cfg.RightMax}
	return v
}

func (v *Viewport) axis(side chart.AxisSide) axisRange {
	if side == chart.AxisRight {
		return v.axes[chart.AxisRight]
	}
	return v.axes[chart.AxisLeft]
}

// ToPixel implements chart.Transformer.
func (v *Viewport) ToPixel(side chart.AxisSide, p chart.Point) chart.Point {
	a := v.axis(side)
	fx := (p.X - v.xMin) / v.xSpan()
	fy := (p.Y - a.min) / a.span()
	return chart.Point{
		X: v.content.Left + fx*v.content.Width(),
		Y: v.content.Bottom - fy*v.content.Height(),
	}
}

// ToValue implements chart.Transformer.
func (v *Viewport) ToValue(side chart.AxisSide, px chart.Point) chart.Point {
	a := v.axis(side)
	fx := (px.X - v.content.Left) / v.content.Width()
	fy := (v.content.Bottom - px.Y) / v.content.Height()
	return chart.Point{
		X: v.xMin + fx*v.xSpan(),
		Y: a.min + fy*a.span(),
	}
}

func (v *Viewport) xSpan() float64 {
	if s := v.xMax - v.xMin; s != 0 {
		return s
	}
	return 1
}

// ContentRect implements chart.Transformer.
func (v *Viewport) ContentRect() chart.Rect { return v.content }

// InBounds implements chart.Transformer.
func (v *Viewport) InBounds(px chart.Point) bool { return v.content.Contains(px) }

// Bounds implements chart.Engine.
func (v *Viewport) Bounds() chart.Rect {
	return chart.Rect{Right: v.cfg.Width, Bottom: v.cfg.Height}
}

// AxisRange implements chart.Engine.
func (v *Viewport) AxisRange(side chart.AxisSide) (min, max float64) {
	a := v.axis(side)
	return a.min, a.max
}

// Window returns the visible x range.
func (v *Viewport) Window() (min, max float64) { return v.xMin, v.xMax }

// DataRange returns the x range of the data last passed to NotifyDataChanged.
func (v *Viewport) DataRange() (min, max float64, ok bool) {
	return v.dataMin, v.dataMax, v.hasData
}

// Generation counts layout recomputations.
func (v *Viewport) Generation() int { return v.generation }

// MoveViewTo makes x the right edge of the visible window. It does not clamp
// against the data range, which may still describe the previous dataset.
func (v *Viewport) MoveViewTo(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	v.xMax = x
	v.xMin = x - v.visible
	v.positioned = true
}

// NotifyDataChanged recomputes the data x range and autoscales the right
// axis from the line datasets plotted against it. The scroll position is kept;
// a viewport that was never moved is positioned at the newest data.
func (v *Viewport) NotifyDataChanged(data *chart.Data) {
	v.hasData = false
	yMin, yMax := math.Inf(1), math.Inf(-1)

	extend := func(x float64) {
		if !v.hasData {
			v.dataMin, v.dataMax, v.hasData = x, x, true
			return
		}
		v.dataMin = math.Min(v.dataMin, x)
		v.dataMax = math.Max(v.dataMax, x)
	}

	if data != nil {
		if ds, ok := data.Events.First(); ok {
			for _, e := range ds.Entries {
				extend(e.X)
			}
		}
		if data.Lines != nil {
			for _, ds := range data.Lines.Sets {
				if ds == nil {
					continue
				}
				for _, e := range ds.Entries {
					extend(e.X)
					if ds.Axis == chart.AxisRight {
						yMin = math.Min(yMin, e.Y)
						yMax = math.Max(yMax, e.Y)
					}
				}
			}
		}
	}

	if yMin <= yMax {
		if yMin > 0 {
			yMin = 0
		}
		if ticks := NumericTicks(yMin, yMax, 6); len(ticks) >= 2 {
			v.axes[chart.AxisRight] = axisRange{ticks[0], ticks[len(ticks)-1]}
		}
	}

	if !v.positioned && v.hasData {
		v.MoveViewTo(v.dataMax)
	}
}

// NotifyDataSetChanged implements chart.Engine.
func (v *Viewport) NotifyDataSetChanged() { v.generation++ }

var (
	backgroundStyle = chart.Style{
		FillColor:   drawing.Color{R: 250, G: 250, B: 250, A: 255},
		StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1,
	}
	gridStyle = chart.Style{
		StrokeColor: drawing.Color{R: 225, G: 225, B: 225, A: 255},
		StrokeWidth: 1,
	}
	labelStyle = chart.Style{
		FontColor: drawing.Color{R: 90, G: 90, B: 90, A: 255},
		FontSize:  9,
	}
)

// DrawBase paints the content background, horizontal grid lines on the left
// axis ticks, the labels of both axes and the time ticks.
func (v *Viewport) DrawBase(s chart.Surface) {
	s.ResetClip()
	s.Rect(v.content, backgroundStyle)

	left := v.axes[chart.AxisLeft]
	for _, t := range NumericTicks(left.min, left.max, 6) {
		if t < left.min || t > left.max {
			continue
		}
		y := v.ToPixel(chart.AxisLeft, chart.Point{Y: t}).Y
		s.Line(chart.Point{X: v.content.Left, Y: y}, chart.Point{X: v.content.Right, Y: y}, gridStyle)
		label := FormatTick(t)
		w, h := s.MeasureText(label, labelStyle)
		s.Text(label, chart.Point{X: v.content.Left - 4 - w, Y: y + h/2}, labelStyle)
	}

	right := v.axes[chart.AxisRight]
	for _, t := range NumericTicks(right.min, right.max, 6) {
		if t < right.min || t > right.max {
			continue
		}
		y := v.ToPixel(chart.AxisRight, chart.Point{Y: t}).Y
		_, h := s.MeasureText(FormatTick(t), labelStyle)
		s.Text(FormatTick(t), chart.Point{X: v.content.Right + 4, Y: y + h/2}, labelStyle)
	}

	for _, x := range TimeTicks(v.xMin, v.xMax, 8) {
		px := v.ToPixel(chart.AxisLeft, chart.Point{X: x}).X
		s.Line(chart.Point{X: px, Y: v.content.Top}, chart.Point{X: px, Y: v.content.Bottom}, gridStyle)
		label := chart.TimeFromX(x).In(v.cfg.Location).Format("15:04")
		w, h := s.MeasureText(label, labelStyle)
		s.Text(label, chart.Point{X: px - w/2, Y: v.content.Bottom + 4 + h}, labelStyle)
	}
}
