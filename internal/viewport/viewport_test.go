package viewport

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/intake-chart/internal/chart"
)

func testConfig() Config {
	return Config{
		Width:    120,
		Height:   120,
		Margins:  Margins{Left: 10, Top: 10, Right: 10, Bottom: 10},
		Window:   100 * time.Minute,
		LeftMax:  700,
		RightMax: 100,
		Location: time.UTC,
	}
}

func TestNewDefaults(t *testing.T) {
	v := New(Config{})
	assert.Equal(t, chart.Rect{Right: 800, Bottom: 400}, v.Bounds())
	assert.Equal(t, chart.Rect{Left: 48, Top: 32, Right: 752, Bottom: 372}, v.ContentRect())
	min, max := v.AxisRange(chart.AxisLeft)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 700.0, max)
	min, max = v.Window()
	assert.Equal(t, 360.0, max-min)
}

func TestToPixelAndBack(t *testing.T) {
	v := New(testConfig())
	v.MoveViewTo(100)

	px := v.ToPixel(chart.AxisLeft, chart.Point{X: 0, Y: 0})
	assert.Equal(t, chart.Point{X: 10, Y: 110}, px)
	px = v.ToPixel(chart.AxisLeft, chart.Point{X: 100, Y: 700})
	assert.Equal(t, chart.Point{X: 110, Y: 10}, px)
	px = v.ToPixel(chart.AxisRight, chart.Point{X: 50, Y: 50})
	assert.InDelta(t, 60, px.X, 1e-9)
	assert.InDelta(t, 60, px.Y, 1e-9)

	val := v.ToValue(chart.AxisLeft, chart.Point{X: 35, Y: 60})
	assert.InDelta(t, 25, val.X, 1e-9)
	assert.InDelta(t, 350, val.Y, 1e-9)
}

func TestInBounds(t *testing.T) {
	v := New(testConfig())
	assert.True(t, v.InBounds(chart.Point{X: 10, Y: 10}))
	assert.True(t, v.InBounds(chart.Point{X: 110, Y: 110}))
	assert.False(t, v.InBounds(chart.Point{X: 9.9, Y: 50}))
	assert.False(t, v.InBounds(chart.Point{X: 50, Y: 111}))
}

func TestMoveViewToDoesNotClampToStaleData(t *testing.T) {
	v := New(testConfig())
	v.NotifyDataChanged(&chart.Data{Lines: &chart.LineLayer{Sets: []*chart.LineDataset{
		chart.NewLineDataset("c", []chart.LineEntry{{X: 0, Y: 1}, {X: 60, Y: 2}}, nil, chart.AxisRight),
	}}})
	min, max := v.Window()
	assert.Equal(t, 60.0, max, "never moved, so positioned at the newest data")
	assert.Equal(t, -40.0, min)

	v.MoveViewTo(500)
	min, max = v.Window()
	assert.Equal(t, 400.0, min)
	assert.Equal(t, 500.0, max)

	v.NotifyDataChanged(&chart.Data{})
	_, max = v.Window()
	assert.Equal(t, 500.0, max, "rescaling keeps the scroll position")
}

func TestMoveViewToIgnoresNaN(t *testing.T) {
	v := New(testConfig())
	v.MoveViewTo(42)
	v.MoveViewTo(math.NaN())
	_, max := v.Window()
	assert.Equal(t, 42.0, max)
}

func TestNotifyDataChangedAutoscalesRightAxis(t *testing.T) {
	v := New(testConfig())
	data := &chart.Data{
		Events: &chart.EventLayer{Sets: []*chart.EventDataset{
			chart.NewEventDataset("i", []chart.EventEntry{{X: -30, Size: 250}}),
		}},
		Lines: &chart.LineLayer{Sets: []*chart.LineDataset{
			chart.NewLineDataset("c", []chart.LineEntry{{X: 0, Y: 40}, {X: 60, Y: 173}}, nil, chart.AxisRight),
		}},
	}
	v.NotifyDataChanged(data)

	min, max := v.AxisRange(chart.AxisRight)
	assert.Equal(t, 0.0, min)
	assert.GreaterOrEqual(t, max, 173.0)
	assert.LessOrEqual(t, max, 200.0)

	lmin, lmax := v.AxisRange(chart.AxisLeft)
	assert.Equal(t, 0.0, lmin)
	assert.Equal(t, 700.0, lmax, "left axis is fixed")

	dmin, dmax, ok := v.DataRange()
	require.True(t, ok)
	assert.Equal(t, -30.0, dmin)
	assert.Equal(t, 60.0, dmax)
}

func TestNotifyDataChangedEmpty(t *testing.T) {
	v := New(testConfig())
	v.NotifyDataChanged(nil)
	_, _, ok := v.DataRange()
	assert.False(t, ok)
	min, max := v.AxisRange(chart.AxisRight)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)
}

func TestNotifyDataSetChangedBumpsGeneration(t *testing.T) {
	v := New(testConfig())
	assert.Equal(t, 0, v.Generation())
	v.NotifyDataSetChanged()
	v.NotifyDataSetChanged()
	assert.Equal(t, 2, v.Generation())
}

type opSurface struct {
	ops []string
}

func (s *opSurface) Clip(chart.Rect) {}
func (s *opSurface) ResetClip()      { s.ops = append(s.ops, "reset") }
func (s *opSurface) Line(from, to chart.Point, st chart.Style) {
	s.ops = append(s.ops, "line")
}
func (s *opSurface) Circle(chart.Point, float64, chart.Style) { s.ops = append(s.ops, "circle") }
func (s *opSurface) Rect(chart.Rect, chart.Style)              { s.ops = append(s.ops, "rect") }
func (s *opSurface) Text(body string, at chart.Point, st chart.Style) {
	s.ops = append(s.ops, "text "+body)
}
func (s *opSurface) MeasureText(body string, st chart.Style) (float64, float64) {
	return float64(len(body)) * 5, 8
}

func TestDrawBase(t *testing.T) {
	v := New(testConfig())
	v.MoveViewTo(chart.XFromTime(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)))

	s := &opSurface{}
	v.DrawBase(s)

	require.GreaterOrEqual(t, len(s.ops), 2)
	assert.Equal(t, "reset", s.ops[0])
	assert.Equal(t, "rect", s.ops[1])
	joined := strings.Join(s.ops, "|")
	assert.Contains(t, joined, "text 600")
	assert.Contains(t, joined, "text 0")
	assert.Contains(t, joined, "text 100")
	// 100 minutes ending at noon, ticked every 15 minutes
	assert.Contains(t, joined, "text 11:00")
	assert.Contains(t, joined, "text 12:00")
}
