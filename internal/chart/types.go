// Package chart contains the composite water-intake chart: the event (bubble)
// and condition (gradient line) layers, the shared highlighter, the composite
// renderer and the marker overlay drawn on top of both layers.
//
// This package has NO I/O. Coordinates are converted by an injected
// Transformer, pixels are produced by an injected Surface, and time is always
// passed in by the caller.
package chart

import (
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// AxisSide selects which vertical axis (and therefore which transform) a
// dataset is plotted against.
type AxisSide int

const (
	AxisLeft AxisSide = iota
	AxisRight
)

func (a AxisSide) String() string {
	if a == AxisRight {
		return "right"
	}
	return "left"
}

// Point is a position in either data space or pixel space.
type Point struct {
	X, Y float64
}

// Rect is a pixel-space rectangle. Top is smaller than Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsRect reports whether o lies wholly inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Style describes how a primitive is painted. Zero colours are not painted.
type Style struct {
	StrokeColor drawing.Color
	FillColor   drawing.Color
	StrokeWidth float64
	FontColor   drawing.Color
	FontSize    float64
}

// Transformer converts between data space and pixel space for one chart.
type Transformer interface {
	// ToPixel projects a data-space point for the given axis into pixels.
	ToPixel(side AxisSide, p Point) Point
	// ToValue is the inverse of ToPixel.
	ToValue(side AxisSide, px Point) Point
	// ContentRect is the plot area, excluding axis labels and margins.
	ContentRect() Rect
	// InBounds reports whether a pixel point lies inside the content rect.
	InBounds(px Point) bool
}

// Surface is the drawing capability the chart paints on.
type Surface interface {
	// Clip restricts every following primitive to r until ResetClip.
	Clip(r Rect)
	ResetClip()
	Line(from, to Point, st Style)
	Circle(center Point, radius float64, st Style)
	Rect(r Rect, st Style)
	Text(body string, at Point, st Style)
	MeasureText(body string, st Style) (w, h float64)
}

// XFromTime converts a wall-clock time into the chart's x unit: minutes since
// the Unix epoch.
func XFromTime(t time.Time) float64 {
	return float64(t.Unix()) / 60
}

// TimeFromX is the inverse of XFromTime, rounded to whole seconds.
func TimeFromX(x float64) time.Time {
	return time.Unix(int64(math.Round(x*60)), 0)
}
