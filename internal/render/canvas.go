// Package render paints chart frames onto go-chart renderers (SVG or PNG).
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sweeney/intake-chart/internal/chart"
)

// Format selects the output encoding of a Canvas.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unknown render format %q", s)
}

// ContentType is the HTTP content type of the encoded frame.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

const defaultFontSize = 10.0

// Canvas implements chart.Surface on a go-chart Renderer. go-chart has no
// clip paths, so clipping is applied to the geometry before it is emitted.
type Canvas struct {
	r      gochart.Renderer
	format Format
	clip   *chart.Rect
}

var _ chart.Surface = (*Canvas)(nil)

// NewCanvas creates a width x height canvas using go-chart's default font.
func NewCanvas(f Format, width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	r, err := f.provider()(width, height)
	if err != nil {
		return nil, fmt.Errorf("create %s renderer: %w", f, err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)
	return &Canvas{r: r, format: f}, nil
}

// Format returns the encoding the canvas was created with.
func (c *Canvas) Format() Format { return c.format }

// Clip implements chart.Surface.
func (c *Canvas) Clip(r chart.Rect) {
	c.clip = &r
}

// ResetClip implements chart.Surface.
func (c *Canvas) ResetClip() {
	c.clip = nil
}

// Line implements chart.Surface.
func (c *Canvas) Line(from, to chart.Point, st chart.Style) {
	if st.StrokeColor.IsZero() {
		return
	}
	if c.clip != nil {
		var ok bool
		if from, to, ok = clipLine(from, to, *c.clip); !ok {
			return
		}
	}
	c.style(st)
	c.r.MoveTo(px(from.X), px(from.Y))
	c.r.LineTo(px(to.X), px(to.Y))
	c.r.Stroke()
}

// circleSegments is how many chords approximate a circle cut by the clip.
const circleSegments = 48

// Circle implements chart.Surface. A circle that crosses the clip edge is
// drawn as a polygon cut to the clip, its outline clipped chord by chord.
func (c *Canvas) Circle(center chart.Point, radius float64, st chart.Style) {
	if radius <= 0 || invisible(st) {
		return
	}
	bounds := circleBounds(center, radius, st)
	if c.clip == nil || c.clip.ContainsRect(bounds) {
		c.style(st)
		c.r.Circle(radius, px(center.X), px(center.Y))
		c.paint(st)
		return
	}
	if _, ok := intersect(bounds, *c.clip); !ok {
		return
	}

	// Fill and outline are separate passes so the cut edge is not stroked.
	ring := circlePolygon(center, radius, circleSegments)
	if !st.FillColor.IsZero() {
		if poly := clipPolygon(ring, *c.clip); len(poly) >= 3 {
			fill := st
			fill.StrokeColor = drawing.Color{}
			c.style(fill)
			c.r.MoveTo(px(poly[0].X), px(poly[0].Y))
			for _, p := range poly[1:] {
				c.r.LineTo(px(p.X), px(p.Y))
			}
			c.r.Close()
			c.r.Fill()
		}
	}
	if st.StrokeColor.IsZero() {
		return
	}
	outline := st
	outline.FillColor = drawing.Color{}
	c.style(outline)
	for i, a := range ring {
		from, to, ok := clipLine(a, ring[(i+1)%len(ring)], *c.clip)
		if !ok {
			continue
		}
		c.r.MoveTo(px(from.X), px(from.Y))
		c.r.LineTo(px(to.X), px(to.Y))
		c.r.Stroke()
	}
}

// circleBounds is the box a circle covers, stroke included.
func circleBounds(center chart.Point, radius float64, st chart.Style) chart.Rect {
	if !st.StrokeColor.IsZero() && st.StrokeWidth > 0 {
		radius += st.StrokeWidth / 2
	}
	return chart.Rect{
		Left:   center.X - radius,
		Top:    center.Y - radius,
		Right:  center.X + radius,
		Bottom: center.Y + radius,
	}
}

func circlePolygon(center chart.Point, radius float64, n int) []chart.Point {
	ring := make([]chart.Point, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = chart.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return ring
}

// Rect implements chart.Surface.
func (c *Canvas) Rect(r chart.Rect, st chart.Style) {
	if invisible(st) {
		return
	}
	if c.clip != nil {
		var ok bool
		if r, ok = intersect(r, *c.clip); !ok {
			return
		}
	}
	c.style(st)
	c.r.MoveTo(px(r.Left), px(r.Top))
	c.r.LineTo(px(r.Right), px(r.Top))
	c.r.LineTo(px(r.Right), px(r.Bottom))
	c.r.LineTo(px(r.Left), px(r.Bottom))
	c.r.Close()
	c.paint(st)
}

// Text implements chart.Surface. at is the left end of the baseline. Under a
// clip, a label is drawn only if its measured box fits inside it.
func (c *Canvas) Text(body string, at chart.Point, st chart.Style) {
	if body == "" {
		return
	}
	if c.clip != nil {
		w, h := c.MeasureText(body, st)
		if !c.clip.ContainsRect(chart.Rect{Left: at.X, Top: at.Y - h, Right: at.X + w, Bottom: at.Y}) {
			return
		}
	}
	c.style(st)
	c.r.Text(body, px(at.X), px(at.Y))
}

// MeasureText implements chart.Surface.
func (c *Canvas) MeasureText(body string, st chart.Style) (w, h float64) {
	c.style(st)
	b := c.r.MeasureText(body)
	return float64(b.Width()), float64(b.Height())
}

// Save encodes the frame to w.
func (c *Canvas) Save(w io.Writer) error {
	if err := c.r.Save(w); err != nil {
		return fmt.Errorf("encode %s: %w", c.format, err)
	}
	return nil
}

func (c *Canvas) style(st chart.Style) {
	c.r.ResetStyle()
	c.r.SetStrokeColor(st.StrokeColor)
	c.r.SetFillColor(st.FillColor)
	width := st.StrokeWidth
	if width <= 0 {
		width = 1
	}
	c.r.SetStrokeWidth(width)
	c.r.SetFontColor(st.FontColor)
	size := st.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	c.r.SetFontSize(size)
}

func (c *Canvas) paint(st chart.Style) {
	fill, stroke := !st.FillColor.IsZero(), !st.StrokeColor.IsZero()
	switch {
	case fill && stroke:
		c.r.FillStroke()
	case fill:
		c.r.Fill()
	case stroke:
		c.r.Stroke()
	}
}

func invisible(st chart.Style) bool {
	return st.FillColor.IsZero() && st.StrokeColor.IsZero()
}

func px(v float64) int { return int(math.Round(v)) }
