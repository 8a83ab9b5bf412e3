package chart

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Marker is a floating annotation drawn at a projected point.
type Marker interface {
	// RefreshContent updates what the marker shows.
	RefreshContent(e Entry, h Highlight)
	// Draw paints the marker centred on p.
	Draw(s Surface, p Point)
}

// TotalIntakeMarker is a badge showing the intake total at the highlight.
type TotalIntakeMarker struct {
	Unit    string
	Padding float64
	Style   Style

	text string
}

// NewTotalIntakeMarker returns a badge marker labelled in unit.
func NewTotalIntakeMarker(unit string) *TotalIntakeMarker {
	return &TotalIntakeMarker{
		Unit:    unit,
		Padding: 4,
		Style: Style{
			FillColor:   drawing.Color{R: 25, G: 118, B: 210, A: 230},
			StrokeColor: drawing.Color{R: 255, G: 255, B: 255, A: 255},
			StrokeWidth: 1,
			FontColor:   drawing.Color{R: 255, G: 255, B: 255, A: 255},
			FontSize:    10,
		},
	}
}

// RefreshContent formats the Count of an EventEntry.
func (m *TotalIntakeMarker) RefreshContent(e Entry, h Highlight) {
	ee, ok := e.(EventEntry)
	if !ok {
		m.text = ""
		return
	}
	m.text = fmt.Sprintf("%.0f %s", ee.Count, m.Unit)
}

// Text returns the current label.
func (m *TotalIntakeMarker) Text() string { return m.text }

func (m *TotalIntakeMarker) Draw(s Surface, p Point) {
	if m.text == "" {
		return
	}
	w, h := s.MeasureText(m.text, m.Style)
	box := Rect{
		Left:   p.X - w/2 - m.Padding,
		Top:    p.Y - h/2 - m.Padding,
		Right:  p.X + w/2 + m.Padding,
		Bottom: p.Y + h/2 + m.Padding,
	}
	s.Rect(box, m.Style)
	s.Text(m.text, Point{X: p.X - w/2, Y: p.Y + h/2}, m.Style)
}

// ConditionMarker is a dot in the gradient colour of the condition value,
// with the value printed above it.
type ConditionMarker struct {
	Gradient []GradientStop
	Radius   float64
	Style    Style

	text  string
	color drawing.Color
}

// NewConditionMarker returns a condition marker coloured by gradient.
func NewConditionMarker(gradient []GradientStop) *ConditionMarker {
	return &ConditionMarker{
		Gradient: gradient,
		Radius:   6,
		Style: Style{
			StrokeColor: drawing.Color{R: 255, G: 255, B: 255, A: 255},
			StrokeWidth: 2,
			FontColor:   drawing.Color{R: 255, G: 255, B: 255, A: 255},
			FontSize:    10,
		},
	}
}

// RefreshContent formats the entry's value and picks its colour.
func (m *ConditionMarker) RefreshContent(e Entry, h Highlight) {
	if e == nil {
		m.text = ""
		return
	}
	m.text = fmt.Sprintf("%.0f", e.YValue())
	m.color = ColorAt(m.Gradient, e.YValue())
}

// Text returns the current label.
func (m *ConditionMarker) Text() string { return m.text }

func (m *ConditionMarker) Draw(s Surface, p Point) {
	if m.text == "" {
		return
	}
	st := m.Style
	st.FillColor = m.color
	s.Circle(p, m.Radius, st)

	w, _ := s.MeasureText(m.text, st)
	s.Text(m.text, Point{X: p.X - w/2, Y: p.Y - m.Radius - 4}, st)
}
