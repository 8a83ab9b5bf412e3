package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightSourceVariants(t *testing.T) {
	src := RealLayer(LineLayerIndex)
	assert.False(t, src.IsSynthetic())
	idx, ok := src.LayerIndex()
	require.True(t, ok)
	assert.Equal(t, LineLayerIndex, idx)
	assert.Equal(t, "layer(1)", src.String())

	syn := Synthetic()
	assert.True(t, syn.IsSynthetic())
	_, ok = syn.LayerIndex()
	assert.False(t, ok)
	assert.Equal(t, "synthetic", syn.String())

	// A real layer -1 is not mistaken for a synthetic highlight.
	assert.False(t, RealLayer(-1).IsSynthetic())
}

func TestHighlightAtPixelNearestAcrossLayers(t *testing.T) {
	hl := NewHighlighter()
	e := newFakeEngine()
	data := scenarioData()

	h, ok := hl.HighlightAtPixel(e, data, Point{X: 38, Y: 50})
	require.True(t, ok)
	assert.Equal(t, 0.0, h.X)
	assert.Equal(t, 400.0, h.Y, "ties go to the event layer")
	idx, _ := h.Source.LayerIndex()
	assert.Equal(t, EventLayerIndex, idx)
	assert.Equal(t, Point{X: 10, Y: e.ToPixel(AxisLeft, Point{Y: 400}).Y}, h.Draw)

	h, ok = hl.HighlightAtPixel(e, data, Point{X: 41, Y: 50})
	require.True(t, ok)
	assert.Equal(t, 60.0, h.X)
}

func TestHighlightAtPixelLineOnly(t *testing.T) {
	hl := NewHighlighter()
	data := &Data{
		Events: &EventLayer{},
		Lines:  &LineLayer{Sets: []*LineDataset{scenarioLine()}},
	}

	h, ok := hl.HighlightAtPixel(newFakeEngine(), data, Point{X: 65})
	require.True(t, ok)
	assert.Equal(t, 60.0, h.X)
	assert.Equal(t, 20.0, h.Y)
	idx, _ := h.Source.LayerIndex()
	assert.Equal(t, LineLayerIndex, idx)
}

func TestHighlightAtPixelTooFar(t *testing.T) {
	hl := NewHighlighter()
	data := &Data{Events: &EventLayer{Sets: []*EventDataset{
		NewEventDataset("i", []EventEntry{{X: 0, Size: 1}}),
	}}}

	_, ok := hl.HighlightAtPixel(newFakeEngine(), data, Point{X: 100})
	assert.False(t, ok)

	hl.MaxDistance = 100
	_, ok = hl.HighlightAtPixel(newFakeEngine(), data, Point{X: 100})
	assert.True(t, ok)
}

func TestHighlightAtPixelNoData(t *testing.T) {
	hl := NewHighlighter()
	_, ok := hl.HighlightAtPixel(newFakeEngine(), &Data{}, Point{X: 50})
	assert.False(t, ok)
	_, ok = hl.HighlightAtPixel(newFakeEngine(), nil, Point{X: 50})
	assert.False(t, ok)
}

func TestHighlightAtX(t *testing.T) {
	hl := NewHighlighter()
	data := scenarioData()

	h, ok := hl.HighlightAtX(data, 60)
	require.True(t, ok)
	assert.Equal(t, 400.0, h.Y)

	_, ok = hl.HighlightAtX(data, 30)
	assert.False(t, ok)
}

func TestHighlighterStep(t *testing.T) {
	hl := NewHighlighter()
	data := scenarioData()
	data.Lines.Sets[0] = NewLineDataset("c", []LineEntry{{X: 0, Y: 10}, {X: 30, Y: 12}, {X: 60, Y: 20}}, nil, AxisRight)

	h, ok := hl.Step(data, nil, -1)
	require.True(t, ok)
	assert.Equal(t, 60.0, h.X, "no highlight selects the latest x")

	h, ok = hl.Step(data, &h, -1)
	require.True(t, ok)
	assert.Equal(t, 30.0, h.X)
	idx, _ := h.Source.LayerIndex()
	assert.Equal(t, LineLayerIndex, idx)

	h, _ = hl.Step(data, &h, -1)
	assert.Equal(t, 0.0, h.X)
	h, _ = hl.Step(data, &h, -1)
	assert.Equal(t, 0.0, h.X, "clamped at the first x")

	h, _ = hl.Step(data, &h, 1)
	assert.Equal(t, 30.0, h.X)
	h, _ = hl.Step(data, &h, 1)
	h, _ = hl.Step(data, &h, 1)
	assert.Equal(t, 60.0, h.X, "clamped at the last x")

	_, ok = hl.Step(&Data{}, nil, 1)
	assert.False(t, ok)
}

func TestEntryForHighlight(t *testing.T) {
	data := scenarioData()

	e, ok := data.EntryForHighlight(Highlight{X: 60, Source: RealLayer(EventLayerIndex)})
	require.True(t, ok)
	assert.Equal(t, 12.0, e.(EventEntry).Size)

	e, ok = data.EntryForHighlight(Highlight{X: 0, Source: RealLayer(LineLayerIndex)})
	require.True(t, ok)
	assert.Equal(t, LineEntry{X: 0, Y: 10}, e)

	_, ok = data.EntryForHighlight(Highlight{X: 0, Source: Synthetic()})
	assert.False(t, ok)

	_, ok = data.EntryForHighlight(Highlight{X: 30, Source: RealLayer(EventLayerIndex)})
	assert.False(t, ok)

	_, ok = data.EntryForHighlight(Highlight{X: 0, Source: RealLayer(7)})
	assert.False(t, ok)
}
