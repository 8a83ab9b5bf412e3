package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateScenario(t *testing.T) {
	lr := NewLineRenderer()
	ds := scenarioLine()

	y, ok := lr.Interpolate(30, ds)
	require.True(t, ok)
	assert.InDelta(t, 15.0, y, 1e-9)

	_, ok = lr.Interpolate(120, ds)
	assert.False(t, ok)
}

func TestInterpolateExactAtSamples(t *testing.T) {
	lr := NewLineRenderer()
	ds := NewLineDataset("c", []LineEntry{{X: 0, Y: 10}, {X: 15, Y: 3.25}, {X: 60, Y: 20}}, nil, AxisLeft)

	for _, e := range ds.Entries {
		y, ok := lr.Interpolate(e.X, ds)
		require.True(t, ok, "x=%v", e.X)
		assert.Equal(t, e.Y, y, "x=%v", e.X)
	}
}

func TestInterpolateOutsideRange(t *testing.T) {
	lr := NewLineRenderer()
	ds := scenarioLine()

	for _, x := range []float64{-0.001, 60.001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := lr.Interpolate(x, ds)
		assert.False(t, ok, "x=%v", x)
	}

	_, ok := lr.Interpolate(0, nil)
	assert.False(t, ok)
	_, ok = lr.Interpolate(0, NewLineDataset("empty", nil, nil, AxisLeft))
	assert.False(t, ok)
}

func TestInterpolateSingleSample(t *testing.T) {
	lr := NewLineRenderer()
	ds := NewLineDataset("c", []LineEntry{{X: 5, Y: 42}}, nil, AxisLeft)

	y, ok := lr.Interpolate(5, ds)
	require.True(t, ok)
	assert.Equal(t, 42.0, y)

	_, ok = lr.Interpolate(6, ds)
	assert.False(t, ok)
}

func TestCompositeDrawOrder(t *testing.T) {
	var log []string
	total := &spyMarker{name: MarkerTotal, log: &log}
	cond := &spyMarker{name: MarkerCondition, log: &log}
	c := NewCompositeRenderer(recordingBase{log: &log}, NewOverlay(total, cond),
		&recordingSub{name: "events", log: &log},
		&recordingSub{name: "line", log: &log},
	)

	h := &Highlight{X: 0, Y: 10, Source: RealLayer(EventLayerIndex)}
	c.Draw(&spySurface{}, newFakeEngine(), scenarioData(), h)

	// The recording subs are not *LineRenderer, so the condition marker
	// cannot interpolate and only the total marker is drawn.
	assert.Equal(t, []string{
		"base",
		"draw:events",
		"draw:line",
		"highlight:events",
		"highlight:line",
		"marker:total",
	}, log)
}

func TestCompositeDrawWithoutHighlightSkipsHighlightPass(t *testing.T) {
	var log []string
	c := NewCompositeRenderer(recordingBase{log: &log}, nil,
		&recordingSub{name: "events", log: &log},
		&recordingSub{name: "line", log: &log},
	)

	report := c.Draw(&spySurface{}, newFakeEngine(), scenarioData(), nil)

	assert.Equal(t, []string{"base", "draw:events", "draw:line"}, log)
	assert.Equal(t, DrawReport{}, report)
}

func TestCompositeLineRendererLookup(t *testing.T) {
	lr := NewLineRenderer()
	c := NewCompositeRenderer(nil, nil, NewEventRenderer(), lr)

	got, ok := c.LineRenderer()
	require.True(t, ok)
	assert.Same(t, lr, got)

	_, ok = NewCompositeRenderer(nil, nil, NewEventRenderer()).LineRenderer()
	assert.False(t, ok)
}

func TestCompositeSubRenderersIsACopy(t *testing.T) {
	c := NewCompositeRenderer(nil, nil, NewEventRenderer(), NewLineRenderer())
	subs := c.SubRenderers()
	require.Len(t, subs, 2)
	subs[0] = nil

	_, isEvents := c.SubRenderers()[0].(*EventRenderer)
	assert.True(t, isEvents)
}

func TestEventRendererDrawsBubblesInBand(t *testing.T) {
	s := &spySurface{}
	NewEventRenderer().Draw(s, newFakeEngine(), scenarioData())

	require.Len(t, s.ops, 3)
	for _, op := range s.ops {
		assert.True(t, strings.HasPrefix(op, "circle"), op)
	}
	assert.Contains(t, s.ops[2], "r=18", "largest bubble gets the max radius")
	require.NotEmpty(t, s.clips)
	assert.Equal(t, newFakeEngine().ContentRect(), s.clips[0])
}

func TestEventRendererSkipsOutOfView(t *testing.T) {
	e := newFakeEngine()
	e.xMin, e.xMax = 1000, 1100

	s := &spySurface{}
	NewEventRenderer().Draw(s, e, scenarioData())
	assert.Empty(t, s.ops)
}

func TestEventRendererHighlightRings(t *testing.T) {
	s := &spySurface{}
	NewEventRenderer().DrawHighlighted(s, newFakeEngine(), scenarioData(), Highlight{X: 0})
	assert.Len(t, s.ops, 2)
}

func TestLineRendererDrawsSegments(t *testing.T) {
	data := &Data{Lines: &LineLayer{Sets: []*LineDataset{
		NewLineDataset("c", []LineEntry{{X: 0, Y: 10}, {X: 30, Y: 50}, {X: 60, Y: 20}}, nil, AxisRight),
	}}}
	s := &spySurface{}
	NewLineRenderer().Draw(s, newFakeEngine(), data)

	assert.Len(t, s.ops, 2)
}

func TestLineRendererHighlightLine(t *testing.T) {
	s := &spySurface{}
	NewLineRenderer().DrawHighlighted(s, newFakeEngine(), scenarioData(), Highlight{X: 50})
	require.Len(t, s.ops, 1)
	assert.Equal(t, "line {60 10}-{60 110}", s.ops[0])

	s = &spySurface{}
	NewLineRenderer().DrawHighlighted(s, newFakeEngine(), scenarioData(), Highlight{X: 500})
	assert.Empty(t, s.ops)
}
