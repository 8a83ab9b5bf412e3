package chart

// Marker names used in draw reports.
const (
	MarkerTotal     = "total"
	MarkerCondition = "condition"
)

// SkipReason tells why a marker was not drawn in a pass.
type SkipReason int

const (
	SkipNoHighlight SkipReason = iota + 1
	SkipNoDataset
	SkipOutOfBounds
	SkipNoInterpolation
)

func (r SkipReason) String() string {
	switch r {
	case SkipNoHighlight:
		return "no_highlight"
	case SkipNoDataset:
		return "no_dataset"
	case SkipOutOfBounds:
		return "out_of_bounds"
	case SkipNoInterpolation:
		return "no_interpolation"
	default:
		return "unknown"
	}
}

// Skip records one suppressed marker draw.
type Skip struct {
	Marker string
	Reason SkipReason
}

// DrawReport summarises the marker pass of one frame.
type DrawReport struct {
	TotalDrawn     bool
	ConditionDrawn int
	Skips          []Skip
}

func (r *DrawReport) skip(marker string, reason SkipReason) {
	r.Skips = append(r.Skips, Skip{Marker: marker, Reason: reason})
}

// Overlay draws the total-intake and condition markers at the highlighted X.
// Either marker may be nil, in which case it is never drawn.
type Overlay struct {
	Total     Marker
	Condition Marker
}

// NewOverlay returns an overlay drawing the given markers.
func NewOverlay(total, condition Marker) *Overlay {
	return &Overlay{Total: total, Condition: condition}
}

// Draw computes, projects and draws both markers for h. Every primitive is
// clipped to the content rect, and a marker whose projected point falls
// outside it is not drawn at all.
func (o *Overlay) Draw(s Surface, t Transformer, data *Data, lines LineLookup, h *Highlight) DrawReport {
	var report DrawReport
	if h == nil {
		report.skip(MarkerTotal, SkipNoHighlight)
		report.skip(MarkerCondition, SkipNoHighlight)
		return report
	}

	s.Clip(t.ContentRect())
	defer s.ResetClip()

	o.drawTotal(s, t, data, *h, &report)
	o.drawCondition(s, t, data, lines, *h, &report)
	return report
}

func (o *Overlay) drawTotal(s Surface, t Transformer, data *Data, h Highlight, report *DrawReport) {
	if o.Total == nil {
		return
	}
	if data == nil {
		report.skip(MarkerTotal, SkipNoDataset)
		return
	}
	ds, ok := data.Events.First()
	if !ok {
		report.skip(MarkerTotal, SkipNoDataset)
		return
	}

	layer := data.Events
	total := TotalAt(ds.Entries, h.X)
	y := (layer.NormalizedYMin-layer.ContentBottom)/2 + layer.ContentBottom

	point := t.ToPixel(AxisLeft, Point{X: h.X, Y: y})
	if !t.InBounds(point) {
		report.skip(MarkerTotal, SkipOutOfBounds)
		return
	}

	entry := EventEntry{X: h.X, Y: y, Count: total}
	marker := Highlight{X: h.X, Y: y, Source: Synthetic()}
	marker.SetDraw(point)
	o.Total.RefreshContent(entry, marker)
	o.Total.Draw(s, point)
	report.TotalDrawn = true
}

func (o *Overlay) drawCondition(s Surface, t Transformer, data *Data, lines LineLookup, h Highlight, report *DrawReport) {
	if o.Condition == nil {
		return
	}
	if data == nil || data.Lines == nil || len(data.Lines.Sets) == 0 || lines == nil {
		report.skip(MarkerCondition, SkipNoDataset)
		return
	}
	lr, ok := lines.LineRenderer()
	if !ok {
		report.skip(MarkerCondition, SkipNoDataset)
		return
	}

	for _, ds := range data.Lines.Sets {
		if ds == nil {
			continue
		}
		y, ok := lr.Interpolate(h.X, ds)
		if !ok {
			report.skip(MarkerCondition, SkipNoInterpolation)
			continue
		}

		point := t.ToPixel(ds.Axis, Point{X: h.X, Y: y})
		if !t.InBounds(point) {
			report.skip(MarkerCondition, SkipOutOfBounds)
			continue
		}

		entry := LineEntry{X: h.X, Y: y}
		marker := Highlight{X: h.X, Y: y, Source: Synthetic()}
		marker.SetDraw(point)
		o.Condition.RefreshContent(entry, marker)
		o.Condition.Draw(s, point)
		report.ConditionDrawn++
	}
}
