package render

import "github.com/sweeney/intake-chart/internal/chart"

// clipLine clips the segment a-b to r (Liang-Barsky). ok is false when no part
// of the segment lies inside r.
func clipLine(a, b chart.Point, r chart.Rect) (chart.Point, chart.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X - r.Left},
		{dx, r.Right - a.X},
		{-dy, a.Y - r.Top},
		{dy, r.Bottom - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return chart.Point{X: a.X + t0*dx, Y: a.Y + t0*dy},
		chart.Point{X: a.X + t1*dx, Y: a.Y + t1*dy},
		true
}

// intersect returns the overlap of two rects; ok is false when they are
// disjoint.
func intersect(a, b chart.Rect) (chart.Rect, bool) {
	out := chart.Rect{
		Left:   max(a.Left, b.Left),
		Top:    max(a.Top, b.Top),
		Right:  min(a.Right, b.Right),
		Bottom: min(a.Bottom, b.Bottom),
	}
	if out.Left > out.Right || out.Top > out.Bottom {
		return chart.Rect{}, false
	}
	return out, true
}

// clipPolygon cuts a closed polygon to r (Sutherland-Hodgman), one edge of r
// at a time. It returns nil when nothing is left.
func clipPolygon(poly []chart.Point, r chart.Rect) []chart.Point {
	edges := []struct {
		inside func(chart.Point) bool
		cross  func(a, b chart.Point) chart.Point
	}{
		{func(p chart.Point) bool { return p.X >= r.Left }, func(a, b chart.Point) chart.Point { return atX(a, b, r.Left) }},
		{func(p chart.Point) bool { return p.X <= r.Right }, func(a, b chart.Point) chart.Point { return atX(a, b, r.Right) }},
		{func(p chart.Point) bool { return p.Y >= r.Top }, func(a, b chart.Point) chart.Point { return atY(a, b, r.Top) }},
		{func(p chart.Point) bool { return p.Y <= r.Bottom }, func(a, b chart.Point) chart.Point { return atY(a, b, r.Bottom) }},
	}

	out := poly
	for _, e := range edges {
		in := out
		out = nil
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

// atX is where a-b crosses the vertical line at x. a and b lie on opposite
// sides of it.
func atX(a, b chart.Point, x float64) chart.Point {
	t := (x - a.X) / (b.X - a.X)
	return chart.Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func atY(a, b chart.Point, y float64) chart.Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return chart.Point{X: a.X + t*(b.X-a.X), Y: y}
}
