package viewport

import (
	"math"
	"strconv"
)

// niceSteps are the mantissas tried when picking a tick step.
var niceSteps = []float64{1, 2, 2.5, 5, 10}

// NumericTicks returns tick positions spanning [min, max] whose count is as
// close to n as the 1, 2, 2.5, 5 step pattern allows. The first tick is at
// or below min and the last at or above max.
func NumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))

	step := mag
	best := math.MaxFloat64
	for _, c := range niceSteps {
		s := c * mag
		count := math.Ceil(span/s) + 1
		if d := math.Abs(count - float64(n)); d < best {
			best = d
			step = s
		}
	}

	start := math.Floor(min/step) * step
	end := math.Ceil(max/step) * step
	var out []float64
	for v := start; v <= end+step*0.5; v += step {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatTick renders a tick value compactly: whole numbers from 100 up,
// more decimals as the magnitude shrinks.
func FormatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100 || av == 0:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

// timeSteps are the candidate spacings of time ticks, in minutes.
var timeSteps = []float64{5, 10, 15, 30, 60, 120, 180, 360, 720, 1440}

// TimeTicks returns x positions (minutes) on whole multiples of a step chosen
// so that at most max ticks fall inside [from, to].
func TimeTicks(from, to float64, max int) []float64 {
	if max < 1 || !(to > from) {
		return nil
	}
	step := timeSteps[len(timeSteps)-1]
	for _, s := range timeSteps {
		if (to-from)/s <= float64(max) {
			step = s
			break
		}
	}
	var out []float64
	for v := math.Ceil(from/step) * step; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
