// Package feed supplies the chart with samples: a deterministic demo source
// standing in for real sensors, and the rolling history that turns samples
// into chart datasets.
package feed

import (
	"math"
	"math/rand"
	"time"
)

// Kind distinguishes the two sample streams.
type Kind int

const (
	KindIntake Kind = iota
	KindCondition
)

func (k Kind) String() string {
	if k == KindCondition {
		return "condition"
	}
	return "intake"
}

// Sample is one measurement. Intake values are millilitres drunk; condition
// values are a 0-100 hydration score.
type Sample struct {
	Time  time.Time
	Kind  Kind
	Value float64
}

// Source produces the samples that became due up to now.
type Source interface {
	Next(now time.Time) []Sample
}

// Generator is a deterministic Source. It emits one condition sample per
// whole minute and a drink roughly every DrinkEvery. Hydration decays
// linearly and every drink raises it in proportion to its size.
type Generator struct {
	rng        *rand.Rand
	drinkEvery time.Duration

	last      time.Time
	nextDrink time.Time
	level     float64
}

const (
	decayPerMinute = 0.08
	mlPerPoint     = 12.0
	// maxBackfill bounds how many minutes one Next call will simulate.
	maxBackfill = 24 * 60
)

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64, drinkEvery time.Duration) *Generator {
	if drinkEvery <= 0 {
		drinkEvery = 45 * time.Minute
	}
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		drinkEvery: drinkEvery,
		level:      60,
	}
}

// Next implements Source. The first call emits a single condition sample for
// the current minute.
func (g *Generator) Next(now time.Time) []Sample {
	minute := now.Truncate(time.Minute)
	if g.last.IsZero() {
		g.last = minute.Add(-time.Minute)
		g.nextDrink = minute.Add(g.jitter())
	}
	if !minute.After(g.last) {
		return nil
	}
	if steps := minute.Sub(g.last) / time.Minute; steps > maxBackfill {
		g.last = minute.Add(-maxBackfill * time.Minute)
		if g.nextDrink.Before(g.last) {
			g.nextDrink = g.last.Add(g.jitter())
		}
	}

	var out []Sample
	for m := g.last.Add(time.Minute); !m.After(minute); m = m.Add(time.Minute) {
		g.level = math.Max(0, g.level-decayPerMinute)
		if !m.Before(g.nextDrink) {
			ml := float64(150 + 50*g.rng.Intn(8))
			out = append(out, Sample{Time: m, Kind: KindIntake, Value: ml})
			g.level = math.Min(100, g.level+ml/mlPerPoint)
			g.nextDrink = m.Add(g.jitter())
		}
		out = append(out, Sample{Time: m, Kind: KindCondition, Value: math.Round(g.level*10) / 10})
	}
	g.last = minute
	return out
}

// jitter returns DrinkEvery varied by up to a third either way, in whole
// minutes and never below one minute.
func (g *Generator) jitter() time.Duration {
	base := g.drinkEvery.Minutes()
	spread := base / 3
	d := base - spread + g.rng.Float64()*2*spread
	return time.Duration(math.Max(1, math.Round(d))) * time.Minute
}
