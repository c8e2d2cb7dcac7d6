package core

import (
	"fmt"
	"sort"
)

// LevelCount is the number of display intensity levels, 0 (no activity)
// through 4 (most active).
const LevelCount = 5

type Level int

// A Leveler maps a raw daily contribution count to a display level.
type Leveler interface {
	Name() string
	Level(count int) Level
}

const (
	PolicyFixed    = "fixed"
	PolicyQuantile = "quantile"
)

// ForPolicy builds the leveler named by policy. The quantile policy is
// fitted to the given counts; the fixed policy ignores them.
func ForPolicy(policy string, counts []int) (Leveler, error) {
	switch policy {
	case PolicyFixed:
		return FixedLeveler{}, nil
	case PolicyQuantile:
		return NewQuantileLeveler(counts), nil
	default:
		return nil, fmt.Errorf("unknown bucketing policy %q (want %q or %q)", policy, PolicyFixed, PolicyQuantile)
	}
}

// FixedLeveler buckets counts against fixed breakpoints: 0, 1-2, 3-5,
// 6-10, and above 10.
type FixedLeveler struct{}

func (FixedLeveler) Name() string { return PolicyFixed }

func (FixedLeveler) Level(count int) Level {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}

// QuantileLeveler buckets counts against the 25th/50th/75th percentiles
// of the non-zero counts it was fitted to, each floored to at least 1.
// A count equal to a threshold takes the lower level.
type QuantileLeveler struct {
	q25, q50, q75 float64
}

func NewQuantileLeveler(counts []int) *QuantileLeveler {
	var nonZero []int
	for _, c := range counts {
		if c > 0 {
			nonZero = append(nonZero, c)
		}
	}
	sort.Ints(nonZero)

	return &QuantileLeveler{
		q25: floorToOne(percentile(nonZero, 0.25)),
		q50: floorToOne(percentile(nonZero, 0.50)),
		q75: floorToOne(percentile(nonZero, 0.75)),
	}
}

func (q *QuantileLeveler) Name() string { return PolicyQuantile }

func (q *QuantileLeveler) Level(count int) Level {
	c := float64(count)
	switch {
	case count <= 0:
		return 0
	case c <= q.q25:
		return 1
	case c <= q.q50:
		return 2
	case c <= q.q75:
		return 3
	default:
		return 4
	}
}

// percentile computes the p-th percentile of sorted values using linear
// interpolation between order statistics. An empty slice yields 0.
func percentile(sorted []int, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return float64(sorted[0])
	}
	rank := p * float64(n-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= n {
		return float64(sorted[n-1])
	}
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

func floorToOne(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}
