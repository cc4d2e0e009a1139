// Package stats derives grouped descriptive statistics and a two-sample
// significance test from a play table without mutating it.
package stats

import (
	"fmt"
	"math"
)

// Bucket is a labeled half-open interval [Lo, Hi). The final bucket of a
// scale is unbounded above.
type Bucket struct {
	Label string
	Lo    float64
	Hi    float64
}

// Contains reports whether v falls in the bucket: lower bound inclusive,
// upper bound exclusive.
func (b Bucket) Contains(v float64) bool {
	return v >= b.Lo && v < b.Hi
}

// Scale is an ordered set of contiguous buckets discretizing a continuous
// field for grouped reporting.
type Scale []Bucket

// Validate checks that the buckets are contiguous and ascending so every
// value in range lands in exactly one bucket.
func (s Scale) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty scale", ErrMalformedScale)
	}
	for i, b := range s {
		if b.Hi <= b.Lo {
			return fmt.Errorf("%w: bucket %q has non-positive width", ErrMalformedScale, b.Label)
		}
		if i > 0 && s[i-1].Hi != b.Lo {
			return fmt.Errorf("%w: gap between %q and %q", ErrMalformedScale, s[i-1].Label, b.Label)
		}
	}
	if !math.IsInf(s[len(s)-1].Hi, 1) {
		return fmt.Errorf("%w: final bucket must be unbounded above", ErrMalformedScale)
	}
	return nil
}

// Find returns the index of the bucket containing v, or -1 when v falls
// below the scale.
func (s Scale) Find(v float64) int {
	for i, b := range s {
		if b.Contains(v) {
			return i
		}
	}
	return -1
}

// Label returns the label of the bucket containing v.
func (s Scale) Label(v float64) string {
	if i := s.Find(v); i >= 0 {
		return s[i].Label
	}
	return ""
}

// Stock scales used by the canonical reports.
var (
	// ThrowTimeScale discretizes time-to-throw in seconds.
	ThrowTimeScale = Scale{
		{Label: "Quick (<2.0s)", Lo: 0, Hi: 2.0},
		{Label: "Normal (2.0-2.5s)", Lo: 2.0, Hi: 2.5},
		{Label: "Extended (2.5-3.0s)", Lo: 2.5, Hi: 3.0},
		{Label: "Very Long (>3.0s)", Lo: 3.0, Hi: math.Inf(1)},
	}

	// PressureTimeScale discretizes time-to-pressure in seconds.
	PressureTimeScale = Scale{
		{Label: "Immediate (<1.5s)", Lo: 0, Hi: 1.5},
		{Label: "Quick (1.5-2.5s)", Lo: 1.5, Hi: 2.5},
		{Label: "Delayed (2.5-3.5s)", Lo: 2.5, Hi: 3.5},
		{Label: "Late (>3.5s)", Lo: 3.5, Hi: math.Inf(1)},
	}

	// DistanceScale discretizes yards to go.
	DistanceScale = Scale{
		{Label: "Short (<4)", Lo: 0, Hi: 4},
		{Label: "Medium (4-8)", Lo: 4, Hi: 8},
		{Label: "Long (8+)", Lo: 8, Hi: math.Inf(1)},
	}

	// ScoreDiffScale discretizes the score differential from the
	// offense's perspective.
	ScoreDiffScale = Scale{
		{Label: "Trailing big (<-8)", Lo: math.Inf(-1), Hi: -8},
		{Label: "One score (-8..8)", Lo: -8, Hi: 9},
		{Label: "Leading big (9+)", Lo: 9, Hi: math.Inf(1)},
	}
)
