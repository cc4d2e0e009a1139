package stats

import (
	"math"
	"sort"

	"github.com/gcheema/passrush/internal/domain/model"
)

// KeyFunc assigns a play to a group. The order index fixes the ascending
// group ordering; labels are for display only.
type KeyFunc func(model.Play) (label string, order int)

// Metric is a named aggregate over a group of plays, reported at a fixed
// decimal precision.
type Metric struct {
	Name      string
	Precision int
	Value     func(model.Table) float64
}

// Row is one group of a summary: its label, its size, and one value per
// metric in summary order.
type Row struct {
	Group  string
	Plays  int
	Values []float64
}

// Summary is an immutable grouped-summary table. Derivation helpers
// (MinSamples, SortByDesc) return fresh summaries.
type Summary struct {
	Title   string
	Metrics []Metric
	Rows    []Row
}

// Summarize groups the table by key and computes every metric per group.
// Empty groups never appear; groups come back in ascending key order.
func Summarize(title string, t model.Table, key KeyFunc, metrics []Metric) *Summary {
	type group struct {
		label string
		order int
		plays model.Table
	}

	byLabel := make(map[string]*group)
	for _, p := range t {
		label, order := key(p)
		g, ok := byLabel[label]
		if !ok {
			g = &group{label: label, order: order}
			byLabel[label] = g
		}
		g.plays = append(g.plays, p)
	}

	groups := make([]*group, 0, len(byLabel))
	for _, g := range byLabel {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].order != groups[j].order {
			return groups[i].order < groups[j].order
		}
		return groups[i].label < groups[j].label
	})

	s := &Summary{Title: title, Metrics: metrics}
	for _, g := range groups {
		row := Row{Group: g.label, Plays: len(g.plays), Values: make([]float64, len(metrics))}
		for i, m := range metrics {
			row.Values[i] = roundTo(m.Value(g.plays), m.Precision)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// MinSamples drops groups with fewer than n plays, preserving the relative
// order of the survivors. It applies after grouping and before any metric
// ordering.
func (s *Summary) MinSamples(n int) *Summary {
	out := &Summary{Title: s.Title, Metrics: s.Metrics}
	for _, r := range s.Rows {
		if r.Plays >= n {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// SortByDesc reorders groups by the named metric, descending. Unknown
// metric names leave the summary untouched.
func (s *Summary) SortByDesc(metric string) *Summary {
	idx := s.metricIndex(metric)
	out := &Summary{Title: s.Title, Metrics: s.Metrics, Rows: append([]Row(nil), s.Rows...)}
	if idx < 0 {
		return out
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Values[idx] > out.Rows[j].Values[idx]
	})
	return out
}

// Value looks up a single cell by group label and metric name.
func (s *Summary) Value(group, metric string) (float64, bool) {
	idx := s.metricIndex(metric)
	if idx < 0 {
		return 0, false
	}
	for _, r := range s.Rows {
		if r.Group == group {
			return r.Values[idx], true
		}
	}
	return 0, false
}

func (s *Summary) metricIndex(name string) int {
	for i, m := range s.Metrics {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func roundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
