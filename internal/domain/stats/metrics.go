package stats

import (
	"github.com/gcheema/passrush/internal/domain/model"
)

// Metric display names. Percentage metrics report at 1 decimal, yardage at 1.
const (
	MetricCompletionPct   = "Completion %"
	MetricSackPct         = "Sack %"
	MetricInterceptionPct = "INT %"
	MetricSuccessPct      = "Success %"
	MetricYardsPerAttempt = "Yards/Att"
)

// ratePct is (count of plays matching pred) / (group size) * 100.
func ratePct(t model.Table, pred func(model.Play) bool) float64 {
	if len(t) == 0 {
		return 0
	}
	n := 0
	for _, p := range t {
		if pred(p) {
			n++
		}
	}
	return float64(n) / float64(len(t)) * 100
}

func meanYards(t model.Table) float64 {
	if len(t) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range t {
		sum += p.YardsGained
	}
	return sum / float64(len(t))
}

// Stock metrics shared by the canonical reports.
var (
	CompletionPct = Metric{
		Name:      MetricCompletionPct,
		Precision: 1,
		Value:     func(t model.Table) float64 { return ratePct(t, func(p model.Play) bool { return p.Completion }) },
	}

	SackPct = Metric{
		Name:      MetricSackPct,
		Precision: 1,
		Value:     func(t model.Table) float64 { return ratePct(t, func(p model.Play) bool { return p.Sack }) },
	}

	InterceptionPct = Metric{
		Name:      MetricInterceptionPct,
		Precision: 1,
		Value:     func(t model.Table) float64 { return ratePct(t, func(p model.Play) bool { return p.Interception }) },
	}

	// SuccessPct is the defensive success rate: incompletion, sack or
	// interception as a share of the group.
	SuccessPct = Metric{
		Name:      MetricSuccessPct,
		Precision: 1,
		Value:     func(t model.Table) float64 { return ratePct(t, model.Play.DefensiveSuccess) },
	}

	YardsPerAttempt = Metric{
		Name:      MetricYardsPerAttempt,
		Precision: 1,
		Value:     meanYards,
	}
)
