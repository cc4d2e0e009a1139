package stats

import (
	"fmt"

	"github.com/gcheema/passrush/internal/domain/model"
)

// defaultHighValueMinPlays guards the quarter/score breakdown against
// noisy small-sample cells.
const defaultHighValueMinPlays = 10

// pressureLabel maps the pressure flag to its display group.
func pressureLabel(p model.Play) (string, int) {
	if p.PressureApplied {
		return "Pressure", 1
	}
	return "No Pressure", 0
}

// PressureImpact summarizes QB performance with and without pressure.
func PressureImpact(t model.Table) *Summary {
	return Summarize(
		"Pressure Impact on QB Performance",
		t,
		pressureLabel,
		[]Metric{CompletionPct, YardsPerAttempt, SackPct, InterceptionPct},
	)
}

// ReleaseTimeCrossTab crosses the time-to-throw bucket with the pressure
// flag: completion rate and yardage per cell.
func ReleaseTimeCrossTab(t model.Table) *Summary {
	key := func(p model.Play) (string, int) {
		idx := ThrowTimeScale.Find(p.TimeToThrow)
		plabel, porder := pressureLabel(p)
		return fmt.Sprintf("%s / %s", ThrowTimeScale[idx].Label, plabel), idx*2 + porder
	}
	return Summarize(
		"Time to Throw vs Completion Rate",
		t,
		key,
		[]Metric{CompletionPct, YardsPerAttempt},
	)
}

// AlignmentEffectiveness ranks defensive alignments by sack rate over
// pressured plays only.
func AlignmentEffectiveness(t model.Table) *Summary {
	key := func(p model.Play) (string, int) {
		for i, a := range model.Alignments() {
			if p.Alignment == a {
				return string(a), i
			}
		}
		return string(p.Alignment), len(model.Alignments())
	}
	s := Summarize(
		"Defensive Alignment Effectiveness (Pressured Plays)",
		t.Pressured(),
		key,
		[]Metric{SackPct, SuccessPct, InterceptionPct},
	)
	return s.SortByDesc(MetricSackPct)
}

// PressureTimingEffectiveness buckets pressured plays by when the rush
// arrived.
func PressureTimingEffectiveness(t model.Table) *Summary {
	key := func(p model.Play) (string, int) {
		idx := PressureTimeScale.Find(p.TimeToPressure)
		return PressureTimeScale[idx].Label, idx
	}
	return Summarize(
		"Optimal Pressure Timing",
		t.Pressured(),
		key,
		[]Metric{SuccessPct, SackPct, YardsPerAttempt},
	)
}

// DownDistanceBreakdown summarizes by down and distance bucket.
func DownDistanceBreakdown(t model.Table) *Summary {
	key := func(p model.Play) (string, int) {
		idx := DistanceScale.Find(float64(p.Distance))
		return fmt.Sprintf("Down %d, %s", p.Down, DistanceScale[idx].Label), (p.Down-1)*len(DistanceScale) + idx
	}
	return Summarize(
		"Down and Distance Breakdown",
		t,
		key,
		[]Metric{CompletionPct, YardsPerAttempt, SuccessPct},
	)
}

// RushersBreakdown summarizes by the number of pass rushers.
func RushersBreakdown(t model.Table) *Summary {
	key := func(p model.Play) (string, int) {
		return fmt.Sprintf("%d rushers", p.Rushers), p.Rushers
	}
	return Summarize(
		"Pass Rusher Count Breakdown",
		t,
		key,
		[]Metric{CompletionPct, SackPct, YardsPerAttempt},
	)
}

// HighValueSituations finds quarter/score situations where pressure pays
// off, dropping cells below the minimum sample size before ordering by
// defensive success.
func HighValueSituations(t model.Table, minPlays int) *Summary {
	if minPlays <= 0 {
		minPlays = defaultHighValueMinPlays
	}
	key := func(p model.Play) (string, int) {
		idx := ScoreDiffScale.Find(float64(p.ScoreDiff))
		return fmt.Sprintf("Q%d, %s", p.Quarter, ScoreDiffScale[idx].Label), (p.Quarter-1)*len(ScoreDiffScale) + idx
	}
	s := Summarize(
		"High-Value Pressure Opportunities (Quarter x Score)",
		t.Pressured(),
		key,
		[]Metric{SuccessPct, SackPct, YardsPerAttempt},
	)
	return s.MinSamples(minPlays).SortByDesc(MetricSuccessPct)
}

// YardsPerAttemptGap is the completion-side view of what pressure takes
// away: mean yards without pressure minus mean yards with pressure.
func YardsPerAttemptGap(t model.Table) float64 {
	return meanYards(t.Unpressured()) - meanYards(t.Pressured())
}
