package gen

import (
	"fmt"
	"math"

	"github.com/gcheema/passrush/internal/domain/model"
)

// Default model constants. The distributional shape mirrors league-wide
// passing tendencies: ~2.5s average release, ~35% pressure rate.
const (
	defaultPressureRate = 0.35

	// Release-time split separating quick-game throws from extended plays.
	extendedReleaseSeconds = 2.5

	// Field position bounds in yards from the offense's own goal line.
	fieldPositionMin = 5.0
	fieldPositionMax = 95.0

	// Sack yardage loss bounds.
	sackLossMin = 3.0
	sackLossMax = 8.0

	// Pressure penalty on completed-pass yardage.
	pressureYardsPenaltyMax = 3.0

	probSumTolerance = 1e-9
)

// GammaSpec parameterizes a gamma distribution in shape/scale form.
type GammaSpec struct {
	Shape float64
	Scale float64
}

// Situation keys the outcome-probability table. Conditioning on pressure
// timing is expressed as data rather than nested branching so each row can
// be inspected and tested on its own.
type Situation int

// Situations, ordered from least to most disruptive pressure.
const (
	NoPressureQuick    Situation = iota // no pressure, ball out before 2.5s
	NoPressureExtended                  // no pressure, extended play
	PressureAfterThrow                  // pressured, but the throw beat the rush
	PressureLate                        // rush home at >= 3.5s
	PressureDelayed                     // rush home in [2.5, 3.5)
	PressureQuick                       // rush home in [1.5, 2.5)
	PressureImmediate                   // rush home in under 1.5s
)

// OutcomeProbs is one row of the outcome table. The residual mass
// (1 - Completion - Sack - Interception) is the incompletion probability.
type OutcomeProbs struct {
	Completion   float64
	Sack         float64
	Interception float64
}

// normalized rescales the row when the explicit mass exceeds 1, so the
// categorical draw stays well-defined for any configured table.
func (o OutcomeProbs) normalized() OutcomeProbs {
	sum := o.Completion + o.Sack + o.Interception
	if sum <= 1 {
		return o
	}
	return OutcomeProbs{
		Completion:   o.Completion / sum,
		Sack:         o.Sack / sum,
		Interception: o.Interception / sum,
	}
}

// Params holds every distributional knob of the play model.
type Params struct {
	PressureRate float64

	ThrowTime    GammaSpec // time from snap to release
	PressureTime GammaSpec // time from snap to first pressure
	Distance     GammaSpec // yards to go
	YardsBase    GammaSpec // completed-pass yardage
	YardsBonus   GammaSpec // extra yardage on extended plays

	ScoreDiffSigma float64

	DownProbs      []float64 // P(down = 1..4)
	QuarterProbs   []float64 // P(quarter = 1..4)
	AlignmentProbs []float64 // parallel to model.Alignments()
	RusherCounts   []int
	RusherProbs    []float64

	// PressureTimingCuts are the ascending upper bounds separating the
	// immediate/quick/delayed/late pressure situations.
	PressureTimingCuts []float64

	Outcomes map[Situation]OutcomeProbs
}

// DefaultParams returns the stock play model.
func DefaultParams() Params {
	return Params{
		PressureRate: defaultPressureRate,

		ThrowTime:    GammaSpec{Shape: 2.0, Scale: 1.25},
		PressureTime: GammaSpec{Shape: 1.5, Scale: 1.5},
		Distance:     GammaSpec{Shape: 2.0, Scale: 5.0},
		YardsBase:    GammaSpec{Shape: 2.0, Scale: 3.0},
		YardsBonus:   GammaSpec{Shape: 1.0, Scale: 2.0},

		ScoreDiffSigma: 10.0,

		DownProbs:      []float64{0.35, 0.30, 0.25, 0.10},
		QuarterProbs:   []float64{0.25, 0.25, 0.25, 0.25},
		AlignmentProbs: []float64{0.15, 0.15, 0.35, 0.20, 0.15},
		RusherCounts:   []int{3, 4, 5, 6},
		RusherProbs:    []float64{0.10, 0.50, 0.30, 0.10},

		PressureTimingCuts: []float64{1.5, 2.5, 3.5},

		// Completion falls and sacks rise monotonically as the rush
		// arrives earlier.
		Outcomes: map[Situation]OutcomeProbs{
			NoPressureQuick:    {Completion: 0.65, Sack: 0.00, Interception: 0.01},
			NoPressureExtended: {Completion: 0.70, Sack: 0.00, Interception: 0.01},
			PressureAfterThrow: {Completion: 0.50, Sack: 0.00, Interception: 0.03},
			PressureLate:       {Completion: 0.52, Sack: 0.05, Interception: 0.02},
			PressureDelayed:    {Completion: 0.46, Sack: 0.10, Interception: 0.03},
			PressureQuick:      {Completion: 0.38, Sack: 0.18, Interception: 0.03},
			PressureImmediate:  {Completion: 0.30, Sack: 0.25, Interception: 0.04},
		},
	}
}

// situationFor maps a sampled play context onto the outcome-table key.
func (p Params) situationFor(pressured bool, timeToThrow, timeToPressure float64) Situation {
	if !pressured {
		if timeToThrow < extendedReleaseSeconds {
			return NoPressureQuick
		}
		return NoPressureExtended
	}
	if timeToThrow <= timeToPressure {
		return PressureAfterThrow
	}
	switch {
	case timeToPressure < p.PressureTimingCuts[0]:
		return PressureImmediate
	case timeToPressure < p.PressureTimingCuts[1]:
		return PressureQuick
	case timeToPressure < p.PressureTimingCuts[2]:
		return PressureDelayed
	default:
		return PressureLate
	}
}

// Validate fails fast on any malformed parameter before sampling begins.
func (p Params) Validate() error {
	if p.PressureRate < 0 || p.PressureRate > 1 {
		return fmt.Errorf("%w: pressure rate %.3f outside [0,1]", ErrInvalidParams, p.PressureRate)
	}
	for name, g := range map[string]GammaSpec{
		"throw_time":    p.ThrowTime,
		"pressure_time": p.PressureTime,
		"distance":      p.Distance,
		"yards_base":    p.YardsBase,
		"yards_bonus":   p.YardsBonus,
	} {
		if g.Shape <= 0 || g.Scale <= 0 {
			return fmt.Errorf("%w: %s gamma shape/scale must be positive", ErrInvalidParams, name)
		}
	}
	if p.ScoreDiffSigma <= 0 {
		return fmt.Errorf("%w: score diff sigma must be positive", ErrInvalidParams)
	}

	for name, probs := range map[string][]float64{
		"down":      p.DownProbs,
		"quarter":   p.QuarterProbs,
		"alignment": p.AlignmentProbs,
		"rushers":   p.RusherProbs,
	} {
		if err := validateProbVector(name, probs); err != nil {
			return err
		}
	}
	if len(p.DownProbs) != 4 {
		return fmt.Errorf("%w: down probs must have 4 entries", ErrInvalidParams)
	}
	if len(p.QuarterProbs) != 4 {
		return fmt.Errorf("%w: quarter probs must have 4 entries", ErrInvalidParams)
	}
	if len(p.AlignmentProbs) != len(model.Alignments()) {
		return fmt.Errorf("%w: alignment probs must have %d entries", ErrInvalidParams, len(model.Alignments()))
	}
	if len(p.RusherProbs) != len(p.RusherCounts) {
		return fmt.Errorf("%w: rusher probs and counts differ in length", ErrInvalidParams)
	}

	if len(p.PressureTimingCuts) == 0 {
		return fmt.Errorf("%w: pressure timing cuts missing", ErrInvalidParams)
	}
	prev := 0.0
	for _, cut := range p.PressureTimingCuts {
		if cut <= prev {
			return fmt.Errorf("%w: pressure timing cuts must be positive and ascending", ErrInvalidParams)
		}
		prev = cut
	}

	for sit, row := range p.Outcomes {
		for name, v := range map[string]float64{
			"completion":   row.Completion,
			"sack":         row.Sack,
			"interception": row.Interception,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: situation %d %s prob %.3f outside [0,1]", ErrInvalidParams, sit, name, v)
			}
		}
	}
	for _, sit := range []Situation{
		NoPressureQuick, NoPressureExtended, PressureAfterThrow,
		PressureLate, PressureDelayed, PressureQuick, PressureImmediate,
	} {
		if _, ok := p.Outcomes[sit]; !ok {
			return fmt.Errorf("%w: outcome table missing situation %d", ErrInvalidParams, sit)
		}
	}
	return nil
}

func validateProbVector(name string, probs []float64) error {
	if len(probs) == 0 {
		return fmt.Errorf("%w: %s probs missing", ErrInvalidParams, name)
	}
	sum := 0.0
	for _, v := range probs {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s prob %.3f outside [0,1]", ErrInvalidParams, name, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > probSumTolerance {
		return fmt.Errorf("%w: %s probs sum to %.6f, want 1", ErrInvalidParams, name, sum)
	}
	return nil
}
