// Package gen produces synthetic passing-play tables from an explicit,
// seeded statistical model. Every draw comes from a single passed-in
// random source so a run is reproducible from (params, seed) alone.
package gen

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gcheema/passrush/internal/domain/model"
)

// ctxCheckInterval bounds how many plays are sampled between context checks.
const ctxCheckInterval = 1024

// Generator samples play records from a fixed parameter set.
type Generator struct {
	params Params
	rng    *rand.Rand

	throwTime    distuv.Gamma
	pressureTime distuv.Gamma
	distance     distuv.Gamma
	yardsBase    distuv.Gamma
	yardsBonus   distuv.Gamma
	scoreDiff    distuv.Normal
	fieldPos     distuv.Uniform
	sackLoss     distuv.Uniform
	yardsPenalty distuv.Uniform
}

// New builds a Generator. The seed is mandatory; there is no ambient
// randomness anywhere in this package.
func New(params Params, seed uint64) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewSource(seed)
	gamma := func(s GammaSpec) distuv.Gamma {
		// distuv parameterizes gamma by rate; the model is written in
		// shape/scale form.
		return distuv.Gamma{Alpha: s.Shape, Beta: 1 / s.Scale, Src: src}
	}

	return &Generator{
		params:       params,
		rng:          rand.New(src),
		throwTime:    gamma(params.ThrowTime),
		pressureTime: gamma(params.PressureTime),
		distance:     gamma(params.Distance),
		yardsBase:    gamma(params.YardsBase),
		yardsBonus:   gamma(params.YardsBonus),
		scoreDiff:    distuv.Normal{Mu: 0, Sigma: params.ScoreDiffSigma, Src: src},
		fieldPos:     distuv.Uniform{Min: fieldPositionMin, Max: fieldPositionMax, Src: src},
		sackLoss:     distuv.Uniform{Min: sackLossMin, Max: sackLossMax, Src: src},
		yardsPenalty: distuv.Uniform{Min: 0, Max: pressureYardsPenaltyMax, Src: src},
	}, nil
}

// Generate samples exactly n independent plays. n = 0 yields an empty,
// well-typed table.
func (g *Generator) Generate(ctx context.Context, n int) (model.Table, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	table := make(model.Table, 0, n)
	for i := 0; i < n; i++ {
		if i%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("generation cancelled at play %d: %w", i, ctx.Err())
			default:
			}
		}
		table = append(table, g.samplePlay(i+1))
	}
	return table, nil
}

// samplePlay draws one play: situational context first, then pressure,
// then timing, then the outcome conditioned on how they interact.
func (g *Generator) samplePlay(id int) model.Play {
	p := model.Play{ID: id}

	// Situational context.
	p.Down = g.pick(g.params.DownProbs) + 1
	p.Distance = maxInt(1, int(math.Round(g.distance.Rand())))
	p.FieldPosition = round(g.fieldPos.Rand(), 1)
	p.Quarter = g.pick(g.params.QuarterProbs) + 1
	p.ScoreDiff = int(math.Round(g.scoreDiff.Rand()))

	// Pressure context.
	p.PressureApplied = g.rng.Float64() < g.params.PressureRate
	p.Alignment = model.Alignments()[g.pick(g.params.AlignmentProbs)]
	p.Rushers = g.params.RusherCounts[g.pick(g.params.RusherProbs)]

	// Timing.
	p.TimeToThrow = round(g.throwTime.Rand(), 2)
	if p.TimeToThrow < 0.01 {
		p.TimeToThrow = 0.01
	}
	if p.PressureApplied {
		p.TimeToPressure = round(g.pressureTime.Rand(), 2)
		if p.TimeToPressure < 0.01 {
			p.TimeToPressure = 0.01
		}
	}

	// Outcome, conditioned on the pressure situation.
	sit := g.params.situationFor(p.PressureApplied, p.TimeToThrow, p.TimeToPressure)
	probs := g.params.Outcomes[sit].normalized()

	u := g.rng.Float64()
	switch {
	case u < probs.Completion:
		p.Completion = true
	case u < probs.Completion+probs.Sack:
		p.Sack = true
	case u < probs.Completion+probs.Sack+probs.Interception:
		p.Interception = true
	}

	p.YardsGained = g.sampleYards(p)
	return p
}

// sampleYards derives yardage from the outcome: positive with a heavier
// tail on uncontested extended plays, a small loss on sacks, zero otherwise.
func (g *Generator) sampleYards(p model.Play) float64 {
	switch {
	case p.Completion:
		yards := g.yardsBase.Rand()
		if p.TimeToThrow > extendedReleaseSeconds {
			yards += g.yardsBonus.Rand()
		}
		if p.PressureApplied {
			yards -= g.yardsPenalty.Rand()
		}
		if yards < 0 {
			yards = 0
		}
		return round(yards, 1)
	case p.Sack:
		return round(-g.sackLoss.Rand(), 1)
	default:
		return 0
	}
}

// pick draws an index from a categorical distribution. The vector is
// validated to sum to 1, so the final index absorbs rounding residue.
func (g *Generator) pick(probs []float64) int {
	u := g.rng.Float64()
	cum := 0.0
	for i, pr := range probs {
		cum += pr
		if u < cum {
			return i
		}
	}
	return len(probs) - 1
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
