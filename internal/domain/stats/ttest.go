package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minTTestSamples is the smallest group size for which the test is defined.
const minTTestSamples = 2

// TTest is the result of a two-sample test on independent samples.
// When Defined is false (a group has fewer than two observations, or both
// groups have zero variance) T, P and DF are NaN.
type TTest struct {
	T       float64
	P       float64
	DF      float64
	Defined bool
}

// Welch computes Welch's unequal-variance t-test with the
// Welch-Satterthwaite degrees of freedom and a two-tailed p-value.
//
// The unpooled estimator is a deliberate choice: the pressure and
// no-pressure yardage samples have no reason to share a variance.
func Welch(a, b []float64) TTest {
	undefined := TTest{T: math.NaN(), P: math.NaN(), DF: math.NaN()}
	if len(a) < minTTestSamples || len(b) < minTTestSamples {
		return undefined
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	na, nb := float64(len(a)), float64(len(b))
	seSq := varA/na + varB/nb
	if seSq == 0 {
		return undefined
	}

	t := (meanA - meanB) / math.Sqrt(seSq)
	df := seSq * seSq / (math.Pow(varA/na, 2)/(na-1) + math.Pow(varB/nb, 2)/(nb-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))

	return TTest{T: t, P: p, DF: df, Defined: true}
}
