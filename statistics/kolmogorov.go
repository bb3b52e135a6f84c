// Package statistics builds Monte-Carlo background distributions for mined
// itemsets and estimates the significance of their observed metric values
// against a fitted normal null model.
package statistics

import (
	"math"
	"slices"
)

// KolmogorovSmirnovTest runs the one-sample KS goodness-of-fit test of the
// sample against a continuous distribution given by its CDF. It returns the
// KS statistic D and the asymptotic p-value of observing a deviation at
// least that large under the null hypothesis that the sample was drawn from
// the distribution. Both values lie in [0,1].
func KolmogorovSmirnovTest(sample []float64, cdf func(float64) float64) (statistic, pValue float64) {
	n := len(sample)
	if n == 0 {
		return 0, 1
	}
	sorted := slices.Clone(sample)
	slices.Sort(sorted)

	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		if above := float64(i+1)/float64(n) - f; above > d {
			d = above
		}
		if below := f - float64(i)/float64(n); below > d {
			d = below
		}
	}

	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	return d, kolmogorovQ(lambda)
}

// kolmogorovQ is the asymptotic complementary CDF of the Kolmogorov
// distribution, Q(lambda) = 2 sum_{j>=1} (-1)^{j-1} exp(-2 j^2 lambda^2).
func kolmogorovQ(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j)*float64(j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	return math.Min(1, math.Max(0, p))
}
