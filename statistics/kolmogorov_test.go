package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

// normalQuantileSample builds a deterministic sample that follows the normal
// distribution exactly (inverse-transform at evenly spaced quantiles).
func normalQuantileSample(n int, mu, sigma float64) []float64 {
	normal := distuv.Normal{Mu: mu, Sigma: sigma}
	sample := make([]float64, n)
	for i := 0; i < n; i++ {
		sample[i] = normal.Quantile((float64(i) + 0.5) / float64(n))
	}
	return sample
}

func uniformSample(n int) []float64 {
	sample := make([]float64, n)
	for i := 0; i < n; i++ {
		sample[i] = (float64(i) + 0.5) / float64(n)
	}
	return sample
}

func TestKolmogorovSmirnovAcceptsMatchingSample(t *testing.T) {
	normal := distuv.Normal{Mu: 0.5, Sigma: 0.1}
	sample := normalQuantileSample(1000, 0.5, 0.1)

	statistic, pValue := KolmogorovSmirnovTest(sample, normal.CDF)
	assert.Less(t, statistic, 0.01)
	assert.Greater(t, pValue, 0.99)
}

func TestKolmogorovSmirnovRejectsMismatchedSample(t *testing.T) {
	// A uniform sample against a normal model fitted to its moments.
	sample := uniformSample(1000)
	normal := distuv.Normal{Mu: 0.5, Sigma: 0.2887}

	_, pValue := KolmogorovSmirnovTest(sample, normal.CDF)
	assert.Less(t, pValue, 0.05)
}

func TestKolmogorovSmirnovRangeInvariants(t *testing.T) {
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	for _, sample := range [][]float64{
		nil,
		{0.1},
		{-1, 0, 1},
		uniformSample(50),
	} {
		statistic, pValue := KolmogorovSmirnovTest(sample, normal.CDF)
		assert.GreaterOrEqual(t, statistic, 0.0)
		assert.LessOrEqual(t, statistic, 1.0)
		assert.GreaterOrEqual(t, pValue, 0.0)
		assert.LessOrEqual(t, pValue, 1.0)
	}
}
