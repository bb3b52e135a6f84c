package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/metrics"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

var structureIDs = []string{
	"1aaa", "2bbb", "3ccc", "4ddd", "5eee", "6fff", "7ggg", "8hhh",
}

// pairCorpus builds data points each holding items "A" and "B" separated by
// the given distances.
func pairCorpus(t *testing.T, separations ...float64) []*model.DataPoint[string] {
	t.Helper()
	require.LessOrEqual(t, len(separations), len(structureIDs))
	corpus := make([]*model.DataPoint[string], len(separations))
	for i, separation := range separations {
		id, err := model.NewDataPointIdentifier(structureIDs[i], "A")
		require.NoError(t, err)
		corpus[i] = model.NewDataPoint(id, []*model.Item[string]{
			model.NewStructuralItem("A", &model.StructuralElement{
				Family: "A", Chain: "A", Serial: 1,
				Atoms: []model.Atom{{Name: "CA", Position: r3.Vec{}}}}),
			model.NewStructuralItem("B", &model.StructuralElement{
				Family: "B", Chain: "A", Serial: 2,
				Atoms: []model.Atom{{Name: "CA", Position: r3.Vec{X: separation}}}}),
		})
	}
	return corpus
}

func minedPairs(t *testing.T, separations ...float64) *miner.Miner[string] {
	t.Helper()
	m := miner.New(pairCorpus(t, separations...),
		miner.Options[string]{MinimalSupport: 2, MinimalItemsetSize: 1})
	require.NoError(t, m.Mine())
	return m
}

func backgroundFor(m *miner.Miner[string], distribution *model.Distribution) map[string]*model.Distribution {
	background := make(map[string]*model.Distribution)
	for _, itemset := range m.TotalItemsets() {
		background[itemset.Key()] = distribution
	}
	return background
}

func normalBackground(mu, sigma float64, n int) *model.Distribution {
	distribution := model.NewDistribution()
	for _, value := range normalQuantileSample(n, mu, sigma) {
		distribution.Add(value)
	}
	return distribution
}

func uniformBackground(n int) *model.Distribution {
	distribution := model.NewDistribution()
	for _, value := range uniformSample(n) {
		distribution.Add(value)
	}
	return distribution
}

func evaluated(t *testing.T, m *miner.Miner[string], kind metrics.Kind) {
	t.Helper()
	engine := metrics.NewEngine[string](kind)
	_, err := engine.Evaluate(m)
	require.NoError(t, err)
}

func TestEstimatorMarksLowObservedValueSignificant(t *testing.T) {
	// Cohesion observed around 2.0; background centered at 10 with sd 1, so
	// CDF(2.0) is essentially zero.
	m := minedPairs(t, 2.0, 2.0, 2.0)
	evaluated(t, m, metrics.Cohesion)

	estimator := NewEstimator(m, metrics.Cohesion, EstimatorOptions{
		KSCutoff:           0.05,
		SignificanceCutoff: 0.01,
	})
	require.NoError(t, estimator.EstimateFrom(backgroundFor(m, normalBackground(10, 1, 1000))))

	assert.Equal(t, StateSignificant, estimator.State("A|B"))
	entries := estimator.Significant()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.GreaterOrEqual(t, entry.Significance.PValue, 0.0)
		assert.LessOrEqual(t, entry.Significance.PValue, 1.0)
		assert.GreaterOrEqual(t, entry.Significance.KS, 0.0)
		assert.LessOrEqual(t, entry.Significance.KS, 1.0)
		assert.False(t, math.IsNaN(entry.Itemset.PValue))
	}
}

func TestEstimatorRejectsPoorFitIndependentOfObservedValue(t *testing.T) {
	// A uniform background fails the KS fit check; even an extreme observed
	// value must not make the itemset significant.
	m := minedPairs(t, 2.0, 2.0, 2.0)
	evaluated(t, m, metrics.Cohesion)

	estimator := NewEstimator(m, metrics.Cohesion, EstimatorOptions{
		KSCutoff:           0.05,
		SignificanceCutoff: 0.9999,
	})
	require.NoError(t, estimator.EstimateFrom(backgroundFor(m, uniformBackground(1000))))

	assert.Equal(t, StateRejectedForFit, estimator.State("A|B"))
	assert.Empty(t, estimator.Significant())
	// Rejection excludes from the index but never deletes from the itemset set.
	_, ok := m.ItemsetByKey("A|B")
	assert.True(t, ok)
}

func TestEstimatorMarksCentralValueInsignificant(t *testing.T) {
	m := minedPairs(t, 10.0, 10.0, 10.0)
	evaluated(t, m, metrics.Cohesion)

	// Background centered exactly on the observed cohesion of 10.
	estimator := NewEstimator(m, metrics.Cohesion, EstimatorOptions{
		KSCutoff:           0.05,
		SignificanceCutoff: 0.01,
	})
	require.NoError(t, estimator.EstimateFrom(backgroundFor(m, normalBackground(10, 1, 1000))))

	assert.Equal(t, StateInsignificant, estimator.State("A|B"))
}

func TestEstimatorSkipsItemsetsWithoutBackground(t *testing.T) {
	m := minedPairs(t, 2.0, 3.0)
	evaluated(t, m, metrics.Cohesion)

	estimator := NewEstimator(m, metrics.Cohesion, EstimatorOptions{
		KSCutoff:           0.05,
		SignificanceCutoff: 0.5,
	})
	require.NoError(t, estimator.EstimateFrom(map[string]*model.Distribution{}))

	assert.Equal(t, StateUnsampled, estimator.State("A|B"))
	assert.Empty(t, estimator.Significant())
}

func TestEstimatorRankingIsDeterministic(t *testing.T) {
	m := minedPairs(t, 2.0, 2.5, 3.0, 3.5)
	evaluated(t, m, metrics.Cohesion)

	options := EstimatorOptions{
		SamplerOptions:     SamplerOptions{SampleSize: 200, LevelOfParallelism: 3, Seed: 42},
		KSCutoff:           0.0,
		SignificanceCutoff: 1.1, // everything with a background ranks
	}
	first := NewEstimator(m, metrics.Cohesion, options)
	require.NoError(t, first.Estimate())

	options.LevelOfParallelism = 1
	second := NewEstimator(m, metrics.Cohesion, options)
	require.NoError(t, second.Estimate())

	firstEntries := first.Significant()
	secondEntries := second.Significant()
	require.Equal(t, len(firstEntries), len(secondEntries))
	for i := range firstEntries {
		assert.Equal(t, firstEntries[i].Itemset.Key(), secondEntries[i].Itemset.Key())
		assert.Equal(t, firstEntries[i].Significance.PValue, secondEntries[i].Significance.PValue)
	}
	// Ranking sorted by p-value ascending.
	for i := 1; i < len(firstEntries); i++ {
		assert.LessOrEqual(t, firstEntries[i-1].Significance.PValue, firstEntries[i].Significance.PValue)
	}
}
