// Package association relates mined itemsets pairwise by the mutual
// information of their metric distributions, builds a relation graph from
// the strongly associated pairs, and merges the structural occurrences of
// each connected component into per-data-point consensus motifs.
package association

import (
	"cmp"
	"math"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

// PairScore is the symmetric association score of one unordered itemset
// pair.
type PairScore[L cmp.Ordered] struct {
	Score  float64
	First  *model.Itemset[L]
	Second *model.Itemset[L]
}

// MutualInformationAnalyzer scores every unordered pair of frequent itemsets
// by the mutual information between their metric distributions. Pairs above
// the threshold become edges of the itemset relation graph.
//
// The pair enumeration is exhaustive over all itemsets; no magnitude-based
// pre-filter is applied.
type MutualInformationAnalyzer[L cmp.Ordered] struct {
	miner         *miner.Miner[L]
	distributions map[string]*model.Distribution
	threshold     float64
}

// NewMutualInformationAnalyzer creates an analyzer over the miner's itemsets
// and their computed metric distributions.
func NewMutualInformationAnalyzer[L cmp.Ordered](m *miner.Miner[L], distributions map[string]*model.Distribution, threshold float64) *MutualInformationAnalyzer[L] {
	return &MutualInformationAnalyzer[L]{miner: m, distributions: distributions, threshold: threshold}
}

// Analyze computes all pairwise scores and returns the relation graph of
// pairs exceeding the threshold, together with every computed pair score.
func (a *MutualInformationAnalyzer[L]) Analyze() (*Graph[L], []PairScore[L], error) {
	if len(a.distributions) == 0 {
		return nil, nil, errors.Wrap(errors.ErrNoDistribution, "mutual information analysis")
	}

	itemsets := a.miner.TotalItemsets()
	logger.Logger.Infow("calculating mutual information",
		"itemsets", len(itemsets),
		"threshold", a.threshold)

	graph := NewGraph[L]()
	var scores []PairScore[L]
	for i := 0; i < len(itemsets); i++ {
		first := a.distributions[itemsets[i].Key()]
		if first == nil || first.Len() == 0 {
			continue
		}
		for j := i + 1; j < len(itemsets); j++ {
			second := a.distributions[itemsets[j].Key()]
			if second == nil || second.Len() == 0 {
				continue
			}
			// Cap both to the shorter distribution to keep the paired
			// comparison valid.
			length := min(first.Len(), second.Len())
			score := MutualInformation(
				first.Observations()[:length],
				second.Observations()[:length])
			scores = append(scores, PairScore[L]{Score: score, First: itemsets[i], Second: itemsets[j]})

			if score > a.threshold {
				nodeOne := graph.EnsureNode(itemsets[i])
				nodeTwo := graph.EnsureNode(itemsets[j])
				graph.AddEdge(nodeOne, nodeTwo)
				logger.Logger.Debugw("associated itemset pair",
					"first", itemsets[i].Key(),
					"second", itemsets[j].Key(),
					"mutual_information", score)
			}
		}
	}
	return graph, scores, nil
}

// MutualInformation estimates the mutual information (in nats) between two
// paired samples of equal length by equal-width histogram binning (Sturges'
// rule). The estimate is symmetric in its arguments.
func MutualInformation(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}
	bins := sturgesBins(n)
	xBinned := binned(x, bins)
	yBinned := binned(y, bins)

	joint := make(map[[2]int]float64)
	xMarginal := make(map[int]float64)
	yMarginal := make(map[int]float64)
	for i := 0; i < n; i++ {
		joint[[2]int{xBinned[i], yBinned[i]}]++
		xMarginal[xBinned[i]]++
		yMarginal[yBinned[i]]++
	}

	total := float64(n)
	information := 0.0
	for cell, count := range joint {
		pJoint := count / total
		pX := xMarginal[cell[0]] / total
		pY := yMarginal[cell[1]] / total
		information += pJoint * math.Log(pJoint/(pX*pY))
	}
	if information < 0 {
		return 0
	}
	return information
}

func sturgesBins(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// binned maps each value to its equal-width bin index. A zero-range sample
// collapses into a single bin.
func binned(values []float64, bins int) []int {
	low, high := values[0], values[0]
	for _, value := range values {
		low = math.Min(low, value)
		high = math.Max(high, value)
	}
	indices := make([]int, len(values))
	if high == low {
		return indices
	}
	width := (high - low) / float64(bins)
	for i, value := range values {
		index := int((value - low) / width)
		if index >= bins {
			index = bins - 1
		}
		indices[i] = index
	}
	return indices
}
