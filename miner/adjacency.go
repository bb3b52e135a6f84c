package miner

import (
	"cmp"

	"github.com/motifminer/motifminer/geometry"
	"github.com/motifminer/motifminer/model"
)

// DistanceAdjacency treats two items as co-occurring when their structural
// element centroids lie within cutoff of each other. Items without
// structural backing are considered adjacent to everything, so label-only
// corpora degrade to plain co-membership in a data point.
func DistanceAdjacency[L cmp.Ordered](cutoff float64) Adjacency[L] {
	return func(a, b *model.Item[L]) bool {
		if a.Element == nil || b.Element == nil {
			return true
		}
		return geometry.Distance(a.Element.Position(), b.Element.Position()) <= cutoff
	}
}
