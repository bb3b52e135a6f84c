package metrics

import (
	"cmp"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/geometry"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

// Engine computes one distribution per frequent itemset by evaluating the
// configured metric kind on every extracted occurrence, and populates the
// itemsets' matching scalar summary fields.
type Engine[L cmp.Ordered] struct {
	kind          Kind
	distributions map[string]*model.Distribution
}

// NewEngine creates an engine for the metric kind.
func NewEngine[L cmp.Ordered](kind Kind) *Engine[L] {
	return &Engine[L]{kind: kind, distributions: make(map[string]*model.Distribution)}
}

// Kind returns the configured metric kind.
func (e *Engine[L]) Kind() Kind {
	return e.kind
}

// Distributions returns the computed distributions keyed by itemset key.
func (e *Engine[L]) Distributions() map[string]*model.Distribution {
	return e.distributions
}

// Evaluate computes the distribution of every frequent itemset of the miner.
// Itemsets with fewer than two structurally backed occurrences get an empty
// distribution and keep their NaN summary: single-point statistics are
// undefined, not zero.
func (e *Engine[L]) Evaluate(m *miner.Miner[L]) (map[string]*model.Distribution, error) {
	if !m.Mined() {
		return nil, errors.Wrap(errors.ErrNotMined, "metric evaluation")
	}
	for _, itemset := range m.TotalItemsets() {
		distribution, err := e.evaluateItemset(itemset, m.ExtractedItemsets()[itemset.Key()])
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s for itemset %s", e.kind, itemset.Key())
		}
		e.distributions[itemset.Key()] = distribution
		if distribution.Len() > 0 {
			setSummary(e.kind, itemset, distribution.Mean())
		}
	}
	logger.Logger.Infow("evaluated metric distributions",
		"kind", e.kind.String(),
		"itemsets", len(e.distributions))
	return e.distributions, nil
}

func (e *Engine[L]) evaluateItemset(itemset *model.Itemset[L], occurrences []*model.Itemset[L]) (*model.Distribution, error) {
	distribution := model.NewDistribution()
	pointSets := occurrencePositions(occurrences)
	if len(pointSets) < 2 {
		logger.Logger.Debugw("metric unavailable, too few structural occurrences",
			"itemset", itemset.Key(),
			"occurrences", len(pointSets))
		return distribution, nil
	}

	reference, err := e.referencePositions(pointSets)
	if err != nil {
		return nil, err
	}
	for _, positions := range pointSets {
		value, err := e.kind.Score(positions, reference)
		if err != nil {
			return nil, err
		}
		distribution.Add(value)
	}
	return distribution, nil
}

// referencePositions selects the superimposition target: the first occurrence
// for Consensus, the medoid occurrence for Affinity. Cohesion needs none.
func (e *Engine[L]) referencePositions(pointSets [][]r3.Vec) ([]r3.Vec, error) {
	switch e.kind {
	case Cohesion:
		return nil, nil
	case Consensus:
		return pointSets[0], nil
	case Affinity:
		return medoid(pointSets)
	default:
		return nil, errors.Newf("unknown metric kind %d", int(e.kind))
	}
}

// medoid returns the point set with minimal total superimposed RMSD to all
// others, ties broken by the lowest index for determinism.
func medoid(pointSets [][]r3.Vec) ([]r3.Vec, error) {
	best := 0
	bestTotal := 0.0
	for i := range pointSets {
		var total float64
		for j := range pointSets {
			if i == j {
				continue
			}
			rmsd, err := geometry.SuperimposedRMSD(pointSets[i], pointSets[j])
			if err != nil {
				return nil, err
			}
			total += rmsd
		}
		if i == 0 || total < bestTotal {
			best = i
			bestTotal = total
		}
	}
	return pointSets[best], nil
}

// occurrencePositions extracts the label-ordered element centroids of each
// fully backed occurrence. Occurrences missing structural backing for any
// item are skipped.
func occurrencePositions[L cmp.Ordered](occurrences []*model.Itemset[L]) [][]r3.Vec {
	var pointSets [][]r3.Vec
	for _, occurrence := range occurrences {
		positions := make([]r3.Vec, 0, len(occurrence.Items))
		backed := true
		for _, item := range occurrence.Items {
			if item.Element == nil {
				backed = false
				break
			}
			positions = append(positions, item.Element.Position())
		}
		if backed {
			pointSets = append(pointSets, positions)
		}
	}
	return pointSets
}
