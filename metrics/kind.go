// Package metrics computes per-itemset scalar measurements over extracted
// occurrences and aggregates them into named distributions.
package metrics

import (
	"cmp"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/geometry"
	"github.com/motifminer/motifminer/model"
)

// Kind is the closed set of distribution metrics. Each kind carries its own
// evaluation function; there is no dynamic type inspection.
type Kind int

const (
	// Cohesion is the mean pairwise distance between the structural element
	// centroids of one occurrence. Lower is spatially tighter.
	Cohesion Kind = iota
	// Consensus is the residual RMSD of an occurrence after rigid
	// superimposition onto a reference occurrence.
	Consensus
	// Affinity is the residual RMSD of an occurrence against the medoid of
	// all occurrences (the occurrence with minimal total pairwise RMSD).
	Affinity
)

// ParseKind maps a configuration string to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "cohesion":
		return Cohesion, nil
	case "consensus":
		return Consensus, nil
	case "affinity":
		return Affinity, nil
	default:
		return 0, errors.Newf("unknown metric kind %q (want cohesion, consensus or affinity)", name)
	}
}

func (k Kind) String() string {
	switch k {
	case Cohesion:
		return "cohesion"
	case Consensus:
		return "consensus"
	case Affinity:
		return "affinity"
	default:
		return "unknown"
	}
}

// Score evaluates the per-occurrence scalar for positions. For Consensus and
// Affinity the reference positions define the superimposition target; for
// Cohesion the reference is ignored.
func (k Kind) Score(positions, reference []r3.Vec) (float64, error) {
	switch k {
	case Cohesion:
		return geometry.MeanPairwiseDistance(positions), nil
	case Consensus, Affinity:
		return geometry.SuperimposedRMSD(reference, positions)
	default:
		return 0, errors.Newf("unknown metric kind %d", int(k))
	}
}

// Observed returns the itemset's computed summary value for this kind.
func Observed[L cmp.Ordered](k Kind, itemset *model.Itemset[L]) float64 {
	switch k {
	case Cohesion:
		return itemset.Cohesion
	case Consensus:
		return itemset.Consensus
	default:
		return itemset.Affinity
	}
}

func setSummary[L cmp.Ordered](k Kind, itemset *model.Itemset[L], value float64) {
	switch k {
	case Cohesion:
		itemset.Cohesion = value
	case Consensus:
		itemset.Consensus = value
	case Affinity:
		itemset.Affinity = value
	}
}
