package statistics

import (
	"cmp"
	"math/rand"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/metrics"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

// maxDrawAttempts bounds the rejection sampling of structurally backed item
// combinations per requested sample.
const maxDrawAttempts = 32

// SamplerOptions configures the background distribution sampler.
type SamplerOptions struct {
	// SampleSize is the number of background observations per itemset.
	SampleSize int
	// LevelOfParallelism is the number of concurrent sampling workers.
	LevelOfParallelism int
	// Seed fixes the random source for reproducible runs.
	Seed int64
}

// Sampler builds a background distribution per frequent itemset by drawing
// random itemsets of matching cardinality from the corpus and evaluating the
// configured metric on them.
//
// Workers share no mutable state: each worker owns a partition of the
// itemset universe and a private result map, and the final background map is
// assembled in a single merge step after all workers finish. The random
// source is derived from the seed and the itemset's rank, so results do not
// depend on the level of parallelism or on scheduling order.
type Sampler[L cmp.Ordered] struct {
	miner   *miner.Miner[L]
	kind    metrics.Kind
	options SamplerOptions
}

// NewSampler creates a sampler for the miner's frequent itemsets.
func NewSampler[L cmp.Ordered](m *miner.Miner[L], kind metrics.Kind, options SamplerOptions) *Sampler[L] {
	return &Sampler[L]{miner: m, kind: kind, options: options}
}

// Sample draws the background distributions for every frequent itemset.
func (s *Sampler[L]) Sample() (map[string]*model.Distribution, error) {
	if !s.miner.Mined() {
		return nil, errors.Wrap(errors.ErrNotMined, "background sampling")
	}
	targets := s.miner.TotalItemsets()
	workers := s.options.LevelOfParallelism
	if workers < 1 {
		workers = 1
	}

	logger.Logger.Infow("sampling background distributions",
		"itemsets", len(targets),
		"sample_size", s.options.SampleSize,
		"workers", workers)

	results := make([]map[string]*model.Distribution, workers)
	var group errgroup.Group
	for worker := 0; worker < workers; worker++ {
		results[worker] = make(map[string]*model.Distribution)
		local := results[worker]
		offset := worker
		group.Go(func() error {
			for index := offset; index < len(targets); index += workers {
				target := targets[index]
				rng := rand.New(rand.NewSource(s.options.Seed + int64(index)))
				local[target.Key()] = s.sampleItemset(target, rng)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Single-writer merge of the worker-local results.
	background := make(map[string]*model.Distribution, len(targets))
	for _, local := range results {
		for key, distribution := range local {
			background[key] = distribution
		}
	}
	return background, nil
}

// sampleItemset draws SampleSize pseudo-occurrences of the target's
// cardinality. For reference-relative metrics (consensus, affinity) a second
// independent draw serves as the superimposition target.
func (s *Sampler[L]) sampleItemset(target *model.Itemset[L], rng *rand.Rand) *model.Distribution {
	distribution := model.NewDistribution()
	cardinality := target.Size()
	eligible := s.eligibleDataPoints(cardinality)
	if len(eligible) == 0 {
		return distribution
	}

	for draw := 0; draw < s.options.SampleSize; draw++ {
		positions := s.drawPositions(eligible, cardinality, rng)
		if positions == nil {
			continue
		}
		var reference []r3.Vec
		if s.kind != metrics.Cohesion {
			reference = s.drawPositions(eligible, cardinality, rng)
			if reference == nil {
				continue
			}
		}
		value, err := s.kind.Score(positions, reference)
		if err != nil {
			continue
		}
		distribution.Add(value)
	}
	return distribution
}

// drawPositions picks a random data point and a random combination of
// distinct, structurally backed items of the requested cardinality.
func (s *Sampler[L]) drawPositions(eligible []*model.DataPoint[L], cardinality int, rng *rand.Rand) []r3.Vec {
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		dataPoint := eligible[rng.Intn(len(eligible))]
		permutation := rng.Perm(len(dataPoint.Items))
		positions := make([]r3.Vec, 0, cardinality)
		for _, itemIndex := range permutation {
			item := dataPoint.Items[itemIndex]
			if item.Element == nil {
				continue
			}
			positions = append(positions, item.Element.Position())
			if len(positions) == cardinality {
				return positions
			}
		}
	}
	return nil
}

func (s *Sampler[L]) eligibleDataPoints(cardinality int) []*model.DataPoint[L] {
	var eligible []*model.DataPoint[L]
	for _, dataPoint := range s.miner.Corpus() {
		backed := 0
		for _, item := range dataPoint.Items {
			if item.Element != nil {
				backed++
			}
		}
		if backed >= cardinality {
			eligible = append(eligible, dataPoint)
		}
	}
	return eligible
}
