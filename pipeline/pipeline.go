// Package pipeline wires the mining, scoring, validation and merging stages
// into one end-to-end run.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/motifminer/motifminer/association"
	"github.com/motifminer/motifminer/config"
	"github.com/motifminer/motifminer/corpus"
	"github.com/motifminer/motifminer/enrichment"
	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/library"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/metrics"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
	"github.com/motifminer/motifminer/statistics"
)

// Pipeline runs the full mining workflow over a corpus. Enricher and Writer
// are optional collaborators; the core stages run the same without them.
type Pipeline struct {
	Config   *config.Config
	Enricher enrichment.DataPointEnricher[string]
	Writer   *corpus.MotifWriter
}

// Result collects the artifacts of one run.
type Result struct {
	RunID            string
	FrequentItemsets []*model.Itemset[string]
	Significant      []statistics.Entry[string]
	PairScores       []association.PairScore[string]
	Components       []association.MergedComponent[string]
	Library          *library.Library
}

// Run executes mining, metric evaluation, significance estimation, relation
// analysis and motif merging in order.
func (p *Pipeline) Run(ctx context.Context, dataPoints []*model.DataPoint[string]) (*Result, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	kind, err := p.Config.MetricKind()
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger.Logger.Infow("starting run", "run_id", result.RunID, "data_points", len(dataPoints))

	if p.Enricher != nil {
		enrichment.EnrichCorpus(ctx, p.Enricher, dataPoints)
	}

	var adjacency miner.Adjacency[string]
	if cutoff := p.Config.Mining.AdjacencyCutoff; cutoff > 0 {
		adjacency = miner.DistanceAdjacency[string](cutoff)
	}
	m := miner.New(dataPoints, miner.Options[string]{
		MinimalSupport:     p.Config.Mining.MinimalSupport,
		MinimalItemsetSize: p.Config.Mining.MinimalItemsetSize,
		Adjacency:          adjacency,
	})
	if err := m.Mine(); err != nil {
		return nil, err
	}
	result.FrequentItemsets = m.TotalItemsets()

	engine := metrics.NewEngine[string](kind)
	observed, err := engine.Evaluate(m)
	if err != nil {
		return nil, err
	}

	estimator := statistics.NewEstimator(m, kind, statistics.EstimatorOptions{
		SamplerOptions: statistics.SamplerOptions{
			SampleSize:         p.Config.Statistics.SampleSize,
			LevelOfParallelism: p.Config.Statistics.LevelOfParallelism,
			Seed:               p.Config.Statistics.Seed,
		},
		KSCutoff:           p.Config.Statistics.KSCutoff,
		SignificanceCutoff: p.Config.Statistics.SignificanceCutoff,
	})
	if err := estimator.Estimate(); err != nil {
		return nil, err
	}
	result.Significant = estimator.Significant()

	graph, scores, err := association.NewMutualInformationAnalyzer(m, observed, p.Config.Association.Threshold).Analyze()
	if err != nil {
		if errors.Is(err, errors.ErrNoDistribution) {
			logger.Logger.Warnw("no metric distributions, skipping relation analysis", "run_id", result.RunID)
			return result, nil
		}
		return nil, err
	}
	result.PairScores = scores

	extender := association.NewExtender(m, graph, association.ExtenderOptions{
		ReferenceFamily: p.Config.Association.ReferenceFamily,
	})
	result.Components = extender.Merge()

	if p.Writer != nil {
		for _, component := range result.Components {
			for _, motif := range component.Motifs {
				if err := p.Writer.Write(component.Key, motif.DataPoint, motif.Motif); err != nil {
					return nil, err
				}
			}
		}
	}

	if p.Config.Library.Enabled {
		lib, err := p.buildLibrary(m, result.Significant)
		if err != nil {
			return nil, err
		}
		result.Library = lib
	}

	logger.Logger.Infow("run finished",
		"run_id", result.RunID,
		"frequent_itemsets", len(result.FrequentItemsets),
		"significant", len(result.Significant),
		"components", len(result.Components))
	return result, nil
}

// buildLibrary assembles a library from one representative occurrence per
// significant itemset.
func (p *Pipeline) buildLibrary(m *miner.Miner[string], significant []statistics.Entry[string]) (*library.Library, error) {
	representatives := make([]*model.Itemset[string], 0, len(significant))
	for _, entry := range significant {
		occurrences := m.ExtractedItemsets()[entry.Itemset.Key()]
		if len(occurrences) == 0 {
			continue
		}
		representatives = append(representatives, occurrences[0])
	}
	return library.FromOccurrences(representatives, p.Config.Mining.MinimalItemsetSize)
}
