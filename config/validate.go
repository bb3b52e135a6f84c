package config

import "github.com/motifminer/motifminer/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Mining.MinimalSupport < 1 {
		return errors.Newf("mining.minimal_support must be >= 1, got %d", c.Mining.MinimalSupport)
	}
	if c.Mining.MinimalItemsetSize < 1 {
		return errors.Newf("mining.minimal_itemset_size must be >= 1, got %d", c.Mining.MinimalItemsetSize)
	}
	// Adjacency cutoff: 0 = no constraint, negative = invalid
	if c.Mining.AdjacencyCutoff < 0 {
		return errors.Newf("mining.adjacency_cutoff must be >= 0, got %f", c.Mining.AdjacencyCutoff)
	}

	if _, err := c.MetricKind(); err != nil {
		return err
	}

	if c.Statistics.SampleSize < 1 {
		return errors.Newf("statistics.sample_size must be >= 1, got %d", c.Statistics.SampleSize)
	}
	if c.Statistics.LevelOfParallelism < 1 {
		return errors.Newf("statistics.level_of_parallelism must be >= 1, got %d", c.Statistics.LevelOfParallelism)
	}
	if c.Statistics.KSCutoff < 0 || c.Statistics.KSCutoff > 1 {
		return errors.Newf("statistics.ks_cutoff must be in [0, 1], got %f", c.Statistics.KSCutoff)
	}
	if c.Statistics.SignificanceCutoff < 0 || c.Statistics.SignificanceCutoff > 1 {
		return errors.Newf("statistics.significance_cutoff must be in [0, 1], got %f", c.Statistics.SignificanceCutoff)
	}

	if c.Association.Threshold < 0 {
		return errors.Newf("association.threshold must be >= 0, got %f", c.Association.Threshold)
	}

	if c.Library.Enabled {
		if c.Library.MinimalClusterRatio < 0 || c.Library.MinimalClusterRatio > 1 {
			return errors.Newf("library.minimal_cluster_ratio must be in [0, 1], got %f", c.Library.MinimalClusterRatio)
		}
	}

	if c.Enrichment.Enabled && c.Enrichment.ProviderURL == "" {
		return errors.New("enrichment.provider_url cannot be empty when enabled")
	}
	return nil
}
