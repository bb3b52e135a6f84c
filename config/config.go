// Package config defines the runtime configuration of the miner and loads it
// from TOML files and MOTIFMINER-prefixed environment variables via Viper.
package config

import "github.com/motifminer/motifminer/metrics"

type Config struct {
	Mining      MiningConfig      `mapstructure:"mining"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Statistics  StatisticsConfig  `mapstructure:"statistics"`
	Association AssociationConfig `mapstructure:"association"`
	Library     LibraryConfig     `mapstructure:"library"`
	Enrichment  EnrichmentConfig  `mapstructure:"enrichment"`
}

// MiningConfig controls frequent itemset extraction.
type MiningConfig struct {
	MinimalSupport     int     `mapstructure:"minimal_support"`      // occurrences in distinct data points (default: 2)
	MinimalItemsetSize int     `mapstructure:"minimal_itemset_size"` // labels per reported itemset (default: 2)
	AdjacencyCutoff    float64 `mapstructure:"adjacency_cutoff"`     // max centroid distance in Angstrom, 0 = no constraint
}

// MetricsConfig selects the geometric agreement metric.
type MetricsConfig struct {
	Kind string `mapstructure:"kind"` // cohesion, consensus or affinity
}

// StatisticsConfig controls background sampling and significance estimation.
type StatisticsConfig struct {
	SampleSize         int     `mapstructure:"sample_size"`          // background draws per itemset (default: 1000)
	LevelOfParallelism int     `mapstructure:"level_of_parallelism"` // sampler workers (default: 1)
	KSCutoff           float64 `mapstructure:"ks_cutoff"`            // minimum KS p-value for the normal fit
	SignificanceCutoff float64 `mapstructure:"significance_cutoff"`  // maximum p-value to call an itemset significant
	Seed               int64   `mapstructure:"seed"`                 // sampler seed, fixed for reproducible runs
}

// AssociationConfig controls itemset relation analysis and motif merging.
type AssociationConfig struct {
	Threshold       float64 `mapstructure:"threshold"`        // minimum mutual information for an edge
	ReferenceFamily string  `mapstructure:"reference_family"` // alignment reference, empty = no alignment
}

// LibraryConfig controls itemset library construction.
type LibraryConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	MinimalClusterRatio float64 `mapstructure:"minimal_cluster_ratio"` // largest-cluster share required per itemset
}

// EnrichmentConfig controls optional interaction enrichment before mining.
type EnrichmentConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ProviderURL string `mapstructure:"provider_url"` // annotation provider endpoint
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

// MetricKind parses the configured metric kind.
func (c *Config) MetricKind() (metrics.Kind, error) {
	return metrics.ParseKind(c.Metrics.Kind)
}
