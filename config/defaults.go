package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mining.minimal_support", 2)
	v.SetDefault("mining.minimal_itemset_size", 2)
	v.SetDefault("mining.adjacency_cutoff", 0.0) // no adjacency constraint

	v.SetDefault("metrics.kind", "cohesion")

	v.SetDefault("statistics.sample_size", 1000)
	v.SetDefault("statistics.level_of_parallelism", 1)
	v.SetDefault("statistics.ks_cutoff", 0.05)
	v.SetDefault("statistics.significance_cutoff", 0.05)
	v.SetDefault("statistics.seed", 42)

	v.SetDefault("association.threshold", 0.0)
	v.SetDefault("association.reference_family", "")

	v.SetDefault("library.enabled", false)
	v.SetDefault("library.minimal_cluster_ratio", 0.5)

	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.provider_url", "")
}
