package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motifminer/motifminer/config"
	"github.com/motifminer/motifminer/corpus"
	"github.com/motifminer/motifminer/enrichment"
	"github.com/motifminer/motifminer/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Mine a corpus and write merged motifs",
	Long: `Run the full mining workflow over a JSON corpus: frequent itemset
extraction, metric evaluation, significance estimation, relation analysis
and motif merging. Merged motifs are written below the output directory,
one folder per connected component.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		corpusPath, _ := cmd.Flags().GetString("corpus")
		outDir, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		dataPoints, err := corpus.ReadJSONFile(corpusPath)
		if err != nil {
			return err
		}

		p := &pipeline.Pipeline{
			Config: cfg,
			Writer: &corpus.MotifWriter{BaseDir: outDir},
		}
		if cfg.Enrichment.Enabled {
			source := enrichment.NewRESTInteractionSource(cfg.Enrichment.ProviderURL)
			source.Username = cfg.Enrichment.Username
			source.Password = cfg.Enrichment.Password
			p.Enricher = &enrichment.InteractionEnricher{Source: source}
		}
		result, err := p.Run(cmd.Context(), dataPoints)
		if err != nil {
			return err
		}

		fmt.Printf("run %s: %d frequent itemsets, %d significant, %d components\n",
			result.RunID, len(result.FrequentItemsets), len(result.Significant), len(result.Components))
		for _, entry := range result.Significant {
			fmt.Printf("  %s  p=%.4g\n", entry.Itemset.Key(), entry.Significance.PValue)
		}
		if result.Library != nil {
			libraryPath, _ := cmd.Flags().GetString("library")
			if libraryPath != "" {
				if err := result.Library.WriteToPath(libraryPath); err != nil {
					return err
				}
				fmt.Printf("library with %d entries written to %s\n", len(result.Library.Entries), libraryPath)
			}
		}
		return nil
	},
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	return config.LoadFromFile(configPath)
}

func init() {
	runCmd.Flags().String("config", "", "Path to TOML configuration file (default: built-in defaults + MOTIFMINER_* env)")
	runCmd.Flags().String("corpus", "corpus.json", "Path to JSON corpus file")
	runCmd.Flags().String("out", "results", "Output directory for merged motifs")
	runCmd.Flags().String("library", "", "Write the itemset library to this path (requires library.enabled)")
}
