package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/motifminer/motifminer/logger"
)

var rootCmd = &cobra.Command{
	Use:   "motifminer",
	Short: "motifminer - frequent structural itemset mining",
	Long: `motifminer discovers recurring combinations of labeled structural
elements across a corpus of molecular structures, scores their geometric
agreement, validates them against random background samples and merges the
supporting observations of related itemsets into consensus motifs.

Examples:
  motifminer run --corpus corpus.json --out results/
  motifminer run --config motifminer.toml --corpus corpus.json
  motifminer version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.InitializeAtLevel(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON instead of human-readable output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
