package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/recipe-search/internal/engine"
	"github.com/gcbaptista/recipe-search/services"
)

func newIndexCmd(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or refresh the index cache",
		Long: `Load the corpus and make sure an up-to-date index cache exists.

A cache built from the same corpus is reused. Use --force to rebuild
from scratch regardless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig(cmd)
			if err != nil {
				return err
			}

			eng, err := engine.New(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			stats := eng.Stats()
			if force && stats.Source != engine.SourceBuilt {
				stats, err = eng.Rebuild(cmd.Context())
				if err != nil {
					return err
				}
			}

			printStats(cmd.OutOrStdout(), cfg.IndexCachePath(), stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild the index even if the cache is current")

	return cmd
}

func printStats(w io.Writer, cachePath string, stats services.IndexStats) {
	fmt.Fprintf(w, "Indexed %d recipes (%s)\n", stats.DocumentCount, stats.Source)
	fmt.Fprintf(w, "Cache:    %s\n", cachePath)
	fmt.Fprintf(w, "Built at: %s\n", stats.BuiltAt.Format("2006-01-02 15:04:05 MST"))

	sections := make([]string, 0, len(stats.VocabularySizes))
	for section := range stats.VocabularySizes {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		fmt.Fprintf(w, "  %-12s %d words\n", section, stats.VocabularySizes[section])
	}
}
