package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/recipe-search/internal/engine"
	"github.com/gcbaptista/recipe-search/services"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	strategy string
	details  bool
	json     bool
}

func newSearchCmd(global *globalOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the recipe corpus",
		Long: `Search the recipe corpus and print the ten best matches.

Output is JSON when --json is set or stdout is not a terminal.

Examples:
  recipe-search search "fish and chips"
  recipe-search search banana cheese pie --strategy simple
  recipe-search search "apple pie honey" -s healthy --details`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd, global, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "normal", "Ordering: normal, simple, healthy")
	cmd.Flags().BoolVar(&opts.details, "details", false, "Print whole recipes instead of titles")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Write results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, global *globalOptions, query string, opts searchOptions) error {
	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer eng.Close()

	result, err := eng.Search(services.SearchQuery{
		QueryString: query,
		Strategy:    strings.ToLower(opts.strategy),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json || !isTerminal(out) {
		return writeJSON(out, query, result, eng.Recipe, opts.details)
	}
	return printResults(out, result, eng.Recipe, opts.details)
}
