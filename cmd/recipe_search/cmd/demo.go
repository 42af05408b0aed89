package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/recipe-search/internal/engine"
	"github.com/gcbaptista/recipe-search/services"
)

// demoQueries are run in order by the demo command.
var demoQueries = []services.SearchQuery{
	{QueryString: "Fish and Chips", Strategy: "normal"},
	{QueryString: "Banana cheese", Strategy: "normal"},
	{QueryString: "Banana cheese pie", Strategy: "simple"},
	{QueryString: "Apple pie", Strategy: "simple"},
	{QueryString: "Apple Pie Honey", Strategy: "healthy"},
}

func newDemoCmd(global *globalOptions) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a fixed set of example queries",
		Args:  cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			for _, query := range demoQueries {
				result, err := eng.Search(query)
				if err != nil {
					return err
				}
				if err := printResults(out, result, eng.Recipe, details); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Print whole recipes instead of titles")

	return cmd
}
