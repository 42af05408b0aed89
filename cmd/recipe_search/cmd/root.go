// Package cmd provides the CLI commands for recipe-search.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/recipe-search/config"
	"github.com/gcbaptista/recipe-search/internal/logging"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	corpus     string
	dataDir    string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the root command for the recipe-search CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "recipe-search",
		Short: "Search a recipe corpus by relevance, simplicity or healthiness",
		Long: `recipe-search indexes a JSON corpus of recipes and answers keyword
queries with one of three orderings:

  normal   most relevant first (title > categories > ingredients > directions)
  simple   fewest ingredients times steps first
  healthy  closest to an ideal nutritional profile first

Every query word must appear somewhere in a recipe for it to match.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "config.yaml", "Path to the YAML configuration file")
	flags.StringVar(&opts.corpus, "corpus", "", "Path to the recipe corpus (JSON array)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory holding the index cache")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newIndexCmd(opts))
	cmd.AddCommand(newDemoCmd(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the configuration file, applies flag overrides on top of
// file and environment values, and installs the logger.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.Corpus.Path = o.corpus
	}
	if flags.Changed("data-dir") {
		cfg.Index.DataDir = o.dataDir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		port, _ := flags.GetString("port")
		cfg.Server.Port = port
	}

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}
