package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/authorkit/config"
)

var (
	// Global flags
	cfgFile string

	cfg    *config.Config
	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "authorkit",
	Short: "Parse, validate, and render author.txt profiles",
	Long: `authorkit is a toolkit for the author.txt profile format.

It parses the line-oriented author DSL into a nested document, runs
registered validator plugins over it, and renders it to JSON, YAML,
or Markdown.

Quick start:
  authorkit parse author.txt            # parse and print as JSON
  authorkit render author.txt yaml      # render in an explicit format
  authorkit validate author.txt         # print validation warnings
  authorkit watch author.txt -f md      # re-render on every save
  authorkit serve                       # start the HTTP API`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		logger = setupLogger(cfg.Logging)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}
