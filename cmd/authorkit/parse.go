package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/authorkit/plugins/render"
)

var (
	parseFormat  string
	parseCompact bool
	parseOutput  string
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse an author file and render it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(nil, nil)
		if err != nil {
			return err
		}

		doc, err := svc.ParseFile(args[0])
		if err != nil {
			return err
		}

		out, err := svc.Render(doc, parseFormat, render.Options{Compact: parseCompact})
		if err != nil {
			return err
		}

		if parseOutput != "" {
			return os.WriteFile(parseOutput, []byte(out), 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format (json, yaml, markdown)")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "compact output (json)")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(parseCmd)
}
