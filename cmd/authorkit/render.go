package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/authorkit/plugins/render"
)

var (
	renderCompact bool
	renderOutput  string
)

var renderCmd = &cobra.Command{
	Use:   "render FILE FORMAT",
	Short: "Parse an author file and render it in the given format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(nil, nil)
		if err != nil {
			return err
		}

		doc, err := svc.ParseFile(args[0])
		if err != nil {
			return err
		}

		out, err := svc.Render(doc, args[1], render.Options{Compact: renderCompact})
		if err != nil {
			return err
		}

		if renderOutput != "" {
			return os.WriteFile(renderOutput, []byte(out), 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderCompact, "compact", false, "compact output (json)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}
