package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Parse an author file and print validation warnings",
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

		warnings, err := svc.Validate(doc)
		if err != nil {
			return err
		}

		if len(warnings) == 0 {
			fmt.Println("OK: no warnings")
			return nil
		}
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		if validateStrict {
			return fmt.Errorf("%d validation warning(s)", len(warnings))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when warnings are produced")
	rootCmd.AddCommand(validateCmd)
}
