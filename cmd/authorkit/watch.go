package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artpar/authorkit/app"
	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/plugins/render"
)

var (
	watchFormat  string
	watchCompact bool
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-render an author file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(nil, nil)
		if err != nil {
			return err
		}

		watcher, err := app.NewWatcher(svc, args[0], logger)
		if err != nil {
			return err
		}

		renderDoc := func(doc document.Document) {
			out, err := svc.Render(doc, watchFormat, render.Options{Compact: watchCompact})
			if err != nil {
				fmt.Fprintln(os.Stderr, "render:", err)
				return
			}
			fmt.Println(out)
		}

		renderDoc(watcher.Document())
		watcher.OnChange(renderDoc)

		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info().Msg("shutting down watcher")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "json", "output format (json, yaml, markdown)")
	watchCmd.Flags().BoolVar(&watchCompact, "compact", false, "compact output (json)")
	rootCmd.AddCommand(watchCmd)
}
