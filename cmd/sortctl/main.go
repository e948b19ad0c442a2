// Command sortctl sorts numbers locally or through a stepsort server and
// replays every recorded step as a terminal bar chart.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhuss/stepsort/pkg/debug"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debugCategories string
		logLevel        string
	)

	root := &cobra.Command{
		Use:           "sortctl",
		Short:         "Replay sorting algorithms step by step",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(debugCategories, logLevel, "text")
		},
	}
	root.PersistentFlags().StringVar(&debugCategories, "debug", "", "Comma-separated debug categories (engine, transport, all)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level")

	root.AddCommand(runCmd())
	root.AddCommand(requestCmd())
	root.AddCommand(algorithmsCmd())
	return root
}
