package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhuss/stepsort/pkg/api"
)

func algorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range api.Algorithms() {
				suffix := ""
				if a == api.DefaultAlgorithm {
					suffix = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", a, suffix)
			}
			return nil
		},
	}
}
