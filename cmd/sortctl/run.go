package main

import (
	"github.com/spf13/cobra"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/engine"
)

func runCmd() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "run [numbers...]",
		Short: "Sort numbers locally and replay the steps",
		Example: `  sortctl run --algorithm mergesort 5 1 4 2 8
  sortctl run --random 12 --delay 250ms --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := flags.values(args)
			if err != nil {
				return err
			}

			// Local runs are not bounded by the server's array limit.
			eng, err := engine.New(engine.Config{})
			if err != nil {
				return err
			}
			req, err := api.NewSortRequest(values, api.Algorithm(flags.algorithm))
			if err != nil {
				return err
			}
			resp, err := eng.Sort(cmd.Context(), req)
			if err != nil {
				return err
			}
			return flags.print(cmd.Context(), cmd, resp)
		},
	}
	flags.register(cmd)
	return cmd
}
