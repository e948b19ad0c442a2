package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/client"
)

func requestCmd() *cobra.Command {
	var (
		flags  outputFlags
		server string
		token  string
	)

	cmd := &cobra.Command{
		Use:   "request [numbers...]",
		Short: "Sort numbers on a stepsort server and replay the returned steps",
		Example: `  sortctl request --server http://localhost:8080 3 6 2 5
  STEPSORT_TOKEN=sk-... sortctl request -a bubblesort --random 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := flags.values(args)
			if err != nil {
				return err
			}
			if token == "" {
				token = os.Getenv("STEPSORT_TOKEN")
			}

			c := client.New(server, client.WithToken(token))
			resp, err := c.Sort(cmd.Context(), values, api.Algorithm(flags.algorithm))
			if err != nil {
				return err
			}
			return flags.print(cmd.Context(), cmd, resp)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "Base URL of the stepsort server")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token (default $STEPSORT_TOKEN)")
	return cmd
}
