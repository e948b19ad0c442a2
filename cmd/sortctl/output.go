package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/replay"
)

// outputFlags are shared by the commands that print a step log.
type outputFlags struct {
	algorithm string
	delay     time.Duration
	asJSON    bool
	clear     bool
	width     int
	random    int
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "quicksort, bubblesort or mergesort (default quicksort)")
	cmd.Flags().DurationVar(&f.delay, "delay", 0, "Pause between frames, e.g. 300ms")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the raw JSON response instead of bar charts")
	cmd.Flags().BoolVar(&f.clear, "clear", false, "Redraw frames in place")
	cmd.Flags().IntVar(&f.width, "width", 40, "Width of the longest bar")
	cmd.Flags().IntVar(&f.random, "random", 0, "Sort N random integers in [1, 100] instead of the arguments")
}

// values parses the positional arguments, or generates random input when
// --random is set.
func (f *outputFlags) values(args []string) ([]float64, error) {
	if f.random > 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("--random cannot be combined with explicit numbers")
		}
		out := make([]float64, f.random)
		for i := range out {
			out[i] = float64(rand.IntN(100) + 1)
		}
		return out, nil
	}

	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q) is not a number", i+1, a)
		}
		out[i] = v
	}
	return out, nil
}

func (f *outputFlags) print(ctx context.Context, cmd *cobra.Command, resp *api.SortResponse) error {
	w := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return replay.Play(ctx, w, resp, replay.PlayOptions{
		Options: replay.Options{Width: f.width},
		Delay:   f.delay,
		Clear:   f.clear,
	})
}
