package sorting

import (
	"slices"

	"github.com/rhuss/stepsort/pkg/api"
)

// Recorder accumulates the step log of a single sort invocation.
// A Recorder is not safe for concurrent use; each invocation owns one.
type Recorder struct {
	steps []api.Step
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a snapshot of arr. The array and the compared indices are
// copied, so the caller may keep mutating both.
func (r *Recorder) Record(arr []float64, pivot *int, compared ...int) {
	step := api.Step{
		Array:    slices.Clone(arr),
		Compared: slices.Clone(compared),
	}
	if step.Array == nil {
		step.Array = []float64{}
	}
	if step.Compared == nil {
		step.Compared = []int{}
	}
	if pivot != nil {
		p := *pivot
		step.Pivot = &p
	}
	r.steps = append(r.steps, step)
}

// Steps returns the recorded log in chronological order. The result is
// never nil.
func (r *Recorder) Steps() []api.Step {
	if r.steps == nil {
		return []api.Step{}
	}
	return r.steps
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Func sorts arr in place and records its progress to rec.
type Func func(arr []float64, rec *Recorder)

// Lookup returns the sort function for a known algorithm.
func Lookup(algorithm api.Algorithm) (Func, bool) {
	switch algorithm {
	case api.AlgorithmQuicksort:
		return Quicksort, true
	case api.AlgorithmBubblesort:
		return Bubblesort, true
	case api.AlgorithmMergesort:
		return Mergesort, true
	}
	return nil, false
}
