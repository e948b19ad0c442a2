package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/debug"
	"github.com/rhuss/stepsort/pkg/observability"
	"github.com/rhuss/stepsort/pkg/sorting"
	"github.com/rhuss/stepsort/pkg/transport"
)

// Engine dispatches sort requests to the instrumented algorithms.
// It implements transport.Sorter.
type Engine struct {
	cfg Config
}

// Ensure Engine implements transport.Sorter at compile time.
var _ transport.Sorter = (*Engine)(nil)

// New creates a new Engine. The configured default algorithm must be one
// of the supported algorithms.
func New(cfg Config) (*Engine, error) {
	if _, apiErr := api.ResolveAlgorithm(cfg.DefaultAlgorithm); apiErr != nil {
		return nil, fmt.Errorf("engine: invalid default algorithm: %s", apiErr.Message)
	}
	if cfg.MaxArrayLength < 0 {
		return nil, fmt.Errorf("engine: max array length must be >= 0, got %d", cfg.MaxArrayLength)
	}
	return &Engine{cfg: cfg}, nil
}

// Sort validates the request, runs the selected algorithm on a private
// copy of the input and returns the recorded step log.
//
// Validation failures are returned as *api.APIError before any sorting
// starts. The request is not modified. Sorting is synchronous and runs to
// completion regardless of ctx.
func (e *Engine) Sort(_ context.Context, req *api.SortRequest) (*api.SortResponse, error) {
	r := *req
	if r.Algorithm == "" {
		r.Algorithm = e.cfg.defaultAlgorithm()
	}

	// ValidateRequest decodes a fresh slice, which becomes the working
	// array owned by this call.
	values, algorithm, apiErr := api.ValidateRequest(&r, e.cfg.validation())
	if apiErr != nil {
		label := algorithmLabel(r.Algorithm)
		if apiErr.Type == api.ErrorTypeUnsupportedAlgorithm {
			label = "unknown"
		}
		observability.SortsTotal.WithLabelValues(label, string(apiErr.Type)).Inc()
		debug.Log("engine", "rejected sort request", "type", apiErr.Type, "param", apiErr.Param)
		return nil, apiErr
	}

	sortFn, ok := sorting.Lookup(algorithm)
	if !ok {
		return nil, api.NewServerError(fmt.Sprintf("no implementation for algorithm %q", algorithm))
	}

	label := string(algorithm)
	start := time.Now()
	rec := sorting.NewRecorder()
	sortFn(values, rec)
	elapsed := time.Since(start)

	observability.SortsTotal.WithLabelValues(label, "ok").Inc()
	observability.SortSteps.WithLabelValues(label).Observe(float64(rec.Len()))
	observability.SortInputSize.WithLabelValues(label).Observe(float64(len(values)))
	observability.SortDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	debug.Log("engine", "sort completed",
		"algorithm", algorithm,
		"length", len(values),
		"steps", rec.Len(),
		"duration", elapsed,
	)

	steps := rec.Steps()
	if debug.TraceIsEnabled("sorting") {
		for i, st := range steps {
			var pivot any
			if st.Pivot != nil {
				pivot = *st.Pivot
			}
			debug.Trace("sorting", "step", "index", i, "array", st.Array, "pivot", pivot, "compared", st.Compared)
		}
	}

	return &api.SortResponse{
		Algorithm: algorithm,
		Steps:     steps,
		Sorted:    values,
	}, nil
}

// algorithmLabel keeps metric cardinality bounded for rejected requests.
func algorithmLabel(a api.Algorithm) string {
	if _, apiErr := api.ResolveAlgorithm(a); apiErr != nil {
		return "unknown"
	}
	return string(a)
}
