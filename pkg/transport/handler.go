package transport

import (
	"context"

	"github.com/rhuss/stepsort/pkg/api"
)

// Sorter runs one sort request and returns its step log. Implementations
// must reject invalid input with an *api.APIError before sorting and must
// not share mutable state between calls.
type Sorter interface {
	Sort(ctx context.Context, req *api.SortRequest) (*api.SortResponse, error)
}

// SorterFunc is an adapter that allows using an ordinary function
// as a Sorter.
type SorterFunc func(ctx context.Context, req *api.SortRequest) (*api.SortResponse, error)

// Sort calls f(ctx, req).
func (f SorterFunc) Sort(ctx context.Context, req *api.SortRequest) (*api.SortResponse, error) {
	return f(ctx, req)
}
