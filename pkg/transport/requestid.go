package transport

import (
	"context"

	"github.com/google/uuid"

	"github.com/rhuss/stepsort/pkg/api"
)

// RequestID returns middleware that assigns a unique request ID to each
// request. If the incoming context already carries a request ID (set by
// the HTTP adapter from the X-Request-ID header), that value is used.
// Otherwise a new random UUID is generated.
func RequestID() Middleware {
	return func(next Sorter) Sorter {
		return SorterFunc(func(ctx context.Context, req *api.SortRequest) (*api.SortResponse, error) {
			if RequestIDFromContext(ctx) == "" {
				ctx = ContextWithRequestID(ctx, uuid.NewString())
			}
			return next.Sort(ctx, req)
		})
	}
}
