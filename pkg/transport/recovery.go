package transport

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/rhuss/stepsort/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to a generic server error. The panic value and stack are
// logged, never returned to the client.
func Recovery() Middleware {
	return func(next Sorter) Sorter {
		return SorterFunc(func(ctx context.Context, req *api.SortRequest) (resp *api.SortResponse, retErr error) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("recovered from panic in sort handler",
						"request_id", RequestIDFromContext(ctx),
						"panic", r,
						"stack", string(debug.Stack()),
					)
					resp = nil
					retErr = api.NewServerError("internal server error")
				}
			}()
			return next.Sort(ctx, req)
		})
	}
}
