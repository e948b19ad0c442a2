package transport

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rhuss/stepsort/pkg/api"
)

// Logging returns middleware that emits one structured log entry per sort.
// The entry includes the request ID, algorithm, step count and duration.
// Client errors are logged at WARN, anything else at ERROR.
//
// A nil logger means slog.Default() at call time, so loggers installed
// after the middleware is built are still honored.
func Logging(logger *slog.Logger) Middleware {
	return func(next Sorter) Sorter {
		return SorterFunc(func(ctx context.Context, req *api.SortRequest) (*api.SortResponse, error) {
			l := logger
			if l == nil {
				l = slog.Default()
			}

			start := time.Now()
			resp, err := next.Sort(ctx, req)

			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("algorithm", string(req.Algorithm)),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				level := slog.LevelError
				var apiErr *api.APIError
				if errors.As(err, &apiErr) && apiErr.IsClientError() {
					level = slog.LevelWarn
				}
				l.LogAttrs(ctx, level, "sort failed", attrs...)
				return resp, err
			}

			attrs[1] = slog.String("algorithm", string(resp.Algorithm))
			attrs = append(attrs,
				slog.Int("length", len(resp.Sorted)),
				slog.Int("steps", len(resp.Steps)),
			)
			l.LogAttrs(ctx, slog.LevelInfo, "sort completed", attrs...)
			return resp, nil
		})
	}
}
