package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/google/uuid"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/auth"
	"github.com/rhuss/stepsort/pkg/debug"
	"github.com/rhuss/stepsort/pkg/transport"
)

// SortPath is the route of the sort endpoint.
const SortPath = "/api/sort"

// Adapter serves the sort API over HTTP.
// It routes requests to the Sorter and serializes responses.
type Adapter struct {
	sorter transport.Sorter
	mux    *http.ServeMux
	config Config
	inner  []func(http.Handler) http.Handler
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	// MaxBodySize caps the request body in bytes.
	MaxBodySize int64

	// CORS controls cross-origin access to the API routes.
	CORS CORSConfig

	// StaticDir is the directory of the bundled frontend. When empty, no
	// static files are served and unknown paths return 404.
	StaticDir string
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
		CORS:        DefaultCORSConfig(),
	}
}

// NewAdapter creates an HTTP adapter for the given Sorter.
// Middleware is applied to the Sorter in the given order.
func NewAdapter(sorter transport.Sorter, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		sorter = transport.Chain(middlewares...)(sorter)
	}

	a := &Adapter{
		sorter: sorter,
		mux:    http.NewServeMux(),
		config: cfg,
	}

	a.mux.HandleFunc("POST "+SortPath, a.handleSort)
	a.mux.HandleFunc("OPTIONS "+SortPath, a.handlePreflight)

	if cfg.StaticDir != "" {
		a.mux.Handle("GET /", staticHandler(cfg.StaticDir))
	}

	return a
}

// Handle registers an additional handler on the adapter's mux, for
// endpoints owned by other packages (health, metrics, MCP).
func (a *Adapter) Handle(pattern string, h http.Handler) {
	a.mux.Handle(pattern, h)
}

// Use adds HTTP middleware between CORS handling and the routes, so its
// responses (such as auth failures) still carry CORS headers. The first
// middleware added is the outermost.
func (a *Adapter) Use(mw func(http.Handler) http.Handler) {
	a.inner = append(a.inner, mw)
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// request ID propagation and CORS.
func (a *Adapter) Handler() http.Handler {
	var h http.Handler = a.mux
	for i := len(a.inner) - 1; i >= 0; i-- {
		h = a.inner[i](h)
	}
	return httpRequestIDMiddleware(corsMiddleware(a.config.CORS)(h))
}

// httpRequestIDMiddleware ensures every request carries an X-Request-ID.
// A client-supplied ID is kept; otherwise a new one is generated. The ID
// is placed in the context (where transport.RequestID picks it up) and
// echoed in the response headers.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(transport.ContextWithRequestID(r.Context(), id)))
	})
}

// handleSort handles POST /api/sort.
func (a *Adapter) handleSort(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req *api.SortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}
	if req == nil {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "request body must be a JSON object"),
			http.StatusBadRequest,
		)
		return
	}

	debug.Log("transport", "sort request decoded",
		"request_id", transport.RequestIDFromContext(r.Context()),
		"subject", auth.SubjectFromContext(r.Context()),
		"algorithm", req.Algorithm,
		"array_bytes", len(req.Array),
	)

	resp, err := a.sorter.Sort(r.Context(), req)
	if err != nil {
		transport.WriteAPIError(w, transport.AsAPIError(err))
		return
	}

	transport.WriteJSON(w, http.StatusOK, resp)
}

// handlePreflight answers OPTIONS /api/sort. The CORS headers themselves
// are set by corsMiddleware.
func (a *Adapter) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "CORS preflight"})
}

// isJSONContentType accepts an empty Content-Type or application/json with
// optional parameters such as charset.
func isJSONContentType(ct string) bool {
	if ct == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}
