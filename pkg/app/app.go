// Package app assembles the stepsort HTTP surface from a loaded
// configuration: the sort API, health and metrics endpoints, the MCP
// endpoint, the static frontend and the optional auth layer.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/auth"
	"github.com/rhuss/stepsort/pkg/auth/apikey"
	"github.com/rhuss/stepsort/pkg/auth/jwt"
	"github.com/rhuss/stepsort/pkg/auth/noop"
	"github.com/rhuss/stepsort/pkg/config"
	"github.com/rhuss/stepsort/pkg/engine"
	"github.com/rhuss/stepsort/pkg/mcpserver"
	"github.com/rhuss/stepsort/pkg/observability"
	"github.com/rhuss/stepsort/pkg/transport"
	transporthttp "github.com/rhuss/stepsort/pkg/transport/http"
)

// HealthPath is the liveness route.
const HealthPath = "/healthz"

// App is a fully wired stepsort server handler.
type App struct {
	handler http.Handler
	sorter  transport.Sorter
}

// New builds the handler tree for cfg. The returned App is safe for
// concurrent use.
func New(cfg *config.Config) (*App, error) {
	eng, err := engine.New(engine.Config{
		DefaultAlgorithm: api.Algorithm(cfg.Engine.DefaultAlgorithm),
		MaxArrayLength:   cfg.Engine.MaxArrayLength,
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	// HTTP and MCP share one middleware-wrapped sorter.
	sorter := transport.Chain(transport.DefaultMiddleware()...)(eng)

	cors := transporthttp.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORS.AllowedOrigins
	cors.AllowCredentials = cfg.CORS.AllowCredentials
	cors.PathPrefix = cfg.CORS.PathPrefix

	adapter := transporthttp.NewAdapter(sorter, transporthttp.Config{
		MaxBodySize: cfg.Server.MaxBodySize,
		CORS:        cors,
		StaticDir:   staticDir(cfg.Static.Dir),
	})

	adapter.Handle("GET "+HealthPath, http.HandlerFunc(healthz))

	if cfg.Observability.Metrics.Enabled {
		adapter.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
		slog.Info("metrics enabled", "path", cfg.Observability.Metrics.Path)
	}

	if cfg.MCP.Enabled {
		h := mcpserver.New(sorter).Handler()
		// Explicit methods keep the route from conflicting with the
		// static catch-all.
		for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
			adapter.Handle(m+" "+cfg.MCP.Path, h)
		}
		slog.Info("mcp enabled", "path", cfg.MCP.Path)
	}

	chain, limiter, err := buildAuth(cfg.Auth)
	if err != nil {
		return nil, err
	}
	if chain != nil {
		prefixes := []string{"/api/"}
		if cfg.MCP.Enabled {
			prefixes = append(prefixes, cfg.MCP.Path)
		}
		adapter.Use(auth.Middleware(chain, limiter, prefixes))
	}

	return &App{
		handler: observability.MetricsMiddleware(adapter.Handler()),
		sorter:  sorter,
	}, nil
}

// Handler returns the root http.Handler.
func (a *App) Handler() http.Handler { return a.handler }

// Sorter returns the middleware-wrapped engine behind every transport.
func (a *App) Sorter() transport.Sorter { return a.sorter }

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// staticDir returns dir when it names an existing directory. Anything else
// disables static serving with a warning.
func staticDir(dir string) string {
	if dir == "" {
		return ""
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		slog.Warn("static directory not found, frontend disabled", "dir", dir)
		return ""
	}
	return dir
}

// buildAuth creates the auth chain and rate limiter for cfg. A nil chain
// means no auth middleware is installed.
func buildAuth(cfg config.AuthConfig) (*auth.AuthChain, auth.RateLimiter, error) {
	var limiter auth.RateLimiter
	if cfg.RateLimit.DefaultRPM > 0 || len(cfg.RateLimit.Tiers) > 0 {
		tiers := make(map[string]auth.TierConfig, len(cfg.RateLimit.Tiers))
		for name, rpm := range cfg.RateLimit.Tiers {
			tiers[name] = auth.TierConfig{RequestsPerMinute: rpm}
		}
		limiter = auth.NewInProcessLimiter(tiers, cfg.RateLimit.DefaultRPM)
	}

	switch cfg.Type {
	case "", "none":
		if limiter == nil {
			return nil, nil, nil
		}
		// Anonymous callers still share the default tier budget.
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{&noop.Authenticator{}},
			DefaultDecision: auth.Yes,
		}, limiter, nil

	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.APIKeys))
		for _, k := range cfg.APIKeys {
			entries = append(entries, apikey.RawKeyEntry{
				Key: k.Key,
				Identity: auth.Identity{
					Subject:     k.Subject,
					ServiceTier: k.ServiceTier,
				},
			})
		}
		authn := apikey.New(entries)
		if authn.Len() == 0 {
			return nil, nil, fmt.Errorf("auth type apikey needs at least one key")
		}
		slog.Info("auth enabled", "type", "apikey", "keys", authn.Len())
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.No,
		}, limiter, nil

	case "jwt":
		authn := jwt.New(jwt.Config{
			Issuer:        cfg.JWT.Issuer,
			Audience:      cfg.JWT.Audience,
			JWKSURL:       cfg.JWT.JWKSURL,
			UserClaim:     cfg.JWT.UserClaim,
			TierClaim:     cfg.JWT.TierClaim,
			ScopesClaim:   cfg.JWT.ScopesClaim,
			RequiredScope: cfg.JWT.RequiredScope,
			CacheTTL:      cfg.JWT.CacheTTL,
		})
		slog.Info("auth enabled", "type", "jwt", "jwks_url", cfg.JWT.JWKSURL)
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.No,
		}, limiter, nil

	default:
		return nil, nil, fmt.Errorf("unknown auth type %q", cfg.Type)
	}
}
