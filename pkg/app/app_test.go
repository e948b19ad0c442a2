package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/config"
)

func newTestConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Static.Dir = ""
	return &cfg
}

func serve(t *testing.T, cfg *config.Config, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, newTestConfig(), http.MethodGet, HealthPath, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "ok\n" {
		t.Errorf("body = %q, want %q", got, "ok\n")
	}
}

func TestSortRoute(t *testing.T) {
	rec := serve(t, newTestConfig(), http.MethodPost, "/api/sort",
		`{"array":[3,6,2,5],"algorithm":"bubblesort"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp api.SortResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Algorithm != api.AlgorithmBubblesort {
		t.Errorf("algorithm = %q, want bubblesort", resp.Algorithm)
	}
	if len(resp.Steps) == 0 {
		t.Error("expected recorded steps")
	}
}

func TestDefaultAlgorithmFromConfig(t *testing.T) {
	cfg := newTestConfig()
	cfg.Engine.DefaultAlgorithm = "mergesort"

	rec := serve(t, cfg, http.MethodPost, "/api/sort", `{"array":[5,1,4,2,8]}`, nil)
	var resp api.SortResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Algorithm != api.AlgorithmMergesort {
		t.Errorf("algorithm = %q, want mergesort", resp.Algorithm)
	}
	if len(resp.Steps) != 4 {
		t.Errorf("steps = %d, want 4", len(resp.Steps))
	}
}

func TestMaxArrayLengthFromConfig(t *testing.T) {
	cfg := newTestConfig()
	cfg.Engine.MaxArrayLength = 2

	rec := serve(t, cfg, http.MethodPost, "/api/sort", `{"array":[3,2,1]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    int
	}{
		{"enabled", true, http.StatusOK},
		{"disabled", false, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Observability.Metrics.Enabled = tt.enabled
			rec := serve(t, cfg, http.MethodGet, "/metrics", "", nil)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMetricsExposeSortCounter(t *testing.T) {
	cfg := newTestConfig()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/sort", "application/json", strings.NewReader(`{"array":[2,1]}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "stepsort_requests_total") {
		t.Error("metrics output lacks stepsort_requests_total")
	}
}

func TestMCPRoute(t *testing.T) {
	// Any answer but 404/405 means the MCP handler saw the request.
	tests := []struct {
		name    string
		enabled bool
	}{
		{"enabled", true},
		{"disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.MCP.Enabled = tt.enabled
			rec := serve(t, cfg, http.MethodPost, "/mcp", `{}`, nil)
			if tt.enabled && (rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed) {
				t.Errorf("status = %d, MCP route not mounted", rec.Code)
			}
			if !tt.enabled && rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 404 or 405", rec.Code)
			}
		})
	}
}

func apiKeyConfig() *config.Config {
	cfg := newTestConfig()
	cfg.Auth.Type = "apikey"
	cfg.Auth.APIKeys = []config.APIKeyConfig{
		{Key: "secret", Subject: "alice", ServiceTier: "basic"},
	}
	return cfg
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"missing token", "/api/sort", nil, http.StatusUnauthorized},
		{"wrong token", "/api/sort", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"valid token", "/api/sort", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
		{"health not gated", HealthPath, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, body := http.MethodPost, `{"array":[2,1]}`
			if tt.path == HealthPath {
				method, body = http.MethodGet, ""
			}
			rec := serve(t, apiKeyConfig(), method, tt.path, body, tt.header)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAuthFailureKeepsCORSHeaders(t *testing.T) {
	rec := serve(t, apiKeyConfig(), http.MethodPost, "/api/sort", `{"array":[1]}`,
		map[string]string{"Origin": "http://localhost:3000"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("401 response lacks Access-Control-Allow-Origin")
	}
}

func TestRateLimitWithoutAuth(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.RateLimit.DefaultRPM = 1

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/sort", strings.NewReader(`{"array":[1]}`))
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestBuildAuthErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{"unknown type", config.AuthConfig{Type: "ldap"}},
		{"apikey without keys", config.AuthConfig{Type: "apikey"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := buildAuth(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildAuthNone(t *testing.T) {
	chain, limiter, err := buildAuth(config.AuthConfig{Type: "none"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chain != nil || limiter != nil {
		t.Error("auth none without limits should install nothing")
	}
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := staticDir(dir); got != dir {
		t.Errorf("staticDir(existing) = %q, want %q", got, dir)
	}
	if got := staticDir(filepath.Join(dir, "missing")); got != "" {
		t.Errorf("staticDir(missing) = %q, want empty", got)
	}
	if got := staticDir(file); got != "" {
		t.Errorf("staticDir(file) = %q, want empty", got)
	}

	cfg := newTestConfig()
	cfg.Static.Dir = dir
	rec := serve(t, cfg, http.MethodGet, "/some/client/route", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "app") {
		t.Errorf("fallback status = %d, body = %q", rec.Code, rec.Body.String())
	}
}
