package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rhuss/stepsort/pkg/engine"
)

func startTestServer(t *testing.T, handler http.Handler) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	cfg := DefaultServerConfig()
	cfg.ShutdownTimeout = 2 * time.Second
	srv := NewServer(handler, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	return "http://" + ln.Addr().String(), cancel, done
}

func TestServerStartsAndAcceptsRequests(t *testing.T) {
	eng, _ := engine.New(engine.Config{})
	url, cancel, done := startTestServer(t, NewAdapter(eng, DefaultConfig()).Handler())
	defer func() {
		cancel()
		<-done
	}()

	resp, err := http.Post(url+SortPath, "application/json", strings.NewReader(`{"array":[2,1]}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestServerGracefulShutdown(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	})

	url, cancel, done := startTestServer(t, slow)

	result := make(chan int, 1)
	go func() {
		resp, err := http.Get(url)
		if err != nil {
			result <- -1
			return
		}
		resp.Body.Close()
		result <- resp.StatusCode
	}()

	<-started
	cancel()
	// Give Shutdown a moment to stop accepting before releasing the request.
	time.Sleep(50 * time.Millisecond)
	close(release)

	if status := <-result; status != http.StatusOK {
		t.Errorf("in-flight request status = %d, want 200", status)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServerAppliesDefaults(t *testing.T) {
	srv := NewServer(http.NotFoundHandler(), ServerConfig{Addr: ":0"})
	if srv.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", srv.config.ShutdownTimeout)
	}
	if srv.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
	if srv.httpServer.Addr != ":0" {
		t.Errorf("Addr = %q", srv.httpServer.Addr)
	}
}
