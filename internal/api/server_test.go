package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/duracube/kb-server/internal/knowledge"
	"github.com/duracube/kb-server/internal/testutil"
	"github.com/duracube/kb-server/internal/tools"
)

const (
	testServerName    = "duracube-knowledge"
	testServerVersion = "1.2.0"
)

func newTestRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	store := knowledge.NewStore(knowledge.StoreConfig{Logger: testutil.DiscardLogger()})
	registry, err := tools.NewRegistry(tools.NewKit(store, testutil.DiscardLogger()))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return registry
}

func newTestHandler(t *testing.T, cfg ServerConfig) http.Handler {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = testutil.DiscardLogger()
	}
	if cfg.Registry == nil {
		cfg.Registry = newTestRegistry(t)
	}
	if cfg.Name == "" {
		cfg.Name = testServerName
	}
	if cfg.Version == "" {
		cfg.Version = testServerVersion
	}
	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv.Handler()
}

func TestNewServerValidation(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name string
		cfg  ServerConfig
	}{
		{"missing registry", ServerConfig{Name: "x", Version: "1"}},
		{"missing name", ServerConfig{Registry: registry, Version: "1"}},
		{"missing version", ServerConfig{Registry: registry, Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewServer(tt.cfg); err == nil {
				t.Error("NewServer() accepted invalid config")
			}
		})
	}
}

func TestRouteMethods(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/mcp", http.StatusMethodNotAllowed},
		{http.MethodGet, "/messages", http.StatusMethodNotAllowed},
		{http.MethodPost, "/sse", http.StatusMethodNotAllowed},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed},
		{http.MethodGet, "/tools/get_duracube_principles", http.StatusMethodNotAllowed},
		{http.MethodPost, "/tools/get_output_format", http.StatusMethodNotAllowed},
		{http.MethodPost, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestDefaultKeepAliveApplied(t *testing.T) {
	// Zero keep-alive must not panic time.NewTicker when a stream opens.
	handler := newTestHandler(t, ServerConfig{KeepAlive: 0})

	ts := httptest.NewServer(handler)
	defer ts.Close()

	client := ts.Client()
	client.Timeout = 2 * time.Second

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/sse", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET /sse error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /sse = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	// Read just the opening event, then drop the connection.
	buf := make([]byte, 1)
	if _, err := resp.Body.Read(buf); err != nil {
		t.Fatalf("reading stream: %v", err)
	}
}
