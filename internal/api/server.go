// Package api implements the HTTP surface of the knowledge server: the
// JSON-RPC endpoints (/mcp current, /messages legacy), the SSE stream, the
// direct tool endpoints and discovery. All RPC traffic funnels through one
// shared mcpwire.Dispatcher so the two transports cannot diverge.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/duracube/kb-server/internal/mcpwire"
	"github.com/duracube/kb-server/internal/tools"
)

// DefaultKeepAlive is the SSE keep-alive cadence when none is configured.
const DefaultKeepAlive = 30 * time.Second

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Registry    *tools.Registry // Required
	Name        string          // Server name reported in handshake and health
	Version     string
	KeepAlive   time.Duration // SSE keep-alive interval (0 = default 30s)
	CORSOrigins []string      // Allowed origins for CORS
	RateBurst   int           // Rate limiter burst size per IP (0 = default 60)
}

// Server is the knowledge server's HTTP front end.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates an API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if cfg.Name == "" {
		return nil, errors.New("server name is required")
	}
	if cfg.Version == "" {
		return nil, errors.New("server version is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	keepAlive := cfg.KeepAlive
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}

	dispatcher := mcpwire.NewDispatcher(cfg.Name, cfg.Version, cfg.Registry, logger)

	rh := &rpcHandler{dispatcher: dispatcher, logger: logger}
	sh := &sseHandler{keepAlive: keepAlive, logger: logger}
	th := &toolHandler{registry: cfg.Registry, logger: logger}
	hh := &healthHandler{name: cfg.Name, version: cfg.Version, registry: cfg.Registry, dispatcher: dispatcher}

	mux := http.NewServeMux()

	// RPC envelope: current and legacy paths, one dispatcher.
	mux.HandleFunc("POST /mcp", rh.handle)
	mux.HandleFunc("POST /messages", rh.handle)

	// Event stream announcing the legacy message-posting path.
	mux.HandleFunc("GET /sse", sh.handle)

	// Direct tool endpoints.
	mux.HandleFunc("POST /tools/"+tools.ToolPrinciples, th.principles)
	mux.HandleFunc("POST /tools/"+tools.ToolCorrections, th.corrections)
	mux.HandleFunc("GET /tools/"+tools.ToolOutputFormat, th.outputFormat)

	// Discovery.
	mux.HandleFunc("GET /health", hh.health)
	mux.HandleFunc("GET /tools", hh.listTools)

	// Rate limiter: per-IP token bucket (1 token/sec refill)
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → Logging → CORS → RateLimit → Routes
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = recoveryMiddleware(logger)(handler)

	topMux := http.NewServeMux()
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
