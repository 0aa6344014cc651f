package api

import (
	"net/http"

	"github.com/duracube/kb-server/internal/mcpwire"
	"github.com/duracube/kb-server/internal/tools"
)

// healthHandler serves the discovery endpoints.
type healthHandler struct {
	name       string
	version    string
	registry   *tools.Registry
	dispatcher *mcpwire.Dispatcher
}

// healthResponse is the liveness shape: status plus the declared tool names.
type healthResponse struct {
	Status  string   `json:"status"`
	Server  string   `json:"server"`
	Version string   `json:"version"`
	Tools   []string `json:"tools"`
}

// health is a simple liveness endpoint for probes and clients checking what
// the server offers.
func (h *healthHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Server:  h.name,
		Version: h.version,
		Tools:   h.registry.Names(),
	})
}

// listTools returns the tool descriptor list, the same descriptors
// tools/list reports over RPC.
func (h *healthHandler) listTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mcpwire.ListToolsResult{Tools: h.dispatcher.Descriptors()})
}
