package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/duracube/kb-server/internal/mcpwire"
)

// maxRPCBodyBytes bounds request bodies; every legitimate request is a small
// envelope.
const maxRPCBodyBytes = 1 << 20

// rpcHandler serves the JSON-RPC envelope on /mcp and /messages. Both paths
// run the identical dispatch; the legacy path differs only in being the one
// announced by /sse.
type rpcHandler struct {
	dispatcher *mcpwire.Dispatcher
	logger     *slog.Logger
}

func (h *rpcHandler) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRPCBodyBytes))
	if err != nil {
		h.logger.Warn("reading rpc body", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	resp := h.dispatcher.Dispatch(r.Context(), body)

	// Protocol errors travel inside the envelope; HTTP status stays 200.
	writeJSON(w, http.StatusOK, resp)
}
