package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/duracube/kb-server/internal/tools"
)

// toolHandler serves the direct HTTP tool endpoints. Each endpoint validates
// its own body through the tool's schema and returns the bare document, no
// RPC envelope.
type toolHandler struct {
	registry *tools.Registry
	logger   *slog.Logger
}

func (h *toolHandler) principles(w http.ResponseWriter, r *http.Request) {
	h.call(w, r, tools.ToolPrinciples, readBody(r))
}

func (h *toolHandler) corrections(w http.ResponseWriter, r *http.Request) {
	h.call(w, r, tools.ToolCorrections, readBody(r))
}

func (h *toolHandler) outputFormat(w http.ResponseWriter, r *http.Request) {
	h.call(w, r, tools.ToolOutputFormat, nil)
}

// readBody reads the request body, tolerating an empty one (defaults apply).
func readBody(r *http.Request) []byte {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRPCBodyBytes))
	if err != nil {
		return nil
	}
	return body
}

// call runs one tool and maps failures to HTTP shapes: validation errors are
// the caller's fault (400), anything else is internal (500). Messages carry
// the failure description verbatim.
func (h *toolHandler) call(w http.ResponseWriter, r *http.Request, name string, args []byte) {
	tool, ok := h.registry.Lookup(name)
	if !ok {
		// Routes are built from the registry, so this is unreachable short
		// of a programming error.
		writeError(w, http.StatusNotFound, "unknown tool: "+name)
		return
	}

	text, err := tool.Call(r.Context(), args)
	if err != nil {
		var verr *tools.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		h.logger.Error("direct tool call failed", "tool", name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeRawJSON(w, http.StatusOK, []byte(text))
}
