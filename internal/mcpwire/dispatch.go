package mcpwire

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/duracube/kb-server/internal/tools"
)

// Dispatcher routes JSON-RPC requests to the tool registry. It is stateless
// between requests and safe for concurrent use.
type Dispatcher struct {
	name     string
	version  string
	registry *tools.Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher serving the given registry under the
// given server identity. logger may be nil.
func NewDispatcher(name, version string, registry *tools.Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{name: name, version: version, registry: registry, logger: logger}
}

// Descriptors returns the tool descriptors exposed by tools/list.
func (d *Dispatcher) Descriptors() []ToolDescriptor {
	ts := d.registry.Tools()
	descs := make([]ToolDescriptor, len(ts))
	for i, t := range ts {
		descs[i] = ToolDescriptor{Name: t.Name, Description: t.Description, InputSchema: t.Schema}
	}
	return descs
}

// Dispatch handles one raw JSON-RPC request body and always produces a
// response: parse failures, unknown methods and operation failures are all
// converted to protocol errors rather than propagated. The response echoes
// the request id, or null when the envelope carried none.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) *Response {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(nil, CodeParseError, fmt.Sprintf("parse error: %v", err))
	}

	switch req.Method {
	case MethodInitialize:
		return resultResponse(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    ServerCapabilities{Tools: ToolsCapability{ListChanged: false}},
			ServerInfo:      ServerInfo{Name: d.name, Version: d.version},
		})

	case MethodInitialized:
		// Handshake no-op, acknowledged with an empty result.
		return resultResponse(req.ID, struct{}{})

	case MethodToolsList:
		return resultResponse(req.ID, ListToolsResult{Tools: d.Descriptors()})

	case MethodToolsCall:
		return d.callTool(ctx, req)

	default:
		return errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (d *Dispatcher) callTool(ctx context.Context, req Request) *Response {
	var params CallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, CodeInternalError, fmt.Sprintf("invalid tools/call params: %v", err))
		}
	}

	tool, ok := d.registry.Lookup(params.Name)
	if !ok {
		return errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("tool not found: %s", params.Name))
	}

	text, err := tool.Call(ctx, params.Arguments)
	if err != nil {
		d.logger.Warn("tool call failed", "tool", params.Name, "error", err)
		return errorResponse(req.ID, CodeInternalError, err.Error())
	}

	return resultResponse(req.ID, TextResult(text))
}

func resultResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: &Error{Code: code, Message: message}}
}
