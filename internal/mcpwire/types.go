// Package mcpwire implements the JSON-RPC 2.0 request/response surface of
// the knowledge server: envelope types, method names, error codes and one
// shared dispatcher.
//
// The package is free of transport logic. The current (/mcp) and legacy
// (/messages) HTTP endpoints both hand raw request bodies to the same
// Dispatcher, so the two transports cannot drift apart behaviorally.
package mcpwire

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSONRPCVersion is the only accepted jsonrpc field value.
const JSONRPCVersion = "2.0"

// ProtocolVersion is the protocol revision declared during initialize.
const ProtocolVersion = "2024-11-05"

// Supported method names.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// Request is an incoming JSON-RPC envelope. ID is kept raw so string,
// number and absent ids round-trip unchanged.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC envelope. Exactly one of Result and
// Error is set. A nil ID serializes as null, the required echo for a
// malformed envelope with no id.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CallParams are the params of a tools/call request.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// InitializeResult is the fixed capability descriptor returned by
// initialize.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// ServerCapabilities declares the feature set this server supports. Only
// tools are offered.
type ServerCapabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability is the tools capability block. ListChanged is always
// false: the tool set is fixed for the process lifetime.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerInfo identifies the server during the handshake.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolDescriptor is one entry of a tools/list result, the external contract
// callers rely on for argument shape.
type ToolDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// ListToolsResult is the result of tools/list.
type ListToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// CallToolResult wraps a serialized document for a successful tools/call.
type CallToolResult struct {
	Content []Content `json:"content"`
}

// Content is one content block of a tool result. Only text blocks are
// produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextResult builds a single-text-block tool result.
func TextResult(text string) CallToolResult {
	return CallToolResult{Content: []Content{{Type: "text", Text: text}}}
}
