package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// postRPC posts a raw envelope and decodes the response body.
func postRPC(t *testing.T, handler http.Handler, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &wire); err != nil {
		t.Fatalf("response body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec.Code, wire
}

func TestRPCToolsCall(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	body := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_duracube_principles","arguments":{}}}`
	code, wire := postRPC(t, handler, "/mcp", body)
	if code != http.StatusOK {
		t.Fatalf("POST /mcp = %d, want 200", code)
	}
	if string(wire["id"]) != "7" {
		t.Errorf("id echo = %s, want 7", wire["id"])
	}
	if _, ok := wire["error"]; ok {
		t.Fatalf("unexpected error: %s", wire["error"])
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(wire["result"], &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("content = %+v, want one text block", result.Content)
	}
	if !strings.Contains(result.Content[0].Text, "total_principles") {
		t.Error("principles document missing total_principles")
	}
}

func TestRPCTransportsAreIdentical(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	bodies := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_learned_corrections","arguments":{"category":"insurance"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"missing"}}`,
		`{"jsonrpc":"2.0","id":5,"method":"bogus/method"}`,
	}
	for _, body := range bodies {
		current := httptest.NewRecorder()
		handler.ServeHTTP(current, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body)))

		legacy := httptest.NewRecorder()
		handler.ServeHTTP(legacy, httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body)))

		if current.Code != legacy.Code {
			t.Errorf("status diverged for %s: /mcp=%d /messages=%d", body, current.Code, legacy.Code)
		}
		if current.Body.String() != legacy.Body.String() {
			t.Errorf("body diverged for %s:\n/mcp:      %s\n/messages: %s", body, current.Body.String(), legacy.Body.String())
		}
	}
}

func TestRPCSessionIDQueryIgnored(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	body := `{"jsonrpc":"2.0","id":9,"method":"tools/list"}`
	_, plain := postRPC(t, handler, "/messages", body)
	_, withSession := postRPC(t, handler, "/messages?sessionId=ad686918-61bb-4e1f-a6ed-b95b51b7b255", body)

	if string(plain["result"]) != string(withSession["result"]) {
		t.Error("sessionId query parameter changed the response")
	}
}

func TestRPCProtocolErrorsStayHTTP200(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantID   string
	}{
		{"parse error", `{"jsonrpc":"2.0",`, -32700, "null"},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"prompts/list"}`, -32601, "1"},
		{"unknown tool", `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope"}}`, -32601, "2"},
		{"invalid arguments", `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_section_principle_mapping","arguments":{"group_id":"Z"}}}`, -32603, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, wire := postRPC(t, handler, "/mcp", tt.body)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want 200", code)
			}
			if string(wire["id"]) != tt.wantID {
				t.Errorf("id = %s, want %s", wire["id"], tt.wantID)
			}
			var rpcErr struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(wire["error"], &rpcErr); err != nil {
				t.Fatalf("no error object: %s", wire["error"])
			}
			if rpcErr.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rpcErr.Code, tt.wantCode)
			}
			if rpcErr.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestRPCResponseHeaders(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
}
