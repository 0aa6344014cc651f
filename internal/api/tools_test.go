package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDirectPrinciples(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	tests := []struct {
		name          string
		body          string
		wantTemplates bool
	}{
		{"empty body defaults", "", false},
		{"empty object", "{}", false},
		{"opt in", `{"include_examples":true}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tools/get_duracube_principles", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}

			// The body is the bare document, no RPC envelope.
			var wire map[string]json.RawMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &wire); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if _, ok := wire["jsonrpc"]; ok {
				t.Error("direct endpoint returned an RPC envelope")
			}
			if _, ok := wire["total_principles"]; !ok {
				t.Error("document missing total_principles")
			}
			got := strings.Contains(rec.Body.String(), "departure_template")
			if got != tt.wantTemplates {
				t.Errorf("departure_template present = %v, want %v", got, tt.wantTemplates)
			}
		})
	}
}

func TestDirectCorrections(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/tools/get_learned_corrections", strings.NewReader(`{"category":"dlp"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Category  string `json:"category"`
		Learnings []struct {
			Category string `json:"category"`
		} `json:"learnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}
	if doc.Category != "dlp" {
		t.Errorf("category = %q, want dlp", doc.Category)
	}
	for _, l := range doc.Learnings {
		if l.Category != "dlp" {
			t.Errorf("learning category = %q, want dlp", l.Category)
		}
	}
}

func TestDirectCorrectionsRejectsBadCategory(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/tools/get_learned_corrections", strings.NewReader(`{"category":"finance"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Error == "" {
		t.Error("error body has no message")
	}
}

func TestDirectOutputFormat(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/tools/get_output_format", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !json.Valid(rec.Body.Bytes()) {
		t.Fatal("body is not valid JSON")
	}
	if !strings.Contains(rec.Body.String(), "column_specifications") {
		t.Error("output format document missing column specifications")
	}
}

func TestDirectMatchesRPCDocument(t *testing.T) {
	handler := newTestHandler(t, ServerConfig{})

	direct := httptest.NewRecorder()
	handler.ServeHTTP(direct, httptest.NewRequest(http.MethodPost, "/tools/get_duracube_principles", strings.NewReader(`{"include_examples":true}`)))

	rpcBody := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_duracube_principles","arguments":{"include_examples":true}}}`
	_, wire := postRPC(t, handler, "/mcp", rpcBody)
	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(wire["result"], &result); err != nil {
		t.Fatalf("decoding rpc result: %v", err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(result.Content))
	}
	if direct.Body.String() != result.Content[0].Text {
		t.Error("direct endpoint and tools/call produced different documents")
	}
}
