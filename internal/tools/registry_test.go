package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(newTestKit(t))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func TestRegistryNames(t *testing.T) {
	reg := newTestRegistry(t)

	want := []string{
		ToolPrinciples,
		ToolCorrections,
		ToolOutputFormat,
		ToolFinanceGuide,
		ToolSectionMapping,
	}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range want {
		tool, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%s) = not found", name)
		}
		if tool.Description == "" {
			t.Errorf("tool %s has no description", name)
		}
		if tool.Schema == nil {
			t.Errorf("tool %s has no input schema", name)
		}
	}

	if _, ok := reg.Lookup("no_such_tool"); ok {
		t.Error("Lookup(no_such_tool) = found")
	}
}

func TestCallDefaultsEmptyArguments(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	tool, _ := reg.Lookup(ToolCorrections)

	// nil, empty object and explicit default must all produce the same
	// document.
	fromNil, err := tool.Call(ctx, nil)
	if err != nil {
		t.Fatalf("Call(nil) error = %v", err)
	}
	fromEmpty, err := tool.Call(ctx, json.RawMessage("{}"))
	if err != nil {
		t.Fatalf("Call({}) error = %v", err)
	}
	fromExplicit, err := tool.Call(ctx, json.RawMessage(`{"category":"all"}`))
	if err != nil {
		t.Fatalf("Call(category=all) error = %v", err)
	}
	if fromNil != fromEmpty || fromEmpty != fromExplicit {
		t.Error("defaulted calls produced different documents")
	}

	var doc CorrectionsDocument
	if err := json.Unmarshal([]byte(fromNil), &doc); err != nil {
		t.Fatalf("result is not a corrections document: %v", err)
	}
	if doc.Category != CategoryAll {
		t.Errorf("defaulted category = %q, want %q", doc.Category, CategoryAll)
	}
}

func TestCallRejectsInvalidEnum(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		tool string
		args string
	}{
		{ToolCorrections, `{"category":"finance"}`},
		{ToolCorrections, `{"category":""}`},
		{ToolFinanceGuide, `{"category":"security"}`},
		{ToolSectionMapping, `{"group_id":"H"}`},
		{ToolSectionMapping, `{"group_id":"d"}`},
	}
	for _, tt := range tests {
		tool, ok := reg.Lookup(tt.tool)
		if !ok {
			t.Fatalf("Lookup(%s) = not found", tt.tool)
		}
		_, err := tool.Call(ctx, json.RawMessage(tt.args))
		if err == nil {
			t.Errorf("Call(%s, %s) accepted invalid arguments", tt.tool, tt.args)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Call(%s, %s) error = %T, want *ValidationError", tt.tool, tt.args, err)
		}
	}
}

func TestCallRejectsMalformedArguments(t *testing.T) {
	reg := newTestRegistry(t)

	tool, _ := reg.Lookup(ToolPrinciples)
	_, err := tool.Call(context.Background(), json.RawMessage(`{"include_examples":`))
	if err == nil {
		t.Fatal("Call accepted truncated JSON arguments")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *ValidationError", err)
	}
}

func TestCallIsIdempotent(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	for _, name := range reg.Names() {
		tool, _ := reg.Lookup(name)
		first, err := tool.Call(ctx, nil)
		if err != nil {
			t.Fatalf("Call(%s) error = %v", name, err)
		}
		second, err := tool.Call(ctx, nil)
		if err != nil {
			t.Fatalf("Call(%s) repeat error = %v", name, err)
		}
		if first != second {
			t.Errorf("Call(%s) is not byte-identical across invocations", name)
		}
		if !json.Valid([]byte(first)) {
			t.Errorf("Call(%s) result is not valid JSON", name)
		}
	}
}

func TestSchemaEnumsAndDefaults(t *testing.T) {
	reg := newTestRegistry(t)

	corrections, _ := reg.Lookup(ToolCorrections)
	cat := corrections.Schema.Properties["category"]
	if cat == nil {
		t.Fatal("corrections schema missing category property")
	}
	if len(cat.Enum) != 6 {
		t.Errorf("corrections category enum has %d values, want 6", len(cat.Enum))
	}
	if string(cat.Default) != `"all"` {
		t.Errorf("corrections category default = %s, want \"all\"", cat.Default)
	}

	finance, _ := reg.Lookup(ToolFinanceGuide)
	if tmpl := finance.Schema.Properties["include_json_template"]; tmpl == nil || string(tmpl.Default) != "true" {
		t.Error("finance include_json_template must default to true")
	}

	section, _ := reg.Lookup(ToolSectionMapping)
	group := section.Schema.Properties["group_id"]
	if group == nil {
		t.Fatal("section schema missing group_id property")
	}
	// "all" plus A through G.
	if len(group.Enum) != 8 {
		t.Errorf("group_id enum has %d values, want 8", len(group.Enum))
	}
}
