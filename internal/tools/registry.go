package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool descriptor names, the external contract callers dispatch against.
const (
	ToolPrinciples     = "get_duracube_principles"
	ToolCorrections    = "get_learned_corrections"
	ToolOutputFormat   = "get_output_format"
	ToolFinanceGuide   = "get_finance_extraction_guide"
	ToolSectionMapping = "get_section_principle_mapping"
)

// Tool is one exposed operation: its descriptor plus the validated handler.
type Tool struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema

	resolved *jsonschema.Resolved
	handler  func(ctx context.Context, args json.RawMessage) (any, error)
}

// Call validates args against the tool's schema, runs the operation and
// serializes the result document. A schema violation returns a
// *ValidationError carrying the validator's description.
func (t *Tool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	var instance any
	if err := json.Unmarshal(args, &instance); err != nil {
		return "", validationErrorf("invalid arguments for %s: %v", t.Name, err)
	}
	if err := t.resolved.Validate(instance); err != nil {
		return "", validationErrorf("invalid arguments for %s: %v", t.Name, err)
	}

	doc, err := t.handler(ctx, args)
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing %s result: %w", t.Name, err)
	}
	return string(b), nil
}

// Registry holds the fixed set of tools exposed on every transport.
type Registry struct {
	tools  []*Tool
	byName map[string]*Tool
}

// NewRegistry builds the registry for a Kit. Schema construction errors are
// programming errors surfaced at startup.
func NewRegistry(kit *Kit) (*Registry, error) {
	principlesSchema, err := buildSchema[PrinciplesInput](func(s *jsonschema.Schema) {
		s.Properties["include_examples"].Default = json.RawMessage("false")
	})
	if err != nil {
		return nil, fmt.Errorf("schema for %s: %w", ToolPrinciples, err)
	}

	correctionsSchema, err := buildSchema[CorrectionsInput](func(s *jsonschema.Schema) {
		s.Properties["category"].Enum = enumValues(correctionCategories)
		s.Properties["category"].Default = json.RawMessage(`"all"`)
	})
	if err != nil {
		return nil, fmt.Errorf("schema for %s: %w", ToolCorrections, err)
	}

	outputFormatSchema, err := buildSchema[struct{}](nil)
	if err != nil {
		return nil, fmt.Errorf("schema for %s: %w", ToolOutputFormat, err)
	}

	financeSchema, err := buildSchema[FinanceGuideInput](func(s *jsonschema.Schema) {
		s.Properties["include_json_template"].Default = json.RawMessage("true")
		s.Properties["category"].Enum = enumValues(financeCategories)
		s.Properties["category"].Default = json.RawMessage(`"all"`)
	})
	if err != nil {
		return nil, fmt.Errorf("schema for %s: %w", ToolFinanceGuide, err)
	}

	sectionSchema, err := buildSchema[SectionMappingInput](func(s *jsonschema.Schema) {
		s.Properties["group_id"].Enum = enumValues(sectionGroupIDs)
		s.Properties["group_id"].Default = json.RawMessage(`"all"`)
		s.Properties["include_prompts"].Default = json.RawMessage("true")
	})
	if err != nil {
		return nil, fmt.Errorf("schema for %s: %w", ToolSectionMapping, err)
	}

	tools := []*Tool{
		{
			Name: ToolPrinciples,
			Description: "Return all DuraCube commercial principles used to assess contract compliance, " +
				"with red flags, compliance logic and negotiation stances. " +
				"Set include_examples to also get departure template wording.",
			Schema:   principlesSchema.schema,
			resolved: principlesSchema.resolved,
			handler: func(_ context.Context, args json.RawMessage) (any, error) {
				in := PrinciplesInput{}
				if err := json.Unmarshal(args, &in); err != nil {
					return nil, validationErrorf("invalid arguments for %s: %v", ToolPrinciples, err)
				}
				return kit.Principles(in)
			},
		},
		{
			Name: ToolCorrections,
			Description: "Return learned corrections from past contract-review errors, optionally " +
				"filtered by category (security, insurance, dlp, design, methodology). " +
				"Decision trees are always included.",
			Schema:   correctionsSchema.schema,
			resolved: correctionsSchema.resolved,
			handler: func(_ context.Context, args json.RawMessage) (any, error) {
				in := CorrectionsInput{Category: CategoryAll}
				if err := json.Unmarshal(args, &in); err != nil {
					return nil, validationErrorf("invalid arguments for %s: %v", ToolCorrections, err)
				}
				return kit.LearnedCorrections(in)
			},
		},
		{
			Name: ToolOutputFormat,
			Description: "Return the exact CSV output format for the departures schedule, including " +
				"column specifications, example rows and the pre-submission checklist.",
			Schema:   outputFormatSchema.schema,
			resolved: outputFormatSchema.resolved,
			handler: func(_ context.Context, _ json.RawMessage) (any, error) {
				return kit.OutputFormat()
			},
		},
		{
			Name: ToolFinanceGuide,
			Description: "Return the finance data-point extraction guide, optionally filtered to one " +
				"named category group (contract_value, parties, payment, retention, documentation, " +
				"submission, project_manager, dollar_values). " +
				"Set include_json_template for the expected output skeleton.",
			Schema:   financeSchema.schema,
			resolved: financeSchema.resolved,
			handler: func(_ context.Context, args json.RawMessage) (any, error) {
				in := FinanceGuideInput{IncludeJSONTemplate: true, Category: CategoryAll}
				if err := json.Unmarshal(args, &in); err != nil {
					return nil, validationErrorf("invalid arguments for %s: %v", ToolFinanceGuide, err)
				}
				return kit.FinanceExtractionGuide(in)
			},
		},
		{
			Name: ToolSectionMapping,
			Description: "Return the section-to-principle mapping for chunked review of oversized " +
				"contracts, optionally filtered to one section group (A-G). " +
				"Set include_prompts to false to omit the per-group analysis prompts.",
			Schema:   sectionSchema.schema,
			resolved: sectionSchema.resolved,
			handler: func(_ context.Context, args json.RawMessage) (any, error) {
				in := SectionMappingInput{GroupID: CategoryAll, IncludePrompts: true}
				if err := json.Unmarshal(args, &in); err != nil {
					return nil, validationErrorf("invalid arguments for %s: %v", ToolSectionMapping, err)
				}
				return kit.SectionPrincipleMapping(in)
			},
		},
	}

	byName := make(map[string]*Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	return &Registry{tools: tools, byName: byName}, nil
}

// Tools returns the tools in registration order.
func (r *Registry) Tools() []*Tool { return r.tools }

// Lookup finds a tool by name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// builtSchema pairs a schema with its resolved validator.
type builtSchema struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// buildSchema generates the schema for an input type, applies enum/default
// refinements and resolves it for validation.
func buildSchema[T any](refine func(*jsonschema.Schema)) (builtSchema, error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return builtSchema{}, err
	}
	if refine != nil {
		refine(s)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return builtSchema{}, err
	}
	return builtSchema{schema: s, resolved: resolved}, nil
}

func enumValues(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
