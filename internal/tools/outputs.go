package tools

import (
	"encoding/json"

	"github.com/duracube/kb-server/internal/knowledge"
)

// Output documents. Field order follows the declared shape of each document
// for readability; optional fields are set explicitly from the validated
// input flags and omitted when empty.

// PrinciplesDocument is the result of get_duracube_principles.
type PrinciplesDocument struct {
	TotalPrinciples int                   `json:"total_principles"`
	Principles      []knowledge.Principle `json:"principles"`
	NonNegotiables  json.RawMessage       `json:"non_negotiables"`
	Methodology     json.RawMessage       `json:"methodology"`
	CrossReferences json.RawMessage       `json:"cross_references"`
}

// CorrectionsDocument is the result of get_learned_corrections.
//
// CategorySummaries values are pointers so an absent summary for a requested
// category serializes as an explicit null entry rather than a missing key;
// callers treat null as "no summary available".
type CorrectionsDocument struct {
	Category          string               `json:"category"`
	TotalLearnings    int                  `json:"total_learnings"`
	Learnings         []knowledge.Learning `json:"learnings"`
	DecisionTrees     json.RawMessage      `json:"decision_trees"`
	CategorySummaries map[string]*string   `json:"category_summaries"`
}

// FinanceGuideDocument is the result of get_finance_extraction_guide.
// OutputFormat and JSONTemplate are present only when the caller asks for
// the JSON template.
type FinanceGuideDocument struct {
	Metadata             json.RawMessage                `json:"metadata"`
	BusinessContext      json.RawMessage                `json:"business_context"`
	Audience             json.RawMessage                `json:"audience"`
	ExtractionCategories []knowledge.ExtractionCategory `json:"extraction_categories"`
	Methodology          json.RawMessage                `json:"methodology"`
	EdgeCaseRules        json.RawMessage                `json:"edge_case_rules"`
	ValidationChecklist  json.RawMessage                `json:"validation_checklist"`
	Constraints          json.RawMessage                `json:"constraints"`
	Glossary             json.RawMessage                `json:"glossary"`
	OutputFormat         json.RawMessage                `json:"output_format,omitempty"`
	JSONTemplate         string                         `json:"json_template,omitempty"`
}

// SectionMappingDocument is the result of get_section_principle_mapping.
type SectionMappingDocument struct {
	Metadata              json.RawMessage          `json:"metadata"`
	LargeContractGuidance json.RawMessage          `json:"large_contract_guidance"`
	TotalGroups           int                      `json:"total_groups"`
	SectionGroups         []knowledge.SectionGroup `json:"section_groups"`
	QuickReference        json.RawMessage          `json:"quick_reference"`
	CombinationTemplate   json.RawMessage          `json:"result_combination_template"`
}

// financeJSONTemplate is the literal output skeleton returned with the
// finance-extraction guide. It is hand-authored to show callers the exact
// expected shape; it is not derived from the guide data.
const financeJSONTemplate = `{
  "contract_value": {"subcontract_sum": "", "gst_treatment": "", "pricing_basis": ""},
  "parties": {"contractor_name": "", "contractor_abn": "", "subcontractor_name": "", "subcontractor_abn": ""},
  "payment_terms": {"payment_days": null, "reference_point": "", "interest_rate": ""},
  "payment_schedule": {"reference_date": "", "claim_cutoff": "", "claim_format": ""},
  "retention": {"retention_per_claim": "", "retention_cap": "", "release_first": "", "release_final": ""},
  "required_documentation": {"per_claim_documents": [], "once_off_documents": []},
  "submission_requirements": {"submission_channel": "", "submission_format": "", "invoice_separate": ""},
  "project_manager": {"contact_name": "", "contact_role": "", "contact_email": "", "notices_address": ""},
  "dollar_values": {"values": []}
}`
