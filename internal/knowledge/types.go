package knowledge

import "encoding/json"

// Learning categories. Filters on get_learned_corrections accept these plus
// "all".
const (
	CategorySecurity    = "security"
	CategoryInsurance   = "insurance"
	CategoryDLP         = "dlp"
	CategoryDesign      = "design"
	CategoryMethodology = "methodology"
)

// LearningCategories lists the valid learning categories in filter order.
var LearningCategories = []string{
	CategorySecurity,
	CategoryInsurance,
	CategoryDLP,
	CategoryDesign,
	CategoryMethodology,
}

// SectionGroupIDs lists the valid section group identifiers.
var SectionGroupIDs = []string{"A", "B", "C", "D", "E", "F", "G"}

// PrincipleSet is the commercial-principles document: the ordered principle
// records plus three global metadata blocks served alongside them.
type PrincipleSet struct {
	Metadata        json.RawMessage `json:"metadata"`
	Principles      []Principle     `json:"principles"`
	NonNegotiables  json.RawMessage `json:"non_negotiables"`
	Methodology     json.RawMessage `json:"methodology"`
	CrossReferences json.RawMessage `json:"cross_references"`
}

// Principle is one DuraCube commercial standard used to assess contract
// compliance. DepartureTemplate is example replacement language for a
// non-compliant clause; not every principle carries one.
type Principle struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Standard          string          `json:"standard"`
	RiskLevel         string          `json:"risk_level"`
	SearchTerms       SearchTerms     `json:"search_terms"`
	RedFlags          []string        `json:"red_flags"`
	ComplianceLogic   ComplianceLogic `json:"compliance_logic"`
	NegotiationStance string          `json:"negotiation_stance"`
	DepartureTemplate string          `json:"departure_template,omitempty"`
}

// SearchTerms groups the clause-location vocabulary for a principle.
type SearchTerms struct {
	Primary []string `json:"primary"`
	Related []string `json:"related"`
	Context []string `json:"context,omitempty"`
}

// ComplianceLogic describes how to judge a located clause. The first three
// fields are always present in the source document; the last two are
// optional refinements.
type ComplianceLogic struct {
	CompliantWhen     string `json:"compliant_when"`
	NonCompliantWhen  string `json:"non_compliant_when"`
	NotFoundMeans     string `json:"not_found_means"`
	PartialCompliance string `json:"partial_compliance,omitempty"`
	EscalateWhen      string `json:"escalate_when,omitempty"`
}

// LearningSet is the learned-corrections document.
type LearningSet struct {
	Metadata          json.RawMessage   `json:"metadata"`
	Learnings         []Learning        `json:"learnings"`
	DecisionTrees     json.RawMessage   `json:"decision_trees"`
	CategorySummaries map[string]string `json:"category_summaries"`
}

// Learning is one documented past analysis error and its correction rule.
type Learning struct {
	ID              string          `json:"id"`
	Category        string          `json:"category"`
	Principle       int             `json:"principle,omitempty"`
	Issue           string          `json:"issue"`
	Correction      string          `json:"correction"`
	Rule            string          `json:"rule"`
	Examples        []string        `json:"examples,omitempty"`
	CrossReferences []string        `json:"cross_references,omitempty"`
	DecisionTree    json.RawMessage `json:"decision_tree,omitempty"`
}

// FinanceExtractionGuide is the finance data-point extraction document. The
// surrounding blocks are served verbatim; only ExtractionCategories is ever
// filtered.
type FinanceExtractionGuide struct {
	Metadata             json.RawMessage      `json:"metadata"`
	BusinessContext      json.RawMessage      `json:"business_context"`
	Audience             json.RawMessage      `json:"audience"`
	ExtractionCategories []ExtractionCategory `json:"extraction_categories"`
	Methodology          json.RawMessage      `json:"methodology"`
	EdgeCaseRules        json.RawMessage      `json:"edge_case_rules"`
	ValidationChecklist  json.RawMessage      `json:"validation_checklist"`
	Constraints          json.RawMessage      `json:"constraints"`
	Glossary             json.RawMessage      `json:"glossary"`
	OutputFormat         json.RawMessage      `json:"output_format"`
}

// ExtractionCategory is one of the nine finance data points pulled from a
// contract, with no compliance judgment applied.
type ExtractionCategory struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	SearchTerms     []string          `json:"search_terms"`
	ExtractionRules []string          `json:"extraction_rules"`
	OutputFields    map[string]string `json:"output_fields"`
}

// SectionMappingGuide maps contract section clusters to the principles
// relevant to each, for chunked analysis of oversized contracts.
type SectionMappingGuide struct {
	Metadata              json.RawMessage `json:"metadata"`
	LargeContractGuidance json.RawMessage `json:"large_contract_guidance"`
	SectionGroups         []SectionGroup  `json:"section_groups"`
	QuickReference        json.RawMessage `json:"quick_reference"`
	CombinationTemplate   json.RawMessage `json:"result_combination_template"`
}

// SectionGroup is a named cluster of contract sections. CriticalAlerts is
// only present for groups the source document flags; AnalysisPrompt is only
// surfaced to callers who opt in.
type SectionGroup struct {
	GroupID           string            `json:"group_id"`
	Name              string            `json:"name"`
	TypicalSections   []string          `json:"typical_sections"`
	PageRangeHint     string            `json:"page_range_hint"`
	PrinciplesToCheck []int             `json:"principles_to_check"`
	PrincipleDetails  []PrincipleDetail `json:"principle_details"`
	CriticalAlerts    []string          `json:"critical_alerts,omitempty"`
	AnalysisPrompt    string            `json:"analysis_prompt,omitempty"`
}

// PrincipleDetail is the per-group shorthand for one principle to check.
type PrincipleDetail struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	QuickCheck string `json:"quick_check"`
}
