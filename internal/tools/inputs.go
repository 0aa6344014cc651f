package tools

import "github.com/duracube/kb-server/internal/knowledge"

// CategoryAll selects every record instead of filtering.
const CategoryAll = "all"

// PrinciplesInput selects the shape of the principles document.
type PrinciplesInput struct {
	IncludeExamples bool `json:"include_examples,omitempty" jsonschema:"Include each principle's departure_template example wording. Default false."`
}

// CorrectionsInput filters the learned-corrections document.
type CorrectionsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Learning category to return, or all. Default all."`
}

// FinanceGuideInput shapes the finance-extraction guide.
type FinanceGuideInput struct {
	IncludeJSONTemplate bool   `json:"include_json_template,omitempty" jsonschema:"Include the output_format block and a literal JSON output template. Default true."`
	Category            string `json:"category,omitempty" jsonschema:"Named extraction category group to return, or all. Default all."`
}

// SectionMappingInput filters the section/principle mapping.
type SectionMappingInput struct {
	GroupID        string `json:"group_id,omitempty" jsonschema:"Section group to return (A-G), or all. Default all."`
	IncludePrompts bool   `json:"include_prompts,omitempty" jsonschema:"Include each group's analysis prompt text. Default true."`
}

// Enumerated values accepted by the inputs above, surfaced in the tool
// schemas.
var (
	correctionCategories = append([]string{CategoryAll}, knowledge.LearningCategories...)

	financeCategories = []string{
		CategoryAll,
		"contract_value",
		"parties",
		"payment",
		"retention",
		"documentation",
		"submission",
		"project_manager",
		"dollar_values",
	}

	sectionGroupIDs = append([]string{CategoryAll}, knowledge.SectionGroupIDs...)
)

// financeCategoryIDs maps each named filter group to the extraction-category
// ids it selects. Lookups that miss (including "all") select the full set;
// an unrecognized value is a lenient fallback, not an error.
var financeCategoryIDs = map[string][]int{
	"contract_value":  {1},
	"parties":         {2},
	"payment":         {3, 4},
	"retention":       {5},
	"documentation":   {6},
	"submission":      {7},
	"project_manager": {8},
	"dollar_values":   {9},
}
