package tools

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/duracube/kb-server/internal/knowledge"
)

// Kit bundles the query operations over one knowledge store handle.
//
// Kit is safe for concurrent use by multiple goroutines.
type Kit struct {
	store  *knowledge.Store
	logger *slog.Logger
}

// NewKit creates a Kit. logger may be nil, in which case slog.Default() is
// used.
func NewKit(store *knowledge.Store, logger *slog.Logger) *Kit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kit{store: store, logger: logger}
}

// Principles returns every principle in document order plus the global
// metadata blocks. Departure templates are included only when the caller
// opts in, and only for principles that carry one in the source document.
func (k *Kit) Principles(in PrinciplesInput) (*PrinciplesDocument, error) {
	set, err := k.store.Principles()
	if err != nil {
		return nil, err
	}

	principles := slices.Clone(set.Principles)
	if !in.IncludeExamples {
		for i := range principles {
			principles[i].DepartureTemplate = ""
		}
	}

	return &PrinciplesDocument{
		TotalPrinciples: len(principles),
		Principles:      principles,
		NonNegotiables:  set.NonNegotiables,
		Methodology:     set.Methodology,
		CrossReferences: set.CrossReferences,
	}, nil
}

// LearnedCorrections returns learnings filtered by category, preserving
// document order. Decision trees are always returned unfiltered. The
// summaries map is the full map for "all", otherwise a single-entry map
// whose value is null when the source has no summary for that category.
func (k *Kit) LearnedCorrections(in CorrectionsInput) (*CorrectionsDocument, error) {
	set, err := k.store.Learnings()
	if err != nil {
		return nil, err
	}

	learnings := make([]knowledge.Learning, 0, len(set.Learnings))
	for _, l := range set.Learnings {
		if in.Category == CategoryAll || l.Category == in.Category {
			learnings = append(learnings, l)
		}
	}

	summaries := make(map[string]*string)
	if in.Category == CategoryAll {
		for c, s := range set.CategorySummaries {
			summaries[c] = &s
		}
	} else if s, ok := set.CategorySummaries[in.Category]; ok {
		summaries[in.Category] = &s
	} else {
		summaries[in.Category] = nil
	}

	return &CorrectionsDocument{
		Category:          in.Category,
		TotalLearnings:    len(learnings),
		Learnings:         learnings,
		DecisionTrees:     set.DecisionTrees,
		CategorySummaries: summaries,
	}, nil
}

// OutputFormat returns the output-format spec verbatim.
func (k *Kit) OutputFormat() (json.RawMessage, error) {
	return k.store.OutputFormat()
}

// FinanceExtractionGuide returns the finance guide with extraction
// categories filtered to the ids mapped from the named category group. A
// category with no mapping (including "all") selects all nine categories.
func (k *Kit) FinanceExtractionGuide(in FinanceGuideInput) (*FinanceGuideDocument, error) {
	guide, err := k.store.FinanceGuide()
	if err != nil {
		return nil, err
	}

	var categories []knowledge.ExtractionCategory
	if ids, ok := financeCategoryIDs[in.Category]; ok {
		categories = make([]knowledge.ExtractionCategory, 0, len(ids))
		for _, c := range guide.ExtractionCategories {
			if slices.Contains(ids, c.ID) {
				categories = append(categories, c)
			}
		}
	} else {
		if in.Category != CategoryAll {
			k.logger.Debug("unknown finance category, returning all", "category", in.Category)
		}
		categories = slices.Clone(guide.ExtractionCategories)
	}

	doc := &FinanceGuideDocument{
		Metadata:             guide.Metadata,
		BusinessContext:      guide.BusinessContext,
		Audience:             guide.Audience,
		ExtractionCategories: categories,
		Methodology:          guide.Methodology,
		EdgeCaseRules:        guide.EdgeCaseRules,
		ValidationChecklist:  guide.ValidationChecklist,
		Constraints:          guide.Constraints,
		Glossary:             guide.Glossary,
	}
	if in.IncludeJSONTemplate {
		doc.OutputFormat = guide.OutputFormat
		doc.JSONTemplate = financeJSONTemplate
	}
	return doc, nil
}

// SectionPrincipleMapping returns section groups filtered by group id.
// Critical alerts appear only where the source group defines them; analysis
// prompts only when the caller opts in. The surrounding guidance blocks are
// always returned unfiltered.
func (k *Kit) SectionPrincipleMapping(in SectionMappingInput) (*SectionMappingDocument, error) {
	guide, err := k.store.SectionMapping()
	if err != nil {
		return nil, err
	}

	groups := make([]knowledge.SectionGroup, 0, len(guide.SectionGroups))
	for _, g := range guide.SectionGroups {
		if in.GroupID != CategoryAll && g.GroupID != in.GroupID {
			continue
		}
		if !in.IncludePrompts {
			g.AnalysisPrompt = ""
		}
		groups = append(groups, g)
	}

	return &SectionMappingDocument{
		Metadata:              guide.Metadata,
		LargeContractGuidance: guide.LargeContractGuidance,
		TotalGroups:           len(groups),
		SectionGroups:         groups,
		QuickReference:        guide.QuickReference,
		CombinationTemplate:   guide.CombinationTemplate,
	}, nil
}
