package catalog

import (
	"sort"

	"freemodels-server/services/catalog-api/internal/utils/functional"

	"gorm.io/gorm"
)

// UseCase is a capability tag a caller can filter the catalog by.
type UseCase string

const (
	UseCaseChat        UseCase = "chat"
	UseCaseVision      UseCase = "vision"
	UseCaseTools       UseCase = "tools"
	UseCaseLongContext UseCase = "longContext"
	UseCaseReasoning   UseCase = "reasoning"
)

// SortKey selects the score a model list is ordered by.
type SortKey string

const (
	SortContextLength SortKey = "contextLength"
	SortMaxOutput     SortKey = "maxOutput"
	SortCapable       SortKey = "capable"
	SortLeastIssues   SortKey = "leastIssues"
	SortNewest        SortKey = "newest"

	DefaultSortKey = SortContextLength
)

const (
	// ModalityTextToText is the upstream sentinel for plain chat models.
	ModalityTextToText = "text->text"
	// LongContextMinTokens is the context window a model needs to count as
	// long-context.
	LongContextMinTokens = 100_000
)

// UseCaseCriterion defines one capability tag as data: the in-memory predicate
// and the SQL scope are derived from the same entry so the two execution paths
// cannot drift apart.
type UseCaseCriterion struct {
	Match func(*Model) bool
	Scope func(*gorm.DB) *gorm.DB
}

// SortCriterion defines one sort key: an in-memory score plus the SQL ORDER BY
// fragment. An empty OrderExpr means the key can only be evaluated in-process
// (its score depends on data joined outside the models table).
type SortCriterion struct {
	Score     func(*Model) float64
	Ascending bool
	OrderExpr string
}

var UseCaseCriteria = map[UseCase]UseCaseCriterion{
	UseCaseChat: {
		Match: func(m *Model) bool {
			return m.Modality == ModalityTextToText || functional.Contains(m.OutputModalities, "text")
		},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where(`modality = ? OR output_modalities @> '"text"'::jsonb`, ModalityTextToText)
		},
	},
	UseCaseVision: {
		Match: func(m *Model) bool {
			return functional.Contains(m.InputModalities, "image")
		},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where(`input_modalities @> '"image"'::jsonb`)
		},
	},
	UseCaseTools: {
		Match: func(m *Model) bool {
			return functional.Contains(m.SupportedParameters, "tools")
		},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where(`supported_parameters @> '"tools"'::jsonb`)
		},
	},
	UseCaseLongContext: {
		Match: func(m *Model) bool {
			return m.ContextLength >= LongContextMinTokens
		},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("context_length >= ?", LongContextMinTokens)
		},
	},
	UseCaseReasoning: {
		Match: func(m *Model) bool {
			return functional.Contains(m.SupportedParameters, "reasoning") ||
				functional.Contains(m.SupportedParameters, "include_reasoning")
		},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where(`supported_parameters @> '"reasoning"'::jsonb OR supported_parameters @> '"include_reasoning"'::jsonb`)
		},
	},
}

var SortCriteria = map[SortKey]SortCriterion{
	SortContextLength: {
		Score:     func(m *Model) float64 { return float64(m.ContextLength) },
		OrderExpr: "context_length DESC",
	},
	SortMaxOutput: {
		Score:     func(m *Model) float64 { return float64(m.MaxCompletionTokens) },
		OrderExpr: "max_completion_tokens DESC",
	},
	SortCapable: {
		Score:     func(m *Model) float64 { return float64(len(m.SupportedParameters)) },
		OrderExpr: "jsonb_array_length(supported_parameters) DESC",
	},
	SortLeastIssues: {
		Score:     func(m *Model) float64 { return float64(m.IssueCount) },
		Ascending: true,
	},
	SortNewest: {
		Score: func(m *Model) float64 {
			if m.UpstreamCreatedAt == nil {
				return 0
			}
			return float64(m.UpstreamCreatedAt.UnixMilli())
		},
		OrderExpr: "upstream_created_at DESC NULLS LAST",
	},
}

// ParseUseCases maps raw tag strings to known use cases; unrecognized tags are
// silently dropped.
func ParseUseCases(raw []string) []UseCase {
	useCases := make([]UseCase, 0, len(raw))
	for _, tag := range raw {
		uc := UseCase(tag)
		if _, ok := UseCaseCriteria[uc]; ok {
			useCases = append(useCases, uc)
		}
	}
	return useCases
}

// ParseSortKey maps a raw sort token to a known key, defaulting rather than
// erroring on unknown input.
func ParseSortKey(raw string) SortKey {
	key := SortKey(raw)
	if _, ok := SortCriteria[key]; ok {
		return key
	}
	return DefaultSortKey
}

// FilterModelsByUseCase keeps models matching every requested tag (AND
// semantics). Nil-field models never match; they never panic either.
func FilterModelsByUseCase(models []*Model, useCases []UseCase) []*Model {
	if len(useCases) == 0 {
		return models
	}
	return functional.Filter(models, func(m *Model) bool {
		for _, uc := range useCases {
			criterion, ok := UseCaseCriteria[uc]
			if !ok || !criterion.Match(m) {
				return false
			}
		}
		return true
	})
}

// SortModels returns models ordered by the criterion score, descending unless
// the key says otherwise, with context length descending as tie-breaker. The
// input slice is not modified.
func SortModels(models []*Model, key SortKey) []*Model {
	criterion, ok := SortCriteria[key]
	if !ok {
		criterion = SortCriteria[DefaultSortKey]
	}

	sorted := make([]*Model, len(models))
	copy(sorted, models)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := criterion.Score(sorted[i]), criterion.Score(sorted[j])
		if a != b {
			if criterion.Ascending {
				return a < b
			}
			return a > b
		}
		return sorted[i].ContextLength > sorted[j].ContextLength
	})
	return sorted
}
