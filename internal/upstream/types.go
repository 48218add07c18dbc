package upstream

import "encoding/json"

// Raw response shapes of the analysis backend. Every field is optional; the
// zero value means the backend omitted it. Normalization in the analyzer
// package turns these into the stable response contract.

type RawExplanation struct {
	Explanation     string   `json:"explanation"`
	Complexity      string   `json:"complexity"`
	Recommendations []string `json:"recommendations"`
}

type RawOptimization struct {
	Suggestions []RawSuggestion `json:"suggestions"`
}

type RawSuggestion struct {
	OptimizedQuery string `json:"optimizedQuery"`
	Reason         string `json:"reason"`
	Suggestion     string `json:"suggestion"`
}

type RawEfficiency struct {
	EfficiencyScore        *int              `json:"efficiencyScore"`
	EstimatedExecutionTime *float64          `json:"estimatedExecutionTime"`
	EstimatedResourceUsage *RawResourceUsage `json:"estimatedResourceUsage"`
	Recommendations        []string          `json:"recommendations"`
	Complexity             string            `json:"complexity"`
	SimilarQueries         json.RawMessage   `json:"similarQueries"`
}

type RawResourceUsage struct {
	CPU    *float64 `json:"cpu"`
	Memory *float64 `json:"memory"`
}
