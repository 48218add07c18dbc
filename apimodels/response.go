package apimodels

import "encoding/json"

// Complexity levels reported by the analysis backend.
const (
	ComplexityLow     = "low"
	ComplexityMedium  = "medium"
	ComplexityHigh    = "high"
	ComplexityUnknown = "unknown"
)

// ExplanationResult is the normalized natural-language explanation of a query.
type ExplanationResult struct {
	Explanation     string   `json:"explanation"`
	Complexity      string   `json:"complexity"`
	Recommendations []string `json:"recommendations"`
}

// OptimizationSuggestion is one rewrite proposed by the optimization service.
// Ordering from upstream is relevance-ranked and preserved as-is.
type OptimizationSuggestion struct {
	Query       string  `json:"query"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

// EfficiencyResult is the normalized performance estimate for a query.
// Complexity is optional here, unlike ExplanationResult: the UI renders it
// only when the backend supplied one.
type EfficiencyResult struct {
	Score           int             `json:"score"`
	EstimatedTime   string          `json:"estimatedTime"`
	ResourceUsage   string          `json:"resourceUsage"`
	Recommendations []string        `json:"recommendations"`
	Complexity      string          `json:"complexity,omitempty"`
	SimilarQueries  json.RawMessage `json:"similarQueries,omitempty"`
}

// AnalysisResult is the stable contract returned for every analyzed query.
// All three fields are always present and well-formed, regardless of how
// many upstream capabilities were reachable.
type AnalysisResult struct {
	Explanation   ExplanationResult        `json:"explanation"`
	Optimizations []OptimizationSuggestion `json:"optimizations"`
	Efficiency    EfficiencyResult         `json:"efficiency"`
}
