package analyzer

import (
	"fmt"
	"strconv"

	"github.com/resilientapp/graphq-tutor/apimodels"
	"github.com/resilientapp/graphq-tutor/internal/upstream"
)

// Defaults substituted during normalization. These strings are part of the
// external contract; the UI renders them verbatim.
const (
	unavailableExplanation = "Explanation service unavailable. Please ensure the analysis backend is running."
	noExplanation          = "No explanation available"
	genericSuggestion      = "Optimization suggestion"
	unknownValue           = "Unknown"

	// The backend provides no confidence signal, so every live suggestion
	// carries this fixed placeholder.
	suggestionConfidence = 0.8
)

// normalizeExplanation maps an explanation payload, or its absence, onto the
// stable contract. Every missing field falls back independently.
func normalizeExplanation(raw *upstream.RawExplanation) apimodels.ExplanationResult {
	if raw == nil {
		return apimodels.ExplanationResult{
			Explanation:     unavailableExplanation,
			Complexity:      apimodels.ComplexityUnknown,
			Recommendations: []string{},
		}
	}

	out := apimodels.ExplanationResult{
		Explanation:     raw.Explanation,
		Complexity:      raw.Complexity,
		Recommendations: raw.Recommendations,
	}
	if out.Explanation == "" {
		out.Explanation = noExplanation
	}
	if out.Complexity == "" {
		out.Complexity = apimodels.ComplexityMedium
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out
}

// normalizeOptimizations maps upstream suggestions onto the contract, in
// upstream order. A suggestion without a rewritten query falls back to the
// original query text.
func normalizeOptimizations(raw *upstream.RawOptimization, query string) []apimodels.OptimizationSuggestion {
	if raw == nil {
		return []apimodels.OptimizationSuggestion{}
	}

	out := make([]apimodels.OptimizationSuggestion, 0, len(raw.Suggestions))
	for _, s := range raw.Suggestions {
		suggestion := apimodels.OptimizationSuggestion{
			Query:       s.OptimizedQuery,
			Explanation: s.Reason,
			Confidence:  suggestionConfidence,
		}
		if suggestion.Query == "" {
			suggestion.Query = query
		}
		if suggestion.Explanation == "" {
			suggestion.Explanation = s.Suggestion
		}
		if suggestion.Explanation == "" {
			suggestion.Explanation = genericSuggestion
		}
		out = append(out, suggestion)
	}
	return out
}

// normalizeEfficiency maps an efficiency payload, or its absence, onto the
// stable contract. Numeric fields are rendered into display units here;
// complexity stays absent when the backend omitted it (the UI treats it as
// optional, unlike the explanation's complexity).
func normalizeEfficiency(raw *upstream.RawEfficiency) apimodels.EfficiencyResult {
	if raw == nil {
		return apimodels.EfficiencyResult{
			Score:           0,
			EstimatedTime:   unknownValue,
			ResourceUsage:   unknownValue,
			Recommendations: []string{},
			Complexity:      apimodels.ComplexityUnknown,
		}
	}

	out := apimodels.EfficiencyResult{
		EstimatedTime:   unknownValue,
		ResourceUsage:   unknownValue,
		Recommendations: raw.Recommendations,
		Complexity:      raw.Complexity,
		SimilarQueries:  raw.SimilarQueries,
	}
	if raw.EfficiencyScore != nil {
		out.Score = *raw.EfficiencyScore
	}
	if raw.EstimatedExecutionTime != nil {
		out.EstimatedTime = formatFloat(*raw.EstimatedExecutionTime) + "ms"
	}
	if raw.EstimatedResourceUsage != nil {
		out.ResourceUsage = fmt.Sprintf("CPU: %s%%, Memory: %sMB",
			formatOptionalFloat(raw.EstimatedResourceUsage.CPU),
			formatOptionalFloat(raw.EstimatedResourceUsage.Memory))
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return "N/A"
	}
	return formatFloat(*f)
}
