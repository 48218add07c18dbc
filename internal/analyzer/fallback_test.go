package analyzer

import (
	"reflect"
	"testing"
)

func TestFallbackResultDeterministic(t *testing.T) {
	query := "{ hero { name } }"
	if !reflect.DeepEqual(fallbackResult(query), fallbackResult(query)) {
		t.Fatal("fallback must be deterministic for a given query")
	}
}

func TestFallbackResultShape(t *testing.T) {
	query := `{ getTransaction(id: "123") { asset } }`
	got := fallbackResult(query)

	if got.Efficiency.Score != fallbackScore {
		t.Fatalf("unexpected score: %d", got.Efficiency.Score)
	}
	if got.Efficiency.EstimatedTime != "< 10ms" {
		t.Fatalf("unexpected estimated time: %q", got.Efficiency.EstimatedTime)
	}
	if got.Efficiency.Complexity != "" {
		t.Fatalf("fallback efficiency carries no complexity, got %q", got.Efficiency.Complexity)
	}
	if len(got.Explanation.Recommendations) != 2 {
		t.Fatalf("unexpected explanation recommendations: %#v", got.Explanation.Recommendations)
	}
	if len(got.Optimizations) != 1 {
		t.Fatalf("fallback carries exactly one suggestion: %#v", got.Optimizations)
	}
	if got.Optimizations[0].Query != query {
		t.Fatalf("fallback suggestion echoes the original query, got %q", got.Optimizations[0].Query)
	}
	if got.Optimizations[0].Confidence != fallbackConfidence {
		t.Fatalf("unexpected confidence: %v", got.Optimizations[0].Confidence)
	}
}
