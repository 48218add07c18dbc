// Package analyzer fans a single query out to the three analysis
// capabilities of the GraphQ-LLM backend and merges whatever came back into
// one complete AnalysisResult. Capabilities degrade independently; only a
// transport-level failure reaching the backend swaps in the fixed fallback
// analysis.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/resilientapp/graphq-tutor/apimodels"
	"github.com/resilientapp/graphq-tutor/internal/metrics"
	"github.com/resilientapp/graphq-tutor/internal/upstream"
)

// ErrInvalidInput is returned for empty or whitespace-only queries. No
// upstream call is made in that case.
var ErrInvalidInput = errors.New("query is required")

type Analyzer struct {
	client *upstream.Client
	logger *slog.Logger
}

func New(client *upstream.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		client: client,
		logger: logger,
	}
}

// Analyze validates the query, issues the three capability calls
// concurrently, and assembles the merged result once all of them have
// settled. Callers always receive a fully-shaped AnalysisResult unless the
// input itself was invalid.
func (a *Analyzer) Analyze(ctx context.Context, query string) (apimodels.AnalysisResult, error) {
	if strings.TrimSpace(query) == "" {
		return apimodels.AnalysisResult{}, ErrInvalidInput
	}

	var (
		explanation  *upstream.RawExplanation
		optimization *upstream.RawOptimization
		efficiency   *upstream.RawEfficiency
	)

	// Fixed issue order: explain, optimize, estimate. Completions interleave
	// arbitrarily; the merge below runs only after all three settle.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		explanation, err = a.client.Explain(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		optimization, err = a.client.Optimize(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		efficiency, err = a.client.EstimateEfficiency(gctx, query)
		return err
	})

	if err := g.Wait(); err != nil {
		// The backend host itself could not be reached. Serve the complete
		// fallback analysis instead of surfacing partial data.
		a.logger.Warn("analysis backend not available, using fallback", slog.Any("error", err))
		metrics.FallbackServed()
		return fallbackResult(query), nil
	}

	a.recordUnavailable(explanation == nil, optimization == nil, efficiency == nil)

	return apimodels.AnalysisResult{
		Explanation:   normalizeExplanation(explanation),
		Optimizations: normalizeOptimizations(optimization, query),
		Efficiency:    normalizeEfficiency(efficiency),
	}, nil
}

func (a *Analyzer) recordUnavailable(explanation, optimization, efficiency bool) {
	if explanation {
		a.logger.Debug("explanation capability unavailable")
		metrics.CapabilityUnavailable(metrics.CapabilityExplanation)
	}
	if optimization {
		a.logger.Debug("optimization capability unavailable")
		metrics.CapabilityUnavailable(metrics.CapabilityOptimization)
	}
	if efficiency {
		a.logger.Debug("efficiency capability unavailable")
		metrics.CapabilityUnavailable(metrics.CapabilityEfficiency)
	}
}
