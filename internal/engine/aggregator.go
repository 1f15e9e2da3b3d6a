package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// BatchOptions tunes a batch run.
type BatchOptions struct {
	// Concurrency bounds the number of products analyzed in parallel.
	// Values below 1 fall back to 4.
	Concurrency int
}

const defaultBatchConcurrency = 4

// AnalyzeBatch runs Analyze over a product set, fail-soft: a product whose
// computation fails is recorded in Failures and the batch continues. When
// ctx is cancelled the unscheduled remainder is left unprocessed rather
// than reported as failed.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []ProductInputs, opts BatchOptions) BatchResult {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}

	var (
		mu       sync.Mutex
		results  = make([]ProductAnalysis, 0, len(inputs))
		failures []ProductFailure
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		in := in
		g.Go(func() error {
			analysis, err := a.Analyze(in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().
					Err(err).
					Str("sku", in.Product.SKU).
					Msg("replenishment analysis skipped product")
				failures = append(failures, ProductFailure{
					ProductID: in.Product.ID,
					SKU:       in.Product.SKU,
					Err:       err,
					Reason:    err.Error(),
				})
				// Per-product failures never abort the batch.
				return nil
			}
			results = append(results, analysis)
			return nil
		})
	}

	// Workers only ever return nil; Wait just joins them.
	_ = g.Wait()

	return BatchResult{Results: results, Failures: failures}
}

// SortByRisk orders analyses most-at-risk first: urgency tier ascending,
// then days remaining ascending. Products without a projection (no
// consumption) sort last within their tier.
func SortByRisk(results []ProductAnalysis) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Stockout, results[j].Stockout
		if a.Urgency.Rank() != b.Urgency.Rank() {
			return a.Urgency.Rank() < b.Urgency.Rank()
		}
		switch {
		case a.DaysRemaining == nil:
			return false
		case b.DaysRemaining == nil:
			return true
		default:
			return *a.DaysRemaining < *b.DaysRemaining
		}
	})
}

// SortByScore orders analyses by total priority score descending, breaking
// ties on annual demand descending.
func SortByScore(results []ProductAnalysis) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score.TotalScore != results[j].Score.TotalScore {
			return results[i].Score.TotalScore > results[j].Score.TotalScore
		}
		return results[i].Demand.AnnualDemand > results[j].Demand.AnnualDemand
	})
}
