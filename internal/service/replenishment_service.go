package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/replenish-engine/internal/cache"
	"github.com/andresuchdata/replenish-engine/internal/config"
	"github.com/andresuchdata/replenish-engine/internal/domain"
	"github.com/andresuchdata/replenish-engine/internal/engine"
	"github.com/andresuchdata/replenish-engine/internal/repository"
)

// View names used as cache key namespaces.
const (
	viewBatch = "batch"
)

// RiskSummary is the tier-count rollup for dashboards and digests.
type RiskSummary struct {
	Total        int            `json:"total"`
	ByUrgency    map[string]int `json:"by_urgency"`
	BelowReorder int            `json:"below_reorder"`
	Failures     int            `json:"failures"`
}

// ReplenishmentService loads a consistent input snapshot, runs the
// analytics engine over it and shapes the sorted consumer views.
type ReplenishmentService struct {
	repo     repository.ReplenishmentRepository
	cache    cache.ReportCache
	analyzer *engine.Analyzer
	cfg      config.EngineConfig
}

func NewReplenishmentService(repo repository.ReplenishmentRepository, cacheImpl cache.ReportCache, cfg config.EngineConfig) *ReplenishmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReplenishmentService{
		repo:     repo,
		cache:    cacheImpl,
		analyzer: engine.NewAnalyzer(),
		cfg:      cfg,
	}
}

// loadInputs reads the product set plus a year of sale history and the
// preferred supplier links, grouped per product.
func (s *ReplenishmentService) loadInputs(ctx context.Context, filter domain.AnalysisFilter) ([]engine.ProductInputs, error) {
	if filter.Limit <= 0 && s.cfg.MaxProducts > 0 {
		// Callers needing bounded latency cap the catalog size; the
		// remainder is skipped, not failed.
		filter.Limit = s.cfg.MaxProducts
	}

	products, err := s.repo.ListEligibleProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	since := time.Now().AddDate(0, 0, -engine.DemandWindowDays)
	movements, err := s.repo.SaleMovementsSince(ctx, ids, since)
	if err != nil {
		return nil, fmt.Errorf("load sale movements: %w", err)
	}

	links, err := s.repo.PreferredSupplierLinks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load supplier links: %w", err)
	}

	movementsByProduct := make(map[int64][]domain.StockMovement, len(products))
	for _, m := range movements {
		movementsByProduct[m.ProductID] = append(movementsByProduct[m.ProductID], m)
	}

	linksByProduct := make(map[int64][]domain.SupplierLink, len(products))
	for _, l := range links {
		linksByProduct[l.ProductID] = append(linksByProduct[l.ProductID], l)
	}

	inputs := make([]engine.ProductInputs, len(products))
	for i, p := range products {
		inputs[i] = engine.ProductInputs{
			Product:   p,
			Movements: movementsByProduct[p.ID],
			Links:     linksByProduct[p.ID],
		}
	}

	return inputs, nil
}

// analyzeBatch computes (or retrieves from cache) the full batch for the
// filter's product set.
func (s *ReplenishmentService) analyzeBatch(ctx context.Context, filter domain.AnalysisFilter) (*engine.BatchResult, error) {
	if cached, ok, err := s.cache.Get(ctx, viewBatch, filter); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("replenishment: cache get failed")
	}

	inputs, err := s.loadInputs(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := s.analyzer.AnalyzeBatch(ctx, inputs, engine.BatchOptions{
		Concurrency: s.cfg.BatchConcurrency,
	})

	if err := s.cache.Set(ctx, viewBatch, filter, &result); err != nil {
		log.Warn().Err(err).Msg("replenishment: cache set failed")
	}

	return &result, nil
}

// GetReorderSuggestions returns products at or below their reorder point,
// highest priority score first, with the recommended order quantity and
// value filled in.
func (s *ReplenishmentService) GetReorderSuggestions(ctx context.Context, filter domain.AnalysisFilter) ([]engine.ProductAnalysis, []engine.ProductFailure, error) {
	limit := filter.Limit
	filter.Limit = 0

	batch, err := s.analyzeBatch(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	suggestions := make([]engine.ProductAnalysis, 0, len(batch.Results))
	for _, r := range batch.Results {
		if r.Reorder.ShouldOrder {
			suggestions = append(suggestions, r)
		}
	}

	engine.SortByScore(suggestions)
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions, batch.Failures, nil
}

// GetStockoutRisks returns the risk view: urgency ascending, then days
// remaining ascending, optionally restricted to one tier.
func (s *ReplenishmentService) GetStockoutRisks(ctx context.Context, filter domain.AnalysisFilter) ([]engine.ProductAnalysis, []engine.ProductFailure, error) {
	limit := filter.Limit
	filter.Limit = 0
	urgency := engine.Urgency(filter.Urgency)
	// The tier filter is applied in memory; keep it out of the cache key.
	filter.Urgency = ""

	batch, err := s.analyzeBatch(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	risks := make([]engine.ProductAnalysis, 0, len(batch.Results))
	for _, r := range batch.Results {
		if urgency.Valid() && r.Stockout.Urgency != urgency {
			continue
		}
		risks = append(risks, r)
	}

	engine.SortByRisk(risks)
	if limit > 0 && len(risks) > limit {
		risks = risks[:limit]
	}

	return risks, batch.Failures, nil
}

// GetProductAnalysis computes the full tuple for a single product.
func (s *ReplenishmentService) GetProductAnalysis(ctx context.Context, productID int64) (*engine.ProductAnalysis, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -engine.DemandWindowDays)
	movements, err := s.repo.SaleMovementsSince(ctx, []int64{productID}, since)
	if err != nil {
		return nil, fmt.Errorf("load sale movements: %w", err)
	}

	links, err := s.repo.PreferredSupplierLinks(ctx, []int64{productID})
	if err != nil {
		return nil, fmt.Errorf("load supplier links: %w", err)
	}

	analysis, err := s.analyzer.Analyze(engine.ProductInputs{
		Product:   product,
		Movements: movements,
		Links:     links,
	})
	if err != nil {
		return nil, err
	}

	return &analysis, nil
}

// GetSummary rolls the batch up into urgency tier counts.
func (s *ReplenishmentService) GetSummary(ctx context.Context, filter domain.AnalysisFilter) (*RiskSummary, error) {
	batch, err := s.analyzeBatch(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &RiskSummary{
		Total:     len(batch.Results),
		ByUrgency: make(map[string]int),
		Failures:  len(batch.Failures),
	}
	for _, r := range batch.Results {
		summary.ByUrgency[string(r.Stockout.Urgency)]++
		if r.Reorder.ShouldOrder {
			summary.BelowReorder++
		}
	}

	return summary, nil
}

// RunDigest computes the full-catalog batch for the daily digest, bypassing
// the cache so the snapshot is fresh.
func (s *ReplenishmentService) RunDigest(ctx context.Context) (*engine.BatchResult, error) {
	inputs, err := s.loadInputs(ctx, domain.AnalysisFilter{})
	if err != nil {
		return nil, err
	}

	result := s.analyzer.AnalyzeBatch(ctx, inputs, engine.BatchOptions{
		Concurrency: s.cfg.BatchConcurrency,
	})
	engine.SortByRisk(result.Results)

	log.Info().
		Int("products", len(result.Results)).
		Int("failures", len(result.Failures)).
		Msg("replenishment digest computed")

	return &result, nil
}
