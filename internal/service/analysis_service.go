// backend-go/internal/service/analysis_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/cache"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/dataset"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/pipeline"
)

// ErrInvalidData is wrapped around the collected validator messages when a
// run is attempted on tables that fail validation.
var ErrInvalidData = errors.New("input data failed validation")

// DefaultScenarioSeed keeps repeated scenario renders comparable when the
// caller does not pass a seed of its own.
const DefaultScenarioSeed = 42

// AnalysisService runs the full pipeline over validated input tables and
// caches results by input digest.
type AnalysisService struct {
	cache    cache.AnalysisCache
	strategy pipeline.MatchingStrategy
}

func NewAnalysisService(cacheImpl cache.AnalysisCache) *AnalysisService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	return &AnalysisService{
		cache:    cacheImpl,
		strategy: pipeline.NewGreedyMatcher(),
	}
}

// AnalyzeTables validates the raw tables, decodes them and runs the pipeline.
// Validation failures come back as ErrInvalidData carrying every collected
// message; the pipeline is never invoked on invalid tables.
func (s *AnalysisService) AnalyzeTables(ctx context.Context, warehouse, orders *dataset.Table) (*domain.AnalysisResult, error) {
	valid, messages := pipeline.Validate(warehouse, orders)
	if !valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidData, strings.Join(messages, "; "))
	}

	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	if err != nil {
		return nil, fmt.Errorf("decode warehouse table: %w", err)
	}
	orderRecords, err := dataset.DecodeOrders(orders)
	if err != nil {
		return nil, fmt.Errorf("decode orders table: %w", err)
	}

	return s.Analyze(ctx, warehouseRecords, orderRecords)
}

// Analyze runs the pipeline over already-decoded records.
func (s *AnalysisService) Analyze(ctx context.Context, warehouse []domain.WarehouseRecord, orders []domain.OrderRecord) (*domain.AnalysisResult, error) {
	key := cache.ResultKey(warehouse, orders, domain.ScenarioParams{})
	if result, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("analysis: cache get failed")
	}

	result, err := s.run(warehouse, orders)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Warn().Err(err).Msg("analysis: cache set failed")
	}
	return result, nil
}

// RunScenario perturbs isolated copies of the inputs and analyzes them. The
// perturbed tables deliberately bypass the validator: a cost perturbation
// below -100% produces negative costs that only re-validation would catch.
func (s *AnalysisService) RunScenario(ctx context.Context, warehouse []domain.WarehouseRecord, orders []domain.OrderRecord, params domain.ScenarioParams) (*domain.AnalysisResult, error) {
	key := cache.ResultKey(warehouse, orders, params)
	if result, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("scenario: cache get failed")
	}

	sim := pipeline.NewSeededSimulator(params.Seed)
	simOrders := sim.PerturbDemand(orders, params.DemandChangePct)
	simWarehouse := sim.PerturbCost(warehouse, params.CostChangePct)

	result, err := s.run(simWarehouse, simOrders)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Warn().Err(err).Msg("scenario: cache set failed")
	}
	return result, nil
}

// CompareScenario computes the unperturbed baseline and the scenario run
// concurrently. Each run is an independent, single-threaded pass over its own
// copies of the inputs.
func (s *AnalysisService) CompareScenario(ctx context.Context, warehouse []domain.WarehouseRecord, orders []domain.OrderRecord, params domain.ScenarioParams) (*domain.ScenarioResult, error) {
	result := &domain.ScenarioResult{Params: params}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		baseline, err := s.Analyze(gctx, warehouse, orders)
		if err != nil {
			return fmt.Errorf("baseline run: %w", err)
		}
		result.Baseline = baseline
		return nil
	})
	g.Go(func() error {
		scenario, err := s.RunScenario(gctx, warehouse, orders, params)
		if err != nil {
			return fmt.Errorf("scenario run: %w", err)
		}
		result.Scenario = scenario
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// InvalidateCache drops every cached analysis result.
func (s *AnalysisService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *AnalysisService) run(warehouse []domain.WarehouseRecord, orders []domain.OrderRecord) (*domain.AnalysisResult, error) {
	demand := pipeline.AggregateDemand(orders)
	pressure := pipeline.ComputePressure(warehouse, demand)
	recommendations := s.strategy.Match(pressure)

	metrics, err := pipeline.SummarizeMetrics(pressure)
	if err != nil {
		return nil, fmt.Errorf("summarize metrics: %w", err)
	}

	return &domain.AnalysisResult{
		Demand:          demand,
		Pressure:        pressure,
		Recommendations: recommendations,
		Metrics:         metrics,
	}, nil
}
