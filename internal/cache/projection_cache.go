package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "rentvest:summary:"

// Stats counts cache activity since creation.
type Stats struct {
	Hits         int64 `json:"hits"`
	Misses       int64 `json:"misses"`
	Computations int64 `json:"computations"`
	StoreErrors  int64 `json:"store_errors"`
}

// ProjectionCache memoizes scenario summaries keyed on the full input tuple
// and the engine's rules. Concurrent requests for the same key share one
// computation. Store failures are logged and never fail a request.
type ProjectionCache struct {
	engine *calculation.CalculationEngine
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
	rules  string

	hits, misses, computations, storeErrors atomic.Int64
}

// NewProjectionCache wraps engine with store. A nil store uses a MemoryStore.
func NewProjectionCache(engine *calculation.CalculationEngine, store Store, ttl time.Duration, logger *zap.Logger) *ProjectionCache {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectionCache{
		engine: engine,
		store:  store,
		ttl:    ttl,
		logger: logger,
		rules:  engine.Rules().Fingerprint(),
	}
}

// Key returns the store key for inputs under the cache's rules.
func (pc *ProjectionCache) Key(inputs domain.ScenarioInputs) string {
	h := xxhash.New()
	_, _ = h.WriteString(pc.rules)
	for _, d := range []fmt.Stringer{
		inputs.PropertyAppreciationRate, inputs.FundReturnRate, inputs.RentGrowthRate,
		inputs.MortgageInterestRate, inputs.PurchasePrice, inputs.DownPayment,
		inputs.WeeklyRentIncome, inputs.AnnualMaintenanceCost, inputs.AnnualInsuranceCost,
	} {
		_, _ = h.WriteString("|")
		_, _ = h.WriteString(d.String())
	}
	_, _ = h.WriteString("|" + strconv.FormatBool(inputs.IsFirstTimeBuyer))
	return keyPrefix + strconv.FormatUint(h.Sum64(), 16)
}

// Summary returns the summary for scenario, computing it at most once per key.
func (pc *ProjectionCache) Summary(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := pc.Key(scenario.Inputs)

	if cached, ok := pc.load(ctx, key); ok {
		pc.hits.Add(1)
		return withName(cached, scenario.Name), nil
	}
	pc.misses.Add(1)

	// The shared computation outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := pc.group.Do(key, func() (any, error) {
		if cached, ok := pc.load(shared, key); ok {
			return cached, nil
		}
		pc.computations.Add(1)
		summary, err := pc.engine.RunScenario(shared, scenario)
		if err != nil {
			return nil, err
		}
		pc.save(shared, key, summary)
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return withName(v.(*domain.ScenarioSummary), scenario.Name), nil
}

// Stats returns a snapshot of the counters.
func (pc *ProjectionCache) Stats() Stats {
	return Stats{
		Hits:         pc.hits.Load(),
		Misses:       pc.misses.Load(),
		Computations: pc.computations.Load(),
		StoreErrors:  pc.storeErrors.Load(),
	}
}

func (pc *ProjectionCache) load(ctx context.Context, key string) (*domain.ScenarioSummary, bool) {
	data, ok, err := pc.store.Get(ctx, key)
	if err != nil {
		pc.storeErrors.Add(1)
		pc.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var summary domain.ScenarioSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		pc.storeErrors.Add(1)
		pc.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &summary, true
}

func (pc *ProjectionCache) save(ctx context.Context, key string, summary *domain.ScenarioSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		pc.logger.Error("failed to encode summary", zap.String("key", key), zap.Error(err))
		return
	}
	if err := pc.store.Set(ctx, key, data, pc.ttl); err != nil {
		pc.storeErrors.Add(1)
		pc.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	pc.logger.Debug("cached summary", zap.String("key", key), zap.Int("bytes", len(data)))
}

// withName returns a copy of s carrying the caller's scenario name.
func withName(s *domain.ScenarioSummary, name string) *domain.ScenarioSummary {
	out := *s
	out.Name = name
	out.Projection = append(domain.ProjectionResult(nil), s.Projection...)
	return &out
}
