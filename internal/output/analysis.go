package output

import (
	"sort"

	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the scenario most favourable to buying.
type Recommendation struct {
	ScenarioName      string
	PreferredStrategy string
	PropertyAdvantage decimal.Decimal
	BreakEvenYear     int
}

// RankScenarios orders scenarios by property advantage, largest first. Ties keep name order.
func RankScenarios(results *domain.ScenarioComparison) []domain.ScenarioSummary {
	ranked := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ai, aj := ranked[i].Outcome.PropertyAdvantage, ranked[j].Outcome.PropertyAdvantage
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// AnalyzeScenarios picks the scenario with the largest property advantage.
// Extracted from embedded console logic for testability.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	ranked := RankScenarios(results)
	if len(ranked) == 0 {
		return Recommendation{}
	}
	best := ranked[0]
	return Recommendation{
		ScenarioName:      best.Name,
		PreferredStrategy: best.Outcome.PreferredStrategy,
		PropertyAdvantage: best.Outcome.PropertyAdvantage,
		BreakEvenYear:     best.Outcome.BreakEvenYear,
	}
}

// sortedByName returns a copy of the scenarios in name order.
func sortedByName(results *domain.ScenarioComparison) []domain.ScenarioSummary {
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios
}
