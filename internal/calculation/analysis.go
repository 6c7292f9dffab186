package calculation

import (
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyzeOutcome compares final equities and finds the break-even year.
func AnalyzeOutcome(projection domain.ProjectionResult) domain.Outcome {
	if len(projection) == 0 {
		return domain.Outcome{PreferredStrategy: domain.StrategyEven}
	}
	final := projection.Final()
	advantage := final.HouseEquity.Sub(final.FundEquity)

	outcome := domain.Outcome{
		FinalHouseEquity:  final.HouseEquity,
		FinalFundEquity:   final.FundEquity,
		PropertyAdvantage: advantage,
		PreferredStrategy: domain.StrategyEven,
	}
	switch advantage.Sign() {
	case 1:
		outcome.PreferredStrategy = domain.StrategyProperty
	case -1:
		outcome.PreferredStrategy = domain.StrategyFund
	}

	for _, p := range projection {
		if p.HouseEquity.GreaterThan(p.FundEquity) {
			outcome.BreakEvenYear = p.Year
			break
		}
	}
	return outcome
}

// rankScenarios returns the scenarios with the largest property advantage and
// the largest fund advantage. Empty names when there is no such scenario.
func rankScenarios(scenarios []domain.ScenarioSummary) (bestProperty, bestFund string) {
	var maxAdvantage, minAdvantage decimal.Decimal
	for _, sc := range scenarios {
		adv := sc.Outcome.PropertyAdvantage
		if adv.IsPositive() && (bestProperty == "" || adv.GreaterThan(maxAdvantage)) {
			bestProperty, maxAdvantage = sc.Name, adv
		}
		if adv.IsNegative() && (bestFund == "" || adv.LessThan(minAdvantage)) {
			bestFund, minAdvantage = sc.Name, adv
		}
	}
	return bestProperty, bestFund
}
