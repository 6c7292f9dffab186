package calculation

import (
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultProjection is built from the built-in tables, which are known to be valid.
var defaultProjection = mustProjectionEngine(domain.VictoriaRules2024())

func mustProjectionEngine(rules domain.JurisdictionRules) *ProjectionEngine {
	pe, err := NewProjectionEngine(rules)
	if err != nil {
		panic(err)
	}
	return pe
}

// ComputeLandTax returns the annual land tax on landValue under the default tables.
func ComputeLandTax(landValue decimal.Decimal) decimal.Decimal {
	return defaultProjection.LandTax.Calculate(landValue)
}

// ComputeStampDuty returns the payable stamp duty under the default tables.
func ComputeStampDuty(purchasePrice decimal.Decimal, isFirstTimeBuyer bool) decimal.Decimal {
	return defaultProjection.StampDuty.Calculate(purchasePrice, isFirstTimeBuyer)
}

// ComputeMonthlyMortgagePayment returns the level monthly payment. termYears <= 0
// uses the default loan term.
func ComputeMonthlyMortgagePayment(principal, annualRatePct decimal.Decimal, termYears int) decimal.Decimal {
	return defaultProjection.Amortization.MonthlyPayment(principal, annualRatePct, termYears)
}

// ComputeNetMonthlyCashFlow returns the net monthly cash flow of a rented property.
func ComputeNetMonthlyCashFlow(weeklyRent, monthlyPayment, annualMaintenance, annualLandTax, annualInsurance decimal.Decimal) decimal.Decimal {
	return defaultProjection.CashFlow.NetMonthlyCashFlow(weeklyRent, monthlyPayment, annualMaintenance, annualLandTax, annualInsurance)
}

// GenerateProjection projects inputs under the default tables.
func GenerateProjection(inputs domain.ScenarioInputs) (domain.ProjectionResult, error) {
	return defaultProjection.Generate(inputs)
}
