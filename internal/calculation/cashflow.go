package calculation

import (
	money "github.com/rentvest/property-vs-fund/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CashFlowCalculator nets rental income against the costs of holding a property.
//
// Monthly and annual rent are derived from the weekly figure with two separate
// constants (average weeks per month, weeks per year). They are not reciprocal:
// WeeksPerMonth*12 differs slightly from WeeksPerYear.
type CashFlowCalculator struct {
	WeeksPerMonth decimal.Decimal
	WeeksPerYear  decimal.Decimal
}

// MonthlyRent converts weekly rent to a monthly figure.
func (cfc CashFlowCalculator) MonthlyRent(weeklyRent decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(weeklyRent).FromWeekly(cfc.WeeksPerMonth).Decimal
}

// AnnualRent converts weekly rent to an annual figure.
func (cfc CashFlowCalculator) AnnualRent(weeklyRent decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(weeklyRent).FromWeekly(cfc.WeeksPerYear).Decimal
}

// NetMonthlyCashFlow is monthly rent less the mortgage payment and one twelfth
// of the annual outgoings. Negative when the property needs topping up.
func (cfc CashFlowCalculator) NetMonthlyCashFlow(weeklyRent, monthlyPayment, annualMaintenance, annualLandTax, annualInsurance decimal.Decimal) decimal.Decimal {
	outgoings := money.NewMoneyFromDecimal(annualMaintenance.Add(annualLandTax).Add(annualInsurance)).Monthly()
	return cfc.MonthlyRent(weeklyRent).Sub(monthlyPayment).Sub(outgoings.Decimal)
}

// AnnualHoldingCost is a full year of mortgage payments plus annual outgoings.
func (cfc CashFlowCalculator) AnnualHoldingCost(monthlyPayment, annualMaintenance, annualLandTax, annualInsurance decimal.Decimal) decimal.Decimal {
	payments := money.NewMoneyFromDecimal(monthlyPayment).Annual()
	return payments.Decimal.Add(annualMaintenance).Add(annualLandTax).Add(annualInsurance)
}
