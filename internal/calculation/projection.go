package calculation

import (
	"fmt"

	"github.com/rentvest/property-vs-fund/internal/domain"
	money "github.com/rentvest/property-vs-fund/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ProjectionEngine runs the yearly buy-vs-invest state machine for one set of rules.
// It holds no per-run state and is safe for concurrent use.
type ProjectionEngine struct {
	Rules        domain.JurisdictionRules
	LandTax      *LandTaxCalculator
	StampDuty    *StampDutyCalculator
	Amortization AmortizationCalculator
	CashFlow     CashFlowCalculator
}

// NewProjectionEngine validates rules and builds the calculators they drive.
func NewProjectionEngine(rules domain.JurisdictionRules) (*ProjectionEngine, error) {
	rules = rules.WithDefaults()
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("jurisdiction rules %q: %w", rules.Name, err)
	}
	landTax, err := NewLandTaxCalculator(rules.LandTaxBrackets)
	if err != nil {
		return nil, err
	}
	stampDuty, err := NewStampDutyCalculator(rules)
	if err != nil {
		return nil, err
	}
	return &ProjectionEngine{
		Rules:        rules,
		LandTax:      landTax,
		StampDuty:    stampDuty,
		Amortization: AmortizationCalculator{DefaultTermYears: rules.LoanTermYears},
		CashFlow:     CashFlowCalculator{WeeksPerMonth: rules.WeeksPerMonth, WeeksPerYear: rules.WeeksPerYear},
	}, nil
}

// LandValue returns the assessable land value of a property.
func (pe *ProjectionEngine) LandValue(propertyValue decimal.Decimal) decimal.Decimal {
	return propertyValue.Mul(pe.Rules.LandValueRatio)
}

// LandTaxForProperty returns the annual land tax on a property of the given value.
func (pe *ProjectionEngine) LandTaxForProperty(propertyValue decimal.Decimal) decimal.Decimal {
	return pe.LandTax.Calculate(pe.LandValue(propertyValue))
}

// projectionState is the running state carried between years.
type projectionState struct {
	houseValue  money.Money
	loanBalance decimal.Decimal
	fundValue   money.Money
	annualRent  money.Money
}

// Generate projects inputs over the rules' horizon and returns years 0..N.
//
// Year 0 is the as-of-purchase snapshot. Each following year, in order: the
// house appreciates; twelve fixed payments amortize the loan; land tax is
// re-assessed on the new house value; the year's holding cost less the
// current rent is added to the fund after the fund's own growth; rent grows.
func (pe *ProjectionEngine) Generate(inputs domain.ScenarioInputs) (domain.ProjectionResult, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	appreciation := money.PercentToRate(inputs.PropertyAppreciationRate)
	fundReturn := money.PercentToRate(inputs.FundReturnRate)
	rentGrowth := money.PercentToRate(inputs.RentGrowthRate)

	loanAmount := inputs.LoanAmount()
	payment := pe.Amortization.MonthlyPayment(loanAmount, inputs.MortgageInterestRate, pe.Rules.LoanTermYears)
	monthlyRate := pe.Amortization.MonthlyRate(inputs.MortgageInterestRate)
	stampDuty := pe.StampDuty.Calculate(inputs.PurchasePrice, inputs.IsFirstTimeBuyer)

	state := projectionState{
		houseValue:  money.NewMoneyFromDecimal(inputs.PurchasePrice),
		loanBalance: loanAmount,
		fundValue:   money.NewMoneyFromDecimal(inputs.DownPayment.Add(stampDuty)),
		annualRent:  money.NewMoneyFromDecimal(pe.CashFlow.AnnualRent(inputs.WeeklyRentIncome)),
	}

	contribution := func() decimal.Decimal {
		landTax := pe.LandTaxForProperty(state.houseValue.Decimal)
		cost := pe.CashFlow.AnnualHoldingCost(payment, inputs.AnnualMaintenanceCost, landTax, inputs.AnnualInsuranceCost)
		return cost.Sub(state.annualRent.Decimal)
	}

	horizon := pe.Rules.Horizon()
	result := make(domain.ProjectionResult, 0, horizon+1)
	result = append(result, state.point(0, contribution()))

	for year := 1; year <= horizon; year++ {
		state.houseValue = state.houseValue.Grow(appreciation).Settle(balancePlaces)
		state.loanBalance = pe.Amortization.AdvanceOneYear(state.loanBalance, payment, monthlyRate)

		annualContribution := contribution()
		state.fundValue = state.fundValue.Grow(fundReturn).
			Add(money.NewMoneyFromDecimal(annualContribution)).
			Settle(balancePlaces)
		state.annualRent = state.annualRent.Grow(rentGrowth).Settle(balancePlaces)

		result = append(result, state.point(year, annualContribution))
	}
	return result, nil
}

func (s projectionState) point(year int, netAnnualCost decimal.Decimal) domain.YearlyProjectionPoint {
	equity := money.ClampZero(s.houseValue.Sub(money.NewMoneyFromDecimal(s.loanBalance)))
	return domain.YearlyProjectionPoint{
		Year:          year,
		HouseValue:    s.houseValue.Decimal,
		HouseEquity:   equity.Decimal,
		FundEquity:    s.fundValue.Decimal,
		NetAnnualCost: netAnnualCost,
	}
}
