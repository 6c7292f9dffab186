package calculation

import (
	"context"
	"fmt"

	"github.com/rentvest/property-vs-fund/internal/domain"
)

// CalculationEngine orchestrates scenario calculations for one jurisdiction.
type CalculationEngine struct {
	Projection *ProjectionEngine
	Debug      bool // log the year-0 breakdown of every scenario
	Logger     Logger
}

// NewCalculationEngine creates an engine using the built-in Victorian tables.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Projection: defaultProjection,
		Logger:     NopLogger{},
	}
}

// NewCalculationEngineWithRules creates an engine for custom jurisdiction rules.
func NewCalculationEngineWithRules(rules domain.JurisdictionRules) (*CalculationEngine, error) {
	pe, err := NewProjectionEngine(rules)
	if err != nil {
		return nil, err
	}
	return &CalculationEngine{Projection: pe, Logger: NopLogger{}}, nil
}

// NewCalculationEngineForConfig creates an engine for the rules of a configuration file.
func NewCalculationEngineForConfig(config *domain.Configuration) (*CalculationEngine, error) {
	if config.Rules == nil {
		return NewCalculationEngine(), nil
	}
	return NewCalculationEngineWithRules(*config.Rules)
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Rules returns the jurisdiction rules in effect.
func (ce *CalculationEngine) Rules() domain.JurisdictionRules {
	return ce.Projection.Rules
}

// RunScenario computes the year-0 figures, the projection and the outcome of one scenario.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inputs := scenario.Inputs
	projection, err := ce.Projection.Generate(inputs)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	pe := ce.Projection
	loanAmount := inputs.LoanAmount()
	payment := pe.Amortization.MonthlyPayment(loanAmount, inputs.MortgageInterestRate, pe.Rules.LoanTermYears)
	stampDuty := pe.StampDuty.Calculate(inputs.PurchasePrice, inputs.IsFirstTimeBuyer)
	landValue := pe.LandValue(inputs.PurchasePrice)
	landTax := pe.LandTax.Calculate(landValue)

	summary := &domain.ScenarioSummary{
		Name:                   scenario.Name,
		Inputs:                 inputs,
		StampDuty:              stampDuty,
		ConcessionStatus:       pe.StampDuty.ConcessionStatus(inputs.PurchasePrice, inputs.IsFirstTimeBuyer),
		InitialFundAmount:      inputs.DownPayment.Add(stampDuty),
		LoanAmount:             loanAmount,
		MonthlyMortgagePayment: payment,
		LandValue:              landValue,
		AnnualLandTax:          landTax,
		NetMonthlyCashFlow: pe.CashFlow.NetMonthlyCashFlow(inputs.WeeklyRentIncome, payment,
			inputs.AnnualMaintenanceCost, landTax, inputs.AnnualInsuranceCost),
		Projection: projection,
		Outcome:    AnalyzeOutcome(projection),
	}

	if ce.Debug {
		ce.Logger.Debugf("SCENARIO %q YEAR-0 BREAKDOWN", scenario.Name)
		ce.Logger.Debugf("  Stamp duty:            $%s (%s)", summary.StampDuty.StringFixed(2), summary.ConcessionStatus)
		ce.Logger.Debugf("  Initial fund amount:   $%s", summary.InitialFundAmount.StringFixed(2))
		ce.Logger.Debugf("  Loan amount:           $%s", summary.LoanAmount.StringFixed(2))
		ce.Logger.Debugf("  Monthly payment:       $%s", summary.MonthlyMortgagePayment.StringFixed(2))
		ce.Logger.Debugf("  Land tax:              $%s on land value $%s", summary.AnnualLandTax.StringFixed(2), summary.LandValue.StringFixed(2))
		ce.Logger.Debugf("  Net monthly cash flow: $%s", summary.NetMonthlyCashFlow.StringFixed(2))
	}
	ce.Logger.Infof("scenario %q projected over %d years: preferred=%s advantage=%s",
		scenario.Name, len(projection)-1, summary.Outcome.PreferredStrategy, summary.Outcome.PropertyAdvantage.StringFixed(2))

	return summary, nil
}

// RunScenarios runs every scenario of a configuration and compares them.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	scenarios := make([]domain.ScenarioSummary, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		summary, err := ce.RunScenario(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *summary
	}

	comparison := &domain.ScenarioComparison{
		Jurisdiction: ce.Rules().Name,
		Scenarios:    scenarios,
		Assumptions:  ce.Rules().GenerateAssumptions(),
	}
	comparison.BestScenarioProperty, comparison.BestScenarioFund = rankScenarios(scenarios)
	return comparison, nil
}
