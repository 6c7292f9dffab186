package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyProjectionPoint is the state of both strategies at a year boundary.
type YearlyProjectionPoint struct {
	Year        int             `json:"year"`
	HouseValue  decimal.Decimal `json:"house_value"`
	HouseEquity decimal.Decimal `json:"house_equity"` // max(0, house value - loan balance)
	FundEquity  decimal.Decimal `json:"fund_equity"`  // not clamped
	// NetAnnualCost is the year's out-of-pocket cost of holding the property,
	// redirected into the fund. Negative when the property is cash-flow positive.
	NetAnnualCost decimal.Decimal `json:"net_annual_cost"`
}

// ProjectionResult holds points for years 0..N inclusive.
type ProjectionResult []YearlyProjectionPoint

// Final returns the last point, or the zero point for an empty result.
func (pr ProjectionResult) Final() YearlyProjectionPoint {
	if len(pr) == 0 {
		return YearlyProjectionPoint{}
	}
	return pr[len(pr)-1]
}

// Concession status values reported on a ScenarioSummary.
const (
	ConcessionNotEligible = "not_eligible"
	ConcessionFull        = "full"
	ConcessionPartial     = "partial"
	ConcessionNone        = "none"
)

// Preferred strategy values reported on an Outcome.
const (
	StrategyProperty = "property"
	StrategyFund     = "fund"
	StrategyEven     = "even"
)

// Outcome compares the two strategies at the end of the horizon.
type Outcome struct {
	FinalHouseEquity  decimal.Decimal `json:"final_house_equity"`
	FinalFundEquity   decimal.Decimal `json:"final_fund_equity"`
	PropertyAdvantage decimal.Decimal `json:"property_advantage"` // house - fund
	PreferredStrategy string          `json:"preferred_strategy"`
	BreakEvenYear     int             `json:"break_even_year"` // first year house equity exceeds fund equity; 0 if never
}

// ScenarioSummary is the year-0 figures of a scenario plus its projection.
type ScenarioSummary struct {
	Name   string         `json:"name"`
	Inputs ScenarioInputs `json:"inputs"`

	StampDuty              decimal.Decimal `json:"stamp_duty"`
	ConcessionStatus       string          `json:"concession_status"`
	InitialFundAmount      decimal.Decimal `json:"initial_fund_amount"` // down payment + stamp duty
	LoanAmount             decimal.Decimal `json:"loan_amount"`
	MonthlyMortgagePayment decimal.Decimal `json:"monthly_mortgage_payment"`
	LandValue              decimal.Decimal `json:"land_value"`
	AnnualLandTax          decimal.Decimal `json:"annual_land_tax"`
	NetMonthlyCashFlow     decimal.Decimal `json:"net_monthly_cash_flow"`

	Projection ProjectionResult `json:"projection"`
	Outcome    Outcome          `json:"outcome"`
}

// ScenarioComparison collects the summaries of every scenario in a configuration.
type ScenarioComparison struct {
	Jurisdiction         string            `json:"jurisdiction"`
	Scenarios            []ScenarioSummary `json:"scenarios"`
	BestScenarioProperty string            `json:"best_scenario_property"` // largest property advantage
	BestScenarioFund     string            `json:"best_scenario_fund"`     // largest fund advantage
	Assumptions          []string          `json:"assumptions"`
}

// Configuration is the on-disk scenario file.
type Configuration struct {
	Rules     *JurisdictionRules `yaml:"rules,omitempty" json:"rules,omitempty"`
	Scenarios []Scenario         `yaml:"scenarios" json:"scenarios"`
}

// EffectiveRules returns the configured rules with defaults applied.
func (c *Configuration) EffectiveRules() JurisdictionRules {
	if c.Rules == nil {
		return VictoriaRules2024()
	}
	return c.Rules.WithDefaults()
}
