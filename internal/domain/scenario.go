package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInputs is wrapped by every ScenarioInputs validation failure.
var ErrInvalidInputs = errors.New("invalid scenario inputs")

// ScenarioInputs holds the economic assumptions for a single buy-vs-invest comparison.
// Rates are annual percentages (6 means 6%); amounts are in whole currency units.
type ScenarioInputs struct {
	PropertyAppreciationRate decimal.Decimal `yaml:"property_appreciation_rate" json:"property_appreciation_rate"`
	FundReturnRate           decimal.Decimal `yaml:"fund_return_rate" json:"fund_return_rate"`
	RentGrowthRate           decimal.Decimal `yaml:"rent_growth_rate" json:"rent_growth_rate"`
	MortgageInterestRate     decimal.Decimal `yaml:"mortgage_interest_rate" json:"mortgage_interest_rate"`

	PurchasePrice         decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	DownPayment           decimal.Decimal `yaml:"down_payment" json:"down_payment"`
	IsFirstTimeBuyer      bool            `yaml:"is_first_time_buyer" json:"is_first_time_buyer"`
	WeeklyRentIncome      decimal.Decimal `yaml:"weekly_rent_income" json:"weekly_rent_income"`
	AnnualMaintenanceCost decimal.Decimal `yaml:"annual_maintenance_cost" json:"annual_maintenance_cost"`
	AnnualInsuranceCost   decimal.Decimal `yaml:"annual_insurance_cost" json:"annual_insurance_cost"`
}

// LoanAmount is the mortgage principal: purchase price less the down payment.
func (si ScenarioInputs) LoanAmount() decimal.Decimal {
	return si.PurchasePrice.Sub(si.DownPayment)
}

// Validate checks the input contract. It fails fast on the first violation.
func (si ScenarioInputs) Validate() error {
	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"property_appreciation_rate", si.PropertyAppreciationRate},
		{"fund_return_rate", si.FundReturnRate},
		{"rent_growth_rate", si.RentGrowthRate},
		{"mortgage_interest_rate", si.MortgageInterestRate},
		{"down_payment", si.DownPayment},
		{"weekly_rent_income", si.WeeklyRentIncome},
		{"annual_maintenance_cost", si.AnnualMaintenanceCost},
		{"annual_insurance_cost", si.AnnualInsuranceCost},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative (got %s)", ErrInvalidInputs, f.field, f.value.String())
		}
	}
	if !si.PurchasePrice.IsPositive() {
		return fmt.Errorf("%w: purchase_price must be positive (got %s)", ErrInvalidInputs, si.PurchasePrice.String())
	}
	if si.DownPayment.GreaterThan(si.PurchasePrice) {
		return fmt.Errorf("%w: down_payment %s exceeds purchase_price %s", ErrInvalidInputs, si.DownPayment.String(), si.PurchasePrice.String())
	}
	return nil
}

// DefaultScenarioInputs returns the reference scenario used by examples and the quote command.
func DefaultScenarioInputs() ScenarioInputs {
	return ScenarioInputs{
		PropertyAppreciationRate: decimal.NewFromInt(5),
		FundReturnRate:           decimal.NewFromInt(8),
		RentGrowthRate:           decimal.NewFromInt(3),
		MortgageInterestRate:     decimal.NewFromInt(6),
		PurchasePrice:            decimal.NewFromInt(800000),
		DownPayment:              decimal.NewFromInt(160000),
		WeeklyRentIncome:         decimal.NewFromInt(500),
		AnnualMaintenanceCost:    decimal.NewFromInt(5000),
		AnnualInsuranceCost:      decimal.NewFromInt(1500),
	}
}

// Scenario is a named set of inputs as it appears in a configuration file.
type Scenario struct {
	Name   string         `yaml:"name" json:"name"`
	Inputs ScenarioInputs `yaml:"inputs" json:"inputs"`
}
