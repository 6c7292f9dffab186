package calculation

import (
	"fmt"

	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

// LAND TAX AND STAMP DUTY ASSUMPTIONS:
//
// 1. Land tax is assessed on land value only. Land value is a fixed fraction
//    of the property value (JurisdictionRules.LandValueRatio), re-assessed
//    every projected year from the appreciated property value.
// 2. Tables are held constant for the whole horizon (no indexation).
// 3. Stamp duty is paid once, at purchase, on the full purchase price.

// LandTaxCalculator computes annual land tax from a bracket table.
type LandTaxCalculator struct {
	Table *BracketTable
}

// NewLandTaxCalculator builds a land tax calculator from bracket specs.
func NewLandTaxCalculator(specs []domain.BracketSpec) (*LandTaxCalculator, error) {
	table, err := NewBracketTable(specs)
	if err != nil {
		return nil, fmt.Errorf("land tax: %w", err)
	}
	return &LandTaxCalculator{Table: table}, nil
}

// Calculate returns the annual land tax on landValue.
func (ltc *LandTaxCalculator) Calculate(landValue decimal.Decimal) decimal.Decimal {
	return ltc.Table.Evaluate(landValue)
}

// StampDutyCalculator computes transfer duty, including the first home buyer concession.
type StampDutyCalculator struct {
	Table      *BracketTable
	Concession ConcessionAdjuster
}

// NewStampDutyCalculator builds a stamp duty calculator for the given rules.
func NewStampDutyCalculator(rules domain.JurisdictionRules) (*StampDutyCalculator, error) {
	table, err := NewBracketTable(rules.StampDutyBrackets)
	if err != nil {
		return nil, fmt.Errorf("stamp duty: %w", err)
	}
	return &StampDutyCalculator{
		Table: table,
		Concession: ConcessionAdjuster{
			FullCeiling:  rules.FullConcessionCeiling,
			UpperCeiling: rules.UpperConcessionCeiling,
		},
	}, nil
}

// Standard returns the unrounded general-rate duty for price.
func (sdc *StampDutyCalculator) Standard(price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return sdc.Table.Evaluate(price)
}

// Calculate returns the payable duty rounded to whole currency units.
func (sdc *StampDutyCalculator) Calculate(price decimal.Decimal, isFirstTimeBuyer bool) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return sdc.Concession.Adjust(price, sdc.Standard(price), isFirstTimeBuyer)
}

// ConcessionStatus reports which concession branch applies at price.
func (sdc *StampDutyCalculator) ConcessionStatus(price decimal.Decimal, isFirstTimeBuyer bool) string {
	return sdc.Concession.Status(price, isFirstTimeBuyer)
}
