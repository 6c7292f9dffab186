package calculation

import (
	"github.com/rentvest/property-vs-fund/internal/domain"
	money "github.com/rentvest/property-vs-fund/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ConcessionAdjuster applies the first home buyer stamp duty concession:
// no duty up to FullCeiling, then a linear taper reaching the full standard
// duty at UpperCeiling.
type ConcessionAdjuster struct {
	FullCeiling  decimal.Decimal
	UpperCeiling decimal.Decimal
}

// Adjust returns the payable duty for price given the unrounded standard duty.
// The result is rounded to the nearest whole unit after the taper is applied.
func (ca ConcessionAdjuster) Adjust(price, standardDuty decimal.Decimal, isFirstTimeBuyer bool) decimal.Decimal {
	duty := standardDuty
	switch ca.Status(price, isFirstTimeBuyer) {
	case domain.ConcessionFull:
		duty = decimal.Zero
	case domain.ConcessionPartial:
		width := ca.UpperCeiling.Sub(ca.FullCeiling)
		concession := standardDuty.Mul(ca.UpperCeiling.Sub(price)).Div(width)
		duty = decimal.Max(decimal.Zero, standardDuty.Sub(concession))
	}
	return money.NewMoneyFromDecimal(duty).RoundWhole().Decimal
}

// Status reports which concession branch applies to price.
func (ca ConcessionAdjuster) Status(price decimal.Decimal, isFirstTimeBuyer bool) string {
	switch {
	case !isFirstTimeBuyer:
		return domain.ConcessionNotEligible
	case price.LessThanOrEqual(ca.FullCeiling):
		return domain.ConcessionFull
	case price.LessThanOrEqual(ca.UpperCeiling):
		return domain.ConcessionPartial
	default:
		return domain.ConcessionNone
	}
}
