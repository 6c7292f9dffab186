package output

import (
	"github.com/rentvest/property-vs-fund/internal/domain"
	money "github.com/rentvest/property-vs-fund/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency with 2 decimals (-$x for negatives).
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// concessionLabel renders a concession status for people.
func concessionLabel(status string) string {
	switch status {
	case domain.ConcessionFull:
		return "Full exemption"
	case domain.ConcessionPartial:
		return "Partial concession"
	case domain.ConcessionNone:
		return "Not eligible (price above concession threshold)"
	default:
		return "Standard rates"
	}
}
