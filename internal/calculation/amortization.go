package calculation

import (
	money "github.com/rentvest/property-vs-fund/pkg/decimal"
	"github.com/shopspring/decimal"
)

// balancePlaces bounds the precision of running balances. Decimal products
// otherwise gain digits every month.
const balancePlaces int32 = 10

var (
	decimalOne    = decimal.NewFromInt(1)
	monthsPerYear = decimal.NewFromInt(12)
)

// AmortizationCalculator computes level payments on fixed-rate, fully
// amortizing loans and advances balances month by month.
type AmortizationCalculator struct {
	DefaultTermYears int
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func (ac AmortizationCalculator) MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return money.PercentToRate(annualRatePct).Div(monthsPerYear)
}

// MonthlyPayment returns the level monthly payment for principal over termYears.
// termYears <= 0 selects DefaultTermYears. Non-positive principal means no loan.
//
//	payment = P * r(1+r)^n / ((1+r)^n - 1),  r = annual/12, n = years*12
func (ac AmortizationCalculator) MonthlyPayment(principal, annualRatePct decimal.Decimal, termYears int) decimal.Decimal {
	if !principal.IsPositive() {
		return decimal.Zero
	}
	if termYears <= 0 {
		termYears = ac.DefaultTermYears
	}
	n := decimal.NewFromInt(int64(termYears) * 12)
	r := ac.MonthlyRate(annualRatePct)
	if r.IsZero() {
		return principal.Div(n)
	}

	factor := decimalOne.Add(r).Pow(n)
	denominator := factor.Sub(decimalOne)
	if denominator.IsZero() {
		return principal.Div(n)
	}
	return principal.Mul(r).Mul(factor).Div(denominator)
}

// AdvanceOneMonth accrues one month of interest and applies one payment.
// The balance never goes below zero; a final overpayment is absorbed.
func (ac AmortizationCalculator) AdvanceOneMonth(balance, payment, monthlyRate decimal.Decimal) decimal.Decimal {
	interest := balance.Mul(monthlyRate)
	principalPortion := payment.Sub(interest)
	next := money.ClampZero(money.NewMoneyFromDecimal(balance.Sub(principalPortion)))
	return next.Settle(balancePlaces).Decimal
}

// AdvanceOneYear applies twelve monthly steps.
func (ac AmortizationCalculator) AdvanceOneYear(balance, payment, monthlyRate decimal.Decimal) decimal.Decimal {
	for month := 0; month < 12; month++ {
		balance = ac.AdvanceOneMonth(balance, payment, monthlyRate)
	}
	return balance
}

// LoanYear summarises one year of an amortization schedule.
type LoanYear struct {
	Year           int             `json:"year"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	InterestPaid   decimal.Decimal `json:"interest_paid"`
	PrincipalPaid  decimal.Decimal `json:"principal_paid"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// Schedule returns yearly balances for the first years of the loan.
func (ac AmortizationCalculator) Schedule(principal, annualRatePct decimal.Decimal, termYears, years int) []LoanYear {
	payment := ac.MonthlyPayment(principal, annualRatePct, termYears)
	rate := ac.MonthlyRate(annualRatePct)
	balance := money.ClampZero(money.NewMoneyFromDecimal(principal)).Decimal

	schedule := make([]LoanYear, 0, years)
	for year := 1; year <= years; year++ {
		opening := balance
		interest := decimal.Zero
		for month := 0; month < 12; month++ {
			interest = interest.Add(balance.Mul(rate))
			balance = ac.AdvanceOneMonth(balance, payment, rate)
		}
		schedule = append(schedule, LoanYear{
			Year:           year,
			OpeningBalance: opening,
			InterestPaid:   interest,
			PrincipalPaid:  opening.Sub(balance),
			ClosingBalance: balance,
		})
	}
	return schedule
}
