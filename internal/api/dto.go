package api

import (
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// LandTaxResponse answers GET /api/land-tax.
type LandTaxResponse struct {
	LandValue decimal.Decimal `json:"land_value"`
	LandTax   decimal.Decimal `json:"land_tax"`
}

// StampDutyResponse answers GET /api/stamp-duty.
type StampDutyResponse struct {
	Price            decimal.Decimal `json:"price"`
	FirstHome        bool            `json:"first_home"`
	StandardDuty     decimal.Decimal `json:"standard_duty"`
	StampDuty        decimal.Decimal `json:"stamp_duty"`
	ConcessionStatus string          `json:"concession"`
}

// MortgagePaymentResponse answers GET /api/mortgage-payment.
type MortgagePaymentResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	TermYears      int             `json:"term_years"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

// CashFlowRequest is the body of POST /api/cash-flow.
type CashFlowRequest struct {
	WeeklyRent        decimal.Decimal `json:"weekly_rent"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	AnnualMaintenance decimal.Decimal `json:"annual_maintenance"`
	AnnualLandTax     decimal.Decimal `json:"annual_land_tax"`
	AnnualInsurance   decimal.Decimal `json:"annual_insurance"`
}

// CashFlowResponse answers POST /api/cash-flow.
type CashFlowResponse struct {
	MonthlyRent        decimal.Decimal `json:"monthly_rent"`
	NetMonthlyCashFlow decimal.Decimal `json:"net_monthly_cash_flow"`
}

// DefaultsResponse answers GET /api/defaults.
type DefaultsResponse struct {
	Inputs domain.ScenarioInputs    `json:"inputs"`
	Rules  domain.JurisdictionRules `json:"rules"`
}
