package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxLoanTermYears is the longest loan term accepted anywhere, in rules or
// in a standalone payment quote.
const MaxLoanTermYears = 50

// ValidateLoanTerms checks a standalone loan quote: a non-negative annual
// rate and a term of 1..MaxLoanTermYears years.
func ValidateLoanTerms(annualRatePct decimal.Decimal, termYears int) error {
	if annualRatePct.IsNegative() {
		return fmt.Errorf("rate cannot be negative (got %s)", annualRatePct.String())
	}
	if termYears <= 0 || termYears > MaxLoanTermYears {
		return fmt.Errorf("term must be between 1 and %d years (got %d)", MaxLoanTermYears, termYears)
	}
	return nil
}

// BracketSpec describes one bracket of a progressive table. Rate is the
// marginal rate (as a fraction) applied above Threshold. Step is a flat amount
// added on reaching Threshold; zero for continuous tables.
type BracketSpec struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Step      decimal.Decimal `yaml:"step,omitempty" json:"step,omitempty"`
}

// JurisdictionRules carries the fixed tables and constants of one tax jurisdiction.
type JurisdictionRules struct {
	Name string `yaml:"name" json:"name"`

	LandTaxBrackets   []BracketSpec `yaml:"land_tax_brackets" json:"land_tax_brackets"`
	StampDutyBrackets []BracketSpec `yaml:"stamp_duty_brackets" json:"stamp_duty_brackets"`

	// First home buyer concession: no duty up to the full ceiling, tapered up to the upper ceiling.
	FullConcessionCeiling  decimal.Decimal `yaml:"full_concession_ceiling" json:"full_concession_ceiling"`
	UpperConcessionCeiling decimal.Decimal `yaml:"upper_concession_ceiling" json:"upper_concession_ceiling"`

	LandValueRatio  decimal.Decimal `yaml:"land_value_ratio" json:"land_value_ratio"`
	LoanTermYears   int             `yaml:"loan_term_years" json:"loan_term_years"`
	ProjectionYears int             `yaml:"projection_years" json:"projection_years"` // 0 means same as loan term
	WeeksPerMonth   decimal.Decimal `yaml:"weeks_per_month" json:"weeks_per_month"`
	WeeksPerYear    decimal.Decimal `yaml:"weeks_per_year" json:"weeks_per_year"`
}

// VictoriaRules2024 returns the Victorian land tax and stamp duty tables (2024 rates).
func VictoriaRules2024() JurisdictionRules {
	return JurisdictionRules{
		Name: "Victoria 2024",
		LandTaxBrackets: []BracketSpec{
			{Threshold: decimal.Zero, Rate: decimal.Zero},
			{Threshold: decimal.NewFromInt(50000), Rate: decimal.Zero, Step: decimal.NewFromInt(500)},
			{Threshold: decimal.NewFromInt(100000), Rate: decimal.Zero, Step: decimal.NewFromInt(475)},
			{Threshold: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.003"), Step: decimal.NewFromInt(375)},
			{Threshold: decimal.NewFromInt(600000), Rate: decimal.RequireFromString("0.006")},
			{Threshold: decimal.NewFromInt(1000000), Rate: decimal.RequireFromString("0.009")},
			{Threshold: decimal.NewFromInt(1800000), Rate: decimal.RequireFromString("0.0165")},
			{Threshold: decimal.NewFromInt(3000000), Rate: decimal.RequireFromString("0.0265")},
		},
		StampDutyBrackets: []BracketSpec{
			{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.014")},
			{Threshold: decimal.NewFromInt(25000), Rate: decimal.RequireFromString("0.024")},
			{Threshold: decimal.NewFromInt(130000), Rate: decimal.RequireFromString("0.06")},
			{Threshold: decimal.NewFromInt(440000), Rate: decimal.RequireFromString("0.06")},
			{Threshold: decimal.NewFromInt(550000), Rate: decimal.RequireFromString("0.06")},
			{Threshold: decimal.NewFromInt(960000), Rate: decimal.RequireFromString("0.055")},
		},
		FullConcessionCeiling:  decimal.NewFromInt(600000),
		UpperConcessionCeiling: decimal.NewFromInt(750000),
		LandValueRatio:         decimal.RequireFromString("0.8"),
		LoanTermYears:          30,
		WeeksPerMonth:          decimal.RequireFromString("4.33"),
		WeeksPerYear:           decimal.NewFromInt(52),
	}
}

// WithDefaults fills every unset field from VictoriaRules2024.
func (jr JurisdictionRules) WithDefaults() JurisdictionRules {
	def := VictoriaRules2024()
	if jr.Name == "" {
		jr.Name = def.Name
	}
	if len(jr.LandTaxBrackets) == 0 {
		jr.LandTaxBrackets = def.LandTaxBrackets
	}
	if len(jr.StampDutyBrackets) == 0 {
		jr.StampDutyBrackets = def.StampDutyBrackets
	}
	if jr.FullConcessionCeiling.IsZero() && jr.UpperConcessionCeiling.IsZero() {
		jr.FullConcessionCeiling = def.FullConcessionCeiling
		jr.UpperConcessionCeiling = def.UpperConcessionCeiling
	}
	if jr.LandValueRatio.IsZero() {
		jr.LandValueRatio = def.LandValueRatio
	}
	if jr.LoanTermYears <= 0 {
		jr.LoanTermYears = def.LoanTermYears
	}
	if jr.WeeksPerMonth.IsZero() {
		jr.WeeksPerMonth = def.WeeksPerMonth
	}
	if jr.WeeksPerYear.IsZero() {
		jr.WeeksPerYear = def.WeeksPerYear
	}
	return jr
}

// Horizon returns the number of projected years N.
func (jr JurisdictionRules) Horizon() int {
	if jr.ProjectionYears > 0 {
		return jr.ProjectionYears
	}
	return jr.LoanTermYears
}

// Validate checks the scalar constants. Bracket tables are validated when built.
func (jr JurisdictionRules) Validate() error {
	if jr.FullConcessionCeiling.IsNegative() {
		return fmt.Errorf("full_concession_ceiling cannot be negative")
	}
	if !jr.UpperConcessionCeiling.GreaterThan(jr.FullConcessionCeiling) {
		return fmt.Errorf("upper_concession_ceiling (%s) must exceed full_concession_ceiling (%s)",
			jr.UpperConcessionCeiling.String(), jr.FullConcessionCeiling.String())
	}
	if jr.LandValueRatio.IsNegative() || jr.LandValueRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("land_value_ratio must be between 0 and 1")
	}
	if jr.LoanTermYears <= 0 || jr.LoanTermYears > MaxLoanTermYears {
		return fmt.Errorf("loan_term_years must be between 1 and %d", MaxLoanTermYears)
	}
	if jr.ProjectionYears < 0 || jr.ProjectionYears > 100 {
		return fmt.Errorf("projection_years must be between 0 and 100")
	}
	if !jr.WeeksPerMonth.IsPositive() || !jr.WeeksPerYear.IsPositive() {
		return fmt.Errorf("weeks_per_month and weeks_per_year must be positive")
	}
	return nil
}

// Fingerprint is a stable textual form of the rules, used in cache keys.
func (jr JurisdictionRules) Fingerprint() string {
	var b strings.Builder
	writeBrackets := func(label string, specs []BracketSpec) {
		b.WriteString(label)
		for _, s := range specs {
			fmt.Fprintf(&b, "|%s:%s:%s", s.Threshold.String(), s.Rate.String(), s.Step.String())
		}
		b.WriteString(";")
	}
	writeBrackets("land", jr.LandTaxBrackets)
	writeBrackets("duty", jr.StampDutyBrackets)
	fmt.Fprintf(&b, "fhb=%s-%s;lvr=%s;term=%d;years=%d;wpm=%s;wpy=%s",
		jr.FullConcessionCeiling.String(), jr.UpperConcessionCeiling.String(),
		jr.LandValueRatio.String(), jr.LoanTermYears, jr.Horizon(),
		jr.WeeksPerMonth.String(), jr.WeeksPerYear.String())
	return b.String()
}

// GenerateAssumptions lists the modelling assumptions for report output.
func (jr JurisdictionRules) GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Tax tables: %s, held constant over the horizon", jr.Name),
		fmt.Sprintf("Land value is %s%% of property value", jr.LandValueRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
		fmt.Sprintf("Fixed-rate, fixed-payment mortgage over %d years", jr.LoanTermYears),
		fmt.Sprintf("Projection horizon: %d years", jr.Horizon()),
		fmt.Sprintf("Monthly rent uses %s weeks per month; annual rent uses %s weeks per year", jr.WeeksPerMonth.String(), jr.WeeksPerYear.String()),
		"Maintenance and insurance held constant (no inflation)",
		"Net property cost (or surplus) is swept into the fund each year",
	}
}
