package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rentvest/property-vs-fund/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "BUY PROPERTY VS INVEST IN FUND ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, scenario.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeYearZero(&buf, scenario)
		writeYearlyTable(&buf, scenario.Projection)
		writeOutcome(&buf, scenario.Outcome)
		fmt.Fprintln(&buf)
	}

	writeComparison(&buf, results)
	return buf.Bytes(), nil
}

func writeYearZero(w io.Writer, sc domain.ScenarioSummary) {
	in := sc.Inputs
	fmt.Fprintln(w, "PURCHASE (YEAR 0):")
	fmt.Fprintf(w, "  Purchase Price:           %s\n", FormatCurrency(in.PurchasePrice))
	fmt.Fprintf(w, "  Down Payment:             %s\n", FormatCurrency(in.DownPayment))
	fmt.Fprintf(w, "  Stamp Duty:               %s (%s)\n", FormatCurrency(sc.StampDuty), concessionLabel(sc.ConcessionStatus))
	fmt.Fprintf(w, "  Initial Fund Amount:      %s\n", FormatCurrency(sc.InitialFundAmount))
	fmt.Fprintf(w, "  Loan Amount:              %s\n", FormatCurrency(sc.LoanAmount))
	fmt.Fprintf(w, "  Monthly Mortgage Payment: %s at %s\n", FormatCurrency(sc.MonthlyMortgagePayment), FormatPercentage(in.MortgageInterestRate))
	fmt.Fprintf(w, "  Annual Land Tax:          %s on land value %s\n", FormatCurrency(sc.AnnualLandTax), FormatCurrency(sc.LandValue))
	fmt.Fprintf(w, "  Net Monthly Cash Flow:    %s\n", FormatCurrency(sc.NetMonthlyCashFlow))
	fmt.Fprintln(w)
}

func writeYearlyTable(w io.Writer, projection domain.ProjectionResult) {
	fmt.Fprintf(w, "%-6s %16s %16s %16s %16s\n", "Year", "House Value", "House Equity", "Fund Equity", "Net Annual Cost")
	fmt.Fprintln(w, strings.Repeat("-", 74))
	for _, p := range projection {
		fmt.Fprintf(w, "%-6d %16s %16s %16s %16s\n", p.Year,
			FormatCurrency(p.HouseValue),
			FormatCurrency(p.HouseEquity),
			FormatCurrency(p.FundEquity),
			FormatCurrency(p.NetAnnualCost))
	}
	fmt.Fprintln(w)
}

func writeOutcome(w io.Writer, o domain.Outcome) {
	fmt.Fprintln(w, "OUTCOME:")
	fmt.Fprintf(w, "  Final House Equity: %s\n", FormatCurrency(o.FinalHouseEquity))
	fmt.Fprintf(w, "  Final Fund Equity:  %s\n", FormatCurrency(o.FinalFundEquity))
	fmt.Fprintf(w, "  Property Advantage: %s\n", FormatCurrency(o.PropertyAdvantage))
	fmt.Fprintf(w, "  Preferred Strategy: %s\n", o.PreferredStrategy)
	if o.BreakEvenYear > 0 {
		fmt.Fprintf(w, "  Break-even Year:    %d\n", o.BreakEvenYear)
	} else {
		fmt.Fprintln(w, "  Break-even Year:    never")
	}
}

func writeComparison(w io.Writer, results *domain.ScenarioComparison) {
	if len(results.Scenarios) < 2 {
		return
	}
	fmt.Fprintln(w, "SCENARIO COMPARISON")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	for i, sc := range RankScenarios(results) {
		fmt.Fprintf(w, "%d. %-30s %16s  %s\n", i+1, sc.Name, FormatCurrency(sc.Outcome.PropertyAdvantage), sc.Outcome.PreferredStrategy)
	}
	if results.BestScenarioProperty != "" {
		fmt.Fprintf(w, "Best case for buying:    %s\n", results.BestScenarioProperty)
	}
	if results.BestScenarioFund != "" {
		fmt.Fprintf(w, "Best case for investing: %s\n", results.BestScenarioFund)
	}
}
