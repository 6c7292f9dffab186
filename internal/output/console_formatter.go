package output

import (
	"bytes"
	"fmt"

	"github.com/rentvest/property-vs-fund/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PROPERTY VS FUND SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if results.Jurisdiction != "" {
		fmt.Fprintf(&buf, "Tax tables: %s\n", results.Jurisdiction)
	}
	fmt.Fprintln(&buf)
	for _, sc := range sortedByName(results) {
		fmt.Fprintf(&buf, "%s: StampDuty=%s Payment=%s NetMonthly=%s\n",
			sc.Name,
			FormatCurrency(sc.StampDuty),
			FormatCurrency(sc.MonthlyMortgagePayment),
			FormatCurrency(sc.NetMonthlyCashFlow),
		)
		fmt.Fprintf(&buf, "  House=%s Fund=%s Preferred=%s\n",
			FormatCurrency(sc.Outcome.FinalHouseEquity),
			FormatCurrency(sc.Outcome.FinalFundEquity),
			sc.Outcome.PreferredStrategy,
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Strongest case for buying: %s (Δ %s, %s)\n", rec.ScenarioName, FormatCurrency(rec.PropertyAdvantage), rec.PreferredStrategy)
	}
	return buf.Bytes(), nil
}
