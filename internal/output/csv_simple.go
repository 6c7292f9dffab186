package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rentvest/property-vs-fund/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "PurchasePrice", "DownPayment", "FirstTimeBuyer", "StampDuty", "ConcessionStatus", "InitialFundAmount", "LoanAmount", "MonthlyMortgagePayment", "AnnualLandTax", "NetMonthlyCashFlow", "FinalHouseEquity", "FinalFundEquity", "PropertyAdvantage", "PreferredStrategy", "BreakEvenYear"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedByName(results) {
		row := []string{
			sc.Name,
			sc.Inputs.PurchasePrice.StringFixed(2),
			sc.Inputs.DownPayment.StringFixed(2),
			boolToString(sc.Inputs.IsFirstTimeBuyer),
			sc.StampDuty.StringFixed(2),
			sc.ConcessionStatus,
			sc.InitialFundAmount.StringFixed(2),
			sc.LoanAmount.StringFixed(2),
			sc.MonthlyMortgagePayment.StringFixed(2),
			sc.AnnualLandTax.StringFixed(2),
			sc.NetMonthlyCashFlow.StringFixed(2),
			sc.Outcome.FinalHouseEquity.StringFixed(2),
			sc.Outcome.FinalFundEquity.StringFixed(2),
			sc.Outcome.PropertyAdvantage.StringFixed(2),
			sc.Outcome.PreferredStrategy,
			intToString(sc.Outcome.BreakEvenYear),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
