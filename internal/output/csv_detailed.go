package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rentvest/property-vs-fund/internal/domain"
)

// CSVDetailedExporter provides the yearly projection series per scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "HouseValue", "HouseEquity", "FundEquity", "NetAnnualCost", "PropertyAhead"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedByName(results) {
		for _, yr := range sc.Projection {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				yr.HouseValue.StringFixed(2),
				yr.HouseEquity.StringFixed(2),
				yr.FundEquity.StringFixed(2),
				yr.NetAnnualCost.StringFixed(2),
				boolToString(yr.HouseEquity.GreaterThan(yr.FundEquity)),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
