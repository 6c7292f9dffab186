package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rentvest/property-vs-fund/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with an equity chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":       FormatCurrency,
	"pct":        FormatPercentage,
	"concession": concessionLabel,
	"add":        func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-scenario data handed to the inline chart script.
type chartSeries struct {
	Name  string    `json:"name"`
	Years []int     `json:"years"`
	House []float64 `json:"house"`
	Fund  []float64 `json:"fund"`
}

func buildChartSeries(results *domain.ScenarioComparison) []chartSeries {
	series := make([]chartSeries, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		s := chartSeries{Name: sc.Name}
		for _, p := range sc.Projection {
			s.Years = append(s.Years, p.Year)
			s.House = append(s.House, p.HouseEquity.Round(2).InexactFloat64())
			s.Fund = append(s.Fund, p.FundEquity.Round(2).InexactFloat64())
		}
		series = append(series, s)
	}
	return series
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
		Chart          []chartSeries
	}{results, AnalyzeScenarios(results), assumptionsFor(results), buildChartSeries(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
