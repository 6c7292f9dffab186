package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rentvest/property-vs-fund/internal/cache"
	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, withCache bool) *httptest.Server {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	var pc *cache.ProjectionCache
	if withCache {
		pc = cache.NewProjectionCache(engine, cache.NewMemoryStore(), time.Minute, nil)
	}
	srv := httptest.NewServer(NewRouter(NewHandler(engine, pc, nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, dst any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

const defaultInputsJSON = `{
  "property_appreciation_rate": 5,
  "fund_return_rate": 8,
  "rent_growth_rate": 3,
  "mortgage_interest_rate": 6,
  "purchase_price": 800000,
  "down_payment": 160000,
  "is_first_time_buyer": false,
  "weekly_rent_income": 500,
  "annual_maintenance_cost": 5000,
  "annual_insurance_cost": 1500
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestProjectionEndpoint(t *testing.T) {
	for _, withCache := range []bool{false, true} {
		srv := newTestServer(t, withCache)

		var summary domain.ScenarioSummary
		status := postJSON(t, srv.URL+"/api/projection?name=Reference", defaultInputsJSON, &summary)
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, "Reference", summary.Name)
		assert.Len(t, summary.Projection, 31)
		assert.True(t, summary.StampDuty.Equal(decimal.NewFromInt(43070)))
		assert.True(t, summary.AnnualLandTax.Equal(decimal.NewFromInt(2490)))
		assert.Equal(t, "3837.12", summary.MonthlyMortgagePayment.Round(2).String())
	}
}

func TestProjectionEndpointRejectsInvalidInputs(t *testing.T) {
	srv := newTestServer(t, true)

	tests := []struct {
		name string
		body string
	}{
		{"down payment exceeds price", `{"purchase_price": 100000, "down_payment": 200000}`},
		{"zero price", `{"purchase_price": 0}`},
		{"negative rate", `{"purchase_price": 100000, "fund_return_rate": -2}`},
		{"malformed json", `{"purchase_price": `},
		{"unknown field", `{"purchase_price": 100000, "colour": "blue"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body ErrorResponse
			status := postJSON(t, srv.URL+"/api/projection", tt.body, &body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.Details)
		})
	}
}

func TestLandTaxEndpoint(t *testing.T) {
	srv := newTestServer(t, false)

	var resp LandTaxResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/land-tax?land_value=640000", &resp))
	assert.True(t, resp.LandTax.Equal(decimal.NewFromInt(2490)))

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/land-tax", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/land-tax?land_value=abc", nil))
}

func TestStampDutyEndpoint(t *testing.T) {
	srv := newTestServer(t, false)

	tests := []struct {
		query    string
		duty     int64
		standard int64
		status   string
	}{
		{"price=800000", 43070, 43070, domain.ConcessionNotEligible},
		{"price=600000&first_home=true", 0, 31070, domain.ConcessionFull},
		{"price=675000&first_home=true", 17785, 35570, domain.ConcessionPartial},
		{"price=750000&first_home=1", 40070, 40070, domain.ConcessionPartial},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var resp StampDutyResponse
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stamp-duty?"+tt.query, &resp))
			assert.True(t, resp.StampDuty.Equal(decimal.NewFromInt(tt.duty)), "duty %s", resp.StampDuty)
			assert.True(t, resp.StandardDuty.Equal(decimal.NewFromInt(tt.standard)), "standard %s", resp.StandardDuty)
			assert.Equal(t, tt.status, resp.ConcessionStatus)
		})
	}

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/stamp-duty?price=600000&first_home=maybe", nil))
}

func TestMortgagePaymentEndpoint(t *testing.T) {
	srv := newTestServer(t, false)

	var resp MortgagePaymentResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/mortgage-payment?principal=640000&rate=6", &resp))
	assert.Equal(t, 30, resp.TermYears)
	assert.Equal(t, "3837.12", resp.MonthlyPayment.String())

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/mortgage-payment?principal=360000&rate=0&term=30", &resp))
	assert.Equal(t, "1000", resp.MonthlyPayment.String())

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/mortgage-payment?principal=1&rate=6&term=x", nil))
}

func TestMortgagePaymentEndpointRejectsOutOfRangeTerms(t *testing.T) {
	srv := newTestServer(t, false)

	var resp MortgagePaymentResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/mortgage-payment?principal=100000&rate=5&term=50", &resp))
	assert.Equal(t, 50, resp.TermYears)

	for _, query := range []string{
		"principal=1&rate=6.1&term=1000000",
		"principal=1&rate=6.1&term=51",
		"principal=1&rate=6.1&term=0",
		"principal=1&rate=6.1&term=-5",
		"principal=640000&rate=-1",
		"principal=640000&rate=-0.01&term=30",
	} {
		t.Run(query, func(t *testing.T) {
			var body ErrorResponse
			assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/mortgage-payment?"+query, &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCashFlowEndpoint(t *testing.T) {
	srv := newTestServer(t, false)

	body := `{"weekly_rent": 500, "monthly_payment": "3837.1233609776", "annual_maintenance": 5000, "annual_land_tax": 2490, "annual_insurance": 1500}`
	var resp CashFlowResponse
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/cash-flow", body, &resp))
	assert.Equal(t, "-2421.29", resp.NetMonthlyCashFlow.String())
	assert.True(t, resp.MonthlyRent.Equal(decimal.NewFromInt(2165)))
}

func TestDefaultsEndpoint(t *testing.T) {
	srv := newTestServer(t, false)

	var resp DefaultsResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/defaults", &resp))
	assert.True(t, resp.Inputs.PurchasePrice.Equal(decimal.NewFromInt(800000)))
	assert.Equal(t, "Victoria 2024", resp.Rules.Name)
	assert.Len(t, resp.Rules.LandTaxBrackets, 8)
}

func TestCacheStatsEndpoint(t *testing.T) {
	srv := newTestServer(t, true)
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/projection", defaultInputsJSON, nil))
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/projection", defaultInputsJSON, nil))

	var stats cache.Stats
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/cache/stats", &stats))
	assert.Equal(t, int64(1), stats.Computations)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/projection", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
