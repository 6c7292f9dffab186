package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validConfig = `scenarios:
  - name: "Reference"
    inputs:
      property_appreciation_rate: 5
      fund_return_rate: 8
      rent_growth_rate: 3
      mortgage_interest_rate: 6
      purchase_price: 800000
      down_payment: 160000
      is_first_time_buyer: false
      weekly_rent_income: 500
      annual_maintenance_cost: 5000
      annual_insurance_cost: 1500
  - name: "Decimal rates"
    inputs:
      property_appreciation_rate: 4.5
      fund_return_rate: "7.25"
      rent_growth_rate: 2.5
      mortgage_interest_rate: 6.1
      purchase_price: 650000
      down_payment: 130000
      is_first_time_buyer: true
      weekly_rent_income: 450
      annual_maintenance_cost: 4000
      annual_insurance_cost: 1200
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeTemp(t, validConfig))
	require.NoError(t, err)

	require.Len(t, config.Scenarios, 2)
	assert.Nil(t, config.Rules)
	assert.Equal(t, "Reference", config.Scenarios[0].Name)
	assert.True(t, config.Scenarios[0].Inputs.PurchasePrice.Equal(decimal.NewFromInt(800000)))
	assert.True(t, config.Scenarios[1].Inputs.FundReturnRate.Equal(decimal.RequireFromString("7.25")))
	assert.True(t, config.Scenarios[1].Inputs.MortgageInterestRate.Equal(decimal.RequireFromString("6.1")))
	assert.True(t, config.Scenarios[1].Inputs.IsFirstTimeBuyer)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"malformed yaml", "scenarios: [", "failed to parse YAML"},
		{"no scenarios", "scenarios: []\n", "no scenarios provided"},
		{"missing name", "scenarios:\n  - inputs:\n      purchase_price: 100\n", "scenario name is required"},
		{"down payment exceeds price", "scenarios:\n  - name: a\n    inputs:\n      purchase_price: 100\n      down_payment: 200\n", "down_payment"},
		{"negative rate", "scenarios:\n  - name: a\n    inputs:\n      purchase_price: 100\n      fund_return_rate: -1\n", "fund_return_rate"},
		{"duplicate names", "scenarios:\n  - name: a\n    inputs:\n      purchase_price: 100\n  - name: a\n    inputs:\n      purchase_price: 100\n", "already used"},
		{"bad bracket table", "rules:\n  land_tax_brackets:\n    - threshold: 10\n      rate: 0\nscenarios:\n  - name: a\n    inputs:\n      purchase_price: 100\n", "land_tax_brackets"},
		{"bad concession ceilings", "rules:\n  full_concession_ceiling: 800000\n  upper_concession_ceiling: 700000\nscenarios:\n  - name: a\n    inputs:\n      purchase_price: 100\n", "upper_concession_ceiling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(writeTemp(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidationErrorsWrapSentinel(t *testing.T) {
	config := &domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Inputs: domain.ScenarioInputs{}}}}
	err := NewInputParser().ValidateConfiguration(config)
	assert.ErrorIs(t, err, domain.ErrInvalidInputs)
}

func TestRulesOverride(t *testing.T) {
	content := "rules:\n  name: \"Short horizon\"\n  projection_years: 10\n" + validConfig
	config, err := NewInputParser().LoadFromFile(writeTemp(t, content))
	require.NoError(t, err)
	require.NotNil(t, config.Rules)

	rules := config.EffectiveRules()
	assert.Equal(t, "Short horizon", rules.Name)
	assert.Equal(t, 10, rules.Horizon())
	assert.Equal(t, 30, rules.LoanTermYears)
	assert.Len(t, rules.LandTaxBrackets, 8)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))
	assert.Len(t, config.Scenarios, 3)

	// survives a YAML round trip
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	reloaded, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, reloaded.Scenarios, len(config.Scenarios))
	for i := range config.Scenarios {
		assert.Equal(t, config.Scenarios[i].Name, reloaded.Scenarios[i].Name)
		assert.True(t, config.Scenarios[i].Inputs.MortgageInterestRate.Equal(reloaded.Scenarios[i].Inputs.MortgageInterestRate))
		assert.True(t, config.Scenarios[i].Inputs.PurchasePrice.Equal(reloaded.Scenarios[i].Inputs.PurchasePrice))
	}

	// the first-home scenario sits inside the concession taper
	fhb := config.Scenarios[1].Inputs
	assert.Equal(t, domain.ConcessionPartial, calculation.NewCalculationEngine().Projection.StampDuty.ConcessionStatus(fhb.PurchasePrice, fhb.IsFirstTimeBuyer))
}
