package calculation

import (
	"testing"

	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProjectionDefaultScenario(t *testing.T) {
	result, err := GenerateProjection(domain.DefaultScenarioInputs())
	require.NoError(t, err)
	require.Len(t, result, 31)

	year0 := result[0]
	assert.Equal(t, 0, year0.Year)
	assert.True(t, year0.HouseValue.Equal(decimal.NewFromInt(800000)))
	assert.True(t, year0.HouseEquity.Equal(decimal.NewFromInt(160000)))
	// down payment plus stamp duty
	assert.True(t, year0.FundEquity.Equal(decimal.NewFromInt(203070)), "got %s", year0.FundEquity)

	year1 := result[1]
	assert.Equal(t, 1, year1.Year)
	assert.True(t, year1.HouseValue.Equal(decimal.NewFromInt(840000)), "got %s", year1.HouseValue)
	// 12 payments + 5000 + land tax on 672000 (2682) + 1500 - 26000 rent
	assert.Equal(t, "29227.48", year1.NetAnnualCost.Round(2).String())
	assert.Equal(t, "248543.08", year1.FundEquity.Round(2).String())

	final := result.Final()
	assert.Equal(t, 30, final.Year)
	// loan fully repaid at the end of the term
	assert.InDelta(t, final.HouseValue.InexactFloat64(), final.HouseEquity.InexactFloat64(), 0.01)
	assert.InDelta(t, 3457553.90, final.HouseValue.InexactFloat64(), 0.01)
}

func TestGenerateProjectionInvariants(t *testing.T) {
	scenarios := map[string]domain.ScenarioInputs{
		"default": domain.DefaultScenarioInputs(),
		"no deposit flat prices": func() domain.ScenarioInputs {
			in := domain.DefaultScenarioInputs()
			in.DownPayment = decimal.Zero
			in.PropertyAppreciationRate = decimal.Zero
			in.MortgageInterestRate = decimal.NewFromInt(12)
			return in
		}(),
		"fully paid cash purchase": func() domain.ScenarioInputs {
			in := domain.DefaultScenarioInputs()
			in.DownPayment = in.PurchasePrice
			return in
		}(),
		"zero everything": {
			PurchasePrice:            decimal.NewFromInt(300000),
			DownPayment:              decimal.Zero,
			PropertyAppreciationRate: decimal.Zero,
			FundReturnRate:           decimal.Zero,
			RentGrowthRate:           decimal.Zero,
			MortgageInterestRate:     decimal.Zero,
		},
	}

	for name, inputs := range scenarios {
		t.Run(name, func(t *testing.T) {
			result, err := GenerateProjection(inputs)
			require.NoError(t, err)
			require.Len(t, result, 31)
			for i, p := range result {
				assert.Equal(t, i, p.Year)
				assert.False(t, p.HouseEquity.IsNegative(), "year %d house equity negative", i)
				assert.False(t, p.HouseEquity.GreaterThan(p.HouseValue), "year %d equity exceeds value", i)
			}
		})
	}
}

func TestGenerateProjectionIsDeterministic(t *testing.T) {
	inputs := domain.DefaultScenarioInputs()
	inputs.IsFirstTimeBuyer = true

	first, err := GenerateProjection(inputs)
	require.NoError(t, err)
	second, err := GenerateProjection(inputs)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].FundEquity.Equal(second[i].FundEquity))
		assert.True(t, first[i].HouseEquity.Equal(second[i].HouseEquity))
	}
}

func TestGenerateProjectionRejectsInvalidInputs(t *testing.T) {
	inputs := domain.DefaultScenarioInputs()
	inputs.DownPayment = decimal.NewFromInt(900000)

	_, err := GenerateProjection(inputs)
	assert.ErrorIs(t, err, domain.ErrInvalidInputs)
}

func TestProjectionHorizonFollowsRules(t *testing.T) {
	rules := domain.VictoriaRules2024()
	rules.ProjectionYears = 10

	pe, err := NewProjectionEngine(rules)
	require.NoError(t, err)
	result, err := pe.Generate(domain.DefaultScenarioInputs())
	require.NoError(t, err)
	assert.Len(t, result, 11)
}

func TestProjectionBeyondLoanTerm(t *testing.T) {
	rules := domain.VictoriaRules2024()
	rules.ProjectionYears = 40

	pe, err := NewProjectionEngine(rules)
	require.NoError(t, err)
	result, err := pe.Generate(domain.DefaultScenarioInputs())
	require.NoError(t, err)
	require.Len(t, result, 41)
	assert.Equal(t, 40, result.Final().Year)

	// the final payment may leave a sub-cent residual; later years pay it off
	assert.InDelta(t, result[30].HouseValue.InexactFloat64(), result[30].HouseEquity.InexactFloat64(), 0.01)
	for year := 31; year <= 40; year++ {
		p := result[year]
		assert.True(t, p.HouseEquity.Equal(p.HouseValue), "year %d: equity %s value %s", year, p.HouseEquity, p.HouseValue)
		assert.True(t, p.FundEquity.GreaterThan(result[year-1].FundEquity), "year %d fund stopped growing", year)
	}

	assert.Equal(t, "3630431.60", result[31].HouseEquity.Round(2).StringFixed(2))
	assert.InDelta(t, 10695183.92, result[40].FundEquity.InexactFloat64(), 0.01)
}

func TestNewProjectionEngineRejectsBadRules(t *testing.T) {
	rules := domain.VictoriaRules2024()
	rules.LandTaxBrackets = []domain.BracketSpec{{Threshold: decimal.NewFromInt(1), Rate: decimal.Zero}}

	_, err := NewProjectionEngine(rules)
	assert.ErrorIs(t, err, ErrInvalidBracketTable)
}

func TestNetMonthlyCashFlow(t *testing.T) {
	payment := ComputeMonthlyMortgagePayment(decimal.NewFromInt(640000), decimal.NewFromInt(6), 30)
	got := ComputeNetMonthlyCashFlow(decimal.NewFromInt(500), payment,
		decimal.NewFromInt(5000), decimal.NewFromInt(2490), decimal.NewFromInt(1500))
	assert.Equal(t, "-2421.29", got.Round(2).String())

	// rent alone: 1000 * 4.33
	got = ComputeNetMonthlyCashFlow(decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromInt(4330)), "got %s", got)
}
