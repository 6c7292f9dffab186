package calculation

import (
	"testing"

	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketTableBases(t *testing.T) {
	rules := domain.VictoriaRules2024()

	tests := []struct {
		name  string
		specs []domain.BracketSpec
		bases []int64
	}{
		{"land tax", rules.LandTaxBrackets, []int64{0, 500, 975, 1350, 2250, 4650, 11850, 31650}},
		{"stamp duty", rules.StampDutyBrackets, []int64{0, 350, 2870, 21470, 28070, 52670}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewBracketTable(tt.specs)
			require.NoError(t, err)
			brackets := table.Brackets()
			require.Len(t, brackets, len(tt.bases))
			for i, b := range brackets {
				assert.True(t, b.Base.Equal(decimal.NewFromInt(tt.bases[i])),
					"bracket %d base: expected %d, got %s", i, tt.bases[i], b.Base.String())
				// each base is the table evaluated at its own threshold
				assert.True(t, table.Evaluate(b.Threshold).Equal(b.Base))
			}
		})
	}
}

func TestNewBracketTableRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		specs []domain.BracketSpec
	}{
		{"empty", nil},
		{"nonzero first threshold", []domain.BracketSpec{{Threshold: decimal.NewFromInt(10), Rate: decimal.Zero}}},
		{"decreasing thresholds", []domain.BracketSpec{
			{Threshold: decimal.Zero, Rate: decimal.Zero},
			{Threshold: decimal.NewFromInt(100), Rate: decimal.Zero},
			{Threshold: decimal.NewFromInt(50), Rate: decimal.Zero},
		}},
		{"negative rate", []domain.BracketSpec{{Threshold: decimal.Zero, Rate: decimal.NewFromInt(-1)}}},
		{"negative step", []domain.BracketSpec{{Threshold: decimal.Zero, Rate: decimal.Zero, Step: decimal.NewFromInt(-5)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBracketTable(tt.specs)
			assert.ErrorIs(t, err, ErrInvalidBracketTable)
		})
	}
}

func TestLandTaxCalculation(t *testing.T) {
	tests := []struct {
		name      string
		landValue string
		expected  string
	}{
		{"negative treated as zero", "-1000", "0"},
		{"zero", "0", "0"},
		{"below first step", "49999", "0"},
		{"first flat step", "50000", "500"},
		{"between flat steps", "75000", "500"},
		{"second flat step", "100000", "975"},
		{"third flat step", "300000", "1350"},
		{"inside 0.3% bracket", "400000", "1650"},
		{"default scenario land value", "640000", "2490"},
		{"at 1.8M threshold", "1800000", "11850"},
		{"top bracket", "4000000", "58150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLandTax(decimal.RequireFromString(tt.landValue))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got.String())
		})
	}
}

func TestLandTaxIsMonotone(t *testing.T) {
	prev := decimal.Zero
	for v := int64(0); v <= 3500000; v += 12500 {
		tax := ComputeLandTax(decimal.NewFromInt(v))
		assert.False(t, tax.LessThan(prev), "land tax decreased at %d", v)
		prev = tax
	}
}

func TestStampDutyCalculation(t *testing.T) {
	tests := []struct {
		name      string
		price     string
		firstHome bool
		expected  string
	}{
		{"zero price", "0", false, "0"},
		{"negative price", "-5", true, "0"},
		{"first bracket", "20000", false, "280"},
		{"standard at 500k", "500000", false, "25070"},
		{"standard at 800k", "800000", false, "43070"},
		{"standard above 960k", "1000000", false, "54870"},
		{"first home at full ceiling", "600000", true, "0"},
		{"first home below full ceiling", "400000", true, "0"},
		{"first home midway through taper", "675000", true, "17785"},
		{"first home taper rounds to whole units", "700000", true, "24713"},
		{"first home at upper ceiling pays full duty", "750000", true, "40070"},
		{"first home above upper ceiling", "800000", true, "43070"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStampDuty(decimal.RequireFromString(tt.price), tt.firstHome)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got.String())
		})
	}
}

func TestStampDutyConcessionStatus(t *testing.T) {
	sdc := defaultProjection.StampDuty

	assert.Equal(t, domain.ConcessionNotEligible, sdc.ConcessionStatus(decimal.NewFromInt(500000), false))
	assert.Equal(t, domain.ConcessionFull, sdc.ConcessionStatus(decimal.NewFromInt(600000), true))
	assert.Equal(t, domain.ConcessionPartial, sdc.ConcessionStatus(decimal.NewFromInt(600001), true))
	assert.Equal(t, domain.ConcessionPartial, sdc.ConcessionStatus(decimal.NewFromInt(750000), true))
	assert.Equal(t, domain.ConcessionNone, sdc.ConcessionStatus(decimal.NewFromInt(750001), true))
}

func TestFirstHomeDutyNeverExceedsStandard(t *testing.T) {
	for p := int64(550000); p <= 800000; p += 5000 {
		price := decimal.NewFromInt(p)
		fhb := ComputeStampDuty(price, true)
		standard := ComputeStampDuty(price, false)
		assert.False(t, fhb.GreaterThan(standard), "price %d: concession duty %s exceeds standard %s", p, fhb, standard)
	}
}
