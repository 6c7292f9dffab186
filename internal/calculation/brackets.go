package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidBracketTable is wrapped by every bracket table construction failure.
var ErrInvalidBracketTable = errors.New("invalid bracket table")

// TaxBracket is one evaluated bracket: tax at value v (Threshold <= v) is
// Base + (v - Threshold) * Rate.
type TaxBracket struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
	Base      decimal.Decimal `json:"base"`
}

// BracketTable is a progressive-threshold table. Base amounts are derived at
// construction so each one equals the table evaluated at its threshold.
type BracketTable struct {
	brackets []TaxBracket
}

// NewBracketTable builds a table from ordered specs. The first threshold must
// be zero, thresholds must strictly increase, rates and steps must be non-negative.
func NewBracketTable(specs []domain.BracketSpec) (*BracketTable, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no brackets", ErrInvalidBracketTable)
	}
	if !specs[0].Threshold.IsZero() {
		return nil, fmt.Errorf("%w: first threshold must be 0, got %s", ErrInvalidBracketTable, specs[0].Threshold.String())
	}

	brackets := make([]TaxBracket, len(specs))
	for i, s := range specs {
		if s.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: bracket %d has negative rate %s", ErrInvalidBracketTable, i, s.Rate.String())
		}
		if s.Step.IsNegative() {
			return nil, fmt.Errorf("%w: bracket %d has negative step %s", ErrInvalidBracketTable, i, s.Step.String())
		}
		base := s.Step
		if i > 0 {
			prev := brackets[i-1]
			if !s.Threshold.GreaterThan(prev.Threshold) {
				return nil, fmt.Errorf("%w: threshold %s does not exceed previous threshold %s",
					ErrInvalidBracketTable, s.Threshold.String(), prev.Threshold.String())
			}
			span := s.Threshold.Sub(prev.Threshold)
			base = prev.Base.Add(span.Mul(prev.Rate)).Add(s.Step)
		}
		brackets[i] = TaxBracket{Threshold: s.Threshold, Rate: s.Rate, Base: base}
	}
	return &BracketTable{brackets: brackets}, nil
}

// Evaluate returns the cumulative tax for value. Negative values are treated as zero.
func (bt *BracketTable) Evaluate(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		value = decimal.Zero
	}
	// index of the first bracket whose threshold exceeds value; the one before it applies
	idx := sort.Search(len(bt.brackets), func(i int) bool {
		return bt.brackets[i].Threshold.GreaterThan(value)
	}) - 1
	b := bt.brackets[idx]
	return b.Base.Add(value.Sub(b.Threshold).Mul(b.Rate))
}

// Brackets returns a copy of the evaluated brackets.
func (bt *BracketTable) Brackets() []TaxBracket {
	out := make([]TaxBracket, len(bt.brackets))
	copy(out, bt.brackets)
	return out
}
