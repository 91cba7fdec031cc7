package output

import (
	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarises the regime comparison for rendering.
type Recommendation struct {
	Regime           domain.Regime
	Tax              decimal.Decimal
	Alternative      domain.Regime
	AlternativeTax   decimal.Decimal
	Savings          decimal.Decimal
	PercentageChange decimal.Decimal
	Overridden       bool
}

// AnalyzeRegimes compares the two regimes of a result. PercentageChange is the
// saving relative to the costlier regime and is zero when both are zero.
func AnalyzeRegimes(result *domain.ComputationResult) Recommendation {
	rec := Recommendation{
		Regime:      result.Recommendation,
		Alternative: domain.RegimeNew,
		Savings:     result.Savings.Decimal,
		Overridden:  result.SelectedRegime != "" && result.SelectedRegime != result.Recommendation,
	}
	if rec.Regime == domain.RegimeNew {
		rec.Alternative = domain.RegimeOld
	}
	rec.Tax = result.TaxFor(rec.Regime).Decimal
	rec.AlternativeTax = result.TaxFor(rec.Alternative).Decimal
	if !rec.AlternativeTax.IsZero() {
		rec.PercentageChange = rec.Savings.Div(rec.AlternativeTax).Mul(decimalHundred).Round(2)
	}
	return rec
}
