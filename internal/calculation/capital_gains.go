package calculation

import (
	"github.com/itrgo/tax-estimator/internal/domain"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CapitalGainsCalculator taxes capital gains at their flat rates, outside
// the slab walk. The same tax applies in both regimes.
type CapitalGainsCalculator struct {
	Rules domain.CapitalGainsRules
}

// NewCapitalGainsCalculator creates a calculator for a year's rates
func NewCapitalGainsCalculator(rules domain.CapitalGainsRules) *CapitalGainsCalculator {
	return &CapitalGainsCalculator{Rules: rules}
}

// Calculate returns the capital gains tax before cess
func (cc *CapitalGainsCalculator) Calculate(cg domain.CapitalGainsIncome) decimal.Decimal {
	if !cg.Enabled {
		return decimal.Zero
	}
	r := cc.Rules
	ltcgTaxable := money.Floor0(cg.Shares.LTCG112A.Sub(money.NewMoneyFromDecimal(r.LTCG112AExemption)).Decimal)

	return cg.Shares.STCG111A.Mul(r.STCG111ARate).
		Add(ltcgTaxable.Mul(r.LTCG112ARate)).
		Add(cg.Property.LTCG.Mul(r.PropertyLTCGRate)).
		Add(cg.Property.STCG.Mul(r.PropertySTCGRate)).
		Add(cg.Other.Mul(r.OtherRate))
}

// UnusedLTCGExemption is the part of the Section 112A exemption not absorbed
// by the declared long-term equity gains
func (cc *CapitalGainsCalculator) UnusedLTCGExemption(cg domain.CapitalGainsIncome) decimal.Decimal {
	return money.Floor0(cc.Rules.LTCG112AExemption.Sub(cg.Shares.LTCG112A.Decimal))
}
