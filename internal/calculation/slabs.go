package calculation

import (
	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SlabCalculator is the tax engine of one regime: a stepped slab walk, the
// income-linked rebate and the cess. Slabs must be sorted by descending
// threshold.
type SlabCalculator struct {
	Slabs    []domain.Slab
	Rebate   domain.RebateRule
	CessRate decimal.Decimal
}

// NewOldRegimeCalculator builds the Old Regime engine for an age group
func NewOldRegimeCalculator(rules *domain.YearRules, age domain.AgeGroup) *SlabCalculator {
	return &SlabCalculator{
		Slabs:    rules.OldSlabsFor(age),
		Rebate:   rules.OldRegime.Rebate,
		CessRate: rules.CessRate,
	}
}

// NewNewRegimeCalculator builds the New Regime engine
func NewNewRegimeCalculator(rules *domain.YearRules) *SlabCalculator {
	return &SlabCalculator{
		Slabs:    rules.NewRegime.Slabs,
		Rebate:   rules.NewRegime.Rebate,
		CessRate: rules.CessRate,
	}
}

// SlabTax walks the slabs from the highest threshold down. Income above each
// threshold is taxed at that slab's rate and the remainder carried to the
// next lower slab. The returned brackets are in ascending order.
func (sc *SlabCalculator) SlabTax(income decimal.Decimal) (decimal.Decimal, []domain.SlabTax) {
	tax := decimal.Zero
	brackets := make([]domain.SlabTax, 0, len(sc.Slabs))
	var upper *decimal.Decimal

	for i := range sc.Slabs {
		slab := sc.Slabs[i]
		if income.GreaterThan(slab.Threshold) {
			inBracket := income.Sub(slab.Threshold).Mul(slab.Rate)
			tax = tax.Add(inBracket)
			bracket := domain.SlabTax{
				From: money.NewMoneyFromDecimal(slab.Threshold),
				Rate: slab.Rate.InexactFloat64(),
				Tax:  money.NewMoneyFromDecimal(inBracket).Round(),
			}
			if upper != nil {
				to := money.NewMoneyFromDecimal(*upper)
				bracket.To = &to
			}
			brackets = append(brackets, bracket)
			income = slab.Threshold
		}
		upper = &sc.Slabs[i].Threshold
	}

	for i, j := 0, len(brackets)-1; i < j; i, j = i+1, j-1 {
		brackets[i], brackets[j] = brackets[j], brackets[i]
	}
	return tax, brackets
}

// rebate returns the reduction of slab tax for a taxable income
func (sc *SlabCalculator) rebate(taxable, tax decimal.Decimal, status domain.ResidentialStatus) decimal.Decimal {
	r := sc.Rebate
	if !r.IncomeLimit.IsPositive() || taxable.GreaterThan(r.IncomeLimit) {
		return decimal.Zero
	}
	if r.ResidentsOnly && status == domain.NRI {
		return decimal.Zero
	}
	switch r.Mode {
	case domain.RebateCredit:
		return money.Min(tax, r.MaxRebate)
	default:
		// cap: tax is limited to MaxRebate
		return money.Floor0(tax.Sub(r.MaxRebate))
	}
}

// Calculate computes the final tax of the regime for a slab-taxable income
// plus the flat-rate capital gains tax. Cess applies to both; the total is
// rounded to whole rupees.
func (sc *SlabCalculator) Calculate(taxable, capitalGainsTax decimal.Decimal, status domain.ResidentialStatus) (domain.RegimeBreakdown, error) {
	if taxable.IsNegative() {
		return domain.RegimeBreakdown{}, ierr.NewErrorf("taxable income %s is negative", taxable).
			WithHint("Taxable income cannot be negative").
			Mark(ierr.ErrInvalidInput)
	}

	slabTax, brackets := sc.SlabTax(taxable)
	rebate := sc.rebate(taxable, slabTax, status)
	beforeCess := slabTax.Sub(rebate).Add(capitalGainsTax)
	cess := beforeCess.Mul(sc.CessRate)

	return domain.RegimeBreakdown{
		TaxableIncome:   money.NewMoneyFromDecimal(taxable).Round(),
		SlabTax:         money.NewMoneyFromDecimal(slabTax).Round(),
		Rebate:          money.NewMoneyFromDecimal(rebate).Round(),
		CapitalGainsTax: money.NewMoneyFromDecimal(capitalGainsTax).Round(),
		Cess:            money.NewMoneyFromDecimal(cess).Round(),
		TotalTax:        money.NewMoneyFromDecimal(beforeCess.Add(cess)).RoundRupee(),
		Slabs:           brackets,
	}, nil
}
