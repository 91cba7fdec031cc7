package calculation

import (
	"github.com/itrgo/tax-estimator/internal/domain"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AggregatedIncome is the Income Aggregator's view of a declaration. Slab
// bases are already floored at zero; capital gains are kept apart because
// they are taxed at flat rates.
type AggregatedIncome struct {
	GrossTotalIncome decimal.Decimal
	OldTaxableIncome decimal.Decimal
	NewTaxableIncome decimal.Decimal
	CapitalGains     decimal.Decimal
	Heads            domain.IncomeHeads
	Exemptions       domain.ExemptionBreakdown
	Deductions       domain.DeductionsAllowed
}

// IncomeAggregator reduces an income declaration to the taxable base of each
// regime for one financial year
type IncomeAggregator struct {
	Rules      *domain.YearRules
	Exemptions *ExemptionCalculator
	Logger     Logger
}

// NewIncomeAggregator creates an aggregator for the given year's rules
func NewIncomeAggregator(rules *domain.YearRules, logger Logger) *IncomeAggregator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &IncomeAggregator{
		Rules:      rules,
		Exemptions: NewExemptionCalculator(rules.Exemptions),
		Logger:     logger,
	}
}

// Aggregate computes gross total income and both regimes' slab-taxable income
func (ia *IncomeAggregator) Aggregate(profile domain.TaxpayerProfile, income domain.IncomeDeclaration, deductions domain.Deductions) AggregatedIncome {
	var agg AggregatedIncome

	grossSalary, salaryOld, salaryNew := ia.salary(income.Salary, &agg.Exemptions)
	business := ia.business(income.Business)
	hpOld, hpNew := ia.houseProperty(income.HouseProperty)
	other := ia.otherSources(income.OtherIncome)
	agg.CapitalGains = capitalGainsTotal(income.CapitalGains)

	oldBase := salaryOld.Add(business).Add(hpOld).Add(other)
	newBase := salaryNew.Add(business).Add(hpNew).Add(other)

	agg.Deductions = ia.deductions(profile, deductions, money.Floor0(oldBase))

	agg.GrossTotalIncome = money.Floor0(oldBase).Add(agg.CapitalGains)
	agg.OldTaxableIncome = money.Floor0(oldBase.Sub(agg.Deductions.Total.Decimal))
	agg.NewTaxableIncome = money.Floor0(newBase)

	agg.Heads = domain.IncomeHeads{
		GrossSalary:      money.NewMoneyFromDecimal(grossSalary),
		SalaryOld:        money.NewMoneyFromDecimal(salaryOld),
		SalaryNew:        money.NewMoneyFromDecimal(salaryNew),
		Business:         money.NewMoneyFromDecimal(business),
		HousePropertyOld: money.NewMoneyFromDecimal(hpOld),
		HousePropertyNew: money.NewMoneyFromDecimal(hpNew),
		CapitalGains:     money.NewMoneyFromDecimal(agg.CapitalGains),
		OtherSources:     money.NewMoneyFromDecimal(other),
	}

	ia.Logger.Debugf("aggregated %s: gross=%s old=%s new=%s capital gains=%s",
		profile.FinancialYear, agg.GrossTotalIncome, agg.OldTaxableIncome, agg.NewTaxableIncome, agg.CapitalGains)
	return agg
}

// salary returns gross salary and the taxable salary of each regime. The New
// Regime allows the standard deduction but none of the exemptions.
func (ia *IncomeAggregator) salary(s domain.SalaryIncome, exemptions *domain.ExemptionBreakdown) (gross, oldTaxable, newTaxable decimal.Decimal) {
	if !s.Enabled {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}

	gross = money.Sum(s.Basic, s.HRA, s.Bonus, s.OtherAllowances)
	if s.DetailedMode {
		gross = gross.Add(money.Sum(
			s.DA,
			s.Gratuity.Received,
			s.LeaveEncashment.Received,
			s.Pension.Uncommuted,
			s.Pension.CommutedReceived,
			s.Perquisites.TaxableValue,
			s.OtherAllowancesTaxable,
		))
	}

	*exemptions = ia.Exemptions.Calculate(s)
	afterExemptions := money.Floor0(gross.Sub(totalExemptions(*exemptions)))

	stdOld := money.Min(ia.Rules.OldRegime.StandardDeduction, afterExemptions)
	stdNew := money.Min(ia.Rules.NewRegime.StandardDeduction, gross)
	exemptions.StandardDeduction = money.NewMoneyFromDecimal(stdOld)

	oldTaxable = money.Floor0(afterExemptions.Sub(stdOld))
	newTaxable = money.Floor0(gross.Sub(stdNew))
	return gross, oldTaxable, newTaxable
}

func (ia *IncomeAggregator) business(b domain.BusinessIncome) decimal.Decimal {
	if !b.Enabled {
		return decimal.Zero
	}
	return lo.Reduce(b.Entries, func(total decimal.Decimal, entry domain.BusinessEntry, _ int) decimal.Decimal {
		if entry.IsPresumptive() {
			return total.Add(entry.Turnover.Mul(money.Percent(entry.PresumptiveRate.Decimal)))
		}
		return total.Add(entry.Profit.Decimal)
	}, decimal.Zero)
}

// houseProperty returns the head's contribution to each regime. A loss is
// set off against other heads only in the Old Regime, up to the set-off cap.
func (ia *IncomeAggregator) houseProperty(hp domain.HousePropertyIncome) (oldIncome, newIncome decimal.Decimal) {
	if !hp.Enabled {
		return decimal.Zero, decimal.Zero
	}
	rules := ia.Rules.HouseProperty

	if !hp.IsRented() {
		interest := money.Min(hp.InterestPaid.Decimal, rules.SelfOccupiedInterestCap)
		return ia.capLoss(interest.Neg()), decimal.Zero
	}

	// The standard deduction is a share of net annual value, so a negative
	// value shrinks by the same share.
	nav := hp.RentReceived.Sub(hp.MunicipalTaxes).Decimal
	standardDeduction := nav.Mul(rules.StandardDeductionRate)
	income := nav.Sub(standardDeduction).Sub(hp.InterestPaid.Decimal)
	return ia.capLoss(income), money.Floor0(income)
}

func (ia *IncomeAggregator) capLoss(income decimal.Decimal) decimal.Decimal {
	limit := ia.Rules.HouseProperty.LossSetOffCap
	if limit.IsPositive() && income.LessThan(limit.Neg()) {
		return limit.Neg()
	}
	return income
}

func (ia *IncomeAggregator) otherSources(o domain.OtherIncome) decimal.Decimal {
	if !o.Enabled {
		return decimal.Zero
	}
	return lo.Reduce(o.Sources, func(total decimal.Decimal, src domain.OtherSource, _ int) decimal.Decimal {
		return total.Add(src.Amount.Sub(src.Expenses).Decimal)
	}, decimal.Zero)
}

func capitalGainsTotal(cg domain.CapitalGainsIncome) decimal.Decimal {
	if !cg.Enabled {
		return decimal.Zero
	}
	return money.Sum(cg.Shares.STCG111A, cg.Shares.LTCG112A, cg.Property.LTCG, cg.Property.STCG, cg.Other)
}

// deductions caps each Chapter VI-A section and limits the total to the
// slab-taxable income it is set off against
func (ia *IncomeAggregator) deductions(profile domain.TaxpayerProfile, d domain.Deductions, base decimal.Decimal) domain.DeductionsAllowed {
	caps := ia.Rules.Deductions

	selfCap := caps.Section80DSelf
	if profile.AgeGroup.IsSenior() && caps.Section80DSelfSenior.IsPositive() {
		selfCap = caps.Section80DSelfSenior
	}
	parentsCap := caps.Section80DParents
	if d.ParentsSeniorCitizen && caps.Section80DParentsSenior.IsPositive() {
		parentsCap = caps.Section80DParentsSenior
	}

	allowed := domain.DeductionsAllowed{
		Section80C:        capped(d.Section80C, caps.Section80C),
		Section80D:        capped(d.Section80D, selfCap),
		Section80DParents: capped(d.Section80DParents, parentsCap),
		Section80E:        capped(d.Section80E, caps.Section80E),
		Section80G:        capped(d.Section80G, caps.Section80G),
		Section80TTA:      capped(d.Section80TTA, caps.Section80TTA),
		OtherDeductions:   capped(d.OtherDeductions, caps.Other),
	}
	total := money.Sum(
		allowed.Section80C,
		allowed.Section80D,
		allowed.Section80DParents,
		allowed.Section80E,
		allowed.Section80G,
		allowed.Section80TTA,
		allowed.OtherDeductions,
	)
	allowed.Total = money.NewMoneyFromDecimal(money.Min(total, base))
	return allowed
}

// capped limits a claim to limit; a zero limit means the section is uncapped
func capped(claim money.Money, limit decimal.Decimal) money.Money {
	amount := money.Floor0(claim.Decimal)
	if limit.IsPositive() {
		amount = money.Min(amount, limit)
	}
	return money.NewMoneyFromDecimal(amount)
}
