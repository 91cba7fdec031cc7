package domain

import "github.com/itrgo/tax-estimator/pkg/decimal"

// ComputationResult is produced fresh by every computation and never mutated
// afterwards. Slices are always non-nil so they encode as [] rather than null.
type ComputationResult struct {
	FinancialYear    string        `json:"financialYear"`
	GrossTotalIncome decimal.Money `json:"grossTotalIncome"`
	OldTaxableIncome decimal.Money `json:"oldTaxableIncome"`
	NewTaxableIncome decimal.Money `json:"newTaxableIncome"`
	OldRegimeTax     decimal.Money `json:"oldRegimeTax"`
	NewRegimeTax     decimal.Money `json:"newRegimeTax"`
	Recommendation   Regime        `json:"recommendation"`
	SelectedRegime   Regime        `json:"selectedRegime"`
	Savings          decimal.Money `json:"savings"`
	TotalTaxesPaid   decimal.Money `json:"totalTaxesPaid"`

	// NetPayable never goes below zero; any excess of taxes paid over the
	// liability is reported in RefundDue instead.
	NetPayable         decimal.Money      `json:"netPayable"`
	RefundDue          decimal.Money      `json:"refundDue"`
	AdvanceTaxSchedule []AdvanceTaxDue    `json:"advanceTaxSchedule"`
	Suggestions        []string           `json:"suggestions"`
	OldRegime          RegimeBreakdown    `json:"oldRegime"`
	NewRegime          RegimeBreakdown    `json:"newRegime"`
	Exemptions         ExemptionBreakdown `json:"exemptions"`
	IncomeHeads        IncomeHeads        `json:"incomeHeads"`
	DeductionsAllowed  DeductionsAllowed  `json:"deductionsAllowed"`
}

// TaxFor returns the final tax of the given regime
func (r *ComputationResult) TaxFor(regime Regime) decimal.Money {
	if regime == RegimeNew {
		return r.NewRegimeTax
	}
	return r.OldRegimeTax
}

// AdvanceTaxDue is one installment of the advance-tax schedule. Percentage is
// the cumulative share of the liability due by DueDate; AmountDue is the
// increment payable at this checkpoint.
type AdvanceTaxDue struct {
	DueDate    string        `json:"dueDate"`
	Percentage int           `json:"percentage"`
	AmountDue  decimal.Money `json:"amountDue"`
}

// RegimeBreakdown shows how a regime's final tax was reached
type RegimeBreakdown struct {
	TaxableIncome   decimal.Money `json:"taxableIncome"`
	SlabTax         decimal.Money `json:"slabTax"`
	Rebate          decimal.Money `json:"rebate"`
	CapitalGainsTax decimal.Money `json:"capitalGainsTax"`
	Cess            decimal.Money `json:"cess"`
	TotalTax        decimal.Money `json:"totalTax"`
	Slabs           []SlabTax     `json:"slabs"`
}

// SlabTax is the tax levied inside one bracket. To is nil for the open top
// bracket.
type SlabTax struct {
	From decimal.Money  `json:"from"`
	To   *decimal.Money `json:"to,omitempty"`
	Rate float64        `json:"rate"`
	Tax  decimal.Money  `json:"tax"`
}

// ExemptionBreakdown lists the salary exemptions allowed in the Old Regime
type ExemptionBreakdown struct {
	HRA               decimal.Money `json:"hra"`
	Gratuity          decimal.Money `json:"gratuity"`
	LeaveEncashment   decimal.Money `json:"leaveEncashment"`
	CommutedPension   decimal.Money `json:"commutedPension"`
	StandardDeduction decimal.Money `json:"standardDeduction"`
}

// IncomeHeads reports each head after regime-specific adjustments
type IncomeHeads struct {
	GrossSalary      decimal.Money `json:"grossSalary"`
	SalaryOld        decimal.Money `json:"salaryOld"`
	SalaryNew        decimal.Money `json:"salaryNew"`
	Business         decimal.Money `json:"business"`
	HousePropertyOld decimal.Money `json:"housePropertyOld"`
	HousePropertyNew decimal.Money `json:"housePropertyNew"`
	CapitalGains     decimal.Money `json:"capitalGains"`
	OtherSources     decimal.Money `json:"otherSources"`
}

// DeductionsAllowed is the Chapter VI-A amount allowed per section after caps
type DeductionsAllowed struct {
	Section80C        decimal.Money `json:"section80C"`
	Section80D        decimal.Money `json:"section80D"`
	Section80DParents decimal.Money `json:"section80DParents"`
	Section80E        decimal.Money `json:"section80E"`
	Section80G        decimal.Money `json:"section80G"`
	Section80TTA      decimal.Money `json:"section80TTA"`
	OtherDeductions   decimal.Money `json:"otherDeductions"`
	Total             decimal.Money `json:"total"`
}
