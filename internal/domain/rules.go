package domain

import (
	"sort"

	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/shopspring/decimal"
)

// Slab is one bracket of a stepped rate table: income above Threshold is
// taxed at Rate (a fraction, 0.05 for 5%).
type Slab struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// RebateMode selects how the Section 87A rebate reduces tax
type RebateMode string

const (
	// RebateCap limits tax to MaxRebate when income is within the limit
	RebateCap RebateMode = "cap"
	// RebateCredit subtracts up to MaxRebate from tax, the statutory reading
	RebateCredit RebateMode = "credit"
)

// RebateRule is the income-linked rebate of a regime
type RebateRule struct {
	IncomeLimit   decimal.Decimal `yaml:"income_limit" json:"incomeLimit"`
	MaxRebate     decimal.Decimal `yaml:"max_rebate" json:"maxRebate"`
	Mode          RebateMode      `yaml:"mode" json:"mode"`
	ResidentsOnly bool            `yaml:"residents_only" json:"residentsOnly"`
}

// RegimeRules configures one regime for one year
type RegimeRules struct {
	Slabs             []Slab          `yaml:"slabs" json:"slabs"`
	Rebate            RebateRule      `yaml:"rebate" json:"rebate"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
}

// CapitalGainsRules holds the flat rates applied outside the slab walk
type CapitalGainsRules struct {
	STCG111ARate      decimal.Decimal `yaml:"stcg_111a_rate" json:"stcg111aRate"`
	LTCG112ARate      decimal.Decimal `yaml:"ltcg_112a_rate" json:"ltcg112aRate"`
	LTCG112AExemption decimal.Decimal `yaml:"ltcg_112a_exemption" json:"ltcg112aExemption"`
	PropertyLTCGRate  decimal.Decimal `yaml:"property_ltcg_rate" json:"propertyLtcgRate"`
	PropertySTCGRate  decimal.Decimal `yaml:"property_stcg_rate" json:"propertyStcgRate"`
	OtherRate         decimal.Decimal `yaml:"other_rate" json:"otherRate"`
}

// DeductionCaps are the Chapter VI-A ceilings. A zero cap means uncapped.
type DeductionCaps struct {
	Section80C              decimal.Decimal `yaml:"section_80c" json:"section80C"`
	Section80DSelf          decimal.Decimal `yaml:"section_80d_self" json:"section80DSelf"`
	Section80DSelfSenior    decimal.Decimal `yaml:"section_80d_self_senior" json:"section80DSelfSenior"`
	Section80DParents       decimal.Decimal `yaml:"section_80d_parents" json:"section80DParents"`
	Section80DParentsSenior decimal.Decimal `yaml:"section_80d_parents_senior" json:"section80DParentsSenior"`
	Section80E              decimal.Decimal `yaml:"section_80e" json:"section80E"`
	Section80G              decimal.Decimal `yaml:"section_80g" json:"section80G"`
	Section80TTA            decimal.Decimal `yaml:"section_80tta" json:"section80TTA"`
	Other                   decimal.Decimal `yaml:"other" json:"other"`
}

// ExemptionLimits bound the salary exemptions of non-government employees
type ExemptionLimits struct {
	GratuityCap        decimal.Decimal `yaml:"gratuity_cap" json:"gratuityCap"`
	LeaveEncashmentCap decimal.Decimal `yaml:"leave_encashment_cap" json:"leaveEncashmentCap"`
}

// HousePropertyRules for income from house property
type HousePropertyRules struct {
	StandardDeductionRate   decimal.Decimal `yaml:"standard_deduction_rate" json:"standardDeductionRate"`
	SelfOccupiedInterestCap decimal.Decimal `yaml:"self_occupied_interest_cap" json:"selfOccupiedInterestCap"`
	LossSetOffCap           decimal.Decimal `yaml:"loss_set_off_cap" json:"lossSetOffCap"`
}

// AdvanceTaxInstallment is a statutory checkpoint within the financial year
type AdvanceTaxInstallment struct {
	Month             int `yaml:"month" json:"month"`
	Day               int `yaml:"day" json:"day"`
	CumulativePercent int `yaml:"cumulative_percent" json:"cumulativePercent"`
}

// AdvanceTaxRules schedule pre-payment of tax above Threshold
type AdvanceTaxRules struct {
	Threshold    decimal.Decimal         `yaml:"threshold" json:"threshold"`
	Installments []AdvanceTaxInstallment `yaml:"installments" json:"installments"`
}

// YearRules is the complete rate set for one financial year
type YearRules struct {
	FinancialYear        string              `yaml:"financial_year" json:"financialYear"`
	OldRegime            RegimeRules         `yaml:"old_regime" json:"oldRegime"`
	NewRegime            RegimeRules         `yaml:"new_regime" json:"newRegime"`
	OldRegimeSeniorSlabs map[AgeGroup][]Slab `yaml:"old_regime_senior_slabs" json:"oldRegimeSeniorSlabs"`
	CessRate             decimal.Decimal     `yaml:"cess_rate" json:"cessRate"`
	CapitalGains         CapitalGainsRules   `yaml:"capital_gains" json:"capitalGains"`
	Deductions           DeductionCaps       `yaml:"deductions" json:"deductions"`
	Exemptions           ExemptionLimits     `yaml:"exemptions" json:"exemptions"`
	HouseProperty        HousePropertyRules  `yaml:"house_property" json:"houseProperty"`
	AdvanceTax           AdvanceTaxRules     `yaml:"advance_tax" json:"advanceTax"`
}

// OldSlabsFor returns the Old Regime slabs for the given age group
func (y *YearRules) OldSlabsFor(age AgeGroup) []Slab {
	if slabs, ok := y.OldRegimeSeniorSlabs[age]; ok && len(slabs) > 0 {
		return slabs
	}
	return y.OldRegime.Slabs
}

// Clone returns a deep copy so that overrides never touch shared tables
func (y *YearRules) Clone() *YearRules {
	c := *y
	c.OldRegime.Slabs = cloneSlabs(y.OldRegime.Slabs)
	c.NewRegime.Slabs = cloneSlabs(y.NewRegime.Slabs)
	c.AdvanceTax.Installments = append([]AdvanceTaxInstallment(nil), y.AdvanceTax.Installments...)
	if y.OldRegimeSeniorSlabs != nil {
		c.OldRegimeSeniorSlabs = make(map[AgeGroup][]Slab, len(y.OldRegimeSeniorSlabs))
		for age, slabs := range y.OldRegimeSeniorSlabs {
			c.OldRegimeSeniorSlabs[age] = cloneSlabs(slabs)
		}
	}
	return &c
}

func cloneSlabs(slabs []Slab) []Slab {
	return append([]Slab(nil), slabs...)
}

// SortSlabs orders slabs by descending threshold, the order the slab walk
// consumes them in.
func SortSlabs(slabs []Slab) {
	sort.SliceStable(slabs, func(i, j int) bool {
		return slabs[i].Threshold.GreaterThan(slabs[j].Threshold)
	})
}

// RuleBook is the registry of rate sets keyed by financial year
type RuleBook struct {
	years map[string]*YearRules
}

// NewRuleBook creates an empty rule book
func NewRuleBook() *RuleBook {
	return &RuleBook{years: make(map[string]*YearRules)}
}

// Register adds or replaces the rules of a financial year
func (b *RuleBook) Register(rules *YearRules) {
	b.years[rules.FinancialYear] = rules
}

// Lookup returns the rules of a financial year. Unknown years are a
// configuration error; there is no fallback to another year.
func (b *RuleBook) Lookup(financialYear string) (*YearRules, error) {
	rules, ok := b.years[financialYear]
	if !ok {
		return nil, ierr.NewErrorf("no tax rules registered for financial year %q", financialYear).
			WithHintf("Supported financial years: %v", b.Years()).
			WithReportableDetails(map[string]any{"financialYear": financialYear, "supported": b.Years()}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return rules, nil
}

// Years returns the registered financial years, newest first
func (b *RuleBook) Years() []string {
	years := make([]string, 0, len(b.years))
	for fy := range b.years {
		years = append(years, fy)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// Clone returns a deep copy of the book
func (b *RuleBook) Clone() *RuleBook {
	c := NewRuleBook()
	for _, rules := range b.years {
		c.Register(rules.Clone())
	}
	return c
}
