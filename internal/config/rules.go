package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BUILT-IN RATE TABLES:
//
// 1. Three financial years are registered: 2025-2026, 2024-2025 and 2023-2024.
//    Unknown years are rejected, never mapped onto the nearest year.
//
// 2. Standard deduction is 0 in both regimes and the rebate uses "cap"
//    semantics (tax is limited to the maximum rebate). The statutory figures
//    (standard deduction, Section 87A credit) live in configs/rules.statutory.yaml.
//
// 3. Capital gains rates are the post July 2024 rates for every year:
//    111A 20%, 112A 12.5% above 125,000, property LTCG 12.5%, other gains 30%.

func rate(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100))
}

func rupees(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func oldRegimeSlabs(basicExemption int64) []domain.Slab {
	slabs := []domain.Slab{
		{Threshold: rupees(1000000), Rate: rate(30)},
		{Threshold: rupees(500000), Rate: rate(20)},
	}
	if basicExemption < 500000 {
		slabs = append(slabs, domain.Slab{Threshold: rupees(basicExemption), Rate: rate(5)})
	}
	return append(slabs, domain.Slab{Threshold: decimal.Zero, Rate: decimal.Zero})
}

func baseYear(fy string, newSlabs []domain.Slab, newRebateLimit, newMaxRebate int64) *domain.YearRules {
	return &domain.YearRules{
		FinancialYear: fy,
		OldRegime: domain.RegimeRules{
			Slabs: oldRegimeSlabs(250000),
			Rebate: domain.RebateRule{
				IncomeLimit:   rupees(500000),
				MaxRebate:     rupees(12500),
				Mode:          domain.RebateCap,
				ResidentsOnly: true,
			},
			StandardDeduction: decimal.Zero,
		},
		NewRegime: domain.RegimeRules{
			Slabs: newSlabs,
			Rebate: domain.RebateRule{
				IncomeLimit:   rupees(newRebateLimit),
				MaxRebate:     rupees(newMaxRebate),
				Mode:          domain.RebateCap,
				ResidentsOnly: true,
			},
			StandardDeduction: decimal.Zero,
		},
		OldRegimeSeniorSlabs: map[domain.AgeGroup][]domain.Slab{
			domain.AgeSenior:      oldRegimeSlabs(300000),
			domain.AgeSuperSenior: oldRegimeSlabs(500000),
		},
		CessRate: rate(4),
		CapitalGains: domain.CapitalGainsRules{
			STCG111ARate:      rate(20),
			LTCG112ARate:      rate(12.5),
			LTCG112AExemption: rupees(125000),
			PropertyLTCGRate:  rate(12.5),
			PropertySTCGRate:  rate(30),
			OtherRate:         rate(30),
		},
		Deductions: domain.DeductionCaps{
			Section80C:              rupees(150000),
			Section80DSelf:          rupees(25000),
			Section80DSelfSenior:    rupees(50000),
			Section80DParents:       rupees(25000),
			Section80DParentsSenior: rupees(50000),
			Section80TTA:            rupees(10000),
		},
		Exemptions: domain.ExemptionLimits{
			GratuityCap:        rupees(2000000),
			LeaveEncashmentCap: rupees(2500000),
		},
		HouseProperty: domain.HousePropertyRules{
			StandardDeductionRate:   rate(30),
			SelfOccupiedInterestCap: rupees(200000),
			LossSetOffCap:           rupees(200000),
		},
		AdvanceTax: domain.AdvanceTaxRules{
			Threshold: rupees(10000),
			Installments: []domain.AdvanceTaxInstallment{
				{Month: int(time.June), Day: 15, CumulativePercent: 15},
				{Month: int(time.September), Day: 15, CumulativePercent: 45},
				{Month: int(time.December), Day: 15, CumulativePercent: 75},
				{Month: int(time.March), Day: 15, CumulativePercent: 100},
			},
		},
	}
}

// DefaultRuleBook returns a fresh copy of the built-in rate tables
func DefaultRuleBook() *domain.RuleBook {
	book := domain.NewRuleBook()

	book.Register(baseYear("2025-2026", []domain.Slab{
		{Threshold: rupees(2400000), Rate: rate(30)},
		{Threshold: rupees(2000000), Rate: rate(25)},
		{Threshold: rupees(1600000), Rate: rate(20)},
		{Threshold: rupees(1200000), Rate: rate(15)},
		{Threshold: rupees(800000), Rate: rate(10)},
		{Threshold: rupees(400000), Rate: rate(5)},
		{Threshold: decimal.Zero, Rate: decimal.Zero},
	}, 1200000, 60000))

	book.Register(baseYear("2024-2025", []domain.Slab{
		{Threshold: rupees(1500000), Rate: rate(30)},
		{Threshold: rupees(1200000), Rate: rate(20)},
		{Threshold: rupees(1000000), Rate: rate(15)},
		{Threshold: rupees(700000), Rate: rate(10)},
		{Threshold: rupees(300000), Rate: rate(5)},
		{Threshold: decimal.Zero, Rate: decimal.Zero},
	}, 700000, 25000))

	book.Register(baseYear("2023-2024", []domain.Slab{
		{Threshold: rupees(1500000), Rate: rate(30)},
		{Threshold: rupees(1200000), Rate: rate(20)},
		{Threshold: rupees(900000), Rate: rate(15)},
		{Threshold: rupees(600000), Rate: rate(10)},
		{Threshold: rupees(300000), Rate: rate(5)},
		{Threshold: decimal.Zero, Rate: decimal.Zero},
	}, 700000, 25000))

	return book
}

// ruleFile is the layout of a YAML rule file. Years already present in the
// built-in book are overlaid field by field; a new year starts from the year
// named in its "base" key, or from nothing.
type ruleFile struct {
	Years map[string]yaml.Node `yaml:"years"`
}

type yearHeader struct {
	Base string `yaml:"base"`
}

// LoadRuleBook reads a YAML rule file and merges it over the built-in book
func LoadRuleBook(path string) (*domain.RuleBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}
	book, err := ParseRuleBook(data)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return book, nil
}

// ParseRuleBook merges YAML rule data over the built-in book
func ParseRuleBook(data []byte) (*domain.RuleBook, error) {
	var file ruleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, invalidRules("", fmt.Sprintf("failed to parse YAML: %v", err))
	}

	builtin := DefaultRuleBook()
	book := builtin.Clone()

	for label, node := range file.Years {
		fy, err := dateutil.ParseFinancialYear(label)
		if err != nil {
			return nil, invalidRules(label, err.Error())
		}

		var header yearHeader
		if err := node.Decode(&header); err != nil {
			return nil, invalidRules(label, err.Error())
		}

		rules := &domain.YearRules{}
		if existing, err := book.Lookup(fy.String()); err == nil {
			rules = existing.Clone()
		} else if header.Base != "" {
			base, err := builtin.Lookup(header.Base)
			if err != nil {
				return nil, invalidRules(label, fmt.Sprintf("unknown base year %q", header.Base))
			}
			rules = base.Clone()
		}

		dropKey(&node, "base")
		if err := node.Decode(rules); err != nil {
			return nil, invalidRules(label, err.Error())
		}
		rules.FinancialYear = fy.String()

		if err := ValidateYearRules(rules); err != nil {
			return nil, err
		}
		book.Register(rules)
	}

	return book, nil
}

// dropKey removes key from a mapping node
func dropKey(node *yaml.Node, key string) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content = append(node.Content[:i:i], node.Content[i+2:]...)
			return
		}
	}
}

// ValidateYearRules checks a year's tables and sorts its slabs into walk order
func ValidateYearRules(rules *domain.YearRules) error {
	fy := rules.FinancialYear
	if err := validateRegime(fy, "old_regime", &rules.OldRegime); err != nil {
		return err
	}
	if err := validateRegime(fy, "new_regime", &rules.NewRegime); err != nil {
		return err
	}
	for age, slabs := range rules.OldRegimeSeniorSlabs {
		if age != domain.AgeSenior && age != domain.AgeSuperSenior {
			return invalidRules(fy, fmt.Sprintf("old_regime_senior_slabs: unknown age group %q", age))
		}
		if err := validateSlabs(fy, fmt.Sprintf("old_regime_senior_slabs[%s]", age), slabs); err != nil {
			return err
		}
	}
	if !isFraction(rules.CessRate) {
		return invalidRules(fy, "cess_rate must be between 0 and 1")
	}

	cg := rules.CapitalGains
	for name, r := range map[string]decimal.Decimal{
		"stcg_111a_rate":     cg.STCG111ARate,
		"ltcg_112a_rate":     cg.LTCG112ARate,
		"property_ltcg_rate": cg.PropertyLTCGRate,
		"property_stcg_rate": cg.PropertySTCGRate,
		"other_rate":         cg.OtherRate,
	} {
		if !isFraction(r) {
			return invalidRules(fy, fmt.Sprintf("capital_gains.%s must be between 0 and 1", name))
		}
	}
	if cg.LTCG112AExemption.IsNegative() {
		return invalidRules(fy, "capital_gains.ltcg_112a_exemption cannot be negative")
	}
	if !isFraction(rules.HouseProperty.StandardDeductionRate) {
		return invalidRules(fy, "house_property.standard_deduction_rate must be between 0 and 1")
	}

	last := 0
	for i, inst := range rules.AdvanceTax.Installments {
		if inst.Month < 1 || inst.Month > 12 || inst.Day < 1 || inst.Day > 31 {
			return invalidRules(fy, fmt.Sprintf("advance_tax.installments[%d]: invalid due date %d/%d", i, inst.Day, inst.Month))
		}
		if inst.CumulativePercent <= last || inst.CumulativePercent > 100 {
			return invalidRules(fy, fmt.Sprintf("advance_tax.installments[%d]: cumulative_percent must increase up to 100", i))
		}
		last = inst.CumulativePercent
	}
	if len(rules.AdvanceTax.Installments) > 0 && last != 100 {
		return invalidRules(fy, "advance_tax.installments must end at 100 percent")
	}

	return nil
}

func validateRegime(fy, name string, regime *domain.RegimeRules) error {
	if err := validateSlabs(fy, name+".slabs", regime.Slabs); err != nil {
		return err
	}
	switch regime.Rebate.Mode {
	case "":
		regime.Rebate.Mode = domain.RebateCap
	case domain.RebateCap, domain.RebateCredit:
	default:
		return invalidRules(fy, fmt.Sprintf("%s.rebate.mode must be cap or credit, got %q", name, regime.Rebate.Mode))
	}
	if regime.Rebate.IncomeLimit.IsNegative() || regime.Rebate.MaxRebate.IsNegative() {
		return invalidRules(fy, name+".rebate amounts cannot be negative")
	}
	if regime.StandardDeduction.IsNegative() {
		return invalidRules(fy, name+".standard_deduction cannot be negative")
	}
	return nil
}

func validateSlabs(fy, name string, slabs []domain.Slab) error {
	if len(slabs) == 0 {
		return invalidRules(fy, name+" must not be empty")
	}
	domain.SortSlabs(slabs)
	for i, s := range slabs {
		if s.Threshold.IsNegative() {
			return invalidRules(fy, fmt.Sprintf("%s[%d]: threshold cannot be negative", name, i))
		}
		if !isFraction(s.Rate) {
			return invalidRules(fy, fmt.Sprintf("%s[%d]: rate must be between 0 and 1", name, i))
		}
		if i > 0 && s.Threshold.Equal(slabs[i-1].Threshold) {
			return invalidRules(fy, fmt.Sprintf("%s: duplicate threshold %s", name, s.Threshold))
		}
	}
	return nil
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

func invalidRules(fy, msg string) error {
	return ierr.NewErrorf("invalid tax rules for %q: %s", fy, msg).
		WithHint("The tax rule configuration is invalid").
		WithReportableDetails(map[string]any{"financialYear": fy, "reason": msg}).
		Mark(ierr.ErrInvalidConfiguration)
}
