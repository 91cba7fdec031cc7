package domain

import (
	"fmt"
	"sort"
	"strings"

	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

var hundred = stddec.NewFromInt(100)

// Validate checks the semantic constraints of a request whose profile has
// been normalized. Sections that are not enabled are skipped. All violations
// are reported together as an invalid-input error with per-field details.
func (r *ComputationRequest) Validate() error {
	v := newViolations()

	v.profile(&r.Profile)
	if r.Income.Salary.Enabled {
		v.salary(&r.Income.Salary)
	}
	if r.Income.Business.Enabled {
		for i, entry := range r.Income.Business.Entries {
			v.business(fmt.Sprintf("income.business.entries[%d]", i), &entry)
		}
	}
	if r.Income.HouseProperty.Enabled {
		hp := r.Income.HouseProperty
		if hp.Type != "" {
			v.enum("income.houseProperty.type", string(hp.Type), string(PropertySelfOccupied), string(PropertyRented))
		}
		v.nonNegative("income.houseProperty.rentReceived", hp.RentReceived)
		v.nonNegative("income.houseProperty.municipalTaxes", hp.MunicipalTaxes)
		v.nonNegative("income.houseProperty.interestPaid", hp.InterestPaid)
	}
	if r.Income.CapitalGains.Enabled {
		cg := r.Income.CapitalGains
		v.nonNegative("income.capitalGains.shares.stcg111a", cg.Shares.STCG111A)
		v.nonNegative("income.capitalGains.shares.ltcg112a", cg.Shares.LTCG112A)
		v.nonNegative("income.capitalGains.property.ltcg", cg.Property.LTCG)
		v.nonNegative("income.capitalGains.property.stcg", cg.Property.STCG)
		v.nonNegative("income.capitalGains.other", cg.Other)
	}
	if r.Income.OtherIncome.Enabled {
		for i, src := range r.Income.OtherIncome.Sources {
			prefix := fmt.Sprintf("income.otherIncome.sources[%d]", i)
			v.nonNegative(prefix+".amount", src.Amount)
			v.nonNegative(prefix+".expenses", src.Expenses)
		}
	}

	d := r.Deductions
	v.nonNegative("deductions.section80C", d.Section80C)
	v.nonNegative("deductions.section80D", d.Section80D)
	v.nonNegative("deductions.section80DParents", d.Section80DParents)
	v.nonNegative("deductions.section80E", d.Section80E)
	v.nonNegative("deductions.section80G", d.Section80G)
	v.nonNegative("deductions.section80TTA", d.Section80TTA)
	v.nonNegative("deductions.otherDeductions", d.OtherDeductions)

	v.nonNegative("taxesPaid.tds", r.TaxesPaid.TDS)
	v.nonNegative("taxesPaid.advanceTax", r.TaxesPaid.AdvanceTax)
	v.nonNegative("taxesPaid.selfAssessment", r.TaxesPaid.SelfAssessment)

	return v.err()
}

type violations map[string]string

func newViolations() violations {
	return make(violations)
}

func (v violations) profile(p *TaxpayerProfile) {
	if p.FinancialYear == "" {
		v["profile.financialYear"] = "is required"
	}
	v.enum("profile.ageGroup", string(p.AgeGroup), string(AgeBelow60), string(AgeSenior), string(AgeSuperSenior))
	v.enum("profile.residentialStatus", string(p.ResidentialStatus), string(Resident), string(NRI))
	if p.SelectedRegime != "" {
		v.enum("profile.selectedRegime", string(p.SelectedRegime), string(RegimeOld), string(RegimeNew))
	}
}

func (v violations) salary(s *SalaryIncome) {
	v.nonNegative("income.salary.basic", s.Basic)
	v.nonNegative("income.salary.hra", s.HRA)
	v.nonNegative("income.salary.bonus", s.Bonus)
	v.nonNegative("income.salary.otherAllowances", s.OtherAllowances)
	if !s.DetailedMode {
		return
	}
	if s.EmploymentType != "" {
		v.enum("income.salary.employmentType", string(s.EmploymentType), string(EmploymentPrivate), string(EmploymentGovernment))
	}
	v.nonNegative("income.salary.da", s.DA)
	v.nonNegative("income.salary.rentPaid", s.RentPaid)
	v.nonNegative("income.salary.gratuity.received", s.Gratuity.Received)
	v.nonNegative("income.salary.gratuity.lastDrawnSalary", s.Gratuity.LastDrawnSalary)
	v.nonNegative("income.salary.gratuity.yearsOfService", s.Gratuity.YearsOfService)
	v.nonNegative("income.salary.leaveEncashment.received", s.LeaveEncashment.Received)
	v.nonNegative("income.salary.leaveEncashment.avgSalary10Months", s.LeaveEncashment.AvgSalary10Months)
	v.nonNegative("income.salary.leaveEncashment.earnedLeaveBalance", s.LeaveEncashment.EarnedLeaveBalance)
	v.nonNegative("income.salary.pension.uncommuted", s.Pension.Uncommuted)
	v.nonNegative("income.salary.pension.commutedReceived", s.Pension.CommutedReceived)
	v.percent("income.salary.pension.commutationPercentage", s.Pension.CommutationPercentage)
	v.nonNegative("income.salary.perquisites.taxableValue", s.Perquisites.TaxableValue)
	v.nonNegative("income.salary.otherAllowancesTaxable", s.OtherAllowancesTaxable)
}

func (v violations) business(prefix string, b *BusinessEntry) {
	if b.Type != "" {
		v.enum(prefix+".type", string(b.Type), string(BusinessPresumptive), string(BusinessRegular))
	}
	v.nonNegative(prefix+".turnover", b.Turnover)
	if b.IsPresumptive() {
		v.percent(prefix+".presumptiveRate", b.PresumptiveRate)
	}
}

func (v violations) nonNegative(field string, m decimal.Money) {
	if m.IsNegative() {
		v[field] = "must not be negative"
	}
}

func (v violations) percent(field string, m decimal.Money) {
	if m.IsNegative() || m.GreaterThan(hundred) {
		v[field] = "must be between 0 and 100"
	}
}

func (v violations) enum(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "must be one of " + strings.Join(allowed, ", ")
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	fields := make([]string, 0, len(v))
	details := make(map[string]any, len(v))
	for field, msg := range v {
		fields = append(fields, field)
		details[field] = msg
	}
	sort.Strings(fields)
	first := fields[0]
	return ierr.NewErrorf("request validation failed on %d field(s)", len(fields)).
		WithHintf("%s %s", first, v[first]).
		WithReportableDetails(details).
		Mark(ierr.ErrInvalidInput)
}
