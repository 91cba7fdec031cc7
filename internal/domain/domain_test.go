package domain

import (
	"testing"

	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/pkg/decimal"
	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxpayerProfileNormalize(t *testing.T) {
	tests := []struct {
		name     string
		profile  TaxpayerProfile
		expected TaxpayerProfile
	}{
		{
			name:     "defaults",
			profile:  TaxpayerProfile{FinancialYear: " 2025-2026 "},
			expected: TaxpayerProfile{FinancialYear: "2025-2026", AgeGroup: AgeBelow60, ResidentialStatus: Resident},
		},
		{
			name:     "loose spellings",
			profile:  TaxpayerProfile{FinancialYear: "2024-25", AgeGroup: "Senior", ResidentialStatus: "non-resident", SelectedRegime: "new"},
			expected: TaxpayerProfile{FinancialYear: "2024-2025", AgeGroup: AgeSenior, ResidentialStatus: NRI, SelectedRegime: RegimeNew},
		},
		{
			name:     "canonical values untouched",
			profile:  TaxpayerProfile{FinancialYear: "2023-2024", AgeGroup: ">80", ResidentialStatus: "Resident", SelectedRegime: "Old Regime"},
			expected: TaxpayerProfile{FinancialYear: "2023-2024", AgeGroup: AgeSuperSenior, ResidentialStatus: Resident, SelectedRegime: RegimeOld},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			p.Normalize()
			assert.Equal(t, tt.expected, p)
		})
	}
}

func validRequest() ComputationRequest {
	req := ComputationRequest{
		Profile: TaxpayerProfile{FinancialYear: "2025-2026"},
		Income: IncomeDeclaration{
			Salary: SalaryIncome{Enabled: true, Basic: decimal.NewMoneyFromInt(800000)},
		},
	}
	req.Profile.Normalize()
	return req
}

func TestComputationRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ComputationRequest)
		field   string
		wantErr bool
	}{
		{name: "valid", mutate: func(r *ComputationRequest) {}},
		{
			name: "negative turnover",
			mutate: func(r *ComputationRequest) {
				r.Income.Business = BusinessIncome{Enabled: true, Entries: []BusinessEntry{
					{Type: BusinessPresumptive, Turnover: decimal.NewMoneyFromInt(-1), PresumptiveRate: decimal.NewMoneyFromInt(8)},
				}}
			},
			field:   "income.business.entries[0].turnover",
			wantErr: true,
		},
		{
			name: "regular business loss is allowed",
			mutate: func(r *ComputationRequest) {
				r.Income.Business = BusinessIncome{Enabled: true, Entries: []BusinessEntry{
					{Type: BusinessRegular, Profit: decimal.NewMoneyFromInt(-50000)},
				}}
			},
		},
		{
			name: "presumptive rate above 100",
			mutate: func(r *ComputationRequest) {
				r.Income.Business = BusinessIncome{Enabled: true, Entries: []BusinessEntry{
					{Turnover: decimal.NewMoneyFromInt(100), PresumptiveRate: decimal.NewMoneyFromInt(101)},
				}}
			},
			field:   "income.business.entries[0].presumptiveRate",
			wantErr: true,
		},
		{
			name: "disabled section is ignored",
			mutate: func(r *ComputationRequest) {
				r.Income.CapitalGains = CapitalGainsIncome{Other: decimal.NewMoneyFromInt(-10)}
			},
		},
		{
			name:    "negative tds",
			mutate:  func(r *ComputationRequest) { r.TaxesPaid.TDS = decimal.NewMoneyFromInt(-5) },
			field:   "taxesPaid.tds",
			wantErr: true,
		},
		{
			name:    "unknown age group",
			mutate:  func(r *ComputationRequest) { r.Profile.AgeGroup = "ancient" },
			field:   "profile.ageGroup",
			wantErr: true,
		},
		{
			name:    "missing financial year",
			mutate:  func(r *ComputationRequest) { r.Profile.FinancialYear = "" },
			field:   "profile.financialYear",
			wantErr: true,
		},
		{
			name: "commutation percentage out of range",
			mutate: func(r *ComputationRequest) {
				r.Income.Salary.DetailedMode = true
				r.Income.Salary.Pension.CommutationPercentage = decimal.NewMoneyFromInt(150)
			},
			field:   "income.salary.pension.commutationPercentage",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.IsInvalidInput(err))
			assert.Contains(t, ierr.Details(err), tt.field)
		})
	}
}

func TestRuleBook(t *testing.T) {
	book := NewRuleBook()
	book.Register(&YearRules{FinancialYear: "2024-2025"})
	book.Register(&YearRules{FinancialYear: "2025-2026"})

	assert.Equal(t, []string{"2025-2026", "2024-2025"}, book.Years())

	rules, err := book.Lookup("2025-2026")
	require.NoError(t, err)
	assert.Equal(t, "2025-2026", rules.FinancialYear)

	_, err = book.Lookup("1999-2000")
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidConfiguration(err))
	assert.Contains(t, ierr.DisplayMessage(err, ""), "2025-2026")
}

func TestYearRulesCloneAndSlabs(t *testing.T) {
	rules := &YearRules{
		FinancialYear: "2025-2026",
		OldRegime: RegimeRules{Slabs: []Slab{
			{Threshold: stddec.NewFromInt(250000), Rate: stddec.NewFromFloat(0.05)},
			{Threshold: stddec.NewFromInt(1000000), Rate: stddec.NewFromFloat(0.30)},
			{Threshold: stddec.NewFromInt(500000), Rate: stddec.NewFromFloat(0.20)},
		}},
		OldRegimeSeniorSlabs: map[AgeGroup][]Slab{
			AgeSenior: {{Threshold: stddec.NewFromInt(300000), Rate: stddec.NewFromFloat(0.05)}},
		},
	}

	SortSlabs(rules.OldRegime.Slabs)
	assert.True(t, rules.OldRegime.Slabs[0].Threshold.Equal(stddec.NewFromInt(1000000)))
	assert.True(t, rules.OldRegime.Slabs[2].Threshold.Equal(stddec.NewFromInt(250000)))

	assert.Len(t, rules.OldSlabsFor(AgeSenior), 1)
	assert.Len(t, rules.OldSlabsFor(AgeBelow60), 3)
	assert.Len(t, rules.OldSlabsFor(AgeSuperSenior), 3)

	clone := rules.Clone()
	clone.OldRegime.Slabs[0].Rate = stddec.NewFromFloat(0.99)
	clone.OldRegimeSeniorSlabs[AgeSenior][0].Rate = stddec.NewFromFloat(0.99)
	assert.True(t, rules.OldRegime.Slabs[0].Rate.Equal(stddec.NewFromFloat(0.30)))
	assert.True(t, rules.OldRegimeSeniorSlabs[AgeSenior][0].Rate.Equal(stddec.NewFromFloat(0.05)))
}
