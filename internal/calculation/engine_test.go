package calculation

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salariedRequest() *domain.ComputationRequest {
	return &domain.ComputationRequest{
		Profile:    domain.TaxpayerProfile{FinancialYear: "2025-2026"},
		Income:     salaryOnly(800000),
		Deductions: domain.Deductions{Section80C: rs(150000)},
	}
}

func TestEngine_SalariedScenario(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook())

	result, err := engine.Compute(salariedRequest())
	require.NoError(t, err)

	assert.Equal(t, "2025-2026", result.FinancialYear)
	assert.Equal(t, "800000.00", result.GrossTotalIncome.String())
	assert.Equal(t, "650000.00", result.OldTaxableIncome.String())
	assert.Equal(t, "800000.00", result.NewTaxableIncome.String())
	assert.Equal(t, "44200.00", result.OldRegimeTax.String())
	assert.Equal(t, "20800.00", result.NewRegimeTax.String())
	assert.Equal(t, domain.RegimeNew, result.Recommendation)
	assert.Equal(t, domain.RegimeNew, result.SelectedRegime)
	assert.Equal(t, "23400.00", result.Savings.String())
	assert.Equal(t, "20800.00", result.NetPayable.String())
	assert.Equal(t, "0.00", result.RefundDue.String())
	assert.Equal(t, "150000.00", result.DeductionsAllowed.Total.String())

	require.Len(t, result.AdvanceTaxSchedule, 4)
	assert.Equal(t, "3120.00", result.AdvanceTaxSchedule[0].AmountDue.String())

	require.Len(t, result.Suggestions, 2)
	assert.Contains(t, result.Suggestions[0], "New Regime saves you ₹23400")
	assert.Contains(t, result.Suggestions[1], "advance tax")
}

func TestEngine_TieFavoursOldRegime(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook())

	result, err := engine.Compute(&domain.ComputationRequest{Profile: domain.TaxpayerProfile{FinancialYear: "2024-2025"}})
	require.NoError(t, err)

	assert.True(t, result.OldRegimeTax.Equal(result.NewRegimeTax))
	assert.Equal(t, domain.RegimeOld, result.Recommendation)
	assert.True(t, result.Savings.IsZero())
	assert.NotNil(t, result.AdvanceTaxSchedule)
	assert.Empty(t, result.AdvanceTaxSchedule)

	require.Len(t, result.Suggestions, 2)
	assert.Contains(t, result.Suggestions[0], "Section 80C")
	assert.Contains(t, result.Suggestions[1], "Section 80D")
}

func TestEngine_SelectedRegimeAndRefund(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook())

	t.Run("explicit old regime", func(t *testing.T) {
		req := salariedRequest()
		req.Profile.SelectedRegime = domain.RegimeOld
		result, err := engine.Compute(req)
		require.NoError(t, err)
		assert.Equal(t, domain.RegimeNew, result.Recommendation)
		assert.Equal(t, domain.RegimeOld, result.SelectedRegime)
		assert.Equal(t, "44200.00", result.NetPayable.String())
	})

	t.Run("refund due", func(t *testing.T) {
		req := salariedRequest()
		req.TaxesPaid = domain.TaxesPaid{TDS: rs(25000), AdvanceTax: rs(5000)}
		result, err := engine.Compute(req)
		require.NoError(t, err)
		assert.Equal(t, "30000.00", result.TotalTaxesPaid.String())
		assert.Equal(t, "0.00", result.NetPayable.String())
		assert.Equal(t, "9200.00", result.RefundDue.String())
		assert.Empty(t, result.AdvanceTaxSchedule)
		assert.Contains(t, result.Suggestions[len(result.Suggestions)-1], "claim the refund")
	})

	t.Run("partially paid", func(t *testing.T) {
		req := salariedRequest()
		req.TaxesPaid = domain.TaxesPaid{TDS: rs(15000)}
		result, err := engine.Compute(req)
		require.NoError(t, err)
		assert.Equal(t, "5800.00", result.NetPayable.String())
		assert.Empty(t, result.AdvanceTaxSchedule)
	})
}

func TestEngine_CapitalGains(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook())

	result, err := engine.Compute(&domain.ComputationRequest{
		Profile: domain.TaxpayerProfile{FinancialYear: "2025-2026"},
		Income: domain.IncomeDeclaration{CapitalGains: domain.CapitalGainsIncome{
			Enabled: true,
			Shares:  domain.ShareGains{STCG111A: rs(100000), LTCG112A: rs(200000)},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "300000.00", result.GrossTotalIncome.String())
	assert.True(t, result.OldTaxableIncome.IsZero())
	assert.Equal(t, "30550.00", result.OldRegimeTax.String())
	assert.Equal(t, "30550.00", result.NewRegimeTax.String())
	assert.Equal(t, "29375.00", result.NewRegime.CapitalGainsTax.String())
	assert.Equal(t, domain.RegimeOld, result.Recommendation)
}

func TestEngine_Errors(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook())

	_, err := engine.Compute(nil)
	assert.True(t, ierr.IsInvalidInput(err))

	req := salariedRequest()
	req.Profile.FinancialYear = "2019-2020"
	_, err = engine.Compute(req)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidConfiguration(err))

	req = salariedRequest()
	req.Income.Business = domain.BusinessIncome{Enabled: true, Entries: []domain.BusinessEntry{{Turnover: rs(-100), PresumptiveRate: rs(6)}}}
	_, err = engine.Compute(req)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidInput(err))
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook(), WithExcludePastDue(true), WithClock(fixedClock(2025, time.August, 1)))
	req := config.NewInputParser().CreateExampleRequest()
	before := *req

	first, err := engine.Compute(req)
	require.NoError(t, err)
	second, err := engine.Compute(req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, before.Profile, req.Profile)
}

func TestEngine_ExcludePastDue(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook(), WithExcludePastDue(true), WithClock(fixedClock(2025, time.October, 1)))

	result, err := engine.Compute(salariedRequest())
	require.NoError(t, err)
	require.Len(t, result.AdvanceTaxSchedule, 2)
	assert.Equal(t, "2025-12-15", result.AdvanceTaxSchedule[0].DueDate)
	assert.Equal(t, 75, result.AdvanceTaxSchedule[0].Percentage)
	assert.Equal(t, "15600.00", result.AdvanceTaxSchedule[0].AmountDue.String())
	assert.Equal(t, "5200.00", result.AdvanceTaxSchedule[1].AmountDue.String())
}

func TestEngine_StatutoryRules(t *testing.T) {
	book, err := config.LoadRuleBook("../../configs/rules.statutory.yaml")
	require.NoError(t, err)
	engine := NewEngine(book)

	result, err := engine.Compute(salariedRequest())
	require.NoError(t, err)

	assert.Equal(t, "600000.00", result.OldTaxableIncome.String())
	assert.Equal(t, "725000.00", result.NewTaxableIncome.String())
	assert.Equal(t, "33800.00", result.OldRegimeTax.String())
	assert.Equal(t, "0.00", result.NewRegimeTax.String())
	assert.Equal(t, "16250.00", result.NewRegime.Rebate.String())
	assert.Equal(t, domain.RegimeNew, result.Recommendation)
	assert.Equal(t, "50000.00", result.Exemptions.StandardDeduction.String())
}

func TestEngine_Concurrent(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook())

	var wg sync.WaitGroup
	results := make([]*domain.ComputationResult, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Compute(salariedRequest())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "20800.00", results[i].NewRegimeTax.String())
	}
}

func TestEngine_Years(t *testing.T) {
	engine := NewEngine(config.DefaultRuleBook(), WithLogger(nil))
	assert.Equal(t, []string{"2025-2026", "2024-2025", "2023-2024"}, engine.Years())
}
