package output

import (
	"fmt"

	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateAssumptions lists the modelling assumptions behind a result for the
// detailed outputs.
func GenerateAssumptions(result *domain.ComputationResult) []string {
	assumptions := []string{
		fmt.Sprintf("Rates and slabs for financial year %s", result.FinancialYear),
		"Health and education cess is included in each regime's total",
		"A tie between the regimes favours the Old Regime",
		"Chapter VI-A deductions and salary exemptions apply to the Old Regime only",
	}
	if cg := result.IncomeHeads.CapitalGains.Decimal; cg.IsPositive() {
		assumptions = append(assumptions, fmt.Sprintf("Capital gains of %s are taxed at special rates outside the slabs", FormatRupees(cg)))
	}
	if len(result.AdvanceTaxSchedule) > 0 {
		last := result.AdvanceTaxSchedule[len(result.AdvanceTaxSchedule)-1]
		assumptions = append(assumptions, fmt.Sprintf("Advance tax installments are cumulative and complete on %s", last.DueDate))
	}
	return assumptions
}

var decimalHundred = decimal.NewFromInt(100)
