package calculation

import (
	"time"

	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/itrgo/tax-estimator/pkg/dateutil"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AdvanceTaxScheduler splits a net liability into the statutory quarterly
// installments of a financial year
type AdvanceTaxScheduler struct {
	Rules          domain.AdvanceTaxRules
	Now            func() time.Time
	ExcludePastDue bool
}

// Schedule returns the installments for netPayable. Nothing is scheduled at
// or below the threshold. When ExcludePastDue is set, installments due
// before today are dropped and the first remaining one carries their share.
func (s *AdvanceTaxScheduler) Schedule(fy dateutil.FinancialYear, netPayable decimal.Decimal) []domain.AdvanceTaxDue {
	schedule := make([]domain.AdvanceTaxDue, 0, len(s.Rules.Installments))
	if netPayable.LessThanOrEqual(s.Rules.Threshold) {
		return schedule
	}

	var now time.Time
	if s.ExcludePastDue {
		now = s.Now()
	}

	scheduled := decimal.Zero
	for _, inst := range s.Rules.Installments {
		due := fy.Date(time.Month(inst.Month), inst.Day)
		if s.ExcludePastDue && dateutil.IsPastDue(due, now) {
			continue
		}
		target := netPayable.Mul(decimal.NewFromInt(int64(inst.CumulativePercent))).Div(decimal.NewFromInt(100)).Round(2)
		schedule = append(schedule, domain.AdvanceTaxDue{
			DueDate:    dateutil.FormatDate(due),
			Percentage: inst.CumulativePercent,
			AmountDue:  money.NewMoneyFromDecimal(target.Sub(scheduled)),
		})
		scheduled = target
	}
	return schedule
}
