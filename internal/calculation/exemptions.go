package calculation

import (
	"github.com/itrgo/tax-estimator/internal/domain"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	hraRentFloor       = decimal.NewFromFloat(0.10)
	hraMetroShare      = decimal.NewFromFloat(0.50)
	hraNonMetroShare   = decimal.NewFromFloat(0.40)
	gratuityActDays    = decimal.NewFromInt(15)
	gratuityActMonth   = decimal.NewFromInt(26)
	gratuityHalfMonth  = decimal.NewFromFloat(0.5)
	leaveMonthsCeiling = decimal.NewFromInt(10)
	three              = decimal.NewFromInt(3)
	two                = decimal.NewFromInt(2)
)

// ExemptionCalculator computes the salary exemptions allowed in the Old
// Regime. Every exemption is bounded by the amount actually received and is
// never negative.
type ExemptionCalculator struct {
	Limits domain.ExemptionLimits
}

// NewExemptionCalculator creates a calculator with the given statutory caps
func NewExemptionCalculator(limits domain.ExemptionLimits) *ExemptionCalculator {
	return &ExemptionCalculator{Limits: limits}
}

// HRA returns the least of the allowance received, rent paid above 10% of
// salary, and 50% (metro) or 40% of salary.
func (ec *ExemptionCalculator) HRA(hra, salary, rentPaid decimal.Decimal, isMetro bool) decimal.Decimal {
	if !hra.IsPositive() || !rentPaid.IsPositive() {
		return decimal.Zero
	}
	rentOverTenPercent := money.Floor0(rentPaid.Sub(salary.Mul(hraRentFloor)))
	share := hraNonMetroShare
	if isMetro {
		share = hraMetroShare
	}
	return money.Floor0(money.Min(hra, rentOverTenPercent, salary.Mul(share)))
}

// Gratuity is fully exempt for government employees. Others get the least of
// the formula amount, the statutory cap and the amount received.
func (ec *ExemptionCalculator) Gratuity(g domain.Gratuity, government bool) decimal.Decimal {
	received := g.Received.Decimal
	if !received.IsPositive() {
		return decimal.Zero
	}
	if government {
		return received
	}
	salaryYears := g.LastDrawnSalary.Mul(g.YearsOfService.Decimal)
	formula := salaryYears.Mul(gratuityHalfMonth)
	if g.CoveredByAct {
		formula = salaryYears.Mul(gratuityActDays).Div(gratuityActMonth)
	}
	return money.Floor0(money.Min(formula, ec.Limits.GratuityCap, received))
}

// LeaveEncashment is fully exempt for government employees. Others get the
// least of the amount received, the cap, the cash equivalent of the leave
// balance and ten months of average salary.
func (ec *ExemptionCalculator) LeaveEncashment(l domain.LeaveEncashment, government bool) decimal.Decimal {
	received := l.Received.Decimal
	if !received.IsPositive() {
		return decimal.Zero
	}
	if government {
		return received
	}
	cashEquivalent := l.AvgSalary10Months.Mul(l.EarnedLeaveBalance.Decimal)
	tenMonthsPay := l.AvgSalary10Months.Mul(leaveMonthsCeiling)
	return money.Floor0(money.Min(received, ec.Limits.LeaveEncashmentCap, cashEquivalent, tenMonthsPay))
}

// CommutedPension is fully exempt for government employees. Others may
// exempt a third of the full commuted value when gratuity was also received,
// half otherwise.
func (ec *ExemptionCalculator) CommutedPension(p domain.Pension, government bool) decimal.Decimal {
	commuted := p.CommutedReceived.Decimal
	if !commuted.IsPositive() {
		return decimal.Zero
	}
	if government {
		return commuted
	}
	corpus := decimal.Zero
	if p.CommutationPercentage.IsPositive() {
		corpus = commuted.Div(money.Percent(p.CommutationPercentage.Decimal))
	}
	share := corpus.Div(two)
	if p.HasGratuity {
		share = corpus.Div(three)
	}
	return money.Floor0(money.Min(commuted, share))
}

// Calculate returns all four exemptions for a salary, rounded to paise.
// Simple-mode salaries declare no rent or retirement benefits, so nothing is
// exempt.
func (ec *ExemptionCalculator) Calculate(s domain.SalaryIncome) domain.ExemptionBreakdown {
	if !s.Enabled || !s.DetailedMode {
		return domain.ExemptionBreakdown{}
	}
	gov := s.IsGovernment()
	salaryForHRA := s.Basic.Add(s.DA).Decimal
	return domain.ExemptionBreakdown{
		HRA:             money.NewMoneyFromDecimal(ec.HRA(s.HRA.Decimal, salaryForHRA, s.RentPaid.Decimal, s.IsMetro)).Round(),
		Gratuity:        money.NewMoneyFromDecimal(ec.Gratuity(s.Gratuity, gov)).Round(),
		LeaveEncashment: money.NewMoneyFromDecimal(ec.LeaveEncashment(s.LeaveEncashment, gov)).Round(),
		CommutedPension: money.NewMoneyFromDecimal(ec.CommutedPension(s.Pension, gov)).Round(),
	}
}

// Total of the four salary exemptions
func totalExemptions(e domain.ExemptionBreakdown) decimal.Decimal {
	return money.Sum(e.HRA, e.Gratuity, e.LeaveEncashment, e.CommutedPension)
}
