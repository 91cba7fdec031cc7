package calculation

import (
	"fmt"

	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// suggestionInput is everything the suggestion rules may look at
type suggestionInput struct {
	request *domain.ComputationRequest
	rules   *domain.YearRules
	result  *domain.ComputationResult
	gains   *CapitalGainsCalculator
}

// suggestionRule returns a suggestion and whether it applies
type suggestionRule func(in *suggestionInput) (string, bool)

// suggestionRules are evaluated independently, in this order
var suggestionRules = []suggestionRule{
	suggest80C,
	suggest80D,
	suggestHRAWithoutRent,
	suggestNewRegime,
	suggestLTCGHarvest,
	suggestAdvanceTax,
	suggestRefund,
}

func generateSuggestions(in *suggestionInput) []string {
	return lo.FilterMap(suggestionRules, func(rule suggestionRule, _ int) (string, bool) {
		return rule(in)
	})
}

func rupeesText(d decimal.Decimal) string {
	return "₹" + d.StringFixed(0)
}

func suggest80C(in *suggestionInput) (string, bool) {
	limit := in.rules.Deductions.Section80C
	claimed := in.request.Deductions.Section80C.Decimal
	if in.result.Recommendation != domain.RegimeOld || !limit.IsPositive() || !claimed.LessThan(limit) {
		return "", false
	}
	return fmt.Sprintf("You have used %s of the %s Section 80C limit. Investing the remaining %s in ELSS, PPF or similar instruments would lower your Old Regime tax.",
		rupeesText(claimed), rupeesText(limit), rupeesText(limit.Sub(claimed))), true
}

func suggest80D(in *suggestionInput) (string, bool) {
	limit := in.rules.Deductions.Section80DSelf
	if in.request.Profile.AgeGroup.IsSenior() && in.rules.Deductions.Section80DSelfSenior.IsPositive() {
		limit = in.rules.Deductions.Section80DSelfSenior
	}
	claimed := in.request.Deductions.Section80D.Decimal
	if in.result.Recommendation != domain.RegimeOld || !limit.IsPositive() || !claimed.LessThan(limit) {
		return "", false
	}
	return fmt.Sprintf("Section 80D allows up to %s for health insurance premiums; you have claimed %s. A health insurance policy would add to your Old Regime deductions.",
		rupeesText(limit), rupeesText(claimed)), true
}

func suggestHRAWithoutRent(in *suggestionInput) (string, bool) {
	s := in.request.Income.Salary
	if !s.Enabled || !s.HRA.IsPositive() || (s.DetailedMode && s.RentPaid.IsPositive()) {
		return "", false
	}
	return fmt.Sprintf("Your salary includes HRA of %s but no rent paid was declared. The HRA exemption is only available in the Old Regime against rent actually paid.",
		rupeesText(s.HRA.Decimal)), true
}

func suggestNewRegime(in *suggestionInput) (string, bool) {
	if in.result.Recommendation != domain.RegimeNew || !in.result.Savings.IsPositive() {
		return "", false
	}
	return fmt.Sprintf("The New Regime saves you %s compared to the Old Regime.", rupeesText(in.result.Savings.Decimal)), true
}

func suggestLTCGHarvest(in *suggestionInput) (string, bool) {
	cg := in.request.Income.CapitalGains
	if !cg.Enabled {
		return "", false
	}
	unused := in.gains.UnusedLTCGExemption(cg)
	if !unused.IsPositive() {
		return "", false
	}
	return fmt.Sprintf("%s of the %s Section 112A exemption on long-term equity gains is unused. Booking gains up to that amount before 31 March keeps them tax-free.",
		rupeesText(unused), rupeesText(in.rules.CapitalGains.LTCG112AExemption)), true
}

func suggestAdvanceTax(in *suggestionInput) (string, bool) {
	threshold := in.rules.AdvanceTax.Threshold
	if !in.result.NetPayable.GreaterThan(threshold) {
		return "", false
	}
	return fmt.Sprintf("Your net payable of %s exceeds %s, so advance tax is due in installments. Shortfalls attract interest under Sections 234B and 234C.",
		rupeesText(in.result.NetPayable.Decimal), rupeesText(threshold)), true
}

func suggestRefund(in *suggestionInput) (string, bool) {
	if !in.result.RefundDue.IsPositive() {
		return "", false
	}
	return fmt.Sprintf("Taxes paid exceed your liability by %s. File your return to claim the refund.", rupeesText(in.result.RefundDue.Decimal)), true
}
