package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/itrgo/tax-estimator/internal/domain"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "INCOME TAX SUMMARY FY %s\n", result.FinancialYear)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Gross Total Income: %s\n", FormatRupees(result.GrossTotalIncome.Decimal))
	fmt.Fprintf(&buf, "Old Regime: Taxable=%s Tax=%s\n", FormatRupees(result.OldTaxableIncome.Decimal), FormatRupees(result.OldRegimeTax.Decimal))
	fmt.Fprintf(&buf, "New Regime: Taxable=%s Tax=%s\n", FormatRupees(result.NewTaxableIncome.Decimal), FormatRupees(result.NewRegimeTax.Decimal))
	fmt.Fprintln(&buf)
	rec := AnalyzeRegimes(result)
	fmt.Fprintf(&buf, "Recommended: %s (saves %s / %s)\n", rec.Regime, FormatRupees(rec.Savings), FormatPercentage(rec.PercentageChange))
	if rec.Overridden {
		fmt.Fprintf(&buf, "Selected: %s\n", result.SelectedRegime)
	}
	fmt.Fprintf(&buf, "Net Payable: %s Refund: %s\n", FormatRupees(result.NetPayable.Decimal), FormatRupees(result.RefundDue.Decimal))
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter renders the full computation: income heads,
// deductions, both regime breakdowns, the advance tax schedule and suggestions.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "INCOME TAX COMPUTATION FY %s\n", result.FinancialYear)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(result) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	heads := result.IncomeHeads
	section(&buf, "INCOME HEADS")
	line(&buf, "Gross Salary", heads.GrossSalary)
	line(&buf, "Salary (Old Regime)", heads.SalaryOld)
	line(&buf, "Salary (New Regime)", heads.SalaryNew)
	line(&buf, "Business / Profession", heads.Business)
	line(&buf, "House Property (Old Regime)", heads.HousePropertyOld)
	line(&buf, "House Property (New Regime)", heads.HousePropertyNew)
	line(&buf, "Capital Gains", heads.CapitalGains)
	line(&buf, "Other Sources", heads.OtherSources)
	line(&buf, "GROSS TOTAL INCOME", result.GrossTotalIncome)
	fmt.Fprintln(&buf)

	ex := result.Exemptions
	section(&buf, "EXEMPTIONS (Old Regime)")
	line(&buf, "HRA", ex.HRA)
	line(&buf, "Gratuity", ex.Gratuity)
	line(&buf, "Leave Encashment", ex.LeaveEncashment)
	line(&buf, "Commuted Pension", ex.CommutedPension)
	line(&buf, "Standard Deduction", ex.StandardDeduction)
	fmt.Fprintln(&buf)

	d := result.DeductionsAllowed
	section(&buf, "DEDUCTIONS ALLOWED (Old Regime)")
	line(&buf, "Section 80C", d.Section80C)
	line(&buf, "Section 80D", d.Section80D)
	line(&buf, "Section 80D (Parents)", d.Section80DParents)
	line(&buf, "Section 80E", d.Section80E)
	line(&buf, "Section 80G", d.Section80G)
	line(&buf, "Section 80TTA", d.Section80TTA)
	line(&buf, "Other", d.OtherDeductions)
	line(&buf, "TOTAL", d.Total)
	fmt.Fprintln(&buf)

	writeRegime(&buf, domain.RegimeOld, result.OldRegime)
	writeRegime(&buf, domain.RegimeNew, result.NewRegime)

	rec := AnalyzeRegimes(result)
	section(&buf, "RECOMMENDATION")
	fmt.Fprintf(&buf, "  %s saves %s (%s) compared to the %s\n", rec.Regime, FormatRupees(rec.Savings), FormatPercentage(rec.PercentageChange), rec.Alternative)
	if rec.Overridden {
		fmt.Fprintf(&buf, "  Settled under the selected %s\n", result.SelectedRegime)
	}
	line(&buf, "Taxes Paid", result.TotalTaxesPaid)
	line(&buf, "Net Payable", result.NetPayable)
	line(&buf, "Refund Due", result.RefundDue)
	fmt.Fprintln(&buf)

	if len(result.AdvanceTaxSchedule) > 0 {
		section(&buf, "ADVANCE TAX SCHEDULE")
		for _, inst := range result.AdvanceTaxSchedule {
			fmt.Fprintf(&buf, "  %s  %3d%%  %s\n", inst.DueDate, inst.Percentage, FormatRupees(inst.AmountDue.Decimal))
		}
		fmt.Fprintln(&buf)
	}

	if len(result.Suggestions) > 0 {
		section(&buf, "SUGGESTIONS")
		for i, s := range result.Suggestions {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, s)
		}
	}
	return buf.Bytes(), nil
}

func writeRegime(buf *bytes.Buffer, regime domain.Regime, b domain.RegimeBreakdown) {
	section(buf, strings.ToUpper(string(regime)))
	line(buf, "Taxable Income", b.TaxableIncome)
	for _, s := range b.Slabs {
		upper := "above"
		if s.To != nil {
			upper = "to " + FormatRupees(s.To.Decimal)
		}
		fmt.Fprintf(buf, "    %s %s @ %s: %s\n", FormatRupees(s.From.Decimal), upper, FormatRate(s.Rate), FormatRupees(s.Tax.Decimal))
	}
	line(buf, "Slab Tax", b.SlabTax)
	line(buf, "Rebate u/s 87A", b.Rebate)
	line(buf, "Capital Gains Tax", b.CapitalGainsTax)
	line(buf, "Cess", b.Cess)
	line(buf, "TOTAL TAX", b.TotalTax)
	fmt.Fprintln(buf)
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func line(buf *bytes.Buffer, label string, amount money.Money) {
	fmt.Fprintf(buf, "  %-30s %s\n", label+":", FormatRupees(amount.Decimal))
}
