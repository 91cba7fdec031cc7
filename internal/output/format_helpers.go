package output

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatRupees formats a decimal as rupees with 2 decimals.
func FormatRupees(amount decimal.Decimal) string { return "₹" + amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a slab rate fraction such as 0.05 as "5%".
func FormatRate(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

func intToString(v int) string { return strconv.Itoa(v) }
