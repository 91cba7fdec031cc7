package main

import (
	"fmt"
	"os"

	"github.com/itrgo/tax-estimator/internal/calculation"
	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// Prints the slab-by-slab tax of a taxable income under both regimes for
// every registered year.
func main() {
	income := decimal.NewFromInt(1000000)
	if len(os.Args) > 1 {
		income = decimal.RequireFromString(os.Args[1])
	}

	book := config.DefaultRuleBook()
	for _, fy := range book.Years() {
		rules, err := book.Lookup(fy)
		if err != nil {
			panic(err)
		}
		fmt.Printf("FY %s taxable %s\n", fy, income.StringFixed(2))
		for _, c := range []struct {
			name domain.Regime
			calc *calculation.SlabCalculator
		}{
			{domain.RegimeOld, calculation.NewOldRegimeCalculator(rules, domain.AgeBelow60)},
			{domain.RegimeNew, calculation.NewNewRegimeCalculator(rules)},
		} {
			tax, slabs := c.calc.SlabTax(income)
			fmt.Printf("  %s: %s\n", c.name, tax.StringFixed(2))
			for _, s := range slabs {
				to := "open"
				if s.To != nil {
					to = s.To.String()
				}
				fmt.Printf("    %s-%s @ %.3f = %s\n", s.From, to, s.Rate, s.Tax)
			}
		}
	}
}
