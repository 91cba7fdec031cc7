package main

import (
	"fmt"
	"os"
	"strconv"

	calc "github.com/itrgo/tax-estimator/internal/calculation"
	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/domain"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
)

// Scans the basic salary of a request upwards and prints each point where the
// recommended regime flips.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: regime_breakeven <request-file> [max-basic] [step]")
		return
	}
	maxBasic, step := int64(5000000), int64(10000)
	if len(os.Args) > 2 {
		maxBasic = mustInt(os.Args[2])
	}
	if len(os.Args) > 3 {
		step = mustInt(os.Args[3])
	}

	req, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	req.Income.Salary.Enabled = true
	engine := calc.NewEngine(config.DefaultRuleBook())

	var last domain.Regime
	for basic := int64(0); basic <= maxBasic; basic += step {
		req.Income.Salary.Basic = money.NewMoneyFromInt(basic)
		res, err := engine.Compute(req)
		if err != nil {
			panic(err)
		}
		if res.Recommendation != last {
			fmt.Printf("basic=%d recommendation=%s old=%s new=%s\n", basic, res.Recommendation, res.OldRegimeTax, res.NewRegimeTax)
			last = res.Recommendation
		}
	}
}

func mustInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		fmt.Printf("invalid amount %q\n", s)
		os.Exit(2)
	}
	return v
}
