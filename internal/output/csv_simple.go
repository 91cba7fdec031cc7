package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/itrgo/tax-estimator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per regime).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.ComputationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"FinancialYear", "Regime", "TaxableIncome", "SlabTax", "Rebate", "CapitalGainsTax", "Cess", "TotalTax", "Recommended", "Selected"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	regimes := []struct {
		regime    domain.Regime
		breakdown domain.RegimeBreakdown
	}{
		{domain.RegimeOld, result.OldRegime},
		{domain.RegimeNew, result.NewRegime},
	}
	for _, r := range regimes {
		row := []string{
			result.FinancialYear,
			string(r.regime),
			r.breakdown.TaxableIncome.String(),
			r.breakdown.SlabTax.String(),
			r.breakdown.Rebate.String(),
			r.breakdown.CapitalGainsTax.String(),
			r.breakdown.Cess.String(),
			r.breakdown.TotalTax.String(),
			strconv.FormatBool(result.Recommendation == r.regime),
			strconv.FormatBool(result.SelectedRegime == r.regime),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
