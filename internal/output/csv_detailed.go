package output

import (
	"bytes"
	"encoding/csv"

	"github.com/itrgo/tax-estimator/internal/domain"
)

// CSVDetailedExporter provides the slab-by-slab tax of each regime.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(result *domain.ComputationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "Slab", "From", "To", "Rate", "Tax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range []struct {
		regime domain.Regime
		slabs  []domain.SlabTax
	}{
		{domain.RegimeOld, result.OldRegime.Slabs},
		{domain.RegimeNew, result.NewRegime.Slabs},
	} {
		for i, s := range r.slabs {
			to := ""
			if s.To != nil {
				to = s.To.String()
			}
			row := []string{string(r.regime), intToString(i + 1), s.From.String(), to, FormatRate(s.Rate), s.Tax.String()}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVScheduleExporter writes the advance tax installments.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string { return "schedule-csv" }

func (c CSVScheduleExporter) Format(result *domain.ComputationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"DueDate", "CumulativePercent", "AmountDue"}); err != nil {
		return nil, err
	}
	for _, inst := range result.AdvanceTaxSchedule {
		if err := w.Write([]string{inst.DueDate, intToString(inst.Percentage), inst.AmountDue.String()}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
