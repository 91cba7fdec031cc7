package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/itrgo/tax-estimator/internal/domain"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rupees": func(m money.Money) string { return FormatRupees(m.Decimal) },
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"add":    func(i, j int) int { return i + j },
	"upper":  func(r domain.Regime) string { return strings.ToUpper(string(r)) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ComputationResult
		Recommendation Recommendation
		Assumptions    []string
		Regimes        []regimeView
	}{
		ComputationResult: result,
		Recommendation:    AnalyzeRegimes(result),
		Assumptions:       GenerateAssumptions(result),
		Regimes: []regimeView{
			{domain.RegimeOld, result.OldRegime, result.Recommendation == domain.RegimeOld},
			{domain.RegimeNew, result.NewRegime, result.Recommendation == domain.RegimeNew},
		},
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type regimeView struct {
	Name        domain.Regime
	Breakdown   domain.RegimeBreakdown
	Recommended bool
}
