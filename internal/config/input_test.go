package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)
	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadFromFile_YAML(t *testing.T) {
	request := "profile:\n" +
		"  financialYear: \"2025-26\"\n" +
		"  ageGroup: senior\n" +
		"income:\n" +
		"  salary:\n" +
		"    enabled: true\n" +
		"    basic: 800000\n" +
		"    hra: \"\"\n" +
		"  business:\n" +
		"    enabled: true\n" +
		"    entries:\n" +
		"      - name: Consulting\n" +
		"        type: Presumptive\n" +
		"        turnover: \"1500000\"\n" +
		"        presumptiveRate: 8\n" +
		"deductions:\n" +
		"  section80C: 150000\n"

	parser := NewInputParser()
	req, err := parser.LoadFromFile(writeTemp(t, "request_*.yaml", request))
	require.NoError(t, err)

	assert.Equal(t, "2025-2026", req.Profile.FinancialYear)
	assert.Equal(t, domain.AgeSenior, req.Profile.AgeGroup)
	assert.Equal(t, domain.Resident, req.Profile.ResidentialStatus)
	assert.Equal(t, "800000.00", req.Income.Salary.Basic.String())
	assert.True(t, req.Income.Salary.HRA.IsZero())
	require.Len(t, req.Income.Business.Entries, 1)
	assert.Equal(t, "1500000.00", req.Income.Business.Entries[0].Turnover.String())
}

func TestLoadFromFile_JSON(t *testing.T) {
	request := `{
  "profile": {"financialYear": "2024-2025", "residentialStatus": "NRI"},
  "income": {"otherIncome": {"enabled": true, "sources": [{"name": "Interest", "amount": 20000, "expenses": null}]}},
  "taxesPaid": {"tds": "2000"}
}`
	parser := NewInputParser()
	req, err := parser.LoadFromFile(writeTemp(t, "request_*.json", request))
	require.NoError(t, err)

	assert.Equal(t, domain.NRI, req.Profile.ResidentialStatus)
	require.Len(t, req.Income.OtherIncome.Sources, 1)
	assert.True(t, req.Income.OtherIncome.Sources[0].Expenses.IsZero())
	assert.Equal(t, "2000.00", req.TaxesPaid.TDS.String())
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		content string
	}{
		{"non-numeric amount", "bad_*.yaml", "profile:\n  financialYear: 2025-2026\ndeductions:\n  section80C: lots\n"},
		{"unknown field", "bad_*.yaml", "profile:\n  financialYear: 2025-2026\n  nickname: x\n"},
		{"negative turnover", "bad_*.json", `{"profile":{"financialYear":"2025-2026"},"income":{"business":{"enabled":true,"entries":[{"type":"Presumptive","turnover":-5,"presumptiveRate":8}]}}}`},
		{"bad enum", "bad_*.json", `{"profile":{"financialYear":"2025-2026"},"income":{"houseProperty":{"enabled":true,"type":"Castle"}}}`},
		{"missing year", "bad_*.json", `{"profile":{}}`},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parser.LoadFromFile(writeTemp(t, tt.pattern, tt.content))
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, ierr.IsInvalidInput(err), "got %v", err)
		})
	}
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	req, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestDecode(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.Decode(strings.NewReader(`{"profile":{"financialYear":"2025-2026","selectedRegime":"new"}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, req.Profile.SelectedRegime)

	_, err = parser.Decode(strings.NewReader(`{"profile":`))
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidInput(err))
}

func TestCreateExampleRequest(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleRequest()
	require.NoError(t, parser.ValidateRequest(example))

	out, err := yaml.Marshal(example)
	require.NoError(t, err)

	roundTrip, err := parser.LoadFromFile(writeTemp(t, "example_*.yaml", string(out)))
	require.NoError(t, err)
	assert.Equal(t, example.Income.Salary.Basic.String(), roundTrip.Income.Salary.Basic.String())
	assert.Equal(t, example.Profile, roundTrip.Profile)
	assert.Len(t, roundTrip.Income.OtherIncome.Sources, 2)
}
