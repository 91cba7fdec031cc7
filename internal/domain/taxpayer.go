package domain

import (
	"strings"

	"github.com/itrgo/tax-estimator/pkg/dateutil"
)

// AgeGroup selects the age-dependent thresholds of the Old Regime
type AgeGroup string

const (
	AgeBelow60     AgeGroup = "<60"
	AgeSenior      AgeGroup = "60-80"
	AgeSuperSenior AgeGroup = ">80"
)

// IsSenior reports whether the taxpayer is 60 or older
func (a AgeGroup) IsSenior() bool {
	return a == AgeSenior || a == AgeSuperSenior
}

// ResidentialStatus of the taxpayer for the financial year
type ResidentialStatus string

const (
	Resident ResidentialStatus = "Resident"
	NRI      ResidentialStatus = "NRI"
)

// Regime names one of the two rule sets. The string values are part of the
// result contract consumed by clients.
type Regime string

const (
	RegimeOld Regime = "Old Regime"
	RegimeNew Regime = "New Regime"
)

// TaxpayerProfile identifies the rule set a computation runs under
type TaxpayerProfile struct {
	FinancialYear     string            `yaml:"financialYear" json:"financialYear" validate:"required"`
	AgeGroup          AgeGroup          `yaml:"ageGroup,omitempty" json:"ageGroup,omitempty" validate:"omitempty,oneof=<60 60-80 >80"`
	ResidentialStatus ResidentialStatus `yaml:"residentialStatus,omitempty" json:"residentialStatus,omitempty" validate:"omitempty,oneof=Resident NRI"`

	// SelectedRegime overrides the recommendation when computing net payable
	SelectedRegime Regime `yaml:"selectedRegime,omitempty" json:"selectedRegime,omitempty"`
}

// Normalize maps loosely formatted values onto their canonical form and fills
// defaults for empty fields. Unparseable years are left for Lookup to reject.
func (p *TaxpayerProfile) Normalize() {
	p.FinancialYear = strings.TrimSpace(p.FinancialYear)
	if fy, err := dateutil.ParseFinancialYear(p.FinancialYear); err == nil {
		p.FinancialYear = fy.String()
	}

	switch compact(string(p.AgeGroup)) {
	case "":
		p.AgeGroup = AgeBelow60
	case "<60", "below60", "under60":
		p.AgeGroup = AgeBelow60
	case "60-80", "60to80", "senior":
		p.AgeGroup = AgeSenior
	case ">80", "above80", "over80", "supersenior":
		p.AgeGroup = AgeSuperSenior
	}

	switch compact(string(p.ResidentialStatus)) {
	case "":
		p.ResidentialStatus = Resident
	case "resident", "ror", "rnor":
		p.ResidentialStatus = Resident
	case "nri", "nonresident":
		p.ResidentialStatus = NRI
	}

	switch compact(string(p.SelectedRegime)) {
	case "old", "oldregime":
		p.SelectedRegime = RegimeOld
	case "new", "newregime":
		p.SelectedRegime = RegimeNew
	}
}

// compact lowercases s and strips separators, keeping the hyphen of "60-80".
func compact(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	if s != "60-80" {
		s = strings.ReplaceAll(s, "-", "")
	}
	return s
}
