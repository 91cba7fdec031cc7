package domain

import "github.com/itrgo/tax-estimator/pkg/decimal"

// EmploymentType decides whether retirement benefits are fully exempt
type EmploymentType string

const (
	EmploymentPrivate    EmploymentType = "Private"
	EmploymentGovernment EmploymentType = "Government"
)

// BusinessType distinguishes presumptive from regular books of account
type BusinessType string

const (
	BusinessPresumptive BusinessType = "Presumptive"
	BusinessRegular     BusinessType = "Regular"
)

// PropertyType distinguishes self-occupied from let-out property
type PropertyType string

const (
	PropertySelfOccupied PropertyType = "SelfOccupied"
	PropertyRented       PropertyType = "Rented"
)

// IncomeDeclaration groups every income head. A section that is not enabled
// contributes nothing even when its fields are populated.
type IncomeDeclaration struct {
	Salary        SalaryIncome        `yaml:"salary" json:"salary"`
	Business      BusinessIncome      `yaml:"business" json:"business"`
	HouseProperty HousePropertyIncome `yaml:"houseProperty" json:"houseProperty"`
	CapitalGains  CapitalGainsIncome  `yaml:"capitalGains" json:"capitalGains"`
	OtherIncome   OtherIncome         `yaml:"otherIncome" json:"otherIncome"`
}

// SalaryIncome holds salary components. The detailed-mode fields are only
// read when DetailedMode is set.
type SalaryIncome struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	DetailedMode    bool          `yaml:"detailedMode" json:"detailedMode"`
	Basic           decimal.Money `yaml:"basic" json:"basic"`
	HRA             decimal.Money `yaml:"hra" json:"hra"`
	Bonus           decimal.Money `yaml:"bonus" json:"bonus"`
	OtherAllowances decimal.Money `yaml:"otherAllowances" json:"otherAllowances"`

	// Detailed mode
	EmploymentType         EmploymentType  `yaml:"employmentType,omitempty" json:"employmentType,omitempty" validate:"omitempty,oneof=Private Government"`
	DA                     decimal.Money   `yaml:"da" json:"da"`
	RentPaid               decimal.Money   `yaml:"rentPaid" json:"rentPaid"`
	IsMetro                bool            `yaml:"isMetro" json:"isMetro"`
	Gratuity               Gratuity        `yaml:"gratuity" json:"gratuity"`
	LeaveEncashment        LeaveEncashment `yaml:"leaveEncashment" json:"leaveEncashment"`
	Pension                Pension         `yaml:"pension" json:"pension"`
	Perquisites            Perquisites     `yaml:"perquisites" json:"perquisites"`
	OtherAllowancesTaxable decimal.Money   `yaml:"otherAllowancesTaxable" json:"otherAllowancesTaxable"`
}

// IsGovernment reports whether retirement benefits are fully exempt
func (s SalaryIncome) IsGovernment() bool {
	return s.EmploymentType == EmploymentGovernment
}

// Gratuity received on retirement or resignation
type Gratuity struct {
	Received        decimal.Money `yaml:"received" json:"received"`
	LastDrawnSalary decimal.Money `yaml:"lastDrawnSalary" json:"lastDrawnSalary"`
	YearsOfService  decimal.Money `yaml:"yearsOfService" json:"yearsOfService"`
	CoveredByAct    bool          `yaml:"coveredByAct" json:"coveredByAct"`
}

// LeaveEncashment received on retirement
type LeaveEncashment struct {
	Received           decimal.Money `yaml:"received" json:"received"`
	AvgSalary10Months  decimal.Money `yaml:"avgSalary10Months" json:"avgSalary10Months"`
	EarnedLeaveBalance decimal.Money `yaml:"earnedLeaveBalance" json:"earnedLeaveBalance"`
}

// Pension split into its uncommuted and commuted parts
type Pension struct {
	Uncommuted            decimal.Money `yaml:"uncommuted" json:"uncommuted"`
	CommutedReceived      decimal.Money `yaml:"commutedReceived" json:"commutedReceived"`
	CommutationPercentage decimal.Money `yaml:"commutationPercentage" json:"commutationPercentage"`
	HasGratuity           bool          `yaml:"hasGratuity" json:"hasGratuity"`
}

type Perquisites struct {
	TaxableValue decimal.Money `yaml:"taxableValue" json:"taxableValue"`
}

// BusinessIncome lists every business or profession carried on
type BusinessIncome struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Entries []BusinessEntry `yaml:"entries" json:"entries" validate:"dive"`
}

// BusinessEntry is one business. Presumptive entries use Turnover and
// PresumptiveRate (a percentage); regular entries use Profit, which may be a
// loss.
type BusinessEntry struct {
	Name            string        `yaml:"name,omitempty" json:"name,omitempty"`
	Type            BusinessType  `yaml:"type" json:"type" validate:"omitempty,oneof=Presumptive Regular"`
	Turnover        decimal.Money `yaml:"turnover" json:"turnover"`
	Profit          decimal.Money `yaml:"profit" json:"profit"`
	PresumptiveRate decimal.Money `yaml:"presumptiveRate" json:"presumptiveRate"`
}

// IsPresumptive defaults to presumptive taxation when the type is omitted
func (b BusinessEntry) IsPresumptive() bool {
	return b.Type != BusinessRegular
}

// HousePropertyIncome describes a single property
type HousePropertyIncome struct {
	Enabled        bool          `yaml:"enabled" json:"enabled"`
	Type           PropertyType  `yaml:"type" json:"type" validate:"omitempty,oneof=SelfOccupied Rented"`
	RentReceived   decimal.Money `yaml:"rentReceived" json:"rentReceived"`
	MunicipalTaxes decimal.Money `yaml:"municipalTaxes" json:"municipalTaxes"`
	InterestPaid   decimal.Money `yaml:"interestPaid" json:"interestPaid"`
}

// IsRented defaults to self-occupied when the type is omitted
func (h HousePropertyIncome) IsRented() bool {
	return h.Type == PropertyRented
}

// CapitalGainsIncome is taxed at flat rates outside the slab system
type CapitalGainsIncome struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Shares   ShareGains    `yaml:"shares" json:"shares"`
	Property PropertyGains `yaml:"property" json:"property"`
	Other    decimal.Money `yaml:"other" json:"other"`
}

// ShareGains on listed equity
type ShareGains struct {
	STCG111A decimal.Money `yaml:"stcg111a" json:"stcg111a"`
	LTCG112A decimal.Money `yaml:"ltcg112a" json:"ltcg112a"`
}

type PropertyGains struct {
	LTCG decimal.Money `yaml:"ltcg" json:"ltcg"`
	STCG decimal.Money `yaml:"stcg" json:"stcg"`
}

// OtherIncome lists interest, dividends and other sources
type OtherIncome struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Sources []OtherSource `yaml:"sources" json:"sources"`
}

type OtherSource struct {
	Name     string        `yaml:"name,omitempty" json:"name,omitempty"`
	Amount   decimal.Money `yaml:"amount" json:"amount"`
	Expenses decimal.Money `yaml:"expenses" json:"expenses"`
}

// Deductions under Chapter VI-A, allowed in the Old Regime only
type Deductions struct {
	Section80C           decimal.Money `yaml:"section80C" json:"section80C"`
	Section80D           decimal.Money `yaml:"section80D" json:"section80D"`
	Section80DParents    decimal.Money `yaml:"section80DParents" json:"section80DParents"`
	ParentsSeniorCitizen bool          `yaml:"parentsSeniorCitizen" json:"parentsSeniorCitizen"`
	Section80E           decimal.Money `yaml:"section80E" json:"section80E"`
	Section80G           decimal.Money `yaml:"section80G" json:"section80G"`
	Section80TTA         decimal.Money `yaml:"section80TTA" json:"section80TTA"`
	OtherDeductions      decimal.Money `yaml:"otherDeductions" json:"otherDeductions"`
}

// TaxesPaid already remitted for the year
type TaxesPaid struct {
	TDS            decimal.Money `yaml:"tds" json:"tds"`
	AdvanceTax     decimal.Money `yaml:"advanceTax" json:"advanceTax"`
	SelfAssessment decimal.Money `yaml:"selfAssessment" json:"selfAssessment"`
}

// Total of all taxes already paid
func (t TaxesPaid) Total() decimal.Money {
	return decimal.NewMoneyFromDecimal(decimal.Sum(t.TDS, t.AdvanceTax, t.SelfAssessment))
}

// ComputationRequest is the complete payload of one computation
type ComputationRequest struct {
	Profile    TaxpayerProfile   `yaml:"profile" json:"profile"`
	Income     IncomeDeclaration `yaml:"income" json:"income"`
	Deductions Deductions        `yaml:"deductions" json:"deductions"`
	TaxesPaid  TaxesPaid         `yaml:"taxesPaid" json:"taxesPaid"`
}
