package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/internal/validator"
	"github.com/itrgo/tax-estimator/pkg/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing and validation of computation requests
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ComputationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var req *domain.ComputationRequest
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		req, err = ip.Decode(bytes.NewReader(data))
	} else {
		req, err = ip.decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return req, nil
}

// Decode reads a JSON request and validates it
func (ip *InputParser) Decode(r io.Reader) (*domain.ComputationRequest, error) {
	var req domain.ComputationRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Malformed request: %v", err).
			Mark(ierr.ErrInvalidInput)
	}
	if err := ip.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (ip *InputParser) decodeYAML(data []byte) (*domain.ComputationRequest, error) {
	var req domain.ComputationRequest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Malformed request: %v", err).
			Mark(ierr.ErrInvalidInput)
	}
	if err := ip.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest normalizes the profile, then checks struct tags and the
// semantic constraints of every enabled section
func (ip *InputParser) ValidateRequest(req *domain.ComputationRequest) error {
	req.Profile.Normalize()
	if err := validator.ValidateRequest(req); err != nil {
		return err
	}
	return req.Validate()
}

// CreateExampleRequest creates an example request for a salaried taxpayer
func (ip *InputParser) CreateExampleRequest() *domain.ComputationRequest {
	return &domain.ComputationRequest{
		Profile: domain.TaxpayerProfile{
			FinancialYear:     "2025-2026",
			AgeGroup:          domain.AgeBelow60,
			ResidentialStatus: domain.Resident,
		},
		Income: domain.IncomeDeclaration{
			Salary: domain.SalaryIncome{
				Enabled:         true,
				DetailedMode:    true,
				Basic:           decimal.NewMoneyFromInt(900000),
				HRA:             decimal.NewMoneyFromInt(360000),
				Bonus:           decimal.NewMoneyFromInt(100000),
				OtherAllowances: decimal.NewMoneyFromInt(60000),
				EmploymentType:  domain.EmploymentPrivate,
				RentPaid:        decimal.NewMoneyFromInt(300000),
				IsMetro:         true,
			},
			HouseProperty: domain.HousePropertyIncome{
				Enabled:      true,
				Type:         domain.PropertySelfOccupied,
				InterestPaid: decimal.NewMoneyFromInt(150000),
			},
			CapitalGains: domain.CapitalGainsIncome{
				Enabled: true,
				Shares: domain.ShareGains{
					STCG111A: decimal.NewMoneyFromInt(40000),
					LTCG112A: decimal.NewMoneyFromInt(90000),
				},
			},
			OtherIncome: domain.OtherIncome{
				Enabled: true,
				Sources: []domain.OtherSource{
					{Name: "Savings interest", Amount: decimal.NewMoneyFromInt(12000)},
					{Name: "Fixed deposit interest", Amount: decimal.NewMoneyFromInt(45000)},
				},
			},
		},
		Deductions: domain.Deductions{
			Section80C:   decimal.NewMoneyFromInt(120000),
			Section80D:   decimal.NewMoneyFromInt(18000),
			Section80TTA: decimal.NewMoneyFromInt(12000),
		},
		TaxesPaid: domain.TaxesPaid{
			TDS: decimal.NewMoneyFromInt(60000),
		},
	}
}
