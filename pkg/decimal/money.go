package decimal

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money represents a rupee amount with exact decimal precision.
//
// Money decodes leniently from JSON and YAML: null, empty strings and missing
// values are zero, numbers may be quoted. Anything else that is not numeric is
// rejected so that a malformed amount never silently becomes zero.
type Money struct {
	decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromInt creates a new Money instance from whole rupees
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to paise
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundRupee rounds the money amount to the nearest whole rupee
func (m Money) RoundRupee() Money {
	return Money{m.Decimal.Round(0)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// MarshalJSON writes the amount as a bare JSON number rounded to paise.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers, empty strings and null.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || string(raw) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	s := string(raw)
	if raw[0] == '"' {
		if len(raw) < 2 || raw[len(raw)-1] != '"' {
			return fmt.Errorf("invalid amount %s", s)
		}
		s = s[1 : len(s)-1]
	}
	return m.parse(s)
}

// MarshalYAML writes the amount as a YAML number.
func (m Money) MarshalYAML() (interface{}, error) {
	tag := "!!float"
	if m.Decimal.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: m.Decimal.Round(2).String()}, nil
}

// UnmarshalYAML accepts scalar numbers, quoted numbers, empty values and null.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		m.Decimal = decimal.Zero
		return nil
	}
	if err := m.parse(value.Value); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

func (m *Money) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	m.Decimal = d
	return nil
}

// Min returns the smallest of the given values
func Min(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, rest...)
}

// Max returns the largest of the given values
func Max(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Max(first, rest...)
}

// Floor0 clamps negative values to zero
func Floor0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Percent converts a percentage such as 8 into the fraction 0.08
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// Sum adds up Money values
func Sum(values ...Money) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Decimal)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}
