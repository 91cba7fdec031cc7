package decimal

import (
	"encoding/json"
	"testing"

	stddec "github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.String() != "12.35" {
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString(" 123.45 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		in     string
		paise  string
		rupees string
	}{
		{"2.344", "2.34", "2.00"},
		{"2.345", "2.35", "2.00"},
		{"576923.0769", "576923.08", "576923.00"},
		{"44199.5", "44199.50", "44200.00"},
	}
	for _, c := range cases {
		m, _ := NewMoneyFromString(c.in)
		if got := m.Round().String(); got != c.paise {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.paise)
		}
		if got := m.RoundRupee().String(); got != c.rupees {
			t.Fatalf("roundRupee(%s) got %s want %s", c.in, got, c.rupees)
		}
	}
}

func TestHelpers(t *testing.T) {
	a := stddec.NewFromInt(300000)
	b := stddec.NewFromInt(60000)
	c := stddec.NewFromInt(240000)
	if got := Min(a, b, c); !got.Equal(b) {
		t.Fatalf("Min got %s", got)
	}
	if got := Max(a, b, c); !got.Equal(a) {
		t.Fatalf("Max got %s", got)
	}
	if got := Floor0(stddec.NewFromInt(-5)); !got.IsZero() {
		t.Fatalf("Floor0 got %s", got)
	}
	if got := Percent(stddec.NewFromInt(8)); !got.Equal(stddec.NewFromFloat(0.08)) {
		t.Fatalf("Percent got %s", got)
	}
	if got := Sum(NewMoneyFromInt(1), NewMoneyFromInt(2), NewMoney(0.5)); !got.Equal(stddec.NewFromFloat(3.5)) {
		t.Fatalf("Sum got %s", got)
	}
}

func TestJSONDecoding(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
		D Money `json:"d"`
		E Money `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 1500.5, "b": "2500", "c": "", "d": null}`), &payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.A.String() != "1500.50" || payload.B.String() != "2500.00" {
		t.Fatalf("numeric decode mismatch: %s %s", payload.A, payload.B)
	}
	if !payload.C.IsZero() || !payload.D.IsZero() || !payload.E.IsZero() {
		t.Fatalf("empty values should decode as zero")
	}

	if err := json.Unmarshal([]byte(`{"a": "twelve"}`), &payload); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
}

func TestJSONEncoding(t *testing.T) {
	out, err := json.Marshal(map[string]Money{"tax": NewMoney(576923.0769)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"tax":576923.08}` {
		t.Fatalf("encode mismatch: %s", out)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	var payload struct {
		Basic Money `yaml:"basic"`
		HRA   Money `yaml:"hra"`
		Rent  Money `yaml:"rent"`
	}
	if err := yaml.Unmarshal([]byte("basic: 800000\nhra: \"120000.50\"\nrent:\n"), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Basic.String() != "800000.00" || payload.HRA.String() != "120000.50" || !payload.Rent.IsZero() {
		t.Fatalf("yaml decode mismatch: %+v", payload)
	}

	out, err := yaml.Marshal(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "basic: 800000\nhra: 120000.5\nrent: 0\n" {
		t.Fatalf("yaml encode mismatch: %q", out)
	}

	if err := yaml.Unmarshal([]byte("basic: lots\n"), &payload); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
}
