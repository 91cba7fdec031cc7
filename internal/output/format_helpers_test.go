package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRupees(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	if got, want := FormatRupees(v), "₹1234.57"; got != want {
		t.Errorf("FormatRupees(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	if got, want := FormatPercentage(v), "12.35%"; got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatRate(t *testing.T) {
	cases := map[float64]string{0: "0%", 0.05: "5%", 0.125: "12.5%", 0.3: "30%"}
	for in, want := range cases {
		if got := FormatRate(in); got != want {
			t.Errorf("FormatRate(%v) = %q, want %q", in, got, want)
		}
	}
}
