package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	if got := NewMoney(12.345).Format(); got != "₹12.35" {
		t.Fatalf("NewMoney display mismatch: got %s", got)
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.Format() != "₹123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.Format())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		in    string
		paise string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"21695.578", "21695.58"},
		{"-0.005", "-0.01"},
	}
	for _, c := range cases {
		m, _ := NewMoneyFromString(c.in)
		if got := m.Round().Decimal.StringFixed(2); got != c.paise {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.paise)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := NewMoney(10.10)
	b := NewMoney(5.05)
	if got := a.Add(b).Format(); got != "₹15.15" {
		t.Fatalf("Add got %s", got)
	}
	if got := a.Sub(b).Format(); got != "₹5.05" {
		t.Fatalf("Sub got %s", got)
	}
	if !Zero().Decimal.IsZero() || !NewMoney(-0.01).IsNegative() || a.IsNegative() {
		t.Fatalf("zero/negative checks failed")
	}
}

func TestFormatIndianGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{75400, "₹75,400.00"},
		{800000, "₹8,00,000.00"},
		{1234567.891, "₹12,34,567.89"},
		{123456789, "₹12,34,56,789.00"},
		{-2500, "-₹2,500.00"},
	}
	for _, c := range cases {
		if got := NewMoney(c.in).Format(); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatUnits(t *testing.T) {
	if got := NewMoney(21695.58).FormatUnits(); got != "₹21,696" {
		t.Fatalf("FormatUnits got %s", got)
	}
	if got := NewMoney(5206939).FormatUnits(); got != "₹52,06,939" {
		t.Fatalf("FormatUnits got %s", got)
	}
}
