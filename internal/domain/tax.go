package domain

import (
	"strings"
	"time"

	"github.com/finadvisor/finadvisor/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// AgeBracket selects the basic exemption applied to a taxpayer.
type AgeBracket string

const (
	AgeUnder60 AgeBracket = "under60"
	Age60To80  AgeBracket = "60to80"
	AgeOver80  AgeBracket = "over80"
)

// ParseAgeBracket maps the form values used by the calculator pages onto an
// AgeBracket. Unknown or blank values fall back to AgeUnder60.
func ParseAgeBracket(s string) AgeBracket {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "60to80", "60-80", "senior":
		return Age60To80
	case "over80", "above80", "80+", "supersenior":
		return AgeOver80
	default:
		return AgeUnder60
	}
}

// AgeBracketAt derives the bracket from a birth date.
func AgeBracketAt(birthDate, at time.Time) AgeBracket {
	age := dateutil.Age(birthDate, at)
	switch {
	case age > 80:
		return AgeOver80
	case age >= 60:
		return Age60To80
	default:
		return AgeUnder60
	}
}

// Normalize returns the bracket itself or AgeUnder60 when it is not one of the
// known values.
func (a AgeBracket) Normalize() AgeBracket {
	switch a {
	case AgeUnder60, Age60To80, AgeOver80:
		return a
	default:
		return ParseAgeBracket(string(a))
	}
}

// TaxCalculationInput is the coerced form of the income tax calculator.
// Every amount is expected to be non-negative; the calculator treats
// negative values as zero.
type TaxCalculationInput struct {
	AnnualIncome     decimal.Decimal `json:"annual_income" yaml:"annual_income"`
	AgeBracket       AgeBracket      `json:"age_bracket" yaml:"age_bracket"`
	Deduction80C     decimal.Decimal `json:"deduction_80c" yaml:"deduction_80c"`
	Deduction80D     decimal.Decimal `json:"deduction_80d" yaml:"deduction_80d"`
	HomeLoanInterest decimal.Decimal `json:"home_loan_interest" yaml:"home_loan_interest"`
	OtherDeductions  decimal.Decimal `json:"other_deductions" yaml:"other_deductions"`
}

// TaxSlabResult is the tax charged on one slab.
type TaxSlabResult struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
	Tax    decimal.Decimal `json:"tax"`
}

// TaxCalculationResult holds every derived figure of one tax calculation.
type TaxCalculationResult struct {
	GrossIncome          decimal.Decimal `json:"gross_income"`
	AgeBracket           AgeBracket      `json:"age_bracket"`
	BasicExemption       decimal.Decimal `json:"basic_exemption"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	TaxableIncome        decimal.Decimal `json:"taxable_income"`
	Slabs                []TaxSlabResult `json:"slabs"`
	Tax                  decimal.Decimal `json:"tax"`
	Cess                 decimal.Decimal `json:"cess"`
	TaxLiability         decimal.Decimal `json:"tax_liability"`
	NetIncome            decimal.Decimal `json:"net_income"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
}
