package calculation

import (
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// INCOME TAX ASSUMPTIONS:
//
// 1. Old regime, FY 2023-24 figures (see domain.DefaultRegimeFY2023_24).
// 2. Basic exemption by age bracket: 2.5L (<60), 3L (60-80), 5L (>80).
// 3. 80C deductions capped at 1.5L, home loan interest capped at 2L,
//    80D and other deductions uncapped.
// 4. The first slab is max(0, 5L - exemption) wide at 5%, the next 5L at 20%,
//    the rest at 30%. Slab edges are measured from the taxable income, not
//    from the gross income, so the 60-80 and over-80 brackets do not line up
//    with statutory slab starts. This is the documented behaviour and is kept.
// 5. A flat 4% health and education cess applies to the computed tax.

var hundred = decimal.NewFromInt(100)

// IncomeTaxCalculator computes old-regime income tax liability.
type IncomeTaxCalculator struct {
	Regime domain.TaxRegime
}

// NewIncomeTaxCalculator creates a calculator for the FY 2023-24 old regime
func NewIncomeTaxCalculator() *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Regime: domain.DefaultRegimeFY2023_24()}
}

// Calculate computes the tax liability for one input. It never fails:
// negative amounts are treated as zero.
func (c *IncomeTaxCalculator) Calculate(input domain.TaxCalculationInput) domain.TaxCalculationResult {
	r := c.Regime
	income := nonNegative(input.AnnualIncome)
	bracket := input.AgeBracket.Normalize()

	deduction80C := decimal.Min(nonNegative(input.Deduction80C), r.Cap80C)
	homeLoanInterest := decimal.Min(nonNegative(input.HomeLoanInterest), r.CapHomeLoanInterest)
	totalDeductions := deduction80C.
		Add(nonNegative(input.Deduction80D)).
		Add(homeLoanInterest).
		Add(nonNegative(input.OtherDeductions))

	exemption := r.Exemption(bracket)
	taxableIncome := nonNegative(income.Sub(exemption).Sub(totalDeductions))

	slabs, tax := c.applySlabs(taxableIncome, exemption)
	liability := tax.Mul(decimal.NewFromInt(1).Add(r.CessRate))

	effectiveRate := decimal.Zero
	if income.IsPositive() {
		effectiveRate = liability.Div(income).Mul(hundred)
	}

	return domain.TaxCalculationResult{
		GrossIncome:          income,
		AgeBracket:           bracket,
		BasicExemption:       exemption,
		TotalDeductions:      totalDeductions,
		TaxableIncome:        taxableIncome,
		Slabs:                slabs,
		Tax:                  tax,
		Cess:                 liability.Sub(tax),
		TaxLiability:         liability,
		NetIncome:            income.Sub(liability),
		EffectiveRatePercent: effectiveRate,
	}
}

func (c *IncomeTaxCalculator) applySlabs(taxableIncome, exemption decimal.Decimal) ([]domain.TaxSlabResult, decimal.Decimal) {
	r := c.Regime
	widths := []struct {
		width   decimal.Decimal
		rate    decimal.Decimal
		topSlab bool
	}{
		{nonNegative(r.FirstSlabCeiling.Sub(exemption)), r.FirstSlabRate, false},
		{r.SecondSlabWidth, r.SecondSlabRate, false},
		{decimal.Zero, r.TopRate, true},
	}

	slabs := []domain.TaxSlabResult{}
	tax := decimal.Zero
	remaining := taxableIncome
	for _, w := range widths {
		if !remaining.IsPositive() {
			break
		}
		amount := remaining
		if !w.topSlab {
			amount = decimal.Min(remaining, w.width)
		}
		if !amount.IsPositive() {
			continue
		}
		slabTax := amount.Mul(w.rate)
		slabs = append(slabs, domain.TaxSlabResult{Rate: w.rate, Amount: amount, Tax: slabTax})
		tax = tax.Add(slabTax)
		remaining = remaining.Sub(amount)
	}
	return slabs, tax
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
