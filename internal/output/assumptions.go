package output

import (
	"fmt"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions for the default regime.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultRegimeFY2023_24())

// GenerateAssumptions describes the figures of a regime. A regime without
// exemptions is treated as the default.
func GenerateAssumptions(r domain.TaxRegime) []string {
	if len(r.Exemptions) == 0 {
		r = domain.DefaultRegimeFY2023_24()
	}
	return []string{
		fmt.Sprintf("Basic exemption: %s (below 60), %s (60 to 80), %s (above 80)",
			FormatRupees(r.Exemption(domain.AgeUnder60)),
			FormatRupees(r.Exemption(domain.Age60To80)),
			FormatRupees(r.Exemption(domain.AgeOver80))),
		fmt.Sprintf("Section 80C capped at %s; home loan interest capped at %s",
			FormatRupees(r.Cap80C), FormatRupees(r.CapHomeLoanInterest)),
		fmt.Sprintf("Slab rates: %s up to %s, %s on the next %s, %s above",
			ratePct(r.FirstSlabRate), FormatRupees(r.FirstSlabCeiling),
			ratePct(r.SecondSlabRate), FormatRupees(r.SecondSlabWidth),
			ratePct(r.TopRate)),
		fmt.Sprintf("Health and education cess: %s of tax", ratePct(r.CessRate)),
		"Loans: reducing balance with monthly compounding; installment, total and interest rounded to whole rupees",
		fmt.Sprintf("The first slab is %s less the basic exemption, measured on taxable income; older brackets reach the %s slab sooner",
			FormatRupees(r.FirstSlabCeiling), ratePct(r.SecondSlabRate)),
	}
}

var decimalHundred = decimal.NewFromInt(100)

func ratePct(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).String() + "%"
}
