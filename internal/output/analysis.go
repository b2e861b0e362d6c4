package output

import (
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Summary aggregates a worksheet report for headline rendering.
type Summary struct {
	TotalGrossIncome   decimal.Decimal
	TotalTaxLiability  decimal.Decimal
	TotalNetIncome     decimal.Decimal
	HighestRateCase    string
	HighestRatePercent decimal.Decimal

	AcceptedLoans        int
	RejectedLoans        int
	TotalMonthlyOutgoing float64
	TotalInterest        float64
	CostliestLoan        string
}

// AnalyzeReport totals the tax cases and the accepted loan cases.
// Extracted from the formatters for testability.
func AnalyzeReport(report *domain.WorksheetReport) Summary {
	var s Summary
	if report == nil {
		return s
	}

	sum := func(get func(domain.TaxCaseReport) decimal.Decimal) decimal.Decimal {
		return lo.Reduce(report.Tax, func(acc decimal.Decimal, tc domain.TaxCaseReport, _ int) decimal.Decimal {
			return acc.Add(get(tc))
		}, decimal.Zero)
	}
	s.TotalGrossIncome = sum(func(tc domain.TaxCaseReport) decimal.Decimal { return tc.Result.GrossIncome })
	s.TotalTaxLiability = sum(func(tc domain.TaxCaseReport) decimal.Decimal { return tc.Result.TaxLiability })
	s.TotalNetIncome = sum(func(tc domain.TaxCaseReport) decimal.Decimal { return tc.Result.NetIncome })

	if len(report.Tax) > 0 {
		top := lo.MaxBy(report.Tax, func(a, b domain.TaxCaseReport) bool {
			return a.Result.EffectiveRatePercent.GreaterThan(b.Result.EffectiveRatePercent)
		})
		s.HighestRateCase = top.Name
		s.HighestRatePercent = top.Result.EffectiveRatePercent
	}

	accepted := lo.Filter(report.Loans, func(lc domain.LoanCaseReport, _ int) bool { return lc.Result != nil })
	s.AcceptedLoans = len(accepted)
	s.RejectedLoans = len(report.Loans) - len(accepted)
	s.TotalMonthlyOutgoing = lo.SumBy(accepted, func(lc domain.LoanCaseReport) float64 { return lc.Result.Installment })
	s.TotalInterest = lo.SumBy(accepted, func(lc domain.LoanCaseReport) float64 { return lc.Result.TotalInterest })
	if len(accepted) > 0 {
		s.CostliestLoan = lo.MaxBy(accepted, func(a, b domain.LoanCaseReport) bool {
			return a.Result.TotalInterest > b.Result.TotalInterest
		}).Name
	}
	return s
}
