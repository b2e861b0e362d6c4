package output

import (
	"bytes"
	"fmt"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter provides a concise one-line-per-case summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.WorksheetReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "WORKSHEET SUMMARY: %s\n", report.Name)
	fmt.Fprintln(&buf, "================================")
	for _, tc := range report.Tax {
		fmt.Fprintf(&buf, "tax  %s: Gross=%s Taxable=%s Liability=%s Net=%s Rate=%s\n",
			tc.Name,
			FormatRupees(tc.Result.GrossIncome),
			FormatRupees(tc.Result.TaxableIncome),
			FormatRupees(tc.Result.TaxLiability),
			FormatRupees(tc.Result.NetIncome),
			FormatPercentage(tc.Result.EffectiveRatePercent),
		)
	}
	for _, lc := range report.Loans {
		if lc.Result == nil {
			fmt.Fprintf(&buf, "loan %s: rejected (%s)\n", lc.Name, lc.Error)
			continue
		}
		fmt.Fprintf(&buf, "loan %s: EMI=%s Total=%s Interest=%s\n",
			lc.Name,
			FormatRupeeUnits(lc.Result.Installment),
			FormatRupeeUnits(lc.Result.TotalPayable),
			FormatRupeeUnits(lc.Result.TotalInterest),
		)
	}
	s := AnalyzeReport(report)
	if s.HighestRateCase != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Highest effective rate: %s (%s)\n", s.HighestRateCase, FormatPercentage(s.HighestRatePercent))
	}
	return buf.Bytes(), nil
}

func decimalFromFloat(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
