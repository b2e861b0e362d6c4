package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report with slab breakdowns.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.WorksheetReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "FINADVISOR WORKSHEET REPORT: %s\n", report.Name)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "Regime:    %s\n", report.Regime)
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report.RegimeFigures) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(report.Tax) > 0 {
		fmt.Fprintln(&buf, "INCOME TAX")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for i, tc := range report.Tax {
			writeTaxCase(&buf, i+1, tc)
		}
	}

	if len(report.Loans) > 0 {
		fmt.Fprintln(&buf, "LOANS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for i, lc := range report.Loans {
			writeLoanCase(&buf, i+1, lc)
		}
	}

	s := AnalyzeReport(report)
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if len(report.Tax) > 0 {
		fmt.Fprintf(&buf, "  Total gross income:   %s\n", FormatRupees(s.TotalGrossIncome))
		fmt.Fprintf(&buf, "  Total tax liability:  %s\n", FormatRupees(s.TotalTaxLiability))
		fmt.Fprintf(&buf, "  Total net income:     %s\n", FormatRupees(s.TotalNetIncome))
		fmt.Fprintf(&buf, "  Highest rate:         %s (%s)\n", FormatPercentage(s.HighestRatePercent), s.HighestRateCase)
	}
	if len(report.Loans) > 0 {
		fmt.Fprintf(&buf, "  Monthly installments: %s across %d loan(s)\n", FormatRupeeUnits(s.TotalMonthlyOutgoing), s.AcceptedLoans)
		fmt.Fprintf(&buf, "  Total interest:       %s\n", FormatRupeeUnits(s.TotalInterest))
		if s.CostliestLoan != "" {
			fmt.Fprintf(&buf, "  Costliest loan:       %s\n", s.CostliestLoan)
		}
		if s.RejectedLoans > 0 {
			fmt.Fprintf(&buf, "  Rejected loans:       %d\n", s.RejectedLoans)
		}
	}
	return buf.Bytes(), nil
}

func writeTaxCase(w io.Writer, n int, tc domain.TaxCaseReport) {
	r := tc.Result
	fmt.Fprintf(w, "%d. %s (%s)\n", n, tc.Name, r.AgeBracket)
	fmt.Fprintf(w, "   Gross income:      %s\n", FormatRupees(r.GrossIncome))
	fmt.Fprintf(w, "   Basic exemption:   %s\n", FormatRupees(r.BasicExemption))
	fmt.Fprintf(w, "   Deductions:        %s\n", FormatRupees(r.TotalDeductions))
	fmt.Fprintf(w, "   Taxable income:    %s\n", FormatRupees(r.TaxableIncome))
	for _, slab := range r.Slabs {
		fmt.Fprintf(w, "     @ %-4s on %-16s = %s\n", ratePct(slab.Rate), FormatRupees(slab.Amount), FormatRupees(slab.Tax))
	}
	fmt.Fprintf(w, "   Tax before cess:   %s\n", FormatRupees(r.Tax))
	fmt.Fprintf(w, "   Cess:              %s\n", FormatRupees(r.Cess))
	fmt.Fprintf(w, "   Tax liability:     %s\n", FormatRupees(r.TaxLiability))
	fmt.Fprintf(w, "   Net income:        %s\n", FormatRupees(r.NetIncome))
	fmt.Fprintf(w, "   Effective rate:    %s\n", FormatPercentage(r.EffectiveRatePercent))
	fmt.Fprintln(w)
}

func writeLoanCase(w io.Writer, n int, lc domain.LoanCaseReport) {
	in := lc.Input
	fmt.Fprintf(w, "%d. %s (%s)\n", n, lc.Name, in.LoanType)
	if lc.Result == nil {
		fmt.Fprintf(w, "   Rejected: %s\n\n", lc.Error)
		return
	}
	r := lc.Result
	fmt.Fprintf(w, "   Principal:         %s\n", FormatRupees(decimalFromFloat(r.Principal)))
	fmt.Fprintf(w, "   Rate / tenure:     %g%% for %g years (%g months)\n", in.AnnualRatePercent, in.TenureYears, r.Periods)
	fmt.Fprintf(w, "   Monthly EMI:       %s\n", FormatRupeeUnits(r.Installment))
	fmt.Fprintf(w, "   Total payable:     %s\n", FormatRupeeUnits(r.TotalPayable))
	fmt.Fprintf(w, "   Total interest:    %s\n", FormatRupeeUnits(r.TotalInterest))
	fmt.Fprintln(w)
}
