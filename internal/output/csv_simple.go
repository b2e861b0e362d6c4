package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per case).
// Tax rows leave the loan columns empty and vice versa.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.WorksheetReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "Case", "GrossIncome", "AgeBracket", "TaxableIncome", "TaxLiability", "NetIncome", "EffectiveRatePercent", "LoanType", "Principal", "AnnualRatePercent", "TenureYears", "Installment", "TotalPayable", "TotalInterest", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, tc := range report.Tax {
		r := tc.Result
		row := []string{
			"tax",
			tc.Name,
			r.GrossIncome.StringFixed(2),
			string(r.AgeBracket),
			r.TaxableIncome.StringFixed(2),
			r.TaxLiability.StringFixed(2),
			r.NetIncome.StringFixed(2),
			r.EffectiveRatePercent.StringFixed(2),
			"", "", "", "", "", "", "", "",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, lc := range report.Loans {
		row := []string{
			"loan",
			lc.Name,
			"", "", "", "", "", "",
			string(lc.Input.LoanType),
			floatToString(lc.Input.Principal),
			floatToString(lc.Input.AnnualRatePercent),
			floatToString(lc.Input.TenureYears),
			"", "", "",
			lc.Error,
		}
		if lc.Result != nil {
			row[12] = floatToString(lc.Result.Installment)
			row[13] = floatToString(lc.Result.TotalPayable)
			row[14] = floatToString(lc.Result.TotalInterest)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func floatToString(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func intToString(v int) string { return strconv.Itoa(v) }
