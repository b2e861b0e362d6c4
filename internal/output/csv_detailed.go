package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// CSVDetailedExporter emits one row per taxed slab plus a cess row per tax case.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.WorksheetReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Case", "Component", "Rate", "Amount", "Tax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, tc := range report.Tax {
		for i, slab := range tc.Result.Slabs {
			row := []string{
				tc.Name,
				"slab " + intToString(i+1),
				slab.Rate.String(),
				slab.Amount.StringFixed(2),
				slab.Tax.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		cess := []string{tc.Name, "cess", report.RegimeFigures.CessRate.String(), tc.Result.Tax.StringFixed(2), tc.Result.Cess.StringFixed(2)}
		if err := w.Write(cess); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ScheduleCSV renders an amortization schedule, one row per month.
func ScheduleCSV(schedule domain.AmortizationSchedule) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "Payment", "Interest", "Principal", "Balance"}); err != nil {
		return nil, err
	}
	for _, row := range schedule.Rows {
		record := []string{
			intToString(row.Month),
			floatToString(row.Payment),
			floatToString(row.Interest),
			floatToString(row.Principal),
			floatToString(row.Balance),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
