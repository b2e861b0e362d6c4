package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rupees": FormatRupees,
	"units":  FormatRupeeUnits,
	"pct":    FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.WorksheetReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.WorksheetReport
		Summary     Summary
		Assumptions []string
	}{report, AnalyzeReport(report), GenerateAssumptions(report.RegimeFigures)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
