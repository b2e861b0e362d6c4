package output

import (
	"encoding/json"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// JSONFormatter serializes the worksheet report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.WorksheetReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
