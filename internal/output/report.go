package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// GenerateReport writes the report in the named format to a timestamped file
// in dir and returns its path. "all" writes every canonical format.
func GenerateReport(report *domain.WorksheetReport, format, dir string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var written []string
		for _, f := range builtInFormatters {
			path, err := WriteFormatted(f, report, dir, extensionFor(f))
			if err != nil {
				return written, fmt.Errorf("%s report: %w", f.Name(), err)
			}
			written = append(written, path)
		}
		return written, nil
	}

	f, err := lookupFormatter(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, report, dir, extensionFor(f))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Render writes the report in the named format to w.
func Render(w io.Writer, report *domain.WorksheetReport, format string) error {
	f, err := lookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

func lookupFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
