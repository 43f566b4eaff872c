package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"clitestbed/internal/testbed"
	"clitestbed/pkg/logging"
)

// ReportFilePrefix starts the name of every JSON report file.
const ReportFilePrefix = "clitestbed-report-"

// JSONReporter prints the suite result as a single JSON document.
type JSONReporter struct {
	out io.Writer
}

// NewJSONReporter creates a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{out: w}
}

func (r *JSONReporter) ReportStart(string, bool) {}
func (r *JSONReporter) ReportSetResult(testbed.SetResult) {}

func (r *JSONReporter) ReportSuiteResult(result testbed.SuiteResult) {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logging.Error("Reporting", err, "Failed to encode results")
	}
}

// WriteReportFile writes result as indented JSON into dir, named after the
// given time, and returns the file path.
func WriteReportFile(dir string, result testbed.SuiteResult, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	path := filepath.Join(dir, ReportFilePrefix+at.Format("20060102_150405")+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}
