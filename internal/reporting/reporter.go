package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"clitestbed/internal/config"
	"clitestbed/internal/testbed"
)

// Reporter receives the results of a run as they become available.
// Implementations are called from a single goroutine.
type Reporter interface {
	// ReportStart is called once before the first test set runs.
	ReportStart(configPath string, dryRun bool)
	// ReportSetResult is called after each test set finishes.
	ReportSetResult(result testbed.SetResult)
	// ReportSuiteResult is called once with the totals of the run.
	ReportSuiteResult(result testbed.SuiteResult)
}

// New returns the reporter for output. reportPath, when non-empty, is the
// directory the table reporter writes its JSON report file to.
func New(output string, w io.Writer, reportPath string) (Reporter, error) {
	switch strings.ToLower(output) {
	case "", config.OutputTable:
		return NewTableReporter(w, reportPath), nil
	case config.OutputJSON:
		return NewJSONReporter(w), nil
	case config.OutputQuiet:
		return NewQuietReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s, %s or %s)", output, config.OutputTable, config.OutputJSON, config.OutputQuiet)
	}
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) ReportStart(string, bool) {}
func (NopReporter) ReportSetResult(testbed.SetResult) {}
func (NopReporter) ReportSuiteResult(testbed.SuiteResult) {}

// Helper function to format duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func exitCodeString(c testbed.CaseResult) string {
	if c.Outcome != testbed.OutcomeSuccess {
		return "-"
	}
	return fmt.Sprintf("%d", c.ExitCode)
}
