package reporting

import (
	"fmt"
	"io"

	"clitestbed/internal/testbed"
)

// QuietReporter prints only the slots that did not pass and a one-line
// summary.
type QuietReporter struct {
	out io.Writer
}

// NewQuietReporter creates a QuietReporter writing to w.
func NewQuietReporter(w io.Writer) *QuietReporter {
	return &QuietReporter{out: w}
}

func (r *QuietReporter) ReportStart(string, bool) {}

func (r *QuietReporter) ReportSetResult(result testbed.SetResult) {
	for _, c := range result.Cases {
		if c.Status == testbed.StatusPassed {
			continue
		}
		line := fmt.Sprintf("%s #%d %s: %s (exit %s)", result.Name, c.Index, c.File, c.Status, exitCodeString(c))
		if c.Error != "" {
			line += ": " + c.Error
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *QuietReporter) ReportSuiteResult(result testbed.SuiteResult) {
	fmt.Fprintf(r.out, "%d tests, %d passed, %d failed\n", result.NumTest, result.NumPass, result.NumFail)
}
