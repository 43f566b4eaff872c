package reporting

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"clitestbed/internal/color"
	"clitestbed/internal/testbed"
	"clitestbed/pkg/logging"
)

// TableReporter renders one table per test set and a summary table for the
// run. When a report directory is set it also writes the suite result as a
// JSON file there.
type TableReporter struct {
	out        io.Writer
	reportPath string
	now        func() time.Time
}

// NewTableReporter creates a TableReporter writing to w.
func NewTableReporter(w io.Writer, reportPath string) *TableReporter {
	return &TableReporter{out: w, reportPath: reportPath, now: time.Now}
}

func (r *TableReporter) ReportStart(configPath string, dryRun bool) {
	mode := ""
	if dryRun {
		mode = " (dry run)"
	}
	fmt.Fprintln(r.out, color.Title(fmt.Sprintf("Running test sets from %s%s", configPath, mode)))
}

func (r *TableReporter) ReportSetResult(result testbed.SetResult) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(fmt.Sprintf("Test set %s: %s (%s)", result.Name, result.Executable, formatDuration(result.Duration)))

	t.AppendHeader(table.Row{"#", "Case", "Description", "Status", "Exit", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Case", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Description", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Exit", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})

	for _, c := range result.Cases {
		t.AppendRow(table.Row{
			c.Index,
			c.File,
			c.Description,
			color.Status(string(c.Status)),
			exitCodeString(c),
			formatDuration(c.Duration),
		})
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("TOTAL %d", result.NumTest),
		fmt.Sprintf("PASS %d", result.NumPass),
		fmt.Sprintf("FAIL %d", result.NumFail),
		"",
		formatDuration(result.Duration),
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func (r *TableReporter) ReportSuiteResult(result testbed.SuiteResult) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(fmt.Sprintf("Results (%s)", formatDuration(result.Duration)))
	t.AppendHeader(table.Row{"Test set", "Tests", "Passed", "Failed", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
	})

	for _, set := range result.Sets {
		t.AppendRow(table.Row{set.Name, set.NumTest, set.NumPass, set.NumFail, color.Status(setStatus(set.NumFail))})
	}
	for _, skipped := range result.Skipped {
		t.AppendRow(table.Row{skipped.Name, "-", "-", "-", color.Status("SKIPPED")})
	}

	t.AppendFooter(table.Row{"TOTAL", result.NumTest, result.NumPass, result.NumFail, setStatus(result.NumFail)})
	t.SetStyle(table.StyleLight)
	t.Render()

	for _, skipped := range result.Skipped {
		fmt.Fprintln(r.out, color.Muted(fmt.Sprintf("skipped %s: %s", skipped.Name, skipped.Error)))
	}

	if r.reportPath == "" {
		return
	}
	path, err := WriteReportFile(r.reportPath, result, r.now())
	if err != nil {
		logging.Error("Reporting", err, "Failed to write report file to %s", r.reportPath)
		return
	}
	fmt.Fprintf(r.out, "Report written to %s\n", path)
}

func setStatus(numFail int) string {
	if numFail == 0 {
		return "PASSED"
	}
	return "FAILED"
}
