package reporting

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clitestbed/internal/color"
	"clitestbed/internal/testbed"
)

func TestMain(m *testing.M) {
	color.SetEnabled(false)
	os.Exit(m.Run())
}

func sampleSuite() testbed.SuiteResult {
	set := testbed.SetResult{
		Name:       "smoke",
		Executable: "/bin/echo",
		Duration:   1500 * time.Millisecond,
		NumTest:    3,
		NumPass:    1,
		NumFail:    2,
		Cases: []testbed.CaseResult{
			{Index: 1, File: "cases/a.yaml", Description: "echo hello", Status: testbed.StatusPassed, Outcome: testbed.OutcomeSuccess},
			{Index: 2, File: "cases/b.yaml", Status: testbed.StatusFailed, Outcome: testbed.OutcomeSuccess, ExitCode: 4},
			{Index: 3, File: "cases/c.yaml", Status: testbed.StatusMissing, Error: "file not found"},
		},
	}
	suite := testbed.SuiteResult{ConfigPath: "suite.yaml", Skipped: []testbed.SkippedSection{{Name: "broken", Error: "no test cases"}}}
	suite.Add(set)
	return suite
}

func TestNew(t *testing.T) {
	tests := []struct {
		output  string
		want    interface{}
		wantErr bool
	}{
		{"", &TableReporter{}, false},
		{"table", &TableReporter{}, false},
		{"JSON", &JSONReporter{}, false},
		{"quiet", &QuietReporter{}, false},
		{"xml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			r, err := New(tt.output, &bytes.Buffer{}, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableReporter(&buf, "")
	suite := sampleSuite()

	r.ReportStart("suite.yaml", true)
	r.ReportSetResult(suite.Sets[0])
	r.ReportSuiteResult(suite)

	out := buf.String()
	assert.Contains(t, out, "suite.yaml (dry run)")
	assert.Contains(t, out, "Test set smoke")
	assert.Contains(t, out, "cases/a.yaml")
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "MISSING")
	assert.Contains(t, out, "skipped broken: no test cases")
	assert.NotContains(t, out, "Report written")
}

func TestTableReporter_WritesReportFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	var buf bytes.Buffer
	r := NewTableReporter(&buf, dir)
	r.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }

	r.ReportSuiteResult(sampleSuite())

	path := filepath.Join(dir, "clitestbed-report-20240309_140507.json")
	assert.Contains(t, buf.String(), "Report written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded testbed.SuiteResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.NumFail)
	assert.Equal(t, testbed.StatusMissing, decoded.Sets[0].Cases[2].Status)
}

func TestQuietReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewQuietReporter(&buf)
	suite := sampleSuite()

	r.ReportStart("suite.yaml", false)
	r.ReportSetResult(suite.Sets[0])
	r.ReportSuiteResult(suite)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"smoke #2 cases/b.yaml: FAILED (exit 4)",
		"smoke #3 cases/c.yaml: MISSING (exit -): file not found",
		"3 tests, 1 passed, 2 failed",
	}, lines)
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	suite := sampleSuite()

	r.ReportStart("suite.yaml", false)
	r.ReportSetResult(suite.Sets[0])
	assert.Empty(t, buf.String())

	r.ReportSuiteResult(suite)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "suite.yaml", decoded["config_path"])
	assert.EqualValues(t, 3, decoded["num_test"])
}
