package config

// Settings holds the harness defaults that apply to every run, independent of
// the test set configuration passed on the command line.
type Settings struct {
	// DefaultLogLevel is used by test sets that do not set LOGLEVEL.
	DefaultLogLevel string `yaml:"defaultLogLevel,omitempty"`
	// Output selects the reporter: "table", "json" or "quiet".
	Output string `yaml:"output,omitempty"`
	// ReportPath is a directory for the detailed JSON report. Empty disables it.
	ReportPath string `yaml:"reportPath,omitempty"`
	// Strict makes the process exit non-zero when any test case failed.
	Strict bool `yaml:"strict,omitempty"`
	// NoColor disables coloured status output.
	NoColor bool `yaml:"noColor,omitempty"`
}

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputQuiet = "quiet"
)
