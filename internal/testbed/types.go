package testbed

import (
	"time"
)

// Argument is one option/value pair of a command line. Either side may be
// empty, in which case it is left out of the command line.
type Argument struct {
	Option string `json:"option"`
	Value  string `json:"value"`
}

// Tokens returns the non-empty sides of the argument in order.
func (a Argument) Tokens() []string {
	tokens := make([]string, 0, 2)
	if a.Option != "" {
		tokens = append(tokens, a.Option)
	}
	if a.Value != "" {
		tokens = append(tokens, a.Value)
	}
	return tokens
}

// String renders the argument the way the settings report shows it.
func (a Argument) String() string {
	return a.Option + " " + a.Value
}

// Outcome tags how a test case attempt ended.
type Outcome string

const (
	// OutcomeSuccess means the process ran to completion; ExitCode is valid.
	OutcomeSuccess Outcome = "SUCCESS"
	// OutcomeLogUnwritable means the case log file could not be created.
	OutcomeLogUnwritable Outcome = "LOG_UNWRITABLE"
	// OutcomeSpawnFailed means the process could not be launched.
	OutcomeSpawnFailed Outcome = "SPAWN_FAILED"
)

// ExecutionResult is the typed result of one test case attempt.
type ExecutionResult struct {
	Outcome  Outcome       `json:"outcome"`
	ExitCode int           `json:"exit_code"`
	Command  []string      `json:"command"`
	LogPath  string        `json:"log_path,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Success returns a result for a process that exited with code.
func Success(code int) ExecutionResult {
	return ExecutionResult{Outcome: OutcomeSuccess, ExitCode: code}
}

// LogUnwritable returns a result for a case whose log path could not be created.
func LogUnwritable(path string, err error) ExecutionResult {
	return ExecutionResult{Outcome: OutcomeLogUnwritable, LogPath: path, Err: err}
}

// SpawnFailed returns a result for a process that could not be launched.
func SpawnFailed(err error) ExecutionResult {
	return ExecutionResult{Outcome: OutcomeSpawnFailed, Err: err}
}

// Passed reports whether the attempt ran and exited with successCode.
func (r ExecutionResult) Passed(successCode int) bool {
	return r.Outcome == OutcomeSuccess && r.ExitCode == successCode
}

// CaseStatus is the final verdict for one case slot of a test set.
type CaseStatus string

const (
	// StatusPassed indicates the case exited with the success code
	StatusPassed CaseStatus = "PASSED"
	// StatusFailed indicates any other outcome of an attempted case
	StatusFailed CaseStatus = "FAILED"
	// StatusMissing indicates the case file could not be loaded
	StatusMissing CaseStatus = "MISSING"
	// StatusError indicates the attempt aborted unexpectedly
	StatusError CaseStatus = "ERROR"
)

// CaseResult represents the result of a single case slot
type CaseResult struct {
	// Index is the 1-based slot position
	Index       int           `json:"index"`
	// File is the case configuration file
	File        string        `json:"file"`
	// Description of the case, empty for missing slots
	Description string        `json:"description,omitempty"`
	// Status is the verdict for the slot
	Status      CaseStatus    `json:"status"`
	// Outcome of the attempt, empty when no attempt was made
	Outcome     Outcome       `json:"outcome,omitempty"`
	// ExitCode of the process when Outcome is SUCCESS
	ExitCode    int           `json:"exit_code"`
	// Command is the assembled command line
	Command     []string      `json:"command,omitempty"`
	// LogPath is where the process output was written
	LogPath     string        `json:"log_path,omitempty"`
	// Duration of the attempt
	Duration    time.Duration `json:"duration"`
	// Error message for failed, missing or aborted slots
	Error       string        `json:"error,omitempty"`
}

// SetResult represents the result of running one test set
type SetResult struct {
	Name        string        `json:"name"`
	Executable  string        `json:"executable"`
	SuccessCode int           `json:"success_code"`
	OutDir      string        `json:"out_dir"`
	DryRun      bool          `json:"dry_run"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration"`
	NumTest     int           `json:"num_test"`
	NumPass     int           `json:"num_pass"`
	NumFail     int           `json:"num_fail"`
	Cases       []CaseResult  `json:"cases"`
}

// SkippedSection records a configuration section that could not be loaded.
type SkippedSection struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// SuiteResult represents the result of running every test set of a file
type SuiteResult struct {
	ConfigPath string           `json:"config_path"`
	DryRun     bool             `json:"dry_run"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    time.Time        `json:"end_time"`
	Duration   time.Duration    `json:"duration"`
	NumTest    int              `json:"num_test"`
	NumPass    int              `json:"num_pass"`
	NumFail    int              `json:"num_fail"`
	Sets       []SetResult      `json:"sets"`
	Skipped    []SkippedSection `json:"skipped,omitempty"`
}

// Add appends a set result and updates the totals.
func (s *SuiteResult) Add(set SetResult) {
	s.Sets = append(s.Sets, set)
	s.NumTest += set.NumTest
	s.NumPass += set.NumPass
	s.NumFail += set.NumFail
}
