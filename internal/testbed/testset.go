package testbed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clitestbed/internal/config"
	"clitestbed/pkg/logging"
)

// Test set configuration keys.
const (
	OptExecutable  = "EXECUTABLE"
	OptSuccessCode = "SUCCESSCODE"
	OptOutDir      = "OUTDIR"
	OptTestDir     = "TESTDIR"
	OptTestCases   = "TESTCASES"
	OptPathDirs    = "PATHDIRS"
	OptSetLogFile  = "LOGFILE"
	OptLogLevel    = "LOGLEVEL"
)

// DefaultSuccessCode is the exit code that marks a passing case unless a set
// configures SUCCESSCODE.
const DefaultSuccessCode = 0

// caseFilePatterns select the test case files of a TESTDIR.
var caseFilePatterns = []string{"*.json", "*.yaml", "*.yml"}

// CaseSlot is one position of a test set. A slot whose case failed to load
// keeps its file and the load error, and is counted as missing when run.
type CaseSlot struct {
	File string
	Case *TestCase
	Err  error
}

// Absent reports whether the slot holds no loaded case.
func (s CaseSlot) Absent() bool { return s.Case == nil }

// LoadOptions controls how a test set section is read.
type LoadOptions struct {
	// Context is the root interpolation context of the run.
	Context config.Context
	// Interpolator overrides config.DefaultRules when set.
	Interpolator *config.Interpolator
	// Console receives the set log lines. Defaults to os.Stderr.
	Console io.Writer
	// DefaultLogLevel applies when the section has no LOGLEVEL.
	DefaultLogLevel string
	// Spawner launches the case processes. Defaults to ExecSpawner.
	Spawner Spawner
	// Environ is the inherited environment. Defaults to os.Environ().
	Environ []string
}

// TestSet is one executable run against an ordered list of test cases.
type TestSet struct {
	Name        string
	SourceFile  string
	Executable  string
	SuccessCode int
	OutDir      string
	Slots       []CaseSlot
	PathDirs    []string
	// LogFile is the resolved set log path, "" when none is configured.
	LogFile     string
	LogLevel    string

	env     []string
	logger  *logging.Logger
	spawner Spawner
}

// LoadTestSet reads section from the configuration file at path.
func LoadTestSet(path, section string, opts LoadOptions) (*TestSet, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, &TestSetLoadError{Path: path, Section: section, Err: err}
	}
	return NewTestSet(doc, section, opts)
}

// NewTestSet builds the test set named section of doc. Test case files that
// fail to load are logged and leave an absent slot; every other problem is
// returned as a *TestSetLoadError.
func NewTestSet(doc *config.Document, section string, opts LoadOptions) (*TestSet, error) {
	fail := func(err error) (*TestSet, error) {
		return nil, &TestSetLoadError{Path: doc.Path, Section: section, Err: err}
	}

	if _, err := doc.Section(section); err != nil {
		return fail(err)
	}

	r := config.NewReader(doc, opts.Interpolator, opts.Context)
	ts := &TestSet{
		Name:        section,
		SourceFile:  doc.Path,
		SuccessCode: DefaultSuccessCode,
		PathDirs:    []string{},
		spawner:     opts.Spawner,
	}

	var err error
	if ts.Executable, err = r.String(section, OptExecutable); err != nil {
		return fail(err)
	}
	if r.Has(section, OptSuccessCode) {
		if ts.SuccessCode, err = r.Int(section, OptSuccessCode); err != nil {
			return fail(err)
		}
	}
	if ts.OutDir, err = r.String(section, OptOutDir); err != nil {
		return fail(err)
	}
	r = r.WithContext(r.Context().WithOutDir(ts.OutDir))

	files, err := caseFiles(r, section)
	if err != nil {
		return fail(err)
	}
	if len(files) == 0 {
		return fail(&ConfigError{Path: doc.Path, Section: section, Err: ErrNoTestCases})
	}

	if r.Has(section, OptPathDirs) {
		raw, err := r.Lines(section, OptPathDirs)
		if err != nil {
			return fail(err)
		}
		ts.PathDirs = normalizePathDirs(raw)
	}

	var logFile string
	if r.Has(section, OptSetLogFile) {
		if logFile, err = r.String(section, OptSetLogFile); err != nil {
			return fail(err)
		}
	}

	defaultLevel := opts.DefaultLogLevel
	if defaultLevel == "" {
		defaultLevel = logging.DefaultLevelName
	}
	ts.LogLevel = defaultLevel
	if r.Has(section, OptLogLevel) {
		if ts.LogLevel, err = r.String(section, OptLogLevel); err != nil {
			return fail(err)
		}
	}

	ts.openLogger(opts.Console, logFile, defaultLevel)

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	ts.env = BuildEnvironment(environ, ts.PathDirs)

	ts.Slots = make([]CaseSlot, 0, len(files))
	for _, file := range files {
		tc, err := loadTestCase(opts.Interpolator, r.Context(), file)
		if err != nil {
			ts.logger.Error("Unable to load test case %s for test set %s: %v", file, section, err)
		}
		ts.Slots = append(ts.Slots, CaseSlot{File: file, Case: tc, Err: err})
	}

	return ts, nil
}

// caseFiles returns the TESTDIR matches followed by the TESTCASES entries.
func caseFiles(r config.Reader, section string) ([]string, error) {
	var files []string
	if r.Has(section, OptTestDir) {
		dir, err := r.String(section, OptTestDir)
		if err != nil {
			return nil, err
		}
		files = append(files, globCaseFiles(strings.ReplaceAll(dir, `"`, ""))...)
	}
	if r.Has(section, OptTestCases) {
		listed, err := r.Strings(section, OptTestCases)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}
	return files, nil
}

// globCaseFiles lists the regular files of dir matching caseFilePatterns in
// lexical order. Hidden files are skipped and an unreadable directory matches
// nothing.
func globCaseFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if !matchesCasePattern(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files
}

func matchesCasePattern(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	for _, pattern := range caseFilePatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// openLogger attaches the set sink. An invalid level falls back to the
// default and an unusable log file falls back to console only; both are
// reported through the sink itself.
func (ts *TestSet) openLogger(console io.Writer, logFile, defaultLevel string) {
	level, levelErr := logging.ParseLevel(ts.LogLevel)
	if levelErr != nil {
		level, _ = logging.ParseLevel(defaultLevel)
	}

	var fileErr error
	if logFile != "" {
		ts.LogFile = joinPath(ts.OutDir, logFile)
		ts.logger, fileErr = logging.NewWithFile(ts.Name, level, console, ts.LogFile)
	}
	if ts.logger == nil {
		ts.logger = logging.New(ts.Name, level, console)
	}

	if fileErr != nil {
		ts.logger.Error("Unable to create file logger: %s: %v", ts.LogFile, fileErr)
		ts.LogFile = ""
	}
	if levelErr != nil {
		ts.logger.Error("Invalid log level: %s", ts.LogLevel)
		ts.logger.Error("Setting log level to %s", level)
		ts.LogLevel = level.String()
	}
}

// Logger returns the set log sink.
func (ts *TestSet) Logger() *logging.Logger { return ts.logger }

// Env returns the derived child environment, nil when it is inherited.
func (ts *TestSet) Env() []string {
	if ts.env == nil {
		return nil
	}
	return append([]string{}, ts.env...)
}

// Run executes every slot in order and returns the aggregated result.
func (ts *TestSet) Run(ctx context.Context, dryRun bool) SetResult {
	res := SetResult{
		Name:        ts.Name,
		Executable:  ts.Executable,
		SuccessCode: ts.SuccessCode,
		OutDir:      ts.OutDir,
		DryRun:      dryRun,
		StartTime:   time.Now(),
		Cases:       make([]CaseResult, 0, len(ts.Slots)),
	}

	ts.logger.Info("========================================")
	for _, line := range ts.SettingsReport() {
		ts.logger.Info("%s", line)
	}

	for i, slot := range ts.Slots {
		ts.logger.Info("----------------------------------------")
		ts.logger.Info("Running CASE # %d", i+1)

		cr := ts.runSlot(ctx, i, slot, dryRun)
		res.Cases = append(res.Cases, cr)
		res.NumTest++
		if cr.Status == StatusPassed {
			res.NumPass++
		}
	}
	res.NumFail = res.NumTest - res.NumPass

	res.EndTime = time.Now()
	res.Duration = res.EndTime.Sub(res.StartTime)

	ts.logger.Info("----------------------------------------")
	ts.logger.Info("TOTAL NUMBER OF TESTS: %d", res.NumTest)
	ts.logger.Info("TOTAL NUMBER OF PASS: %d", res.NumPass)
	ts.logger.Info("TOTAL NUMBER OF FAIL: %d", res.NumFail)
	return res
}

func (ts *TestSet) runSlot(ctx context.Context, index int, slot CaseSlot, dryRun bool) (cr CaseResult) {
	cr = CaseResult{Index: index + 1, File: slot.File}

	if slot.Absent() {
		ts.logger.Error("No test case found for %s. Skipping.", slot.File)
		cr.Status = StatusMissing
		if slot.Err != nil {
			cr.Error = slot.Err.Error()
		}
		return cr
	}

	cr.Description = slot.Case.Description
	slot.Case.logSettings(ts.logger)

	defer func() {
		if r := recover(); r != nil {
			ts.logger.Error("An unhandled error occurred when running test case %s: %v. Skipping.", slot.File, r)
			cr.Status = StatusError
			cr.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	result := slot.Case.Run(ctx, RunOptions{
		Executable: ts.Executable,
		OutDir:     ts.OutDir,
		Env:        ts.env,
		DryRun:     dryRun,
		Logger:     ts.logger,
		Spawner:    ts.spawner,
	})
	if dryRun {
		result.Outcome = OutcomeSuccess
		result.ExitCode = ts.SuccessCode
	}

	cr.Outcome = result.Outcome
	cr.ExitCode = result.ExitCode
	cr.Command = result.Command
	cr.LogPath = result.LogPath
	cr.Duration = result.Duration

	if result.Passed(ts.SuccessCode) {
		cr.Status = StatusPassed
		ts.logger.Info("Test Case return status: %d", result.ExitCode)
		return cr
	}

	cr.Status = StatusFailed
	switch result.Outcome {
	case OutcomeSuccess:
		ts.logger.Error("Test Case return status: %d", result.ExitCode)
	default:
		ts.logger.Error("Test Case return status: %s", result.Outcome)
	}
	if result.Err != nil {
		cr.Error = result.Err.Error()
	}
	return cr
}

// Close releases the set log sink. It is safe to call more than once.
func (ts *TestSet) Close() error {
	return ts.logger.Close()
}
