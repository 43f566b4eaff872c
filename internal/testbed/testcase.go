package testbed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clitestbed/internal/config"
	"clitestbed/pkg/logging"
)

// Test case configuration keys.
const (
	SectionTest      = "TEST"
	SectionArguments = "ARGUMENTS"

	OptDescription = "DESCRIPTION"
	OptOutSubdir   = "OUTSUBDIR"
	OptLogFile     = "LOGFILE"
)

// TestCase is one invocation of a test set's executable with a fixed
// argument list. It is not mutated after loading.
type TestCase struct {
	SourceFile  string
	Description string
	OutSubdir   string
	LogFile     string
	Arguments   []Argument
}

// RunOptions carries what a test case borrows from its owning set.
type RunOptions struct {
	Executable string
	OutDir     string
	Env        []string
	DryRun     bool
	Logger     *logging.Logger
	Spawner    Spawner
}

// getwd is replaced in tests.
var getwd = os.Getwd

// LoadTestCase reads the test case at path using the default interpolation
// rules and ctx, which must already carry the owning set's output directory.
func LoadTestCase(ctx config.Context, path string) (*TestCase, error) {
	return loadTestCase(nil, ctx, path)
}

func loadTestCase(interp *config.Interpolator, ctx config.Context, path string) (*TestCase, error) {
	fail := func(err error) (*TestCase, error) {
		return nil, &TestCaseLoadError{Path: path, Err: err}
	}

	doc, err := config.Load(path)
	if err != nil {
		return fail(err)
	}
	if !doc.HasSection(SectionTest) {
		return fail(fmt.Errorf("section %s not found", SectionTest))
	}

	r := config.NewReader(doc, interp, ctx)
	outSubdir, err := r.String(SectionTest, OptOutSubdir)
	if err != nil {
		return fail(err)
	}
	r = r.WithContext(ctx.WithOutSubdir(outSubdir))

	tc := &TestCase{SourceFile: path, OutSubdir: outSubdir}
	if tc.Description, err = r.String(SectionTest, OptDescription); err != nil {
		return fail(err)
	}
	if tc.LogFile, err = r.String(SectionTest, OptLogFile); err != nil {
		return fail(err)
	}

	// An empty ARGUMENTS mapping is valid; a missing one is not.
	pairs, err := r.Pairs(SectionArguments)
	if err != nil {
		return fail(err)
	}
	tc.Arguments = make([]Argument, 0, len(pairs))
	for _, p := range pairs {
		tc.Arguments = append(tc.Arguments, Argument{Option: p.Key, Value: p.Value})
	}

	return tc, nil
}

// CommandLine returns the executable followed by every non-empty option and
// value, in declaration order.
func (tc *TestCase) CommandLine(executable string) []string {
	cmd := []string{executable}
	for _, arg := range tc.Arguments {
		cmd = append(cmd, arg.Tokens()...)
	}
	return cmd
}

// LogPath returns where the case output is written under outDir.
func (tc *TestCase) LogPath(outDir string) string {
	return joinPath(outDir, tc.OutSubdir, tc.LogFile)
}

// Run executes the case once and blocks until the child exits. Under dry run
// nothing is created or spawned and the result is Success(0).
func (tc *TestCase) Run(ctx context.Context, opts RunOptions) ExecutionResult {
	start := time.Now()
	command := tc.CommandLine(opts.Executable)

	result := tc.run(ctx, opts, command)
	result.Command = command
	result.Duration = time.Since(start)

	opts.Logger.Info("Test Case elapsed time (seconds): %.3f", result.Duration.Seconds())
	return result
}

func (tc *TestCase) run(ctx context.Context, opts RunOptions, command []string) ExecutionResult {
	logger := opts.Logger
	if opts.DryRun {
		logger.Info("Dry run command: %s", strings.Join(command, " "))
		return Success(0)
	}

	logPath := tc.LogPath(opts.OutDir)
	out, err := createCaseLog(logPath)
	if err != nil {
		logger.Error("Log file is not writable: %s: %v", logPath, err)
		return LogUnwritable(logPath, err)
	}
	defer out.Close()

	argv := append([]string{}, command...)
	dir, err := workingDir(opts.Executable)
	if err != nil {
		logger.Error("Exception occurred launching application: %v", err)
		logger.Error("Stopping test case.")
		return SpawnFailed(err)
	}
	if hasDirComponent(opts.Executable) {
		argv[0] = filepath.Join(dir, filepath.Base(opts.Executable))
	}

	spawner := opts.Spawner
	if spawner == nil {
		spawner = ExecSpawner{}
	}

	code, err := spawner.Spawn(ctx, Command{Args: argv, Dir: dir, Env: opts.Env, Output: out})
	if err != nil {
		logger.Error("Exception occurred launching application: %v", err)
		logger.Error("Stopping test case.")
		result := SpawnFailed(err)
		result.LogPath = logPath
		return result
	}

	result := Success(code)
	result.LogPath = logPath
	return result
}

// createCaseLog creates (or truncates) the case log file and its parents.
func createCaseLog(path string) (*os.File, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// workingDir is the executable's directory when it names a path, otherwise
// the harness working directory.
func workingDir(executable string) (string, error) {
	if hasDirComponent(executable) {
		abs, err := filepath.Abs(executable)
		if err != nil {
			return "", err
		}
		return filepath.Dir(abs), nil
	}
	return getwd()
}

func (tc *TestCase) logSettings(logger *logging.Logger) {
	for _, line := range tc.SettingsReport() {
		logger.Info("%s", line)
	}
}
