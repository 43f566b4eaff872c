package orchestrator

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"clitestbed/internal/config"
	"clitestbed/internal/reporting"
	"clitestbed/internal/testbed"
	"clitestbed/pkg/logging"
)

// Orchestrator loads and runs the test sets of a configuration file.
type Orchestrator struct {
	spawner         testbed.Spawner
	reporter        reporting.Reporter
	console         io.Writer
	clock           func() time.Time
	workingDir      func() (string, error)
	defaultLogLevel string
	interp          *config.Interpolator
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSpawner sets the process launcher used by every test case.
func WithSpawner(s testbed.Spawner) Option {
	return func(o *Orchestrator) { o.spawner = s }
}

// WithReporter sets where results are reported.
func WithReporter(r reporting.Reporter) Option {
	return func(o *Orchestrator) { o.reporter = r }
}

// WithConsole sets where the test set logs are written besides their files.
func WithConsole(w io.Writer) Option {
	return func(o *Orchestrator) { o.console = w }
}

// WithClock sets the source of the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.clock = now }
}

// WithWorkingDir sets the directory used as the root $(outdir).
func WithWorkingDir(dir string) Option {
	return func(o *Orchestrator) {
		o.workingDir = func() (string, error) { return dir, nil }
	}
}

// WithDefaultLogLevel sets the level of test sets without LOGLEVEL.
func WithDefaultLogLevel(level string) Option {
	return func(o *Orchestrator) { o.defaultLogLevel = level }
}

// WithInterpolator replaces the default interpolation rules.
func WithInterpolator(i *config.Interpolator) Option {
	return func(o *Orchestrator) { o.interp = i }
}

// New creates an Orchestrator. Without options it spawns real processes,
// reports nothing and logs to stderr.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		spawner:         testbed.ExecSpawner{},
		reporter:        reporting.NopReporter{},
		console:         os.Stderr,
		clock:           time.Now,
		workingDir:      os.Getwd,
		defaultLogLevel: logging.DefaultLevelName,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// rootContext returns the interpolation context every section starts from.
func (o *Orchestrator) rootContext() (config.Context, error) {
	wd, err := o.workingDir()
	if err != nil {
		return config.Context{}, err
	}
	return config.NewContext(o.clock(), wd), nil
}

// LoadAll builds every test set of the file at configPath in declaration
// order. The caller owns the returned sets and must Close them.
func (o *Orchestrator) LoadAll(configPath string) ([]*testbed.TestSet, error) {
	ctx, err := o.rootContext()
	if err != nil {
		return nil, err
	}
	sets, _, err := o.loadAll(ctx, configPath)
	return sets, err
}

func (o *Orchestrator) loadAll(ctx config.Context, configPath string) ([]*testbed.TestSet, []testbed.SkippedSection, error) {
	doc, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	sections := doc.Sections()
	if len(sections) == 0 {
		return nil, nil, &testbed.ConfigError{Path: configPath, Err: testbed.ErrNoSections}
	}

	loadOpts := testbed.LoadOptions{
		Context:         ctx,
		Interpolator:    o.interp,
		Console:         o.console,
		DefaultLogLevel: o.defaultLogLevel,
		Spawner:         o.spawner,
	}

	var (
		sets    []*testbed.TestSet
		skipped []testbed.SkippedSection
	)
	for _, section := range sections {
		ts, err := testbed.NewTestSet(doc, section, loadOpts)
		if err != nil {
			logging.Error("Orchestrator", err, "Skipping test set %s from %s", section, configPath)
			skipped = append(skipped, testbed.SkippedSection{Name: section, Error: err.Error()})
			continue
		}
		sets = append(sets, ts)
	}

	if len(sets) == 0 {
		return nil, skipped, &testbed.ConfigError{Path: configPath, Err: testbed.ErrNoTestSets}
	}
	return sets, skipped, nil
}

// RunAll loads and runs every test set of the file at configPath. Each set is
// closed after its run. The returned result carries the summed failures in
// NumFail; an error means nothing ran.
func (o *Orchestrator) RunAll(ctx context.Context, configPath string, dryRun bool) (*testbed.SuiteResult, error) {
	rootCtx, err := o.rootContext()
	if err != nil {
		return nil, err
	}

	sets, skipped, err := o.loadAll(rootCtx, configPath)
	if err != nil {
		return nil, err
	}

	suite := &testbed.SuiteResult{
		ConfigPath: configPath,
		DryRun:     dryRun,
		StartTime:  time.Now(),
		Skipped:    skipped,
	}

	o.reporter.ReportStart(configPath, dryRun)
	var closeErrs []error
	for _, ts := range sets {
		res := ts.Run(ctx, dryRun)
		if err := ts.Close(); err != nil {
			closeErrs = append(closeErrs, err)
		}
		suite.Add(res)
		o.reporter.ReportSetResult(res)
	}

	suite.EndTime = time.Now()
	suite.Duration = suite.EndTime.Sub(suite.StartTime)
	o.reporter.ReportSuiteResult(*suite)

	if err := errors.Join(closeErrs...); err != nil {
		logging.Warn("Orchestrator", "Failed to close test set logs: %v", err)
	}

	logging.Info("Orchestrator", "Completed %d test sets: %d tests, %d failed", len(suite.Sets), suite.NumTest, suite.NumFail)
	return suite, nil
}
