package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clitestbed/internal/color"
	"clitestbed/internal/config"
	"clitestbed/internal/orchestrator"
	"clitestbed/internal/reporting"
	"clitestbed/pkg/logging"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitRunError    = 2
	ExitTestsFailed = 3
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by Execute to a process exit code. Errors
// cobra raises itself (unknown flags, wrong argument count) are usage errors;
// every RunE wraps its own failures in an exitError.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsage
}

// runOptions holds the flags of the root command.
type runOptions struct {
	dryRun     bool
	output     string
	reportPath string
	logLevel   string
	noColor    bool
	strict     bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "clitestbed [flags] <config>",
		Short: "Run command-line programs as test cases and report pass/fail",
		Long: `clitestbed runs an external command-line program once per test case and
compares each exit code with the expected success code.

The configuration file (YAML or JSON) declares one test set per top-level
section. Each test set names an EXECUTABLE, an OUTDIR and the test case files
to run, either listed in TESTCASES or discovered in TESTDIR. Each test case
file declares its OUTSUBDIR, LOGFILE and the ARGUMENTS passed to the program.

Values may reference $(datetime), $(outdir) and $(outsubdir).

Exit codes:
  0  all test sets ran (failures are reported, see --strict)
  1  invalid arguments or flags
  2  the configuration could not be loaded or run
  3  at least one test failed and --strict was given`,
		Args: cobra.ExactArgs(1),
		// SilenceUsage is set to true to prevent printing usage message on errors
		// raised while running tests
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the command line of every test case without executing it")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Result format: table, json or quiet")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Directory to write a JSON report file to")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level of test sets that do not set LOGLEVEL")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with code 3 when any test fails")

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSelfUpdateCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "clitestbed version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Cobra prints the error, we just exit with the mapped code
		os.Exit(exitCode(err))
	}
}

// resolveSettings layers the command line flags over the settings files.
func resolveSettings(cmd *cobra.Command, opts *runOptions) (config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		settings.Output = opts.output
	}
	if flags.Changed("report") {
		settings.ReportPath = opts.reportPath
	}
	if flags.Changed("log-level") {
		settings.DefaultLogLevel = opts.logLevel
	}
	if flags.Changed("no-color") {
		settings.NoColor = opts.noColor
	}
	if flags.Changed("strict") {
		settings.Strict = opts.strict
	}
	return settings, nil
}

// initOutput sets up the process logger and colors for a command.
func initOutput(settings config.Settings, stderr io.Writer) {
	level, err := logging.ParseLevel(settings.DefaultLogLevel)
	if err != nil {
		level = logging.LevelInfo
	}
	logging.InitForCLI(level, stderr)

	color.Initialize(lipgloss.HasDarkBackground())
	color.SetEnabled(!settings.NoColor)
}

func runTests(cmd *cobra.Command, configPath string, opts *runOptions) error {
	settings, err := resolveSettings(cmd, opts)
	if err != nil {
		return &exitError{code: ExitRunError, err: fmt.Errorf("failed to load settings: %w", err)}
	}
	initOutput(settings, cmd.ErrOrStderr())

	reporter, err := reporting.New(settings.Output, cmd.OutOrStdout(), settings.ReportPath)
	if err != nil {
		// a bad --output is a usage error, a bad settings file is not
		code := ExitRunError
		if cmd.Flags().Changed("output") {
			code = ExitUsage
		}
		return &exitError{code: code, err: err}
	}

	o := orchestrator.New(
		orchestrator.WithReporter(reporter),
		orchestrator.WithConsole(cmd.ErrOrStderr()),
		orchestrator.WithDefaultLogLevel(settings.DefaultLogLevel),
	)

	suite, err := o.RunAll(cmd.Context(), configPath, opts.dryRun)
	if err != nil {
		return &exitError{code: ExitRunError, err: err}
	}

	if settings.Strict && suite.NumFail > 0 {
		return &exitError{code: ExitTestsFailed, err: fmt.Errorf("%d of %d tests failed", suite.NumFail, suite.NumTest)}
	}
	return nil
}
