package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"clitestbed/internal/color"
	"clitestbed/internal/orchestrator"
	"clitestbed/internal/testbed"
)

func newValidateCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Load a configuration and print the resolved test sets",
		Long: `Loads every test set of the configuration file and every test case it
references, then prints the resolved tree without running anything.

Sections that cannot be loaded are logged and skipped. Test cases that cannot
be loaded are shown as missing.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, &runOptions{logLevel: logLevel})
			if err != nil {
				return &exitError{code: ExitRunError, err: fmt.Errorf("failed to load settings: %w", err)}
			}
			initOutput(settings, cmd.ErrOrStderr())

			o := orchestrator.New(
				orchestrator.WithConsole(cmd.ErrOrStderr()),
				orchestrator.WithDefaultLogLevel(settings.DefaultLogLevel),
			)
			sets, err := o.LoadAll(args[0])
			if err != nil {
				return &exitError{code: ExitRunError, err: err}
			}
			defer func() {
				for _, ts := range sets {
					_ = ts.Close()
				}
			}()

			renderSets(cmd.OutOrStdout(), sets)
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level of test sets that do not set LOGLEVEL")
	return cmd
}

// renderSets prints the resolved test sets as a tree.
func renderSets(w io.Writer, sets []*testbed.TestSet) {
	l := list.NewWriter()
	l.SetOutputMirror(w)
	l.SetStyle(list.StyleConnectedRounded)

	for _, ts := range sets {
		l.AppendItem(color.Title(ts.Name))
		l.Indent()
		l.AppendItem("executable: " + ts.Executable)
		l.AppendItem("success code: " + strconv.Itoa(ts.SuccessCode))
		l.AppendItem("output dir: " + ts.OutDir)
		if ts.LogFile != "" {
			l.AppendItem("log file: " + ts.LogFile)
		}
		l.AppendItem("log level: " + ts.LogLevel)
		for _, dir := range ts.PathDirs {
			l.AppendItem("path dir: " + dir)
		}

		for i, slot := range ts.Slots {
			if slot.Absent() {
				l.AppendItem(fmt.Sprintf("case #%d: %s %s", i+1, slot.File, color.Status(string(testbed.StatusMissing))))
				continue
			}
			tc := slot.Case
			l.AppendItem(fmt.Sprintf("case #%d: %s", i+1, slot.File))
			l.Indent()
			if tc.Description != "" {
				l.AppendItem("description: " + tc.Description)
			}
			l.AppendItem("log: " + tc.LogPath(ts.OutDir))
			l.AppendItem(color.Muted(fmt.Sprintf("%q", tc.CommandLine(ts.Executable))))
			l.UnIndent()
		}
		l.UnIndent()
	}
	l.Render()
}
